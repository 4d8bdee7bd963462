package messages

import (
	"folderpick/internal/config"
)

type ErrorMsg struct {
	Err error
}

// StatusMsg shows a transient line in the status bar
type StatusMsg struct {
	Text    string
	IsError bool
}

type ConfigUpdateMsg struct {
	Config *config.Config
}

// ThumbLoadedMsg reports that a card preview finished loading. The
// rendered text is in the loader's cache.
type ThumbLoadedMsg struct {
	Key string
	Err error
}
