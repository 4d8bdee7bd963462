package common

import "folderpick/internal/host"

// Mode says which part of the node view receives keys
type Mode int

const (
	// Form cycles through the node's widgets
	Form Mode = iota
	// Browse sends keys to the embedded panel
	Browse
	// Edit sends keys to the text input of a string or number widget
	Edit
)

func (m Mode) String() string {
	switch m {
	case Form:
		return "form"
	case Browse:
		return "browse"
	case Edit:
		return "edit"
	}
	return "unknown"
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Node() *host.Node
	// Cursor is the index of the focused widget among the visible ones
	Cursor() int
	Mode() Mode
	// EditView renders the text input while in Edit mode
	EditView() string
	// PanelView renders the embedded panel, "" when the node has none
	PanelView() string
	// Overlay renders the lightbox, "" when it is hidden
	Overlay() string
	StatusView() string
	ShowHelp() bool
	HelpView() string
}
