package types

import "fmt"

// SortKey orders files in a listing
type SortKey string

const (
	SortByName  SortKey = "name"
	SortByMTime SortKey = "mtime"
	SortBySize  SortKey = "size"
)

// SortKeys lists the accepted keys in display order
var SortKeys = []SortKey{SortByName, SortByMTime, SortBySize}

// ParseSortKey rejects anything but name, mtime and size
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return SortByName, fmt.Errorf("unknown sort key %q", s)
}

// RegexMode decides whether name_regex keeps or drops matching files
type RegexMode string

const (
	RegexInclude RegexMode = "include"
	RegexExclude RegexMode = "exclude"
)

// ParseRegexMode rejects anything but include and exclude
func ParseRegexMode(s string) (RegexMode, error) {
	switch RegexMode(s) {
	case RegexInclude, RegexExclude:
		return RegexMode(s), nil
	}
	return RegexInclude, fmt.Errorf("unknown regex mode %q", s)
}

// NavigationState is everything that determines what the panel shows.
// Extensions is the raw comma-separated list as typed by the user.
type NavigationState struct {
	Directory       string
	Extensions      string
	Regex           string
	RegexMode       RegexMode
	RegexIgnoreCase bool
	SortBy          SortKey
	Descending      bool
	ViewMode        ViewMode
}

// DefaultNavigationState mirrors the node's input defaults
func DefaultNavigationState() NavigationState {
	return NavigationState{
		Directory:       "input",
		RegexMode:       RegexInclude,
		RegexIgnoreCase: true,
		SortBy:          SortByName,
		ViewMode:        ViewGrid,
	}
}

// Query returns the state with the view mode zeroed. Two states with the
// same Query produce the same listing and the same index resolution.
func (s NavigationState) Query() NavigationState {
	s.ViewMode = ViewGrid
	return s
}

// SameQuery reports whether s and o would fetch the same listing
func (s NavigationState) SameQuery(o NavigationState) bool {
	return s.Query() == o.Query()
}
