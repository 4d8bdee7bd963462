package types

import "fmt"

// ViewMode is how the panel lays out its cards
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
)

func (v ViewMode) String() string {
	switch v {
	case ViewGrid:
		return "grid"
	case ViewList:
		return "list"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(v))
	}
}

// Toggle returns the other view mode
func (v ViewMode) Toggle() ViewMode {
	if v == ViewGrid {
		return ViewList
	}
	return ViewGrid
}

// ParseViewMode accepts "grid" or "list"
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "grid":
		return ViewGrid, nil
	case "list":
		return ViewList, nil
	}
	return ViewGrid, fmt.Errorf("unknown view mode %q", s)
}
