package types

// Focus is the part of the panel that receives key presses
type Focus int

const (
	// FocusGrid routes keys to card navigation and type-ahead
	FocusGrid Focus = iota
	// FocusPath routes keys to the directory text field
	FocusPath
	// FocusOverlay routes keys to the preview lightbox
	FocusOverlay
)

func (f Focus) String() string {
	switch f {
	case FocusGrid:
		return "grid"
	case FocusPath:
		return "path"
	case FocusOverlay:
		return "overlay"
	}
	return "unknown"
}

// TypingTarget reports whether printable keys belong to a text input
func (f Focus) TypingTarget() bool {
	return f == FocusPath
}
