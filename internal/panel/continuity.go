package panel

import "folderpick/pkg/types"

// Surface is the scrollable area the cards are laid out in
type Surface interface {
	// SetCards lays out cards; scroll metrics reflect them afterwards
	SetCards(cards []types.Card)
	ScrollTop() int
	SetScrollTop(top int)
	ScrollHeight() int
	ClientHeight() int
	// ScrollIntoView makes card i visible, scrolling as little as possible
	ScrollIntoView(i int)
}

// settledMsg fires once the cards of fetch seq have been laid out
type settledMsg struct {
	panelID int
	seq     uint64
}

// RestoreOffset is where a re-render scrolls to: the top after a
// navigation, otherwise the previous offset clamped to the new content.
func RestoreOffset(prev, scrollHeight, clientHeight int, reset bool) int {
	if reset {
		return 0
	}
	maxTop := scrollHeight - clientHeight
	if maxTop < 0 {
		maxTop = 0
	}
	if prev > maxTop {
		return maxTop
	}
	if prev < 0 {
		return 0
	}
	return prev
}

// Continuity keeps the scroll position across re-fetches of the same
// directory and view, and resets it otherwise.
type Continuity struct {
	session types.BrowseSession
}

// Begin starts a new session for a fetch, remembering the current offset
func (c *Continuity) Begin(scrollTop int) {
	c.session = types.BrowseSession{
		LastDirectory:    c.session.LastDirectory,
		LastViewMode:     c.session.LastViewMode,
		Seen:             c.session.Seen,
		PendingScrollTop: scrollTop,
	}
}

// Session returns the current session
func (c *Continuity) Session() types.BrowseSession {
	return c.session
}

// Settle scrolls s after a successful fetch of dir in view and records
// both for the next comparison. It returns the applied offset.
func (c *Continuity) Settle(dir string, view types.ViewMode, force bool, s Surface) int {
	reset := force || !c.session.Seen ||
		dir != c.session.LastDirectory || view != c.session.LastViewMode

	top := RestoreOffset(c.session.PendingScrollTop, s.ScrollHeight(), s.ClientHeight(), reset)
	s.SetScrollTop(top)

	c.record(dir, view)
	return top
}

// Fail records dir and view after a failed fetch without scrolling
func (c *Continuity) Fail(dir string, view types.ViewMode) {
	c.record(dir, view)
}

func (c *Continuity) record(dir string, view types.ViewMode) {
	c.session.LastDirectory = dir
	c.session.LastViewMode = view
	c.session.Seen = true
}

// nullSurface stands in until a view attaches
type nullSurface struct{}

func (nullSurface) SetCards([]types.Card) {}
func (nullSurface) ScrollTop() int        { return 0 }
func (nullSurface) SetScrollTop(int)      {}
func (nullSurface) ScrollHeight() int     { return 0 }
func (nullSurface) ClientHeight() int     { return 0 }
func (nullSurface) ScrollIntoView(int)    {}
