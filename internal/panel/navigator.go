package panel

import (
	"context"

	"folderpick/internal/log"
	"folderpick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Lister fetches directory listings
type Lister interface {
	List(ctx context.Context, s types.NavigationState) (*types.Listing, error)
}

// listingMsg carries the result of one fetch back to the update loop
type listingMsg struct {
	panelID int
	seq     uint64
	state   types.NavigationState
	listing *types.Listing
	err     error
}

// Navigator owns the NavigationState. Every mutation funnels into Refresh,
// which keeps at most one fetch in flight and drops requests made while
// one is running.
type Navigator struct {
	panelID    int
	lister     Lister
	state      types.NavigationState
	listing    *types.Listing
	parent     string
	err        error
	loading    bool
	forceReset bool
	seq        uint64

	beforeFetch func(types.NavigationState)
	onDirectory func(string)
}

// NewNavigator creates a navigator starting at initial
func NewNavigator(panelID int, lister Lister, initial types.NavigationState) *Navigator {
	return &Navigator{
		panelID: panelID,
		lister:  lister,
		state:   initial,
	}
}

// State returns a copy of the current state
func (n *Navigator) State() types.NavigationState {
	return n.state
}

// Listing returns the last successful listing, nil after a failure
func (n *Navigator) Listing() *types.Listing {
	return n.listing
}

// Err returns the error of the last fetch
func (n *Navigator) Err() error {
	return n.err
}

// Loading reports whether a fetch is in flight
func (n *Navigator) Loading() bool {
	return n.loading
}

// ForceResetPending reports whether the next settle must scroll to the top
func (n *Navigator) ForceResetPending() bool {
	return n.forceReset
}

// ForceReset makes the next completed fetch scroll to the top
func (n *Navigator) ForceReset() {
	n.forceReset = true
}

func (n *Navigator) clearForceReset() {
	n.forceReset = false
}

func (n *Navigator) setDirectory(path string) {
	n.state.Directory = path
	if n.onDirectory != nil {
		n.onDirectory(path)
	}
}

// Seed replaces the directory without fetching
func (n *Navigator) Seed(path string) {
	n.setDirectory(path)
}

// SetDirectory navigates to path. No validation happens client-side; a
// bad path surfaces as a listing failure.
func (n *Navigator) SetDirectory(path string) tea.Cmd {
	n.setDirectory(path)
	n.forceReset = true
	return n.Refresh()
}

// GoUp navigates to the parent directory of the last good listing, so it
// still works after a mistyped path. It does nothing at the root or before
// the first listing arrives.
func (n *Navigator) GoUp() tea.Cmd {
	if n.parent == "" {
		return nil
	}
	return n.SetDirectory(n.parent)
}

// SetFilter replaces the extension and name filters
func (n *Navigator) SetFilter(exts, regex string, mode types.RegexMode, ignoreCase bool) tea.Cmd {
	n.state.Extensions = exts
	n.state.Regex = regex
	n.state.RegexMode = mode
	n.state.RegexIgnoreCase = ignoreCase
	return n.Refresh()
}

// SetSort changes the file ordering
func (n *Navigator) SetSort(key types.SortKey, descending bool) tea.Cmd {
	n.state.SortBy = key
	n.state.Descending = descending
	return n.Refresh()
}

// SetViewMode switches between grid and list
func (n *Navigator) SetViewMode(mode types.ViewMode) tea.Cmd {
	n.state.ViewMode = mode
	n.forceReset = true
	return n.Refresh()
}

// Refresh starts a fetch of the current state. It returns nil, dropping
// the request, when a fetch is already running.
func (n *Navigator) Refresh() tea.Cmd {
	if n.loading {
		log.LogWithFields(log.F("directory", n.state.Directory)).Debug("fetch in flight, refresh dropped")
		return nil
	}
	n.loading = true
	n.seq++

	state := n.state
	if n.beforeFetch != nil {
		n.beforeFetch(state)
	}

	id, seq, lister := n.panelID, n.seq, n.lister
	return func() tea.Msg {
		listing, err := lister.List(context.Background(), state)
		return listingMsg{panelID: id, seq: seq, state: state, listing: listing, err: err}
	}
}

// complete records a finished fetch and reports whether it succeeded
func (n *Navigator) complete(msg listingMsg) bool {
	n.loading = false
	if msg.err != nil {
		n.err = msg.err
		n.listing = nil
		return false
	}
	n.err = nil
	n.listing = msg.listing
	n.parent = msg.listing.ParentDirectory
	// the backend answers with the absolute directory; keep the widget in step
	if cur := msg.listing.CurrentDirectory; cur != "" && cur != n.state.Directory && n.state.Directory == msg.state.Directory {
		n.setDirectory(cur)
	}
	return true
}
