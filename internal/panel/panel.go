// Package panel is the directory browsing panel: navigation, card
// rendering, selection with index resolution, scroll continuity,
// type-ahead and the preview lightbox. It is UI-agnostic; a view attaches
// as a Surface and forwards messages to Update.
package panel

import (
	"context"
	"sync/atomic"
	"time"

	"folderpick/internal/errors"
	"folderpick/internal/log"
	"folderpick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Backend is the part of the HTTP client the panel uses
type Backend interface {
	Lister
	Resolver
	LastPath(ctx context.Context) (string, error)
	OpenInExplorer(ctx context.Context, path string) error
	ViewURL(path string) string
}

// Options configures a Panel
type Options struct {
	Backend Backend
	Initial types.NavigationState
	// OnIndex receives every resolved index
	OnIndex func(int)
	// OnDirectory is called whenever the panel's directory changes
	OnDirectory func(string)
	// TypeAheadTimeout defaults to DefaultTypeAheadTimeout
	TypeAheadTimeout time.Duration
}

type lastPathMsg struct {
	panelID int
	path    string
	err     error
}

type explorerMsg struct {
	panelID int
	path    string
	err     error
}

// PreviewFailedMsg reports that the lightbox could not show a file
type PreviewFailedMsg struct {
	PanelID int
	Err     error
}

var nextPanelID atomic.Int64

// Panel ties the browsing components together. All methods must be
// called from the UI update loop.
type Panel struct {
	id        int
	backend   Backend
	nav       *Navigator
	sel       *Selector
	cont      Continuity
	typeahead *TypeAhead
	surface   Surface
	cards     []types.Card
	focus     types.Focus
	mounted   bool
	pinned    bool
}

// New creates a panel; call Mount to load the first listing
func New(opts Options) *Panel {
	id := int(nextPanelID.Add(1))
	p := &Panel{
		id:        id,
		backend:   opts.Backend,
		surface:   nullSurface{},
		typeahead: NewTypeAhead(id, opts.TypeAheadTimeout),
	}
	p.nav = NewNavigator(id, opts.Backend, opts.Initial)
	p.nav.onDirectory = opts.OnDirectory
	p.nav.beforeFetch = p.beforeFetch
	p.sel = NewSelector(id, opts.Backend, opts.OnIndex)
	return p
}

// ID distinguishes this panel's messages from other panels'
func (p *Panel) ID() int { return p.id }

// Attach sets the surface cards are laid out on
func (p *Panel) Attach(s Surface) {
	if s == nil {
		s = nullSurface{}
	}
	p.surface = s
	s.SetCards(p.cards)
}

// Navigator exposes the navigation controller
func (p *Panel) Navigator() *Navigator { return p.nav }

// Selector exposes the selection
func (p *Panel) Selector() *Selector { return p.sel }

// TypeAhead exposes the type-ahead buffer
func (p *Panel) TypeAhead() *TypeAhead { return p.typeahead }

// Continuity exposes the scroll continuity manager
func (p *Panel) Continuity() *Continuity { return &p.cont }

// Cards returns the rendered cards
func (p *Panel) Cards() []types.Card { return p.cards }

// State returns the current navigation state
func (p *Panel) State() types.NavigationState { return p.nav.State() }

// Loading reports whether a fetch is running
func (p *Panel) Loading() bool { return p.nav.Loading() }

// Err returns the last listing failure, if the last fetch failed
func (p *Panel) Err() error { return p.nav.Err() }

// Listing returns the last successful listing
func (p *Panel) Listing() *types.Listing { return p.nav.Listing() }

// Focus returns where keys go
func (p *Panel) Focus() types.Focus {
	if Lightbox().Visible() {
		return types.FocusOverlay
	}
	return p.focus
}

// SetFocus moves key focus between the grid and the path field
func (p *Panel) SetFocus(f types.Focus) {
	p.focus = f
	if f.TypingTarget() {
		p.typeahead.Clear()
	}
}

// Mounted reports whether Mount has run
func (p *Panel) Mounted() bool { return p.mounted }

// Mount seeds the directory from the backend's last path, then fetches.
func (p *Panel) Mount() tea.Cmd {
	if p.mounted {
		return nil
	}
	p.mounted = true
	id, backend := p.id, p.backend
	return func() tea.Msg {
		path, err := backend.LastPath(context.Background())
		return lastPathMsg{panelID: id, path: path, err: err}
	}
}

// Pin seeds dir and keeps it over the backend's last path on Mount
func (p *Panel) Pin(dir string) {
	p.nav.Seed(dir)
	p.pinned = true
}

// Refresh is the single re-fetch entrypoint
func (p *Panel) Refresh() tea.Cmd {
	return p.nav.Refresh()
}

func (p *Panel) beforeFetch(types.NavigationState) {
	p.sel.Clear()
	p.cont.Begin(p.surface.ScrollTop())
}

// Select marks card i, scrolling it into view when scroll is set
func (p *Panel) Select(i int, scroll bool) tea.Cmd {
	cmd := p.sel.Select(i, p.nav.State())
	if scroll && p.sel.Index() == i {
		p.surface.ScrollIntoView(i)
	}
	return cmd
}

// SelectByIndex selects the clamped index and scrolls to it
func (p *Panel) SelectByIndex(i int) tea.Cmd {
	if len(p.cards) == 0 {
		return nil
	}
	return p.Select(clampIndex(i, len(p.cards)), true)
}

// Move shifts the selection by delta cards
func (p *Panel) Move(delta int) tea.Cmd {
	cur := p.sel.Index()
	if cur < 0 {
		if delta > 0 {
			return p.SelectByIndex(0)
		}
		return p.SelectByIndex(len(p.cards) - 1)
	}
	return p.SelectByIndex(cur + delta)
}

// Activate is the double-click action: directories are entered, files
// are previewed.
func (p *Panel) Activate(i int) tea.Cmd {
	if i < 0 || i >= len(p.cards) {
		return nil
	}
	card := p.cards[i]
	if card.IsDir() {
		return p.nav.SetDirectory(card.Path)
	}
	if err := Lightbox().Open(card.Path, p.backend.ViewURL(card.Path)); err != nil {
		log.LogWithError(err).Warn("preview failed")
		id := p.id
		return func() tea.Msg { return PreviewFailedMsg{PanelID: id, Err: err} }
	}
	return nil
}

// ActivateSelected activates the selected card
func (p *Panel) ActivateSelected() tea.Cmd {
	return p.Activate(p.sel.Index())
}

// TypeKey feeds a printable key to type-ahead. It returns false when the
// key is not for the panel, e.g. while the path field has focus.
func (p *Panel) TypeKey(r rune) (bool, tea.Cmd) {
	if p.Focus() != types.FocusGrid {
		return false, nil
	}
	timer := p.typeahead.Add(r)
	var sel tea.Cmd
	if i := Search(p.cards, p.sel.Index(), p.typeahead.Query()); i >= 0 {
		sel = p.Select(i, true)
	}
	return true, tea.Batch(timer, sel)
}

// TypeBackspace drops the last type-ahead character. It returns false if
// the buffer was empty.
func (p *Panel) TypeBackspace() (bool, tea.Cmd) {
	if p.Focus() != types.FocusGrid {
		return false, nil
	}
	return p.typeahead.Backspace()
}

// TypeEscape clears type-ahead, reporting whether there was anything
func (p *Panel) TypeEscape() bool {
	had := p.typeahead.Query() != ""
	p.typeahead.Clear()
	return had
}

// OpenExplorer reveals the selected card, or the current directory when
// nothing is selected
func (p *Panel) OpenExplorer() tea.Cmd {
	target := p.nav.State().Directory
	if card, ok := p.sel.Selected(); ok {
		target = card.Path
	}
	if target == "" {
		return nil
	}
	id, backend := p.id, p.backend
	return func() tea.Msg {
		err := backend.OpenInExplorer(context.Background(), target)
		return explorerMsg{panelID: id, path: target, err: err}
	}
}

// Owns reports whether msg belongs to this panel
func (p *Panel) Owns(msg tea.Msg) bool {
	switch m := msg.(type) {
	case listingMsg:
		return m.panelID == p.id
	case resolvedMsg:
		return m.panelID == p.id
	case settledMsg:
		return m.panelID == p.id
	case lastPathMsg:
		return m.panelID == p.id
	case explorerMsg:
		return m.panelID == p.id
	case typeAheadExpiredMsg:
		return m.panelID == p.id
	}
	return false
}

// Update handles the panel's own messages and ignores everything else
func (p *Panel) Update(msg tea.Msg) tea.Cmd {
	if !p.Owns(msg) {
		return nil
	}
	switch m := msg.(type) {
	case lastPathMsg:
		return p.handleLastPath(m)
	case listingMsg:
		return p.handleListing(m)
	case settledMsg:
		p.handleSettled(m)
	case resolvedMsg:
		p.sel.resolved(m, p.nav.State())
	case typeAheadExpiredMsg:
		p.typeahead.expire(m.gen)
	case explorerMsg:
		if m.err != nil {
			log.LogWithError(m.err).With(log.F("path", m.path)).Warn("open in explorer failed")
		}
	}
	return nil
}

func (p *Panel) handleLastPath(m lastPathMsg) tea.Cmd {
	switch {
	case m.err != nil:
		log.LogWithError(m.err).Warn("could not read last path")
	case m.path != "" && !p.pinned:
		p.nav.Seed(m.path)
	}
	p.nav.ForceReset()
	return p.Refresh()
}

func (p *Panel) handleListing(m listingMsg) tea.Cmd {
	if m.seq != p.nav.seq {
		return nil
	}
	if !p.nav.complete(m) {
		log.LogWithError(m.err).With(log.F("directory", m.state.Directory)).Warn("listing failed")
		p.setCards(nil)
		cur := p.nav.State()
		p.cont.Fail(cur.Directory, cur.ViewMode)
		p.nav.clearForceReset()
		return nil
	}

	log.LogWithFields(
		log.F("directory", m.listing.CurrentDirectory),
		log.F("dirs", len(m.listing.Dirs)),
		log.F("files", len(m.listing.Files)),
	).Debug("listing loaded")

	p.setCards(Render(m.listing))
	id, seq := p.id, m.seq
	return func() tea.Msg { return settledMsg{panelID: id, seq: seq} }
}

func (p *Panel) setCards(cards []types.Card) {
	p.cards = cards
	p.sel.SetCards(cards)
	p.surface.SetCards(cards)
}

// Relayout re-lays out the current cards, e.g. after a resize
func (p *Panel) Relayout() {
	p.surface.SetCards(p.cards)
}

func (p *Panel) handleSettled(m settledMsg) {
	if m.seq != p.nav.seq || p.nav.Loading() {
		return
	}
	cur := p.nav.State()
	p.cont.Settle(cur.Directory, cur.ViewMode, p.nav.ForceResetPending(), p.surface)
	p.nav.clearForceReset()
	p.focus = types.FocusGrid
}

// ErrorText is the inline message shown in place of the cards
func (p *Panel) ErrorText() string {
	err := p.nav.Err()
	if err == nil {
		return ""
	}
	if errors.IsListingFailed(err) {
		return "Could not list directory: " + err.Error()
	}
	return err.Error()
}
