package panel

import (
	"context"

	"folderpick/internal/log"
	"folderpick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Resolver maps a file path to its index in the filtered, sorted listing
type Resolver interface {
	ResolveIndex(ctx context.Context, s types.NavigationState, path string) (types.ResolvedIndex, error)
}

// resolvedMsg is stamped with the state and selection epoch it was
// requested under so late answers can be recognized
type resolvedMsg struct {
	panelID int
	epoch   uint64
	state   types.NavigationState
	path    string
	result  types.ResolvedIndex
	err     error
}

// Selector tracks the single selected card and publishes resolved
// indices for file cards.
type Selector struct {
	panelID   int
	resolver  Resolver
	cards     []types.Card
	selected  int
	epoch     uint64
	published int
	hasIndex  bool
	onIndex   func(int)
}

// NewSelector creates a selector with nothing selected
func NewSelector(panelID int, resolver Resolver, onIndex func(int)) *Selector {
	return &Selector{
		panelID:  panelID,
		resolver: resolver,
		selected: -1,
		onIndex:  onIndex,
	}
}

// SetCards replaces the cards and clears the selection
func (s *Selector) SetCards(cards []types.Card) {
	s.cards = cards
	s.Clear()
}

// Clear drops the selection. In-flight resolutions become stale.
func (s *Selector) Clear() {
	s.selected = -1
	s.epoch++
}

// Index returns the selected position, or -1
func (s *Selector) Index() int {
	return s.selected
}

// Selected returns the selected card
func (s *Selector) Selected() (types.Card, bool) {
	if s.selected < 0 || s.selected >= len(s.cards) {
		return types.Card{}, false
	}
	return s.cards[s.selected], true
}

// Selection returns the selected path as a value
func (s *Selector) Selection() types.Selection {
	card, ok := s.Selected()
	if !ok {
		return types.Selection{}
	}
	return types.Selection{SelectedPath: card.Path}
}

// Published returns the last index handed to the node
func (s *Selector) Published() (int, bool) {
	return s.published, s.hasIndex
}

// Select marks card i. Selecting a file card starts an index resolution
// under state; directory cards resolve nothing.
func (s *Selector) Select(i int, state types.NavigationState) tea.Cmd {
	if i < 0 || i >= len(s.cards) {
		return nil
	}
	s.selected = i
	s.epoch++

	card := s.cards[i]
	if card.IsDir() {
		return nil
	}

	id, epoch, resolver, path := s.panelID, s.epoch, s.resolver, card.Path
	return func() tea.Msg {
		res, err := resolver.ResolveIndex(context.Background(), state, path)
		return resolvedMsg{panelID: id, epoch: epoch, state: state, path: path, result: res, err: err}
	}
}

// SelectByIndex clamps i into range before selecting
func (s *Selector) SelectByIndex(i int, state types.NavigationState) tea.Cmd {
	if len(s.cards) == 0 {
		return nil
	}
	return s.Select(clampIndex(i, len(s.cards)), state)
}

// resolved applies a resolution result against the current state
func (s *Selector) resolved(msg resolvedMsg, current types.NavigationState) {
	fields := []log.Field{log.F("path", msg.path)}
	if msg.epoch != s.epoch || !msg.state.SameQuery(current) {
		log.LogWithFields(fields...).Debug("discarding stale index resolution")
		return
	}
	if msg.err != nil {
		log.LogWithError(msg.err).With(fields...).Warn("index resolution failed")
		return
	}
	if !msg.result.Found() {
		log.LogWithFields(fields...).Debug("file not in filtered listing")
		return
	}
	s.published = msg.result.Index
	s.hasIndex = true
	if s.onIndex != nil {
		s.onIndex(msg.result.Index)
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
