package panel

import (
	"context"
	"sync"
	"time"

	"folderpick/internal/errors"
	"folderpick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

type stubBackend struct {
	mu        sync.Mutex
	listings  map[string]*types.Listing
	listErr   error
	lastPath  string
	lastErr   error
	resolveFn func(types.NavigationState, string) (types.ResolvedIndex, error)
	lists     []types.NavigationState
	explorer  []string
}

func newStubBackend(listings ...*types.Listing) *stubBackend {
	b := &stubBackend{listings: map[string]*types.Listing{}}
	for _, l := range listings {
		b.listings[l.CurrentDirectory] = l
	}
	return b
}

func (b *stubBackend) List(_ context.Context, s types.NavigationState) (*types.Listing, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists = append(b.lists, s)
	if b.listErr != nil {
		return nil, b.listErr
	}
	l, ok := b.listings[s.Directory]
	if !ok {
		return nil, errors.NewKind(errors.ListingFailed, "Directory not found.")
	}
	return l, nil
}

func (b *stubBackend) ResolveIndex(_ context.Context, s types.NavigationState, path string) (types.ResolvedIndex, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.resolveFn != nil {
		return b.resolveFn(s, path)
	}
	l, ok := b.listings[s.Directory]
	if !ok {
		return types.ResolvedIndex{Index: -1}, nil
	}
	for i, f := range l.Files {
		if f.Path == path {
			return types.ResolvedIndex{Index: i, Count: len(l.Files)}, nil
		}
	}
	return types.ResolvedIndex{Index: -1, Count: len(l.Files)}, nil
}

func (b *stubBackend) LastPath(context.Context) (string, error) {
	return b.lastPath, b.lastErr
}

func (b *stubBackend) OpenInExplorer(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.explorer = append(b.explorer, path)
	return nil
}

func (b *stubBackend) ViewURL(path string) string {
	return "http://backend/view?filepath=" + path
}

// fakeSurface lays cards out one per row of rowHeight
type fakeSurface struct {
	cards     []types.Card
	top       int
	rowHeight int
	client    int
	scrolled  []int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{rowHeight: 10, client: 30}
}

func (s *fakeSurface) SetCards(cards []types.Card) { s.cards = cards }
func (s *fakeSurface) ScrollTop() int              { return s.top }
func (s *fakeSurface) SetScrollTop(top int)        { s.top = top }
func (s *fakeSurface) ScrollHeight() int           { return len(s.cards) * s.rowHeight }
func (s *fakeSurface) ClientHeight() int           { return s.client }
func (s *fakeSurface) ScrollIntoView(i int)        { s.scrolled = append(s.scrolled, i) }

func noTick(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }

// drive runs cmd and feeds every resulting message back into p until
// nothing is left to do
func drive(p *Panel, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		queue = append(queue, p.Update(msg))
	}
}

func state(dir string) types.NavigationState {
	s := types.DefaultNavigationState()
	s.Directory = dir
	return s
}
