package panel

import (
	"testing"

	"folderpick/internal/errors"
	"folderpick/pkg/testutils"
	"folderpick/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSelector(b *stubBackend, l *types.Listing) (*Selector, *[]int) {
	var published []int
	s := NewSelector(1, b, func(i int) { published = append(published, i) })
	s.SetCards(Render(l))
	return s, &published
}

func TestSelectorResolvesFiles(t *testing.T) {
	l := testutils.Listing("/data", "/", []string{"sub"}, []string{"a.png", "b.png"})
	b := newStubBackend(l)
	s, published := newTestSelector(b, l)
	st := state("/data")

	assert.Nil(t, s.Select(0, st), "directories resolve nothing")
	assert.Equal(t, 0, s.Index())

	cmd := s.Select(2, st)
	require.NotNil(t, cmd)
	s.resolved(cmd().(resolvedMsg), st)

	assert.Equal(t, []int{1}, *published)
	idx, ok := s.Published()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "/data/b.png", s.Selection().SelectedPath)
}

func TestSelectorDiscardsStale(t *testing.T) {
	l := testutils.Listing("/data", "/", nil, []string{"a.png", "b.png"})
	b := newStubBackend(l)
	st := state("/data")

	t.Run("newer selection", func(t *testing.T) {
		s, published := newTestSelector(b, l)
		first := s.Select(0, st)
		second := s.Select(1, st)

		s.resolved(first().(resolvedMsg), st)
		assert.Empty(t, *published)
		s.resolved(second().(resolvedMsg), st)
		assert.Equal(t, []int{1}, *published)
	})

	t.Run("state changed", func(t *testing.T) {
		s, published := newTestSelector(b, l)
		msg := s.Select(0, st)().(resolvedMsg)

		changed := st
		changed.Extensions = ".jpg"
		s.resolved(msg, changed)
		assert.Empty(t, *published)
	})

	t.Run("view mode only", func(t *testing.T) {
		s, published := newTestSelector(b, l)
		msg := s.Select(1, st)().(resolvedMsg)

		changed := st
		changed.ViewMode = types.ViewList
		s.resolved(msg, changed)
		assert.Equal(t, []int{1}, *published, "view mode does not affect the index")
	})

	t.Run("cleared", func(t *testing.T) {
		s, published := newTestSelector(b, l)
		msg := s.Select(0, st)().(resolvedMsg)
		s.Clear()
		s.resolved(msg, st)
		assert.Empty(t, *published)
		assert.Equal(t, -1, s.Index())
	})
}

func TestSelectorKeepsIndexOnFailure(t *testing.T) {
	l := testutils.Listing("/data", "/", nil, []string{"a.png", "b.png"})
	b := newStubBackend(l)
	s, published := newTestSelector(b, l)
	st := state("/data")

	s.resolved(s.Select(1, st)().(resolvedMsg), st)
	require.Equal(t, []int{1}, *published)

	b.resolveFn = func(types.NavigationState, string) (types.ResolvedIndex, error) {
		return types.ResolvedIndex{}, errors.NewKind(errors.ResolveFailed, "boom")
	}
	s.resolved(s.Select(0, st)().(resolvedMsg), st)

	b.resolveFn = func(types.NavigationState, string) (types.ResolvedIndex, error) {
		return types.ResolvedIndex{Index: -1}, nil
	}
	s.resolved(s.Select(0, st)().(resolvedMsg), st)

	idx, ok := s.Published()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []int{1}, *published)
}

func TestSelectorSelectByIndex(t *testing.T) {
	l := testutils.Listing("/data", "/", []string{"a", "b"}, nil)
	s, _ := newTestSelector(newStubBackend(l), l)
	st := state("/data")

	s.SelectByIndex(10, st)
	assert.Equal(t, 1, s.Index())
	s.SelectByIndex(-3, st)
	assert.Equal(t, 0, s.Index())

	assert.Nil(t, s.Select(5, st))
	assert.Equal(t, 0, s.Index(), "out of range selection is ignored")

	empty := NewSelector(1, newStubBackend(), nil)
	assert.Nil(t, empty.SelectByIndex(0, st))
	_, ok := empty.Selected()
	assert.False(t, ok)
	assert.True(t, empty.Selection().Empty())
}
