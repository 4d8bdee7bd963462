package panel

import (
	"testing"

	"folderpick/pkg/testutils"
	"folderpick/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigatorRefreshDropsWhileLoading(t *testing.T) {
	b := newStubBackend(testutils.Listing("/data", "/", nil, []string{"a.png"}))
	n := NewNavigator(1, b, state("/data"))

	first := n.Refresh()
	require.NotNil(t, first)
	assert.True(t, n.Loading())
	assert.Nil(t, n.Refresh(), "a second refresh while loading is dropped")

	msg := first().(listingMsg)
	assert.True(t, n.complete(msg))
	assert.False(t, n.Loading())
	assert.Len(t, b.lists, 1)
	assert.NotNil(t, n.Refresh())
}

func TestNavigatorBeforeFetch(t *testing.T) {
	n := NewNavigator(1, newStubBackend(), state("/data"))
	var seen []types.NavigationState
	n.beforeFetch = func(s types.NavigationState) { seen = append(seen, s) }

	n.Refresh()
	n.Refresh()
	require.Len(t, seen, 1)
	assert.Equal(t, "/data", seen[0].Directory)
}

func TestNavigatorNormalizesDirectory(t *testing.T) {
	l := testutils.Listing("/abs/input", "/abs", nil, nil)
	b := newStubBackend()
	b.listings["input"] = l

	var dirs []string
	n := NewNavigator(1, b, state("input"))
	n.onDirectory = func(d string) { dirs = append(dirs, d) }

	msg := n.Refresh()().(listingMsg)
	require.True(t, n.complete(msg))
	assert.Equal(t, "/abs/input", n.State().Directory)
	assert.Equal(t, []string{"/abs/input"}, dirs)
	assert.Same(t, l, n.Listing())
}

func TestNavigatorFailure(t *testing.T) {
	n := NewNavigator(1, newStubBackend(), state("/missing"))

	msg := n.Refresh()().(listingMsg)
	assert.False(t, n.complete(msg))
	assert.Error(t, n.Err())
	assert.Nil(t, n.Listing())
	assert.Equal(t, "/missing", n.State().Directory, "directory is kept after a failure")
}

func TestNavigatorGoUp(t *testing.T) {
	b := newStubBackend(
		testutils.Listing("/data/sub", "/data", nil, nil),
		testutils.Listing("/", "", []string{"data"}, nil),
	)

	t.Run("before first listing", func(t *testing.T) {
		n := NewNavigator(1, b, state("/data/sub"))
		assert.Nil(t, n.GoUp())
	})

	t.Run("with parent", func(t *testing.T) {
		n := NewNavigator(1, b, state("/data/sub"))
		n.complete(n.Refresh()().(listingMsg))

		cmd := n.GoUp()
		require.NotNil(t, cmd)
		assert.Equal(t, "/data", n.State().Directory)
		assert.True(t, n.ForceResetPending())
	})

	t.Run("after a failed fetch", func(t *testing.T) {
		n := NewNavigator(1, b, state("/data/sub"))
		n.complete(n.Refresh()().(listingMsg))
		require.False(t, n.complete(n.SetDirectory("/data/sbu")().(listingMsg)))
		require.Nil(t, n.Listing())

		require.NotNil(t, n.GoUp(), "the last good parent is kept")
		assert.Equal(t, "/data", n.State().Directory)
	})

	t.Run("at root", func(t *testing.T) {
		n := NewNavigator(1, b, state("/"))
		n.complete(n.Refresh()().(listingMsg))
		assert.Nil(t, n.GoUp())
		assert.Equal(t, "/", n.State().Directory)
	})
}

func TestNavigatorMutations(t *testing.T) {
	n := NewNavigator(1, newStubBackend(), state("/data"))

	n.SetFilter(".png,.jpg", "^cat", types.RegexExclude, false)
	s := n.State()
	assert.Equal(t, ".png,.jpg", s.Extensions)
	assert.Equal(t, "^cat", s.Regex)
	assert.Equal(t, types.RegexExclude, s.RegexMode)
	assert.False(t, s.RegexIgnoreCase)
	assert.False(t, n.ForceResetPending(), "filter changes keep the scroll position")

	n.loading = false
	n.SetSort(types.SortBySize, true)
	assert.Equal(t, types.SortBySize, n.State().SortBy)
	assert.True(t, n.State().Descending)
	assert.False(t, n.ForceResetPending())

	n.loading = false
	n.SetViewMode(types.ViewList)
	assert.Equal(t, types.ViewList, n.State().ViewMode)
	assert.True(t, n.ForceResetPending())
}
