package components

import (
	"fmt"
	"image/color"
	"testing"
	"time"

	"folderpick/internal/backend"
	"folderpick/internal/host"
	"folderpick/internal/panel"
	"folderpick/internal/thumb"
	"folderpick/internal/tui/mouse"
	"folderpick/pkg/testutils"
	"folderpick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPanelView(t *testing.T, fb *testutils.FakeBackend, thumbs bool) *PanelView {
	t.Helper()
	cfg := fb.Config()
	client, err := backend.NewClient(cfg)
	require.NoError(t, err)

	var loader *thumb.Loader
	if thumbs {
		loader = thumb.NewLoader(client, time.Minute)
	}
	initial := types.DefaultNavigationState()
	initial.Directory = "/srv"
	p := panel.New(panel.Options{Backend: client, Initial: initial})
	v := NewPanelView(p, cfg, loader)
	v.SetSize(100, 12)
	return v
}

func run(v *PanelView, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 1000; steps++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, v.Update(msg))
		}
	}
}

func files(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("f%02d.png", i)
	}
	return out
}

func TestPanelViewSurface(t *testing.T) {
	fb := testutils.NewFakeBackend(t)
	fb.SetListing(testutils.Listing("/srv", "/", []string{"sub"}, files(29)))
	v := newPanelView(t, fb, false)
	run(v, v.Panel().Mount())

	require.Len(t, v.Panel().Cards(), 30)
	assert.Equal(t, 5, v.columns())
	assert.Equal(t, 48, v.ScrollHeight(), "six rows of eight")
	assert.Equal(t, 10, v.ClientHeight())
	assert.Equal(t, 0, v.ScrollTop())

	v.ScrollIntoView(29)
	assert.Equal(t, 38, v.ScrollTop(), "the last row ends at the bottom edge")
	v.ScrollIntoView(7)
	assert.Equal(t, 8, v.ScrollTop(), "the second row starts at the top edge")
	v.SetScrollTop(500)
	assert.Equal(t, 38, v.ScrollTop(), "clamped to the content")

	run(v, v.Panel().Navigator().SetViewMode(types.ViewList))
	assert.Equal(t, 30, v.ScrollHeight())
	assert.Equal(t, 0, v.ScrollTop(), "a view switch starts at the top")
}

func TestPanelViewRendering(t *testing.T) {
	fb := testutils.NewFakeBackend(t)
	fb.SetListing(testutils.Listing("/srv", "/", []string{"sub"}, []string{"a.png", "report.pdf"}))
	v := newPanelView(t, fb, false)
	run(v, v.Panel().Mount())

	out := testutils.StripANSI(v.View())
	assert.Contains(t, out, "↑ Up")
	assert.Contains(t, out, "/srv")
	assert.Contains(t, out, "3 items")
	assert.Contains(t, out, "[DIR]")
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "[File.pdf]")

	run(v, v.Panel().SelectByIndex(2))
	assert.Contains(t, testutils.StripANSI(v.View()), "/srv/report.pdf", "the status line shows the selection")

	run(v, v.Panel().Navigator().SetDirectory("/missing"))
	out = testutils.StripANSI(v.View())
	assert.Contains(t, out, "Could not list directory")
	assert.NotContains(t, out, "items")
}

func TestPanelViewThumbnails(t *testing.T) {
	fb := testutils.NewFakeBackend(t)
	fb.SetListing(testutils.Listing("/srv", "/", nil, []string{"red.png", "broken.png"}))
	fb.SetImage("/srv/red.png", testutils.PNG(t, 8, 8, color.RGBA{R: 255, A: 255}))
	v := newPanelView(t, fb, true)
	run(v, v.Panel().Mount())

	cols, rows := v.thumbSize()
	cards := v.Panel().Cards()
	require.Len(t, cards, 2)
	art, ok := v.loader.Cached(cards[0], cols, rows)
	require.True(t, ok)
	assert.Contains(t, art, "▀")
	assert.Empty(t, v.pending)
	assert.True(t, v.failed[thumbKey(cards[1], cols, rows)], "a missing image is not retried")

	assert.Nil(t, v.thumbCmds(), "nothing left to fetch")
	assert.Contains(t, v.View(), "▀")
}

func TestPanelViewWheelAndClicks(t *testing.T) {
	fb := testutils.NewFakeBackend(t)
	fb.SetListing(testutils.Listing("/srv", "/", nil, files(30)))
	v := newPanelView(t, fb, false)
	v.SetOrigin(0, 0)
	run(v, v.Panel().Mount())

	run(v, v.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}))
	assert.Equal(t, 3, v.ScrollTop())
	run(v, v.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress}))
	assert.Equal(t, 0, v.ScrollTop())

	v.View()
	// second card of the first row
	run(v, v.Update(tea.MouseMsg{X: 20, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}))
	assert.Equal(t, 1, v.Panel().Selector().Index())

	v.View()
	run(v, v.Update(tea.MouseMsg{X: 30, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}))
	assert.Equal(t, types.FocusPath, v.Panel().Focus(), "clicking the path focuses it")
}

func TestPanelViewCopyFailure(t *testing.T) {
	fb := testutils.NewFakeBackend(t)
	fb.SetListing(testutils.Listing("/srv", "/", nil, []string{"a.png"}))
	v := newPanelView(t, fb, false)
	v.SetClipboard(func(string) error { return fmt.Errorf("no clipboard") })
	run(v, v.Panel().Mount())

	handled, _ := v.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.True(t, handled)
	assert.Contains(t, testutils.StripANSI(v.View()), "Copy failed: no clipboard")
}

func TestNodeForm(t *testing.T) {
	n := host.NewNode("Test", "test")
	combo := n.AddWidget(host.KindCombo, "mode", "b", nil)
	combo.SetOptions([]string{"a", "b", "c"})
	n.AddWidget(host.KindNumber, "count", 5, nil).Max = 6
	var pressed int
	n.AddWidget(host.KindButton, "go", nil, func(interface{}) tea.Cmd {
		pressed++
		return nil
	})

	f := NewNodeForm(n)
	assert.Equal(t, "mode", f.Focused().Name)

	f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "a", combo.String())
	f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "c", combo.String())

	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")})
	assert.Equal(t, 6, n.Widget("count").Int())

	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, f.Editing())
	assert.Contains(t, testutils.StripANSI(f.EditView()), "count: 6")
	f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.Editing())

	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "go", f.Focused().Name, "shift+tab wraps")
	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, pressed)
}

func TestStatusBar(t *testing.T) {
	s := NewStatusBar()
	assert.Equal(t, "", s.View())

	s.SetText("ready")
	assert.Contains(t, s.View(), "ready")

	assert.NotNil(t, s.SetLoading(true))
	assert.Nil(t, s.SetLoading(true), "already spinning")
	assert.True(t, s.Loading())
	assert.Nil(t, s.SetLoading(false))

	s.SetError("boom")
	assert.Contains(t, s.View(), "boom")
}

func TestLightboxViewClicks(t *testing.T) {
	l := NewLightboxView(nil)
	l.SetSize(100, 12)
	l.SetOrigin(1, 0)
	o := panel.Lightbox()
	t.Cleanup(o.Close)

	click := func(x, y int) {
		l.Update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	}
	region := func(id string) mouse.Rect {
		for _, r := range l.hits.Regions() {
			if r.ID == id {
				return r.Rect
			}
		}
		t.Fatalf("no %s region", id)
		return mouse.Rect{}
	}

	require.NoError(t, o.Open("/srv/a.png", "http://backend/view?filepath=/srv/a.png"))
	assert.Contains(t, testutils.StripANSI(l.View()), "[✕] esc close")
	media := region(regionMedia)
	assert.Equal(t, 2+(96-media.W)/2+1, media.X, "centered in the frame")

	click(media.X+media.W/2, media.Y)
	assert.True(t, o.Visible(), "a click on the media keeps it open")
	l.Update(tea.MouseMsg{X: media.X, Y: media.Y, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.True(t, o.Visible())

	click(media.X-1, media.Y)
	assert.False(t, o.Visible(), "the backdrop closes it")

	require.NoError(t, o.Open("/srv/a.png", "http://backend/view?filepath=/srv/a.png"))
	l.View()
	c := region(regionClose)
	click(c.X+1, c.Y)
	assert.False(t, o.Visible(), "the close control closes it")
}

func TestPanelViewIgnoresClicksUnderLightbox(t *testing.T) {
	fb := testutils.NewFakeBackend(t)
	fb.SetListing(testutils.Listing("/srv", "/", nil, files(3)))
	v := newPanelView(t, fb, false)
	v.SetOrigin(0, 0)
	run(v, v.Panel().Mount())
	v.View()

	o := panel.Lightbox()
	t.Cleanup(o.Close)
	require.NoError(t, o.Open("/srv/f00.png", "http://backend/view"))

	run(v, v.Update(tea.MouseMsg{X: 20, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}))
	assert.True(t, o.Visible())
	assert.Equal(t, -1, v.Panel().Selector().Index(), "the grid under the overlay is not clicked")
}
