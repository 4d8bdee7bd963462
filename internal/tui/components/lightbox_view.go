package components

import (
	"path/filepath"

	"folderpick/internal/log"
	"folderpick/internal/panel"
	"folderpick/internal/thumb"
	"folderpick/internal/tui/messages"
	"folderpick/internal/tui/mouse"
	"folderpick/internal/tui/styles"
	"folderpick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LightboxView draws the preview overlay full screen. Images are rendered
// from the raw file, media shows the player state.
type LightboxView struct {
	loader  *thumb.Loader
	width   int
	height  int
	originX int
	originY int
	hits    *mouse.HitMap
	pending map[string]bool
	failed  map[string]string
}

const (
	regionMedia = "lightbox-media"
	regionClose = "lightbox-close"

	closeLabel = "[✕] esc close"
)

func NewLightboxView(loader *thumb.Loader) *LightboxView {
	return &LightboxView{
		loader:  loader,
		width:   80,
		height:  24,
		hits:    mouse.NewHitMap(),
		pending: map[string]bool{},
		failed:  map[string]string{},
	}
}

func (l *LightboxView) SetSize(width, height int) {
	l.width, l.height = width, height
}

// SetOrigin is the screen cell of the frame's top-left corner
func (l *LightboxView) SetOrigin(x, y int) {
	l.originX, l.originY = x, y
}

// imageSize is the art size inside the frame, title and footer excluded
func (l *LightboxView) imageSize() (int, int) {
	return max(1, l.width-4), max(1, l.height-4)
}

func (l *LightboxView) card() types.Card {
	return types.Card{Type: types.CardFile, Path: panel.Lightbox().Path(), Thumb: types.ThumbRaw}
}

// Update requests the shown image when it is not rendered yet and closes
// the overlay on a click outside the media or on the close control
func (l *LightboxView) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(tea.MouseMsg); ok {
		l.handleClick(m)
		return nil
	}
	if m, ok := msg.(messages.ThumbLoadedMsg); ok && l.pending[m.Key] {
		delete(l.pending, m.Key)
		if m.Err != nil {
			l.failed[m.Key] = m.Err.Error()
			log.LogWithError(m.Err).Debug("preview image failed")
		}
	}

	o := panel.Lightbox()
	if l.loader == nil || !o.Visible() || o.Kind() != panel.MediaImage {
		return nil
	}
	card := l.card()
	cols, rows := l.imageSize()
	k := thumbKey(card, cols, rows)
	if l.pending[k] || l.failed[k] != "" {
		return nil
	}
	if _, ok := l.loader.Cached(card, cols, rows); ok {
		return nil
	}
	l.pending[k] = true
	return loadThumb(l.loader, card, cols, rows, k)
}

func (l *LightboxView) handleClick(m tea.MouseMsg) {
	o := panel.Lightbox()
	if !o.Visible() || m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		return
	}
	if r := l.hits.Test(m.X, m.Y); r != nil && r.ID == regionMedia {
		return
	}
	o.Close()
}

// View renders the overlay, "" when it is hidden
func (l *LightboxView) View() string {
	l.hits.Clear()
	o := panel.Lightbox()
	if !o.Visible() {
		return ""
	}

	cols, rows := l.imageSize()
	name := filepath.Base(o.Path())

	var body string
	switch o.Kind() {
	case panel.MediaImage:
		card := l.card()
		k := thumbKey(card, cols, rows)
		switch {
		case l.loader == nil:
			body = styles.Theme.Dimmed.Render(o.Source())
		case l.failed[k] != "":
			body = styles.Theme.Error.Render("Could not show " + name + ": " + l.failed[k])
		default:
			if art, ok := l.loader.Cached(card, cols, rows); ok {
				body = art
			} else {
				body = styles.Theme.Dimmed.Render("Loading " + name + "…")
			}
		}
	case panel.MediaVideo, panel.MediaAudio:
		state := "■ Stopped"
		if o.Playing() {
			state = "▶ Playing"
		}
		body = styles.Theme.Value.Render(state+" "+o.Kind().String()) + "\n" +
			styles.Theme.Dimmed.Render(o.Source())
	}

	l.addRegions(body, cols, rows)

	title := styles.Theme.Title.Render(truncate(name, cols))
	footer := styles.Theme.Help.Render(closeLabel)
	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, body),
		footer,
	)
	return styles.Theme.Lightbox.Render(content)
}

// addRegions records where the centered body and the close control land.
// Content starts past the border and padding, the body below the title.
func (l *LightboxView) addRegions(body string, cols, rows int) {
	left := l.originX + 2
	top := l.originY + 2

	if body != "" {
		w, h := min(cols, lipgloss.Width(body)), min(rows, lipgloss.Height(body))
		l.hits.AddRect(regionMedia, left+(cols-w)/2, top+(rows-h)/2, w, h, nil)
	}
	fw := min(cols, lipgloss.Width(closeLabel))
	l.hits.AddRect(regionClose, left+(cols-fw)/2, top+rows, fw, 1, nil)
}
