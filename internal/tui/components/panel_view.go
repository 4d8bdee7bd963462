package components

import (
	"context"
	"fmt"
	"strings"

	"folderpick/internal/config"
	"folderpick/internal/log"
	"folderpick/internal/panel"
	"folderpick/internal/thumb"
	"folderpick/internal/tui/common"
	"folderpick/internal/tui/messages"
	"folderpick/internal/tui/mouse"
	"folderpick/internal/tui/styles"
	"folderpick/pkg/types"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Rows taken by the toolbar above the cards and the status line below
const (
	toolbarHeight = 1
	statusHeight  = 1
	wheelStep     = 3
)

// Hit map region ids
const (
	regionUp       = "up"
	regionPath     = "path"
	regionView     = "view"
	regionRefresh  = "refresh"
	regionExplorer = "explorer"
	regionCard     = "card"
)

// PanelView draws a browsing panel: a toolbar, the cards in a scrollable
// viewport and a status line. It is the panel's Surface.
type PanelView struct {
	panel  *panel.Panel
	loader *thumb.Loader
	keys   common.KeyMap

	path     textinput.Model
	viewport viewport.Model
	status   *StatusBar
	clicks   *mouse.Handler

	cards   []types.Card
	cardW   int
	cardH   int
	width   int
	originX int
	originY int

	pending map[string]bool
	failed  map[string]bool

	toast    string
	toastErr bool

	copyPath func(string) error
}

// NewPanelView attaches a view to p. A nil loader disables thumbnails.
func NewPanelView(p *panel.Panel, cfg *config.Config, loader *thumb.Loader) *PanelView {
	path := textinput.New()
	path.Prompt = "> "
	path.Placeholder = "directory"
	path.Cursor.SetMode(cursor.CursorStatic)

	clicks := mouse.NewHandler()
	if cfg.Panel.DoubleClick > 0 {
		clicks.Window = cfg.Panel.DoubleClick
	}

	v := &PanelView{
		panel:    p,
		loader:   loader,
		keys:     common.DefaultKeyMap(),
		path:     path,
		viewport: viewport.New(80, 10),
		status:   NewStatusBar(),
		clicks:   clicks,
		cardW:    cfg.Panel.CardWidth,
		cardH:    cfg.Panel.CardHeight,
		width:    80,
		pending:  map[string]bool{},
		failed:   map[string]bool{},
		copyPath: clipboard.WriteAll,
	}
	p.Attach(v)
	return v
}

// Panel returns the panel being drawn
func (v *PanelView) Panel() *panel.Panel { return v.panel }

// Clicks exposes the click handler, e.g. to replace its clock
func (v *PanelView) Clicks() *mouse.Handler { return v.clicks }

// SetClipboard replaces the function used to copy paths
func (v *PanelView) SetClipboard(write func(string) error) {
	v.copyPath = write
}

// SetOrigin is the screen cell of the view's top-left corner
func (v *PanelView) SetOrigin(x, y int) {
	v.originX, v.originY = x, y
}

// SetSize sets the outer size of the view, toolbar and status included
func (v *PanelView) SetSize(width, height int) {
	v.width = width
	v.viewport.Width = width
	v.viewport.Height = max(1, height-toolbarHeight-statusHeight)
	v.panel.Relayout()
}

// SetCardSize changes the grid card dimensions
func (v *PanelView) SetCardSize(w, h int) {
	v.cardW, v.cardH = w, h
	v.panel.Relayout()
}

func (v *PanelView) listMode() bool {
	return v.panel.State().ViewMode == types.ViewList
}

func (v *PanelView) columns() int {
	if v.listMode() {
		return 1
	}
	return max(1, v.width/v.cardW)
}

func (v *PanelView) rowHeight() int {
	if v.listMode() {
		return 1
	}
	return v.cardH
}

func (v *PanelView) rows() int {
	cols := v.columns()
	return (len(v.cards) + cols - 1) / cols
}

// SetCards implements panel.Surface
func (v *PanelView) SetCards(cards []types.Card) {
	v.cards = cards
	v.failed = map[string]bool{}
	v.refresh()
}

// ScrollTop implements panel.Surface
func (v *PanelView) ScrollTop() int { return v.viewport.YOffset }

// SetScrollTop implements panel.Surface
func (v *PanelView) SetScrollTop(top int) { v.viewport.SetYOffset(top) }

// ScrollHeight implements panel.Surface
func (v *PanelView) ScrollHeight() int { return v.rows() * v.rowHeight() }

// ClientHeight implements panel.Surface
func (v *PanelView) ClientHeight() int { return v.viewport.Height }

// ScrollIntoView implements panel.Surface
func (v *PanelView) ScrollIntoView(i int) {
	if i < 0 || i >= len(v.cards) {
		return
	}
	rh := v.rowHeight()
	top := (i / v.columns()) * rh
	switch {
	case top < v.viewport.YOffset:
		v.viewport.SetYOffset(top)
	case top+rh > v.viewport.YOffset+v.viewport.Height:
		v.viewport.SetYOffset(top + rh - v.viewport.Height)
	}
}

func (v *PanelView) setToast(text string, isErr bool) {
	v.toast, v.toastErr = text, isErr
}

func (v *PanelView) focusPath() tea.Cmd {
	v.panel.SetFocus(types.FocusPath)
	v.path.SetValue(v.panel.State().Directory)
	v.path.CursorEnd()
	return v.path.Focus()
}

func (v *PanelView) blurPath() {
	v.path.Blur()
	v.panel.SetFocus(types.FocusGrid)
}

// HandleKey routes a key press by the panel's focus. It returns false for
// keys the panel leaves to the surrounding form.
func (v *PanelView) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	v.toast = ""
	nav := v.panel.Navigator()

	switch v.panel.Focus() {
	case types.FocusOverlay:
		if key.Matches(msg, v.keys.Close, v.keys.Activate) {
			panel.Lightbox().Close()
		}
		return true, nil

	case types.FocusPath:
		switch msg.Type {
		case tea.KeyEnter:
			dir := strings.TrimSpace(v.path.Value())
			v.blurPath()
			if dir == "" {
				return true, nil
			}
			return true, nav.SetDirectory(dir)
		case tea.KeyEsc:
			v.blurPath()
			return true, nil
		case tea.KeyTab, tea.KeyShiftTab:
			v.blurPath()
			return false, nil
		}
		var cmd tea.Cmd
		v.path, cmd = v.path.Update(msg)
		return true, cmd
	}

	cols := v.columns()
	switch {
	case key.Matches(msg, v.keys.Up):
		return true, v.panel.Move(-cols)
	case key.Matches(msg, v.keys.Down):
		return true, v.panel.Move(cols)
	case key.Matches(msg, v.keys.Left):
		return true, v.panel.Move(-1)
	case key.Matches(msg, v.keys.Right):
		return true, v.panel.Move(1)
	case key.Matches(msg, v.keys.Activate):
		return true, v.panel.ActivateSelected()
	case key.Matches(msg, v.keys.GoUp):
		if ok, cmd := v.panel.TypeBackspace(); ok {
			return true, cmd
		}
		return true, nav.GoUp()
	case key.Matches(msg, v.keys.EditPath):
		return true, v.focusPath()
	case key.Matches(msg, v.keys.ToggleView):
		return true, nav.SetViewMode(v.panel.State().ViewMode.Toggle())
	case key.Matches(msg, v.keys.Refresh):
		return true, v.panel.Refresh()
	case key.Matches(msg, v.keys.Explorer):
		return true, v.panel.OpenExplorer()
	case key.Matches(msg, v.keys.CopyPath):
		v.copySelected()
		return true, nil
	case msg.Type == tea.KeyEsc:
		return v.panel.TypeEscape(), nil
	case msg.Type == tea.KeySpace:
		return v.panel.TypeKey(' ')
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt:
		return v.panel.TypeKey(msg.Runes[0])
	}
	return false, nil
}

func (v *PanelView) copySelected() {
	target := v.panel.State().Directory
	if card, ok := v.panel.Selector().Selected(); ok {
		target = card.Path
	}
	if err := v.copyPath(target); err != nil {
		log.LogWithError(err).Warn("copy to clipboard failed")
		v.setToast("Copy failed: "+err.Error(), true)
		return
	}
	v.setToast("Copied "+target, false)
}

// Update handles panel messages, thumbnails and the mouse
func (v *PanelView) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	switch m := msg.(type) {
	case messages.ThumbLoadedMsg:
		if v.pending[m.Key] {
			delete(v.pending, m.Key)
			if m.Err != nil {
				v.failed[m.Key] = true
				log.LogWithError(m.Err).Debug("thumbnail failed")
			}
		}
	case panel.PreviewFailedMsg:
		if m.PanelID == v.panel.ID() {
			v.setToast(m.Err.Error(), true)
		}
	case tea.MouseMsg:
		cmds = append(cmds, v.handleMouse(m))
	}

	cmds = append(cmds,
		v.panel.Update(msg),
		v.status.Update(msg),
		v.status.SetLoading(v.panel.Loading()),
		v.thumbCmds(),
	)
	return tea.Batch(cmds...)
}

func (v *PanelView) handleMouse(m tea.MouseMsg) tea.Cmd {
	// the overlay handles its own clicks
	if panel.Lightbox().Visible() {
		return nil
	}

	switch m.Button {
	case tea.MouseButtonWheelUp:
		v.viewport.SetYOffset(v.viewport.YOffset - wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		v.viewport.SetYOffset(v.viewport.YOffset + wheelStep)
		return nil
	}
	if m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		return nil
	}

	res := v.clicks.HandleClick(m.X, m.Y)
	if res.Region == nil {
		return nil
	}
	nav := v.panel.Navigator()
	switch res.Region.ID {
	case regionUp:
		return nav.GoUp()
	case regionPath:
		return v.focusPath()
	case regionView:
		return nav.SetViewMode(v.panel.State().ViewMode.Toggle())
	case regionRefresh:
		return v.panel.Refresh()
	case regionExplorer:
		return v.panel.OpenExplorer()
	case regionCard:
		i := res.Region.Data.(int)
		if res.IsDoubleClick {
			return v.panel.Activate(i)
		}
		return v.panel.Select(i, false)
	}
	return nil
}

func (v *PanelView) thumbSize() (int, int) {
	return v.cardW - 2, v.cardH - 3
}

func thumbKey(card types.Card, cols, rows int) string {
	return fmt.Sprintf("%s|%d|%dx%d", card.Path, card.Thumb, cols, rows)
}

// thumbCmds requests the previews of the visible cards that are neither
// cached nor already requested
func (v *PanelView) thumbCmds() tea.Cmd {
	if v.loader == nil || v.listMode() || v.panel.Loading() || len(v.cards) == 0 {
		return nil
	}
	cols, rows := v.thumbSize()
	if cols <= 0 || rows <= 0 {
		return nil
	}

	rh, perRow := v.rowHeight(), v.columns()
	first := v.viewport.YOffset / rh
	last := (v.viewport.YOffset + v.viewport.Height - 1) / rh

	var cmds []tea.Cmd
	for r := first; r <= last; r++ {
		for c := 0; c < perRow; c++ {
			i := r*perRow + c
			if i >= len(v.cards) {
				break
			}
			card := v.cards[i]
			if card.Thumb == types.ThumbNone {
				continue
			}
			k := thumbKey(card, cols, rows)
			if v.pending[k] || v.failed[k] {
				continue
			}
			if _, ok := v.loader.Cached(card, cols, rows); ok {
				continue
			}
			v.pending[k] = true
			cmds = append(cmds, loadThumb(v.loader, card, cols, rows, k))
		}
	}
	return tea.Batch(cmds...)
}

func loadThumb(l *thumb.Loader, card types.Card, cols, rows int, k string) tea.Cmd {
	return func() tea.Msg {
		_, err := l.Load(context.Background(), card, cols, rows)
		return messages.ThumbLoadedMsg{Key: k, Err: err}
	}
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

// refresh rebuilds the viewport content from the cards
func (v *PanelView) refresh() {
	if text := v.panel.ErrorText(); text != "" {
		v.viewport.SetContent(styles.Theme.Error.Render(truncate(text, v.width)))
		return
	}
	if len(v.cards) == 0 {
		empty := ""
		if !v.panel.Loading() && v.panel.Listing() != nil {
			empty = styles.Theme.Dimmed.Render("Empty directory")
		}
		v.viewport.SetContent(empty)
		return
	}

	selected := v.panel.Selector().Index()
	dim := v.panel.Loading()
	if v.listMode() {
		lines := make([]string, len(v.cards))
		for i, card := range v.cards {
			lines[i] = v.renderRow(card, i == selected, dim)
		}
		v.viewport.SetContent(strings.Join(lines, "\n"))
		return
	}

	cols := v.columns()
	var rows []string
	for start := 0; start < len(v.cards); start += cols {
		end := min(start+cols, len(v.cards))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, v.renderCard(v.cards[i], i == selected, dim))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	v.viewport.SetContent(strings.Join(rows, "\n"))
}

func (v *PanelView) renderRow(card types.Card, selected, dim bool) string {
	prefix := "  "
	if card.IsDir() {
		prefix = "▸ "
	}
	suffix := ""
	if !card.IsDir() && card.Ext != "" {
		suffix = " " + strings.ToUpper(card.Ext)
	}
	name := truncate(card.DisplayName, v.width-len(prefix)-len(suffix))
	line := prefix + name
	pad := v.width - runewidth.StringWidth(line) - len(suffix)
	if pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	line += suffix

	switch {
	case selected:
		return styles.Theme.ListSelected.Render(line)
	case dim:
		return styles.Theme.Dimmed.Render(line)
	case card.IsDir():
		return styles.Theme.CardDir.Render(line)
	}
	return styles.Theme.ListRow.Render(line)
}

func (v *PanelView) renderCard(card types.Card, selected, dim bool) string {
	innerW, innerH := v.cardW-2, v.cardH-2
	cols, rows := v.thumbSize()

	var body string
	switch {
	case card.IsDir():
		body = styles.Theme.CardDir.Render("[DIR]")
	case card.Thumb != types.ThumbNone && v.loader != nil && !dim:
		if art, ok := v.loader.Cached(card, cols, rows); ok {
			body = art
		} else {
			body = styles.Theme.Dimmed.Render("…")
		}
	default:
		body = styles.Theme.Badge.Render(truncate(card.Badge, innerW))
	}
	body = lipgloss.Place(innerW, max(0, innerH-1), lipgloss.Center, lipgloss.Center, body)

	nameStyle := styles.Theme.Value
	if dim {
		nameStyle = styles.Theme.Dimmed
	}
	name := nameStyle.Render(truncate(card.DisplayName, innerW))

	style := styles.Theme.Card
	if selected {
		style = styles.Theme.CardSelected
	}
	return style.Width(innerW).Height(innerH).Render(body + "\n" + name)
}

// registerCards adds a hit region per visible card
func (v *PanelView) registerCards() {
	if len(v.cards) == 0 || v.panel.ErrorText() != "" {
		return
	}
	rh, cols := v.rowHeight(), v.columns()
	cellW := v.cardW
	if v.listMode() {
		cellW = v.width
	}
	top := v.originY + toolbarHeight
	for i := range v.cards {
		y := (i/cols)*rh - v.viewport.YOffset
		h := rh
		if y < 0 {
			h += y
			y = 0
		}
		if y+h > v.viewport.Height {
			h = v.viewport.Height - y
		}
		if h <= 0 {
			continue
		}
		v.clicks.HitMap.AddRect(regionCard, v.originX+(i%cols)*cellW, top+y, cellW, h, i)
	}
}

func (v *PanelView) renderToolbar() string {
	state := v.panel.State()

	viewLabel := "▦ Grid"
	if state.ViewMode == types.ViewList {
		viewLabel = "☰ List"
	}
	count := ""
	if !v.panel.Loading() && v.panel.Err() == nil {
		count = styles.Theme.Count.Render(humanize.Comma(int64(len(v.cards))) + " items")
	}

	up := styles.Theme.Button.Render("↑ Up")
	view := styles.Theme.Button.Render(viewLabel)
	refresh := styles.Theme.Button.Render("⟳ Refresh")
	explorer := styles.Theme.Button.Render("Explorer")
	fixed := lipgloss.Width(up) + lipgloss.Width(view) + lipgloss.Width(refresh) +
		lipgloss.Width(explorer) + lipgloss.Width(count) + 1
	pathW := max(8, v.width-fixed)

	var path string
	if v.panel.Focus() == types.FocusPath {
		v.path.Width = max(1, pathW-lipgloss.Width(v.path.Prompt)-1)
		path = v.path.View()
	} else {
		path = styles.Theme.PathField.Render(truncate(state.Directory, pathW))
	}
	path = lipgloss.NewStyle().Width(pathW).MaxWidth(pathW).Render(path)

	x := v.originX
	for _, seg := range []struct {
		id   string
		text string
	}{
		{regionUp, up},
		{regionPath, path},
		{regionView, view},
		{regionRefresh, refresh},
		{regionExplorer, explorer},
	} {
		w := lipgloss.Width(seg.text)
		v.clicks.HitMap.AddRect(seg.id, x, v.originY, w, toolbarHeight, nil)
		x += w
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, up, path, view, refresh, explorer, " ", count)
}

func (v *PanelView) statusText() (string, bool) {
	if v.toast != "" {
		return v.toast, v.toastErr
	}
	if v.panel.Loading() {
		return "Loading " + v.panel.State().Directory, false
	}
	if q := v.panel.TypeAhead().Query(); q != "" {
		return "Find: " + q, false
	}
	if card, ok := v.panel.Selector().Selected(); ok {
		return card.Path, false
	}
	return "", false
}

// View renders the toolbar, cards and status line
func (v *PanelView) View() string {
	v.clicks.HitMap.Clear()
	toolbar := v.renderToolbar()
	v.refresh()
	v.registerCards()

	text, isErr := v.statusText()
	if isErr {
		v.status.SetError(text)
	} else {
		v.status.SetText(text)
	}
	status := lipgloss.NewStyle().MaxWidth(v.width).Render(v.status.View())

	return lipgloss.JoinVertical(lipgloss.Left, toolbar, v.viewport.View(), status)
}
