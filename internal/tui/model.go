package tui

import (
	"folderpick/internal/config"
	"folderpick/internal/host"
	"folderpick/internal/log"
	"folderpick/internal/panel"
	"folderpick/internal/thumb"
	"folderpick/internal/tui/common"
	"folderpick/internal/tui/components"
	"folderpick/internal/tui/messages"
	"folderpick/internal/tui/styles"
	"folderpick/internal/tui/views"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the frontend
type Options struct {
	Config   *config.Config
	Registry *host.Registry
	// Loader renders thumbnails; nil disables them
	Loader *thumb.Loader
	// Watcher delivers config reloads; optional
	Watcher *config.Watcher
	// NodeType is created on start; empty shows the node picker
	NodeType string
	// Directory, when set, is the starting directory of the node
	Directory string
}

// Model renders one host node: its widgets as a form and, for nodes with
// a browsing panel, the panel above the form.
type Model struct {
	cfg      *config.Config
	registry *host.Registry
	loader   *thumb.Loader
	watcher  *config.Watcher
	keys     common.KeyMap
	help     help.Model

	node     *host.Node
	form     *components.NodeForm
	pv       *components.PanelView
	lightbox *components.LightboxView
	picker   *components.NodeList
	status   *components.StatusBar

	init     tea.Cmd
	mode     common.Mode
	showHelp bool
	width    int
	height   int
}

// New builds the model, creating opts.NodeType right away
func New(opts Options) (*Model, error) {
	h := help.New()
	h.ShowAll = true

	m := &Model{
		cfg:      opts.Config,
		registry: opts.Registry,
		loader:   opts.Loader,
		watcher:  opts.Watcher,
		keys:     common.DefaultKeyMap(),
		help:     h,
		lightbox: components.NewLightboxView(opts.Loader),
		status:   components.NewStatusBar(),
		width:    80,
		height:   24,
	}
	m.lightbox.SetOrigin(views.OverlayLeft, views.OverlayTop)
	m.configurePreview()

	if opts.NodeType == "" {
		m.picker = components.NewNodeList(opts.Registry)
		return m, nil
	}
	cmd, err := m.createNode(opts.NodeType)
	if err != nil {
		return nil, err
	}
	m.init = tea.Batch(cmd, m.startIn(opts.Directory))
	return m, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.init, m.watchConfig())
}

func (m *Model) configurePreview() {
	panel.Lightbox().Configure(
		panel.ExecPlayer{Command: m.cfg.Preview.Player},
		panel.SystemOpener{Command: m.cfg.Preview.Opener},
	)
}

func (m *Model) createNode(name string) (tea.Cmd, error) {
	n, cmd, err := m.registry.CreateNode(name)
	if err != nil {
		return nil, err
	}
	m.setNode(n)
	log.LogWithFields(log.F("node", n.Type), log.F("id", n.ID)).Info("node created")
	return cmd, nil
}

func (m *Model) setNode(n *host.Node) {
	m.node = n
	m.form = components.NewNodeForm(n)
	m.mode = common.Form
	m.picker = nil
	m.pv = nil
	if p := panelOf(n); p != nil {
		m.pv = components.NewPanelView(p, m.cfg, m.loader)
		m.pv.SetOrigin(views.PanelLeft, views.PanelTop)
	}
	m.layout()
}

// startIn points the new node at dir. A browsing panel is pinned so the
// backend's last path does not replace it.
func (m *Model) startIn(dir string) tea.Cmd {
	if dir == "" {
		return nil
	}
	if m.pv != nil {
		m.pv.Panel().Pin(dir)
		return nil
	}
	if w := m.node.Widget("directory"); w != nil {
		return w.Set(dir)
	}
	return nil
}

// panelOf finds the browsing panel embedded in a dom widget
func panelOf(n *host.Node) *panel.Panel {
	for _, w := range n.Widgets() {
		if w.Kind != host.KindDOM {
			continue
		}
		if p, ok := w.View.(*panel.Panel); ok {
			return p
		}
	}
	return nil
}

// watchConfig waits for the next reloaded config
func (m *Model) watchConfig() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-w.Updates()
		if !ok {
			return nil
		}
		return messages.ConfigUpdateMsg{Config: cfg}
	}
}

func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	styles.Apply(cfg)
	m.configurePreview()
	if m.pv != nil {
		p := m.pv.Panel()
		p.TypeAhead().SetTimeout(cfg.Panel.TypeAheadTimeout)
		if cfg.Panel.DoubleClick > 0 {
			m.pv.Clicks().Window = cfg.Panel.DoubleClick
		}
		m.pv.SetCardSize(cfg.Panel.CardWidth, cfg.Panel.CardHeight)
	}
	m.status.SetText("Configuration reloaded")
	log.Info("configuration reloaded")
}

// layout splits the screen: title, panel, form, status and key line
func (m *Model) layout() {
	inner := max(1, m.width-2)
	m.help.Width = inner
	m.lightbox.SetSize(inner, m.height)
	if m.picker != nil {
		m.picker.SetSize(inner, max(1, m.height-3))
	}
	if m.node == nil || m.pv == nil {
		return
	}
	formLines := max(1, len(m.node.VisibleWidgets()))
	m.pv.SetSize(inner, max(3, m.height-1-formLines-2))
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	case host.ApplyMsg:
		cmds = append(cmds, msg.Apply())
	case messages.ConfigUpdateMsg:
		m.applyConfig(msg.Config)
		cmds = append(cmds, m.watchConfig())
	case messages.ErrorMsg:
		m.status.SetError(msg.Err.Error())
	case messages.StatusMsg:
		if msg.IsError {
			m.status.SetError(msg.Text)
		} else {
			m.status.SetText(msg.Text)
		}
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	if m.picker != nil {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			cmds = append(cmds, m.picker.Update(msg))
		}
	}
	if m.pv != nil {
		cmds = append(cmds, m.pv.Update(msg))
	}
	cmds = append(cmds, m.lightbox.Update(msg))

	if m.node != nil && m.node.Dirty() {
		log.LogWithFields(log.F("node", m.node.Type), log.F("values", m.node.Values())).Debug("node changed")
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		panel.Lightbox().Close()
		return tea.Quit
	}

	if m.node == nil {
		return m.handlePickerKey(msg)
	}

	if m.pv != nil && (m.mode == common.Browse || panel.Lightbox().Visible()) {
		handled, cmd := m.pv.HandleKey(msg)
		if handled {
			return cmd
		}
		switch {
		case key.Matches(msg, m.keys.NextItem):
			m.form.Move(1)
		case key.Matches(msg, m.keys.PrevItem):
			m.form.Move(-1)
		}
		m.mode = common.Form
		return nil
	}

	if !m.form.Editing() {
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = !m.showHelp
			return nil
		}
		if w := m.form.Focused(); w != nil && w.Kind == host.KindDOM && msg.Type == tea.KeyEnter && m.pv != nil {
			m.mode = common.Browse
			return nil
		}
	}

	cmd := m.form.Update(msg)
	m.mode = common.Form
	if m.form.Editing() {
		m.mode = common.Edit
	}
	if err := m.form.Err(); err != "" {
		m.status.SetError(err)
	}
	return cmd
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type != tea.KeyEnter || m.picker.Filtering() {
		return m.picker.Update(msg)
	}
	name, ok := m.picker.Chosen()
	if !ok {
		return nil
	}
	cmd, err := m.createNode(name)
	if err != nil {
		m.status.SetError(err.Error())
		return nil
	}
	return cmd
}

// View implements tea.Model
func (m *Model) View() string {
	if m.node == nil {
		return views.RenderPicker(m.picker.View() + "\n" + m.status.View())
	}
	return views.RenderMainView(m)
}

// Getters

func (m *Model) Node() *host.Node {
	return m.node
}

func (m *Model) Cursor() int {
	return m.form.Cursor()
}

func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) EditView() string {
	return m.form.EditView()
}

func (m *Model) PanelView() string {
	if m.pv == nil {
		return ""
	}
	return m.pv.View()
}

func (m *Model) Overlay() string {
	return m.lightbox.View()
}

func (m *Model) StatusView() string {
	return m.status.View()
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}

// Form exposes the widget form
func (m *Model) Form() *components.NodeForm {
	return m.form
}

// Panel returns the embedded panel view, nil for nodes without one
func (m *Model) Panel() *components.PanelView {
	return m.pv
}

// Run starts the full screen program with mouse support
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
