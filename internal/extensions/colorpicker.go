package extensions

import (
	"context"

	"folderpick/internal/host"

	tea "github.com/charmbracelet/bubbletea"
)

// Palettes serves palette files and their colors under a route prefix
type Palettes interface {
	PaletteFiles(ctx context.Context, prefix string) ([]string, error)
	PaletteColors(ctx context.Context, prefix, file string) ([]string, error)
}

type colorPicker struct {
	palettes Palettes
	prefix   string
	name     string
}

// NewColorPicker turns "list_file" and "color" into combos fed from the
// palette routes under prefix. The hex and RVB pickers differ only in
// prefix.
func NewColorPicker(p Palettes, prefix string) host.Hook {
	cp := &colorPicker{palettes: p, prefix: prefix, name: "color_picker:" + prefix}
	return cp.created
}

func (cp *colorPicker) created(n *host.Node) tea.Cmd {
	if !n.MarkWired(cp.name) {
		return nil
	}
	list := n.UpgradeWidget("list_file", host.KindCombo, nil)
	n.UpgradeWidget("color", host.KindCombo, nil)

	list.Callback = func(interface{}) tea.Cmd { return cp.refreshColors(n) }
	ensureButton(n, func() tea.Cmd { return cp.refreshFiles(n) })
	return cp.refreshFiles(n)
}

func (cp *colorPicker) refreshFiles(n *host.Node) tea.Cmd {
	return func() tea.Msg {
		files, err := cp.palettes.PaletteFiles(context.Background(), cp.prefix)
		if err != nil {
			fetchFailed(err, cp.name)
			files = nil
		}
		return apply(n, func(n *host.Node) tea.Cmd {
			fillCombo(n.Widget("list_file"), files)
			return cp.refreshColors(n)
		})
	}
}

func (cp *colorPicker) refreshColors(n *host.Node) tea.Cmd {
	file := n.Widget("list_file").String()
	return func() tea.Msg {
		colors, err := cp.palettes.PaletteColors(context.Background(), cp.prefix, file)
		if err != nil {
			fetchFailed(err, cp.name)
			colors = nil
		}
		return apply(n, func(n *host.Node) tea.Cmd {
			if n.Widget("list_file").String() != file {
				return nil
			}
			fillCombo(n.Widget("color"), colors)
			return nil
		})
	}
}
