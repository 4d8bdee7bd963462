// Package extensions attaches the picker behaviours to host nodes: the
// browsing panel of Folder File Pro, the dynamic file combo of Folder File
// Picker, the palette pickers and the font combo of Text Maker.
package extensions

import (
	"context"

	"folderpick/internal/config"
	"folderpick/internal/host"
	"folderpick/internal/log"
	"folderpick/internal/panel"
	"folderpick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// RefreshButton is the name of the reload button added to nodes
const RefreshButton = "↻"

// Extension names, also the keys of the extensions config section
const (
	FolderFilePro    = "folder_file_pro"
	FolderFilePicker = "folder_file_picker"
	HexColorPicker   = "hex_color_picker"
	RVBColorPicker   = "rvb_color_picker"
	TextMaker        = "text_maker"
)

// Backend is everything the extensions fetch from the node host
type Backend interface {
	panel.Backend
	ListDir(ctx context.Context, s types.NavigationState, recursive bool) (*types.PickerListing, error)
	PaletteFiles(ctx context.Context, prefix string) ([]string, error)
	PaletteColors(ctx context.Context, prefix, file string) ([]string, error)
	Fonts(ctx context.Context) ([]string, error)
	Endpoints() config.Endpoints
}

type builtin struct {
	name  string
	names []string
	hook  host.Hook
}

// Register adds every extension not disabled in cfg to r
func Register(r *host.Registry, b Backend, cfg *config.Config) error {
	ep := b.Endpoints()
	builtins := []builtin{
		{FolderFilePro, []string{"Folder File Pro"}, NewFolderFilePro(b, cfg)},
		{FolderFilePicker, []string{"Folder File Picker"}, NewFolderFilePicker(b)},
		{HexColorPicker, []string{"*Hex Color Picker*"}, NewColorPicker(b, ep.HexPicker)},
		{RVBColorPicker, []string{"*RVB Color Picker*"}, NewColorPicker(b, ep.RVBPicker)},
		{TextMaker, []string{"*Text Maker*"}, NewTextMaker(b)},
	}

	for _, e := range builtins {
		ec := cfg.Extension(e.name)
		if ec.Disabled {
			log.LogWithFields(log.F("extension", e.name)).Info("extension disabled")
			continue
		}
		names, categories := e.names, []string(nil)
		if len(ec.Names) > 0 || len(ec.Categories) > 0 {
			names, categories = ec.Names, ec.Categories
		}
		m, err := host.NewMatcher(names, categories)
		if err != nil {
			return err
		}
		if err := r.RegisterExtension(host.Extension{Name: e.name, Match: m, Created: e.hook}); err != nil {
			return err
		}
	}
	return nil
}

// ensureButton adds the refresh button once
func ensureButton(n *host.Node, press func() tea.Cmd) {
	if n.HasWidget(RefreshButton) {
		return
	}
	n.AddWidget(host.KindButton, RefreshButton, nil, func(interface{}) tea.Cmd { return press() })
}

// fillCombo replaces the choices of w, keeping its value when still
// offered and falling back to the first choice otherwise
func fillCombo(w *host.Widget, values []string) {
	w.SetOptions(values)
	if w.HasOption(w.String()) {
		return
	}
	if len(values) > 0 {
		w.SetQuiet(values[0])
		return
	}
	w.SetQuiet("")
}

// apply wraps a node mutation for the UI loop
func apply(n *host.Node, fn func(*host.Node) tea.Cmd) tea.Msg {
	return host.ApplyMsg{Node: n, Fn: fn}
}

// fetchFailed logs a failed fetch; callers continue with an empty list
func fetchFailed(err error, ext string) {
	log.LogWithError(err).With(log.F("extension", ext)).Warn("fetch failed, using an empty list")
}
