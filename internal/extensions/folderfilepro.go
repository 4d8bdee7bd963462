package extensions

import (
	"folderpick/internal/config"
	"folderpick/internal/host"
	"folderpick/internal/panel"
	"folderpick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// PanelWidget is the name of the dom widget holding the browsing panel
const PanelWidget = "folder_file_pro"

// proState reads the navigation inputs off the node
func proState(n *host.Node, view types.ViewMode) types.NavigationState {
	s := types.DefaultNavigationState()
	s.ViewMode = view
	if w := n.Widget("directory"); w != nil {
		s.Directory = w.String()
	}
	if w := n.Widget("extensions"); w != nil {
		s.Extensions = w.String()
	}
	if w := n.Widget("name_regex"); w != nil {
		s.Regex = w.String()
	}
	if w := n.Widget("regex_mode"); w != nil {
		s.RegexMode, _ = types.ParseRegexMode(w.String())
	}
	if w := n.Widget("regex_ignore_case"); w != nil {
		s.RegexIgnoreCase = w.Bool()
	}
	if w := n.Widget("sort_by"); w != nil {
		s.SortBy, _ = types.ParseSortKey(w.String())
	}
	if w := n.Widget("descending"); w != nil {
		s.Descending = w.Bool()
	}
	return s
}

// NewFolderFilePro mounts a browsing panel in the node. The panel takes
// its state from the node's inputs, writes the directory back as the user
// navigates and publishes the selected file's index to "index".
func NewFolderFilePro(b panel.Backend, cfg *config.Config) host.Hook {
	view, _ := types.ParseViewMode(cfg.Panel.DefaultView)

	return func(n *host.Node) tea.Cmd {
		if !n.MarkWired(FolderFilePro) {
			return nil
		}
		index := n.Widget("index")
		if index != nil {
			index.Hidden = true
		}

		p := panel.New(panel.Options{
			Backend:          b,
			Initial:          proState(n, view),
			TypeAheadTimeout: cfg.Panel.TypeAheadTimeout,
			OnIndex: func(i int) {
				if index != nil {
					index.SetQuiet(i)
					n.SetDirty()
				}
			},
			OnDirectory: func(dir string) {
				if w := n.Widget("directory"); w != nil {
					w.SetQuiet(dir)
					n.SetDirty()
				}
			},
		})
		n.AddWidget(host.KindDOM, PanelWidget, nil, nil).View = p

		if w := n.Widget("directory"); w != nil {
			w.Rewire(func(v interface{}) tea.Cmd {
				return p.Navigator().SetDirectory(w.String())
			})
		}
		filter := func(interface{}) tea.Cmd {
			s := proState(n, view)
			return p.Navigator().SetFilter(s.Extensions, s.Regex, s.RegexMode, s.RegexIgnoreCase)
		}
		for _, name := range []string{"extensions", "name_regex", "regex_mode", "regex_ignore_case"} {
			if w := n.Widget(name); w != nil {
				w.Rewire(filter)
			}
		}
		sort := func(interface{}) tea.Cmd {
			s := proState(n, view)
			return p.Navigator().SetSort(s.SortBy, s.Descending)
		}
		for _, name := range []string{"sort_by", "descending"} {
			if w := n.Widget(name); w != nil {
				w.Rewire(sort)
			}
		}

		return p.Mount()
	}
}

// PanelOf returns the browsing panel mounted in n
func PanelOf(n *host.Node) (*panel.Panel, bool) {
	w := n.Widget(PanelWidget)
	if w == nil || w.Kind != host.KindDOM {
		return nil, false
	}
	p, ok := w.View.(*panel.Panel)
	return p, ok
}
