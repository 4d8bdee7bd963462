package extensions

import (
	"context"

	"folderpick/internal/host"
	"folderpick/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// DirLister lists a directory flat, optionally recursing
type DirLister interface {
	ListDir(ctx context.Context, s types.NavigationState, recursive bool) (*types.PickerListing, error)
}

type picker struct {
	lister DirLister
	gen    map[int]uint64
}

// NewFolderFilePicker turns "file" into a combo of the directory's files
// and keeps "index" pointing at the chosen one
func NewFolderFilePicker(l DirLister) host.Hook {
	pk := &picker{lister: l, gen: map[int]uint64{}}
	return pk.created
}

func (pk *picker) created(n *host.Node) tea.Cmd {
	if !n.MarkWired(FolderFilePicker) {
		return nil
	}
	if w := n.Widget("index"); w != nil {
		w.Hidden = true
	}

	file := n.UpgradeWidget("file", host.KindCombo, nil)
	file.Callback = func(v interface{}) tea.Cmd {
		if i := file.OptionIndex(file.String()); i >= 0 {
			if idx := n.Widget("index"); idx != nil {
				idx.SetQuiet(i)
			}
		}
		n.SetDirty()
		return nil
	}

	refresh := func() tea.Cmd { return pk.refresh(n) }
	ensureButton(n, refresh)
	for _, name := range []string{"directory", "extensions", "name_regex", "regex_mode", "regex_ignore_case", "recursive", "sort_by", "descending"} {
		if w := n.Widget(name); w != nil {
			w.Rewire(func(interface{}) tea.Cmd { return refresh() })
		}
	}
	return refresh()
}

func pickerState(n *host.Node) (types.NavigationState, bool) {
	s := proState(n, types.ViewGrid)
	recursive := false
	if w := n.Widget("recursive"); w != nil {
		recursive = w.Bool()
	}
	return s, recursive
}

// refresh reads the filters now and applies the listing when it arrives,
// unless a newer refresh was started in the meantime
func (pk *picker) refresh(n *host.Node) tea.Cmd {
	pk.gen[n.ID]++
	gen := pk.gen[n.ID]
	s, recursive := pickerState(n)

	return func() tea.Msg {
		listing, err := pk.lister.ListDir(context.Background(), s, recursive)
		return apply(n, func(n *host.Node) tea.Cmd {
			if pk.gen[n.ID] != gen {
				return nil
			}
			pk.fill(n, listing, err)
			return nil
		})
	}
}

func (pk *picker) fill(n *host.Node, listing *types.PickerListing, err error) {
	file := n.Widget("file")
	idx := n.Widget("index")
	if err != nil {
		fetchFailed(err, FolderFilePicker)
		file.SetOptions(nil)
		file.SetQuiet("")
		if idx != nil {
			idx.SetQuiet(0)
		}
		return
	}

	names := listing.Names()
	file.SetOptions(names)

	i := 0
	if idx != nil {
		i = idx.Int()
	}
	if i > len(names)-1 {
		i = len(names) - 1
	}
	if i < 0 {
		i = 0
	}
	if len(names) > 0 {
		file.SetQuiet(names[i])
	} else {
		file.SetQuiet("")
	}
	if idx != nil {
		idx.SetQuiet(i)
	}
}
