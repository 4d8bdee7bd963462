package components

import (
	"strings"

	"folderpick/internal/host"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// NodeList lets the user pick a node type from the catalog
type NodeList struct {
	list list.Model
}

type nodeItem struct {
	def        host.NodeDef
	extensions []string
}

func (i nodeItem) Title() string {
	if i.def.Display != "" {
		return i.def.Display
	}
	return i.def.Name
}

func (i nodeItem) Description() string {
	desc := i.def.Category
	if len(i.extensions) > 0 {
		desc += "  [" + strings.Join(i.extensions, ", ") + "]"
	}
	return desc
}

func (i nodeItem) FilterValue() string { return i.def.Name + " " + i.def.Display }

func NewNodeList(r *host.Registry) *NodeList {
	defs := r.Defs()
	items := make([]list.Item, len(defs))
	for i, d := range defs {
		items[i] = nodeItem{def: d, extensions: r.Extensions(d.Name)}
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Nodes"
	l.SetShowHelp(false)
	return &NodeList{list: l}
}

func (nl *NodeList) SetSize(width, height int) {
	nl.list.SetSize(width, height)
}

// Chosen returns the node type under the cursor
func (nl *NodeList) Chosen() (string, bool) {
	it, ok := nl.list.SelectedItem().(nodeItem)
	if !ok {
		return "", false
	}
	return it.def.Name, true
}

// Filtering reports whether the filter input has the keys
func (nl *NodeList) Filtering() bool {
	return nl.list.FilterState() == list.Filtering
}

func (nl *NodeList) Len() int {
	return len(nl.list.Items())
}

func (nl *NodeList) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	nl.list, cmd = nl.list.Update(msg)
	return cmd
}

func (nl *NodeList) View() string {
	return nl.list.View()
}
