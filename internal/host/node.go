package host

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

var nextNodeID atomic.Int64

// Node is an instance of a catalog node with its widgets. Nodes are only
// touched from the UI loop; async work reports back through ApplyMsg.
type Node struct {
	ID       int
	Type     string
	Title    string
	Category string

	widgets []*Widget
	wired   map[string]bool
	dirty   bool
}

// NewNode creates an empty node of the given type
func NewNode(nodeType, category string) *Node {
	return &Node{
		ID:       int(nextNodeID.Add(1)),
		Type:     nodeType,
		Title:    nodeType,
		Category: category,
		wired:    map[string]bool{},
	}
}

// Widget finds a widget by name
func (n *Node) Widget(name string) *Widget {
	for _, w := range n.widgets {
		if w.Name == name {
			return w
		}
	}
	return nil
}

// HasWidget reports whether a widget named name exists
func (n *Node) HasWidget(name string) bool {
	return n.Widget(name) != nil
}

// Widgets returns the widgets in display order
func (n *Node) Widgets() []*Widget {
	return n.widgets
}

// VisibleWidgets skips hidden widgets
func (n *Node) VisibleWidgets() []*Widget {
	var out []*Widget
	for _, w := range n.widgets {
		if !w.Hidden {
			out = append(out, w)
		}
	}
	return out
}

// AddWidget appends a widget
func (n *Node) AddWidget(kind WidgetKind, name string, value interface{}, cb Callback) *Widget {
	w := &Widget{Name: name, Kind: kind, Value: value, Callback: cb}
	n.widgets = append(n.widgets, w)
	return w
}

// UpgradeWidget replaces the widget called name with one of kind, keeping
// its position and value. A widget that already has the kind is returned
// unchanged; a missing one is appended with an empty value.
func (n *Node) UpgradeWidget(name string, kind WidgetKind, cb Callback) *Widget {
	for i, old := range n.widgets {
		if old.Name != name {
			continue
		}
		if old.Kind == kind {
			return old
		}
		w := &Widget{Name: name, Kind: kind, Value: old.Value, Hidden: old.Hidden, Callback: cb}
		n.widgets[i] = w
		return w
	}
	return n.AddWidget(kind, name, "", cb)
}

// MarkWired records key and reports whether this is the first time,
// so hooks that run again on the same node don't wire twice.
func (n *Node) MarkWired(key string) bool {
	if n.wired[key] {
		return false
	}
	n.wired[key] = true
	return true
}

// SetDirty asks the frontend to redraw the node
func (n *Node) SetDirty() { n.dirty = true }

// Dirty reports and clears the redraw flag
func (n *Node) Dirty() bool {
	d := n.dirty
	n.dirty = false
	return d
}

// Values returns the widget values sent when the workflow runs
func (n *Node) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(n.widgets))
	for _, w := range n.widgets {
		if w.Kind == KindButton || w.Kind == KindDOM {
			continue
		}
		out[w.Name] = w.Value
	}
	return out
}

// ApplyMsg carries a change computed off the UI loop back to a node
type ApplyMsg struct {
	Node *Node
	Fn   func(*Node) tea.Cmd
}

// Apply runs the change against the node
func (m ApplyMsg) Apply() tea.Cmd {
	if m.Node == nil || m.Fn == nil {
		return nil
	}
	cmd := m.Fn(m.Node)
	m.Node.SetDirty()
	return cmd
}
