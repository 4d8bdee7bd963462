package components

import (
	"strconv"
	"strings"

	"folderpick/internal/host"
	"folderpick/internal/tui/common"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// NodeForm edits the visible widgets of a node one at a time
type NodeForm struct {
	node    *host.Node
	cursor  int
	editing bool
	input   textinput.Model
	keys    common.KeyMap
	err     string
}

func NewNodeForm(n *host.Node) *NodeForm {
	input := textinput.New()
	input.Width = 40
	input.Cursor.SetMode(cursor.CursorStatic)
	return &NodeForm{
		node:  n,
		input: input,
		keys:  common.DefaultKeyMap(),
	}
}

// Cursor is the index of the focused widget among the visible ones
func (f *NodeForm) Cursor() int {
	return f.cursor
}

// Focused returns the focused widget, nil for a node without visible widgets
func (f *NodeForm) Focused() *host.Widget {
	ws := f.node.VisibleWidgets()
	if len(ws) == 0 {
		return nil
	}
	if f.cursor >= len(ws) {
		f.cursor = len(ws) - 1
	}
	return ws[f.cursor]
}

// FocusWidget moves the cursor to the named widget
func (f *NodeForm) FocusWidget(name string) bool {
	for i, w := range f.node.VisibleWidgets() {
		if w.Name == name {
			f.cursor = i
			return true
		}
	}
	return false
}

func (f *NodeForm) Editing() bool {
	return f.editing
}

func (f *NodeForm) EditView() string {
	if !f.editing {
		return ""
	}
	return f.input.View()
}

// Err is the last rejected edit, cleared by the next key
func (f *NodeForm) Err() string {
	return f.err
}

// Move cycles the cursor by delta widgets
func (f *NodeForm) Move(delta int) {
	n := len(f.node.VisibleWidgets())
	if n == 0 {
		return
	}
	f.cursor = ((f.cursor+delta)%n + n) % n
}

func (f *NodeForm) Update(msg tea.KeyMsg) tea.Cmd {
	f.err = ""
	if f.editing {
		return f.updateEditing(msg)
	}

	switch {
	case key.Matches(msg, f.keys.NextItem):
		f.Move(1)
		return nil
	case key.Matches(msg, f.keys.PrevItem):
		f.Move(-1)
		return nil
	}

	w := f.Focused()
	if w == nil {
		return nil
	}

	switch w.Kind {
	case host.KindCombo:
		switch {
		case key.Matches(msg, f.keys.Decrease):
			return cycleOption(w, -1)
		case key.Matches(msg, f.keys.Increase):
			return cycleOption(w, 1)
		}
	case host.KindToggle:
		if key.Matches(msg, f.keys.Toggle, f.keys.Edit) {
			return w.Set(!w.Bool())
		}
	case host.KindNumber:
		switch {
		case key.Matches(msg, f.keys.Decrease):
			return step(w, -1)
		case key.Matches(msg, f.keys.Increase):
			return step(w, 1)
		case key.Matches(msg, f.keys.Edit):
			return f.startEdit(w)
		}
	case host.KindString:
		if key.Matches(msg, f.keys.Edit) {
			return f.startEdit(w)
		}
	case host.KindButton:
		if key.Matches(msg, f.keys.Activate) {
			return w.Press()
		}
	}
	return nil
}

func (f *NodeForm) startEdit(w *host.Widget) tea.Cmd {
	f.editing = true
	f.input.Prompt = w.Name + ": "
	f.input.SetValue(w.String())
	f.input.CursorEnd()
	return f.input.Focus()
}

func (f *NodeForm) stopEdit() {
	f.editing = false
	f.input.Blur()
}

func (f *NodeForm) updateEditing(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		f.stopEdit()
		return nil
	case tea.KeyEnter:
		w := f.Focused()
		text := f.input.Value()
		f.stopEdit()
		if w == nil {
			return nil
		}
		if w.Kind != host.KindNumber {
			return w.Set(text)
		}
		v, err := parseNumber(w, text)
		if err != nil {
			f.err = w.Name + ": not a number"
			return nil
		}
		return w.Set(v)
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func cycleOption(w *host.Widget, delta int) tea.Cmd {
	n := len(w.Options)
	if n == 0 {
		return nil
	}
	i := w.OptionIndex(w.String())
	if i < 0 {
		i = 0
		if delta < 0 {
			i = n - 1
		}
	} else {
		i = ((i+delta)%n + n) % n
	}
	return w.Set(w.Options[i])
}

// bounded reports whether the widget declares a range
func bounded(w *host.Widget) bool {
	return w.Max > w.Min
}

func clampNumber(w *host.Widget, f float64) float64 {
	if !bounded(w) {
		return f
	}
	if f < w.Min {
		return w.Min
	}
	if f > w.Max {
		return w.Max
	}
	return f
}

// step adds delta to a number widget, keeping ints ints
func step(w *host.Widget, delta int) tea.Cmd {
	if _, isFloat := w.Value.(float64); isFloat {
		return w.Set(clampNumber(w, w.Float()+float64(delta)))
	}
	return w.Set(int(clampNumber(w, float64(w.Int()+delta))))
}

func parseNumber(w *host.Widget, text string) (interface{}, error) {
	text = strings.TrimSpace(text)
	if _, isFloat := w.Value.(float64); isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		return clampNumber(w, f), nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, err
	}
	return int(clampNumber(w, float64(n))), nil
}
