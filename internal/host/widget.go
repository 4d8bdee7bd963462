package host

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// WidgetKind is how a widget is drawn and edited
type WidgetKind string

const (
	KindCombo  WidgetKind = "combo"
	KindButton WidgetKind = "button"
	KindString WidgetKind = "string"
	KindNumber WidgetKind = "number"
	KindToggle WidgetKind = "toggle"
	// KindDOM widgets embed a custom view, e.g. the browsing panel
	KindDOM WidgetKind = "dom"
)

// Callback runs after a widget's value changed
type Callback func(v interface{}) tea.Cmd

// Widget is one named input of a node
type Widget struct {
	Name     string
	Kind     WidgetKind
	Value    interface{}
	Options  []string
	Min, Max float64
	Hidden   bool
	Callback Callback
	// View holds the embedded component of a dom widget
	View interface{}
}

// Set stores v and fires the callback
func (w *Widget) Set(v interface{}) tea.Cmd {
	w.Value = v
	if w.Callback != nil {
		return w.Callback(v)
	}
	return nil
}

// SetQuiet stores v without firing the callback
func (w *Widget) SetQuiet(v interface{}) {
	w.Value = v
}

// Press fires a button's callback
func (w *Widget) Press() tea.Cmd {
	if w.Callback == nil {
		return nil
	}
	return w.Callback(nil)
}

// Rewire keeps the existing callback and runs after once it returns
func (w *Widget) Rewire(after Callback) {
	prev := w.Callback
	w.Callback = func(v interface{}) tea.Cmd {
		var first tea.Cmd
		if prev != nil {
			first = prev(v)
		}
		return tea.Batch(first, after(v))
	}
}

// SetOptions replaces the choices of a combo
func (w *Widget) SetOptions(opts []string) {
	w.Options = append(w.Options[:0:0], opts...)
}

// HasOption reports whether v is one of the combo's choices
func (w *Widget) HasOption(v string) bool {
	for _, o := range w.Options {
		if o == v {
			return true
		}
	}
	return false
}

// OptionIndex returns the position of v in Options, or -1
func (w *Widget) OptionIndex(v string) int {
	for i, o := range w.Options {
		if o == v {
			return i
		}
	}
	return -1
}

// String returns the value formatted as text
func (w *Widget) String() string {
	switch v := w.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Bool interprets the value as a toggle
func (w *Widget) Bool() bool {
	switch v := w.Value.(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Int interprets the value as a whole number, 0 if it isn't one
func (w *Widget) Int() int {
	switch v := w.Value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// Float interprets the value as a number
func (w *Widget) Float() float64 {
	switch v := w.Value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}
