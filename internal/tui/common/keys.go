package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the node view and its panel
type KeyMap struct {
	// General
	Help     key.Binding
	Quit     key.Binding
	NextItem key.Binding
	PrevItem key.Binding

	// Panel
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Activate   key.Binding // Double-click equivalent
	GoUp       key.Binding // Only when the type-ahead buffer is empty
	EditPath   key.Binding
	ToggleView key.Binding
	Refresh    key.Binding
	Explorer   key.Binding
	CopyPath   key.Binding
	Close      key.Binding

	// Form
	Decrease key.Binding
	Increase key.Binding
	Toggle   key.Binding
	Edit     key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextItem: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		PrevItem: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),

		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Activate:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		GoUp:       key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "parent")),
		EditPath:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "path")),
		ToggleView: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "grid/list")),
		Refresh:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		Explorer:   key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "explorer")),
		CopyPath:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy path")),
		Close:      key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),

		Decrease: key.NewBinding(key.WithKeys("left", "-"), key.WithHelp("←/-", "previous value")),
		Increase: key.NewBinding(key.WithKeys("right", "+"), key.WithHelp("→/+", "next value")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Edit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextItem, k.Activate, k.GoUp, k.EditPath, k.ToggleView, k.Refresh, k.Help}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Activate, k.GoUp},
		{k.EditPath, k.ToggleView, k.Refresh, k.Explorer, k.CopyPath, k.Close},
		{k.NextItem, k.PrevItem, k.Decrease, k.Increase, k.Toggle, k.Edit},
		{k.Help, k.Quit},
	}
}
