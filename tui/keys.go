package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds the widget controls.
type KeyMap struct {
	Open       key.Binding
	Close      key.Binding
	Send       key.Binding
	ToggleLogs key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open chat")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close chat")),
		Send:       key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "send")),
		ToggleLogs: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logs")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Close, k.Open, k.ToggleLogs, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Send, k.Close, k.Open}, {k.ToggleLogs, k.Quit}}
}
