package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the set of bindings the game screen understands.
type KeyMap struct {
	Buy     key.Binding
	Decline key.Binding
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Buy: key.NewBinding(
			key.WithKeys("y", "b"),
			key.WithHelp("y", "buy"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "p"),
			key.WithHelp("n", "pass"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Buy, k.Decline, k.Up, k.Down, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
