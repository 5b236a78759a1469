package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Less key.Binding
	More key.Binding
	Next key.Binding
	Help key.Binding
	Back key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Less: key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←", "less lump sum")),
		More: key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→", "more lump sum")),
		Next: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "summary/schedule")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Less, k.More, k.Next, k.Help, k.Quit}
}
