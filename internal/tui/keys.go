package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the global shortcuts. Money amounts never contain these
// letters, so they do not collide with typing in the amount field.
type keyMap struct {
	Calculator key.Binding
	Compare    key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Calculator: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "calculator")),
		Compare:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compare")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Calculator, k.Compare, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Calculator, k.Compare, k.Help},
		{k.Back, k.Quit},
	}
}
