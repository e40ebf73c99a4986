package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Drag   key.Binding
	Cancel key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Drag:   key.NewBinding(key.WithKeys(""), key.WithHelp("mouse", "drag cards")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset board")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Drag, k.Cancel, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Drag, k.Cancel, k.Reset, k.Quit}}
}
