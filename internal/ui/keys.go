package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	First     key.Binding
	Live      key.Binding
	GPrefix   key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FocusNext key.Binding
	NewTask   key.Binding
	Chat      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "scroll down"),
		),
		First: key.NewBinding(
			key.WithHelp("gg", "first page"),
		),
		Live: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "live"),
		),
		GPrefix: key.NewBinding(
			key.WithKeys("g"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "next page"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next panel"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Chat: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "chat"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}
