package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Tab      key.Binding
	Copy     key.Binding
	Clear    key.Binding
	Snapshot key.Binding
	New      key.Binding
	Delete   key.Binding
	Reset    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy last reply")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear history")),
	Snapshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "toggle snapshot")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new user")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete user")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset password")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}
