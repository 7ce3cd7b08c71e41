package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next    key.Binding
	prev    key.Binding
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	toggle  key.Binding
	more    key.Binding
	less    key.Binding
	start   key.Binding
	refresh key.Binding
	help    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		more:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
		less:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "less")),
		start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start/stop")),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.up, k.down},
		{k.left, k.right, k.toggle},
		{k.more, k.less, k.start},
		{k.refresh, k.help, k.quit},
	}
}
