package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	search     key.Binding
	enter      key.Binding
	playPause  key.Binding
	next       key.Binding
	previous   key.Binding
	seekBack   key.Binding
	seekFwd    key.Binding
	volumeUp   key.Binding
	volumeDown key.Binding
	like       key.Binding
	shuffle    key.Binding
	repeat     key.Binding
	open       key.Binding
	focus      key.Binding
	back       key.Binding
	help       key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play/pause track")),
		playPause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		previous:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		seekBack:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "-5s")),
		seekFwd:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "+5s")),
		volumeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		volumeDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		like:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		shuffle:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		repeat:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch list")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.enter, k.playPause, k.next, k.previous, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.focus},
		{k.playPause, k.next, k.previous, k.seekBack, k.seekFwd},
		{k.volumeUp, k.volumeDown, k.like, k.shuffle, k.repeat},
		{k.search, k.open, k.back, k.help, k.quit},
	}
}
