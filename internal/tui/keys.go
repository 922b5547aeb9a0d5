package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	next     key.Binding
	prev     key.Binding
	inc      key.Binding
	dec      key.Binding
	generate key.Binding
	preview  key.Binding
	save     key.Binding
	fonts    key.Binding
	dismiss  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "prev field"),
		),
		inc: key.NewBinding(
			key.WithKeys("right", "+"),
			key.WithHelp("→/+", "increase"),
		),
		dec: key.NewBinding(
			key.WithKeys("left", "-"),
			key.WithHelp("←/-", "decrease"),
		),
		generate: key.NewBinding(
			key.WithKeys("enter", "ctrl+g"),
			key.WithHelp("enter", "generate"),
		),
		preview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "preview"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save video"),
		),
		fonts: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh fonts"),
		),
		dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.next, k.inc, k.generate, k.preview, k.save, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.inc, k.dec},
		{k.generate, k.preview, k.save, k.fonts},
		{k.dismiss, k.quit},
	}
}
