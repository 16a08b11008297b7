package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/b/solar-console/pkg/config"
	"github.com/b/solar-console/pkg/nav"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap(b config.Bindings) keyMap {
	return keyMap{
		Up:      binding(b.Up, "↑", "up"),
		Down:    binding(b.Down, "↓", "down"),
		Left:    binding(b.Left, "←", "left"),
		Right:   binding(b.Right, "→", "right"),
		Confirm: binding(b.Confirm, "enter", "launch"),
		Reload:  binding(b.Reload, "r", "reload"),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    binding(b.Quit, "q", "quit"),
	}
}

// binding shows the first configured key in help unless it is one of the
// arrow/enter keys that have a nicer glyph.
func binding(keys []string, glyph, desc string) key.Binding {
	label := glyph
	if len(keys) > 0 && !isNamedKey(keys[0]) {
		label = keys[0]
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
}

func isNamedKey(k string) bool {
	switch strings.ToLower(k) {
	case "up", "down", "left", "right", "enter":
		return true
	}
	return false
}

// command maps a key press to a navigation command.
func (k keyMap) command(msg tea.KeyMsg) (nav.Command, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return nav.Up, true
	case key.Matches(msg, k.Down):
		return nav.Down, true
	case key.Matches(msg, k.Left):
		return nav.Left, true
	case key.Matches(msg, k.Right):
		return nav.Right, true
	case key.Matches(msg, k.Confirm):
		return nav.Confirm, true
	}
	return nav.None, false
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Confirm, k.Reload},
		{k.Help, k.Quit},
	}
}
