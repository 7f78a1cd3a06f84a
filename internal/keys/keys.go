// Package keys contains keybinding definitions.
//
// Bindings are keyed by command name so a decoded input.Kind can be matched
// with key.Matches. The help text names the physical key.
package keys

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/zjrosen/rowedit/internal/input"
)

// KeyMap defines the keybindings for the editor.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	WordLeft  key.Binding
	WordRight key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding

	// Editing
	Backspace     key.Binding
	BackspaceWord key.Binding
	BackspaceLine key.Binding
	Copy          key.Binding
	Cut           key.Binding
	Paste         key.Binding

	// General
	Open    key.Binding
	Save    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func bind(k input.Kind, help, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.String()),
		key.WithHelp(help, desc),
	)
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        bind(input.MoveUp, "↑", "move up"),
		Down:      bind(input.MoveDown, "↓", "move down"),
		Left:      bind(input.MoveLeft, "←", "move left"),
		Right:     bind(input.MoveRight, "→", "move right"),
		WordLeft:  bind(input.MoveLeftWord, "ctrl+←", "word left"),
		WordRight: bind(input.MoveRightWord, "ctrl+→", "word right"),
		PageUp:    bind(input.PageUp, "pgup", "page up"),
		PageDown:  bind(input.PageDown, "pgdn", "page down"),
		Home:      bind(input.GoHome, "ctrl+a", "line start"),
		End:       bind(input.GoEnd, "ctrl+e", "line end"),

		Backspace:     bind(input.Backspace, "backspace", "delete char"),
		BackspaceWord: bind(input.BackspaceWord, "ctrl+w", "delete word"),
		BackspaceLine: bind(input.BackspaceLine, "ctrl+u", "delete to line start"),
		Copy:          bind(input.Copy, "ctrl+c", "copy line"),
		Cut:           bind(input.Cut, "ctrl+x", "cut line"),
		Paste:         bind(input.Paste, "ctrl+v", "paste"),

		Open:    bind(input.Open, "ctrl+o", "open a file"),
		Save:    bind(input.Save, "ctrl+s", "save the current file"),
		Refresh: bind(input.Refresh, "ctrl+l", "redraw"),
		Quit:    bind(input.Quit, "ctrl+q", "quit"),
	}
}

// ShortHelp returns the bindings shown in the startup help message. Open is
// left out while opening files from inside a session is unsupported.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit}
}

// FullHelp returns every binding grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.WordLeft, k.WordRight, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Backspace, k.BackspaceWord, k.BackspaceLine, k.Copy, k.Cut, k.Paste},
		{k.Open, k.Save, k.Refresh, k.Quit},
	}
}

// Lookup returns the binding that names kind, enabled or not.
func (k KeyMap) Lookup(kind input.Kind) (key.Binding, bool) {
	for _, group := range k.FullHelp() {
		for _, b := range group {
			if slices.Contains(b.Keys(), kind.String()) {
				return b, true
			}
		}
	}
	return key.Binding{}, false
}

// Enabled reports whether kind may run. Kinds without a binding, such as
// literal characters, are always enabled.
func (k KeyMap) Enabled(kind input.Kind) bool {
	b, ok := k.Lookup(kind)
	if !ok {
		return true
	}
	return key.Matches(kind, b)
}

// HelpLine formats bindings as "HELP: CTRL-S to save the current file and
// CTRL-Q to quit." Disabled bindings are left out.
func HelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, strings.ToUpper(strings.ReplaceAll(h.Key, "+", "-"))+" to "+h.Desc)
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return "HELP: " + parts[0] + "."
	case 2:
		return "HELP: " + parts[0] + " and " + parts[1] + "."
	}
	last := len(parts) - 1
	return "HELP: " + strings.Join(parts[:last], ", ") + ", and " + parts[last] + "."
}
