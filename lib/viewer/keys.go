// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the viewer's key bindings. Every other key goes to
// the input.
type KeyMap struct {
	CycleView key.Binding
	Clear     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	CycleView: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "cycle view"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

// bindings returns the bindings in help-line order.
func (keys KeyMap) bindings() []key.Binding {
	return []key.Binding{keys.CycleView, keys.Clear, keys.Quit}
}
