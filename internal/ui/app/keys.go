// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the relay views into a single Bubble Tea program.
//
// This file defines the keyboard bindings for the application.
package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the relay interface.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Back        key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	Filter      key.Binding
	Attach      key.Binding
	Copy        key.Binding
	ToggleAuth  key.Binding
	Logout      key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "select / send"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		NextSection: key.NewBinding(
			key.WithKeys("ctrl+n", "]"),
			key.WithHelp("C-n/]", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("ctrl+p", "["),
			key.WithHelp("C-p/[", "previous section"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter chats"),
		),
		Attach: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "attach file"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy last message"),
		),
		ToggleAuth: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "login/register"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "log out"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("C-q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSection, k.Filter, k.Attach, k.Logout, k.Quit}
}

// FullHelp groups all bindings for a full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.NextSection, k.PrevSection, k.Filter},
		{k.Attach, k.Copy, k.ToggleAuth, k.Logout, k.Quit},
	}
}
