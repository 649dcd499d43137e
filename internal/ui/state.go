// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the relay terminal interface.
package ui

// =============================================================================
// VIEW COORDINATOR STATE
// =============================================================================

// Section is a top-level display state of the interface.
type Section string

// Top-level sections. Only SectionChats carries a substate (the selected
// chat id); the rest are terminal display states.
const (
	SectionChats    Section = "chats"
	SectionGroups   Section = "groups"
	SectionChannels Section = "channels"
	SectionContacts Section = "contacts"
	SectionProfile  Section = "profile"
	SectionSettings Section = "settings"
)

// Sections lists the sections in sidebar order.
var Sections = []Section{
	SectionChats,
	SectionGroups,
	SectionChannels,
	SectionContacts,
	SectionProfile,
	SectionSettings,
}

// Valid reports whether s names a known section.
func (s Section) Valid() bool {
	switch s {
	case SectionChats, SectionGroups, SectionChannels, SectionContacts, SectionProfile, SectionSettings:
		return true
	}
	return false
}

// State is the complete view-coordination state: which section is active,
// which chat is selected, and whether a session exists. It is held in one
// place and changed only through Reduce, never by scattered handlers.
type State struct {
	Authed       bool
	Section      Section
	SelectedChat string
}

// InitialState returns the coordinator's starting state: the chats section
// with no selection, unauthenticated.
func InitialState() State {
	return State{
		Section: SectionChats,
	}
}

// =============================================================================
// ACTIONS
// =============================================================================

// Action is a view-coordination event fed to Reduce.
type Action interface {
	isAction()
}

// SwitchSection changes the active section.
type SwitchSection struct {
	Section Section
}

// SelectChat records the active chat id. An empty id clears the selection.
// Ids not present in the registry are allowed; the conversation pane simply
// has no content for them.
type SelectChat struct {
	ChatID string
}

// SignedIn marks the session as established.
type SignedIn struct{}

// SignedOut clears the session and all selection state.
type SignedOut struct{}

func (SwitchSection) isAction() {}
func (SelectChat) isAction()    {}
func (SignedIn) isAction()      {}
func (SignedOut) isAction()     {}

// =============================================================================
// REDUCER
// =============================================================================

// Reduce is the total transition function (state, action) -> state.
//
// While no session exists, only the auth actions have any effect; section
// switches and chat selection are ignored. Switching sections never clears
// the chat selection, so returning to the chats section restores the
// previously selected conversation.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SignedIn:
		s.Authed = true
		return s

	case SignedOut:
		return State{Section: SectionChats}

	case SwitchSection:
		if !s.Authed || !act.Section.Valid() {
			return s
		}
		s.Section = act.Section
		return s

	case SelectChat:
		if !s.Authed {
			return s
		}
		s.SelectedChat = act.ChatID
		return s
	}
	return s
}
