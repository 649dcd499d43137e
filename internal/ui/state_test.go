// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import "testing"

func TestInitialState(t *testing.T) {
	s := InitialState()
	if s.Section != SectionChats {
		t.Errorf("initial section = %q, want chats", s.Section)
	}
	if s.SelectedChat != "" {
		t.Errorf("initial selection should be empty, got %q", s.SelectedChat)
	}
	if s.Authed {
		t.Error("initial state must be unauthenticated")
	}
}

func TestReduce_GatingWhileUnauthenticated(t *testing.T) {
	s := InitialState()

	s = Reduce(s, SwitchSection{Section: SectionSettings})
	if s.Section != SectionChats {
		t.Error("section switch must be ignored while unauthenticated")
	}

	s = Reduce(s, SelectChat{ChatID: "c1"})
	if s.SelectedChat != "" {
		t.Error("chat selection must be ignored while unauthenticated")
	}
}

func TestReduce_SectionSwitchPreservesSelection(t *testing.T) {
	s := Reduce(InitialState(), SignedIn{})
	s = Reduce(s, SelectChat{ChatID: "c1"})
	s = Reduce(s, SwitchSection{Section: SectionContacts})

	if s.Section != SectionContacts {
		t.Errorf("section = %q, want contacts", s.Section)
	}
	if s.SelectedChat != "c1" {
		t.Error("switching sections must not clear the chat selection")
	}

	s = Reduce(s, SwitchSection{Section: SectionChats})
	if s.SelectedChat != "c1" {
		t.Error("returning to chats must restore the previous selection")
	}
}

func TestReduce_InvalidSectionIgnored(t *testing.T) {
	s := Reduce(InitialState(), SignedIn{})
	s = Reduce(s, SwitchSection{Section: Section("bogus")})
	if s.Section != SectionChats {
		t.Errorf("invalid section should be ignored, got %q", s.Section)
	}
}

func TestReduce_SelectUnknownChatAllowed(t *testing.T) {
	s := Reduce(InitialState(), SignedIn{})
	s = Reduce(s, SelectChat{ChatID: "stale-or-deleted"})
	if s.SelectedChat != "stale-or-deleted" {
		t.Error("selecting an unknown id must be permitted")
	}

	s = Reduce(s, SelectChat{ChatID: ""})
	if s.SelectedChat != "" {
		t.Error("empty id should clear the selection")
	}
}

func TestReduce_SignOutResets(t *testing.T) {
	s := Reduce(InitialState(), SignedIn{})
	s = Reduce(s, SelectChat{ChatID: "c1"})
	s = Reduce(s, SwitchSection{Section: SectionProfile})

	s = Reduce(s, SignedOut{})
	if s.Authed || s.Section != SectionChats || s.SelectedChat != "" {
		t.Errorf("sign-out should reset to initial state, got %+v", s)
	}
}

func TestReduce_IsPure(t *testing.T) {
	before := Reduce(InitialState(), SignedIn{})
	before = Reduce(before, SelectChat{ChatID: "c1"})

	snapshot := before
	_ = Reduce(before, SwitchSection{Section: SectionSettings})
	if before != snapshot {
		t.Error("Reduce must not mutate its input state")
	}
}

func TestSectionValid(t *testing.T) {
	for _, sec := range Sections {
		if !sec.Valid() {
			t.Errorf("%q should be valid", sec)
		}
	}
	if Section("nope").Valid() {
		t.Error("unknown section should be invalid")
	}
}
