// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/relay-tui/internal/api"
	"github.com/jeranaias/relay-tui/internal/config"
	"github.com/jeranaias/relay-tui/internal/model"
	"github.com/jeranaias/relay-tui/internal/session"
	"github.com/jeranaias/relay-tui/internal/storage"
	"github.com/jeranaias/relay-tui/internal/ui"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	client := api.NewClient("http://relay.test")
	sessions := session.NewStore(client, storage.NewSessionStore(t.TempDir()))
	m := New(config.Default(), client, sessions)
	m.width = 100
	m.height = 40
	return m
}

func signIn(t *testing.T, m Model) Model {
	t.Helper()
	sess := &session.Session{
		User:  api.Identity{ID: "u1", Username: "ada", FullName: "Ada L"},
		Token: "tok",
	}
	next, _ := m.Update(authResultMsg{Session: sess})
	out := next.(Model)
	if !out.state.Authed {
		t.Fatal("sign-in did not authenticate the model")
	}
	return out
}

func TestUpdate_KeysGatedUntilSignedIn(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = next.(Model)

	if m.state.Authed {
		t.Error("no auth action was dispatched, model must stay signed out")
	}
	if m.state.Section != ui.SectionChats {
		t.Errorf("section changed to %q while signed out", m.state.Section)
	}
}

func TestUpdate_AuthResult(t *testing.T) {
	m := newTestModel(t)

	sess := &session.Session{User: api.Identity{ID: "u1", Username: "ada"}, Token: "tok"}
	next, cmd := m.Update(authResultMsg{Session: sess})
	m = next.(Model)

	if !m.state.Authed {
		t.Error("successful auth must sign the model in")
	}
	if cmd == nil {
		t.Error("sign-in should kick off the chat listing load")
	}
}

func TestUpdate_AuthErrorStaysSignedOut(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(authResultMsg{Err: errors.New("invalid credentials")})
	m = next.(Model)

	if m.state.Authed {
		t.Error("failed auth must not sign in")
	}
	if !m.toasts.HasToasts() {
		t.Error("auth failure should surface a toast")
	}
}

func TestUpdate_StaleSearchDiscarded(t *testing.T) {
	m := signIn(t, newTestModel(t))

	older := m.dir.Begin()
	newer := m.dir.Begin()

	next, _ := m.Update(searchResultMsg{Token: newer, Results: []api.Candidate{{ID: "u2", Username: "kit"}}})
	m = next.(Model)
	next, _ = m.Update(searchResultMsg{Token: older, Results: []api.Candidate{{ID: "u3", Username: "mo"}}})
	m = next.(Model)

	results := m.dir.Results()
	if len(results) != 1 || results[0].ID != "u2" {
		t.Errorf("stale completion overwrote the newer result set: %v", results)
	}
}

func TestUpdate_SectionSwitchPreservesSelection(t *testing.T) {
	m := signIn(t, newTestModel(t))
	m.registry.Add(model.Chat{ID: "c1", Name: "Ops"})
	m.selectChat("c1")

	for i := 0; i < len(ui.Sections); i++ {
		m.switchSection(1)
	}

	if m.state.Section != ui.SectionChats {
		t.Fatalf("full cycle should land back on chats, got %q", m.state.Section)
	}
	if m.state.SelectedChat != "c1" {
		t.Errorf("selection lost across section switches: %q", m.state.SelectedChat)
	}
}

func TestUpdate_ComposeAppends(t *testing.T) {
	m := signIn(t, newTestModel(t))
	m.registry.Add(model.Chat{ID: "c1", Name: "Ops"})
	m.selectChat("c1")
	m.setFocus(focusCompose)
	m.compose.SetValue("  hello there  ")

	next, cmd := m.submitCompose()
	m = next.(Model)

	msgs := m.history.ForChat("c1")
	if len(msgs) != 1 {
		t.Fatalf("message count = %d, want 1", len(msgs))
	}
	if msgs[0].Text != "hello there" || !msgs[0].IsMine {
		t.Errorf("unexpected appended message: %+v", msgs[0])
	}
	if m.compose.Value() != "" {
		t.Error("compose input should clear after send")
	}
	if cmd == nil {
		t.Error("append should trigger best-effort delivery")
	}

	chat, _ := m.registry.Get("c1")
	if chat.LastMessage != "hello there" {
		t.Errorf("sidebar preview not touched: %q", chat.LastMessage)
	}
}

func TestUpdate_BlankComposeRejected(t *testing.T) {
	m := signIn(t, newTestModel(t))
	m.registry.Add(model.Chat{ID: "c1", Name: "Ops"})
	m.selectChat("c1")
	m.compose.SetValue("   ")

	next, cmd := m.submitCompose()
	m = next.(Model)

	if n := len(m.history.ForChat("c1")); n != 0 {
		t.Errorf("blank input appended %d messages", n)
	}
	if cmd != nil {
		t.Error("blank input must not reach the network")
	}
}

func TestUpdate_ContactAddFlow(t *testing.T) {
	m := signIn(t, newTestModel(t))
	token := m.dir.Begin()
	m.dir.Apply(token, []api.Candidate{{ID: "u9", Username: "kit", FullName: "Kit R"}})

	next, cmd := m.Update(contactAddedMsg{CandidateID: "u9"})
	m = next.(Model)

	if got := m.dir.Results(); !got[0].IsContact {
		t.Error("added candidate should be marked as contact")
	}
	if cmd == nil {
		t.Fatal("contact add should open a conversation")
	}

	// Backend refuses the chat; a local conversation opens instead.
	next, _ = m.Update(chatCreatedMsg{Err: errors.New("not implemented")})
	m = next.(Model)

	chats := m.registry.List()
	if len(chats) != 1 {
		t.Fatalf("chat count = %d, want 1", len(chats))
	}
	if chats[0].Name != "Kit R" {
		t.Errorf("local chat name = %q, want candidate's name", chats[0].Name)
	}
	if m.state.SelectedChat != chats[0].ID {
		t.Error("new conversation should be selected")
	}
}

func TestUpdate_LogoutResets(t *testing.T) {
	m := signIn(t, newTestModel(t))
	m.registry.Add(model.Chat{ID: "c1", Name: "Ops"})
	m.selectChat("c1")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)

	if m.state.Authed {
		t.Error("logout must sign the model out")
	}
	if m.state.SelectedChat != "" {
		t.Error("logout must clear the selection")
	}
	if len(m.registry.List()) != 0 {
		t.Error("logout must drop the chat registry")
	}
}

func TestUpdate_HistoryIngestOnce(t *testing.T) {
	m := signIn(t, newTestModel(t))
	m.registry.Add(model.Chat{ID: "c1", Name: "Ops"})
	m.selectChat("c1")

	wire := []api.WireMessage{
		{ID: "a", Text: "first", SenderID: "u2", Timestamp: "2026-08-28T10:00:00Z"},
		{ID: "b", Text: "second", SenderID: "u1", Timestamp: "2026-08-28T10:01:00Z"},
	}
	next, _ := m.Update(historyLoadedMsg{ChatID: "c1", Messages: wire})
	m = next.(Model)
	next, _ = m.Update(historyLoadedMsg{ChatID: "c1", Messages: wire})
	m = next.(Model)

	msgs := m.history.ForChat("c1")
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2 (no re-ingest)", len(msgs))
	}
	if msgs[0].Text != "first" || msgs[1].Text != "second" {
		t.Error("history order must match the wire order")
	}
	if msgs[0].IsMine || !msgs[1].IsMine {
		t.Error("ownership must follow the sender id")
	}
}

func TestUpdate_UnconfiguredRunsLocal(t *testing.T) {
	client := api.NewClient("")
	sessions := session.NewStore(client, storage.NewSessionStore(t.TempDir()))
	m := New(config.Default(), client, sessions)
	m.width = 100
	m.height = 40

	sess := &session.Session{User: api.Identity{ID: "u1", Username: "ada"}, Token: "tok"}
	next, cmd := m.Update(authResultMsg{Session: sess})
	m = next.(Model)
	if cmd != nil {
		t.Error("without a backend, sign-in must not fetch the chat listing")
	}

	m.registry.Add(model.Chat{ID: "c1", Name: "Ops"})
	if cmd := m.selectChat("c1"); cmd != nil {
		t.Error("without a backend, selection must not fetch history")
	}

	m.compose.SetValue("hello")
	next, cmd = m.submitCompose()
	m = next.(Model)

	if n := len(m.history.ForChat("c1")); n != 1 {
		t.Fatalf("message count = %d, want 1", n)
	}
	if cmd != nil {
		t.Error("without a backend, the send must stay local")
	}
	if m.toasts.HasToasts() {
		t.Error("local-only operation must not surface delivery errors")
	}
}

func TestUpdate_StaleSearchErrorDiscarded(t *testing.T) {
	m := signIn(t, newTestModel(t))

	older := m.dir.Begin()
	newer := m.dir.Begin()

	next, _ := m.Update(searchResultMsg{Token: newer, Results: []api.Candidate{{ID: "u2", Username: "kit"}}})
	m = next.(Model)
	next, _ = m.Update(searchResultMsg{Token: older, Err: errors.New("upstream timeout")})
	m = next.(Model)

	if m.toasts.HasToasts() {
		t.Error("a superseded search failure must stay silent")
	}
	if got := m.dir.Results(); len(got) != 1 || got[0].ID != "u2" {
		t.Errorf("newer result set disturbed by stale failure: %v", got)
	}
}

func TestUpdate_HistoryKeptAfterLocalAppend(t *testing.T) {
	m := signIn(t, newTestModel(t))
	m.registry.Add(model.Chat{ID: "c1", Name: "Ops"})
	m.selectChat("c1")

	// Compose before the history fetch completes
	m.compose.SetValue("early reply")
	next, _ := m.submitCompose()
	m = next.(Model)

	wire := []api.WireMessage{
		{ID: "a", Text: "from before", SenderID: "u2", Timestamp: "2026-08-28T09:00:00Z"},
	}
	next, _ = m.Update(historyLoadedMsg{ChatID: "c1", Messages: wire})
	m = next.(Model)

	msgs := m.history.ForChat("c1")
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2 (local append must not forfeit history)", len(msgs))
	}
	if msgs[0].Text != "early reply" || msgs[1].Text != "from before" {
		t.Errorf("unexpected order: %q then %q", msgs[0].Text, msgs[1].Text)
	}

	// A second delivery is a no-op once the log is seeded
	next, _ = m.Update(historyLoadedMsg{ChatID: "c1", Messages: wire})
	m = next.(Model)
	if n := len(m.history.ForChat("c1")); n != 2 {
		t.Errorf("message count = %d after re-delivery, want 2", n)
	}
}
