// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

// =============================================================================
// LOG TESTS
// =============================================================================

func TestLog_AppendText(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOK     bool
		wantText   string
		wantLength int
	}{
		{"plain text", "hi", true, "hi", 1},
		{"trims whitespace", "  hello  ", true, "hello", 1},
		{"rejects empty", "", false, "", 0},
		{"rejects whitespace only", "   ", false, "", 0},
		{"rejects tabs and newlines", "\t\n ", false, "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log := NewLog("chat-1")
			msg, ok := log.AppendText(tc.input)

			if ok != tc.wantOK {
				t.Fatalf("AppendText(%q) ok = %v, want %v", tc.input, ok, tc.wantOK)
			}
			if log.Len() != tc.wantLength {
				t.Errorf("Len() = %d, want %d", log.Len(), tc.wantLength)
			}
			if !ok {
				return
			}
			if msg.Text != tc.wantText {
				t.Errorf("Text = %q, want %q", msg.Text, tc.wantText)
			}
			if !msg.IsMine {
				t.Error("locally composed message should have IsMine = true")
			}
			if msg.Kind != KindText {
				t.Errorf("Kind = %q, want %q", msg.Kind, KindText)
			}
			if msg.Timestamp.IsZero() {
				t.Error("Timestamp should be captured at append time")
			}
		})
	}
}

func TestLog_AppendFile(t *testing.T) {
	log := NewLog("chat-1")
	msg := log.AppendFile("report.pdf", 2516582)

	if msg.Kind != KindFile {
		t.Errorf("Kind = %q, want %q", msg.Kind, KindFile)
	}
	if msg.FileName != "report.pdf" {
		t.Errorf("FileName = %q", msg.FileName)
	}
	if msg.Text != "" {
		t.Errorf("file message Text should be empty, got %q", msg.Text)
	}
	if !msg.IsMine {
		t.Error("IsMine should be true")
	}
	if got := msg.SizeLabel(); got != "2.4 MB" {
		t.Errorf("SizeLabel() = %q, want %q", got, "2.4 MB")
	}
	if log.Len() != 1 {
		t.Errorf("Len() = %d, want 1", log.Len())
	}
}

func TestLog_AppendOrderPreserved(t *testing.T) {
	log := NewLog("chat-1")
	inputs := []string{"first", "second", "third", "fourth"}
	for _, in := range inputs {
		if _, ok := log.AppendText(in); !ok {
			t.Fatalf("AppendText(%q) rejected", in)
		}
	}
	log.AppendFile("photo.png", 1048576)

	msgs := log.Messages()
	if len(msgs) != 5 {
		t.Fatalf("len = %d, want 5", len(msgs))
	}
	for i, in := range inputs {
		if msgs[i].Text != in {
			t.Errorf("position %d = %q, want %q", i, msgs[i].Text, in)
		}
	}
	// IDs must be strictly increasing so ID order equals append order
	for i := 1; i < len(msgs); i++ {
		if msgs[i].ID <= msgs[i-1].ID {
			t.Errorf("ID at %d (%d) not greater than predecessor (%d)", i, msgs[i].ID, msgs[i-1].ID)
		}
	}
}

func TestLog_IngestSharesOrdering(t *testing.T) {
	log := NewLog("chat-1")
	log.AppendText("local")
	log.Ingest("remote", time.Now().Add(-time.Hour), false)
	log.AppendText("local again")

	msgs := log.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	if msgs[1].Text != "remote" || msgs[1].IsMine {
		t.Errorf("ingested message misplaced or misattributed: %+v", msgs[1])
	}
	// Older remote timestamp does not reorder the log
	if msgs[2].Text != "local again" {
		t.Errorf("append after ingest should be last, got %q", msgs[2].Text)
	}
}

func TestLog_MessagesReturnsCopy(t *testing.T) {
	log := NewLog("chat-1")
	log.AppendText("one")

	held := log.Messages()
	log.AppendText("two")

	if len(held) != 1 {
		t.Errorf("held slice should not observe later appends, len = %d", len(held))
	}
	held[0].Text = "mutated"
	if log.Messages()[0].Text != "one" {
		t.Error("mutating the returned slice should not affect the log")
	}
}

func TestHistory_ForChat(t *testing.T) {
	h := NewHistory()

	if got := h.ForChat(""); got != nil {
		t.Errorf("unselected state should be nil, got %v", got)
	}
	if got := h.ForChat("unknown"); got == nil || len(got) != 0 {
		t.Errorf("unknown chat should be an empty sequence, got %v", got)
	}

	h.Log("chat-1").AppendText("hello")
	if got := h.ForChat("chat-1"); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
	// Separate conversations do not share state
	if got := h.ForChat("chat-2"); len(got) != 0 {
		t.Errorf("chat-2 should be empty, got %d entries", len(got))
	}
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func seedRegistry() *Registry {
	r := NewRegistry()
	r.Add(Chat{ID: "1", Name: "Alexey Ivanov"})
	r.Add(Chat{ID: "2", Name: "Design Team"})
	r.Add(Chat{ID: "3", Name: "maria"})
	return r
}

func TestRegistry_ListStableOrder(t *testing.T) {
	r := seedRegistry()

	want := []string{"1", "2", "3"}
	list := r.List()
	if len(list) != len(want) {
		t.Fatalf("len = %d, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, list[i].ID, id)
		}
	}

	// Re-adding an existing id replaces in place, keeping position
	r.Add(Chat{ID: "2", Name: "Design Team (renamed)"})
	list = r.List()
	if list[1].Name != "Design Team (renamed)" {
		t.Errorf("in-place replace failed: %+v", list[1])
	}
	if len(list) != 3 {
		t.Errorf("len after replace = %d, want 3", len(list))
	}
}

func TestRegistry_Filter(t *testing.T) {
	r := seedRegistry()

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"empty query returns full list", "", []string{"1", "2", "3"}},
		{"whitespace query returns full list", "   ", []string{"1", "2", "3"}},
		{"case insensitive", "ALEXEY", []string{"1"}},
		{"substring", "team", []string{"2"}},
		{"shared substring", "a", []string{"1", "2", "3"}},
		{"no match", "zzz", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Filter(tc.query)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("Filter(%q) len = %d, want %d", tc.query, len(got), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Errorf("position %d = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}

	// Filtering never mutates the underlying order
	r.Filter("team")
	r.Filter("maria")
	list := r.List()
	if list[0].ID != "1" || list[1].ID != "2" || list[2].ID != "3" {
		t.Error("filter mutated underlying order")
	}
}

func TestRegistry_FilterRecomputesFromFullSet(t *testing.T) {
	r := seedRegistry()

	first := r.Filter("team")
	if len(first) != 1 {
		t.Fatalf("Filter(team) len = %d, want 1", len(first))
	}
	// A different query is answered from the full set, not the previous result
	second := r.Filter("maria")
	if len(second) != 1 || second[0].ID != "3" {
		t.Errorf("Filter(maria) = %v, want chat 3", second)
	}
}

func TestRegistry_SelectTolerant(t *testing.T) {
	r := seedRegistry()

	r.Select("2")
	if r.Selected() != "2" {
		t.Errorf("Selected() = %q, want 2", r.Selected())
	}

	// Stale or unknown ids are permitted, not an error
	r.Select("deleted-chat")
	if r.Selected() != "deleted-chat" {
		t.Errorf("Selected() = %q, want deleted-chat", r.Selected())
	}
	if _, ok := r.Get("deleted-chat"); ok {
		t.Error("Get should report the id as absent")
	}
}

func TestRegistry_Touch(t *testing.T) {
	r := seedRegistry()
	r.Touch("3", "see you tomorrow", "14:32")

	chat, ok := r.Get("3")
	if !ok {
		t.Fatal("chat 3 missing")
	}
	if chat.LastMessage != "see you tomorrow" || chat.LastActivity != "14:32" {
		t.Errorf("Touch did not update preview: %+v", chat)
	}

	// Unknown ids are ignored
	r.Touch("nope", "x", "y")
	if len(r.List()) != 3 {
		t.Error("Touch must not add chats")
	}
}

func TestLog_Seeded(t *testing.T) {
	log := NewLog("c1")
	if log.Seeded() {
		t.Error("new log must not be seeded")
	}

	log.AppendText("local message")
	if log.Seeded() {
		t.Error("local appends must not seed the log")
	}

	log.MarkSeeded()
	if !log.Seeded() {
		t.Error("MarkSeeded should stick")
	}
}
