// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core data structures for relay conversations.
package model

import (
	"strings"
	"time"
)

// =============================================================================
// CONVERSATION LOG
// =============================================================================

// Log is the ordered message sequence for a single conversation.
//
// The log is append-only: new entries are always placed after all existing
// ones and past entries are never reordered. Message IDs are assigned from a
// per-log monotonic sequence, so ID order equals append order.
type Log struct {
	chatID   string
	messages []Message
	nextID   int64
	seeded   bool
}

// NewLog creates an empty log for the given conversation.
func NewLog(chatID string) *Log {
	return &Log{
		chatID: chatID,
		nextID: 1,
	}
}

// ChatID returns the conversation this log belongs to.
func (l *Log) ChatID() string {
	return l.chatID
}

// Len returns the number of messages in the log.
func (l *Log) Len() int {
	return len(l.messages)
}

// Messages returns a copy of the log in positional order. Callers may hold
// the returned slice across selection switches without observing later
// appends to this conversation.
func (l *Log) Messages() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// AppendText appends a locally composed text message.
//
// Input is trimmed first; empty or whitespace-only input is rejected with
// no state change. Accepted messages carry IsMine = true and a timestamp
// captured at append time.
func (l *Log) AppendText(text string) (Message, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Message{}, false
	}

	msg := Message{
		ID:        l.nextID,
		Kind:      KindText,
		Text:      trimmed,
		Timestamp: time.Now(),
		IsMine:    true,
	}
	l.nextID++
	l.messages = append(l.messages, msg)
	return msg, true
}

// AppendFile appends a file attachment entry. Always succeeds given a name
// and byte size; content and size limits are never validated here.
func (l *Log) AppendFile(fileName string, fileSize int64) Message {
	msg := Message{
		ID:        l.nextID,
		Kind:      KindFile,
		Timestamp: time.Now(),
		IsMine:    true,
		FileName:  fileName,
		FileSize:  fileSize,
	}
	l.nextID++
	l.messages = append(l.messages, msg)
	return msg
}

// Seeded reports whether this log has already absorbed its remote history.
// Local appends do not seed a log: a message composed before the history
// fetch completes must not forfeit that history.
func (l *Log) Seeded() bool {
	return l.seeded
}

// MarkSeeded records that the remote history for this conversation has been
// ingested. Later fetches for the same log are skipped.
func (l *Log) MarkSeeded() {
	l.seeded = true
}

// Ingest appends a remotely sourced message under the same append-only
// ordering rule as local composition. Unlike AppendText, empty text is
// accepted; the remote boundary owns content validation for its own
// messages.
func (l *Log) Ingest(text string, timestamp time.Time, isMine bool) Message {
	msg := Message{
		ID:        l.nextID,
		Kind:      KindText,
		Text:      text,
		Timestamp: timestamp,
		IsMine:    isMine,
	}
	l.nextID++
	l.messages = append(l.messages, msg)
	return msg
}

// =============================================================================
// HISTORY
// =============================================================================

// History holds one Log per conversation, created lazily on first use.
type History struct {
	logs map[string]*Log
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{
		logs: make(map[string]*Log),
	}
}

// Log returns the log for the given conversation, creating it if needed.
// An empty chat id yields nil; the caller renders the unselected placeholder
// in that case rather than an empty conversation.
func (h *History) Log(chatID string) *Log {
	if chatID == "" {
		return nil
	}
	log, ok := h.logs[chatID]
	if !ok {
		log = NewLog(chatID)
		h.logs[chatID] = log
	}
	return log
}

// ForChat returns a copy of the message sequence for the given conversation.
// Unknown ids yield an empty sequence.
func (h *History) ForChat(chatID string) []Message {
	if chatID == "" {
		return nil
	}
	log, ok := h.logs[chatID]
	if !ok {
		return []Message{}
	}
	return log.Messages()
}
