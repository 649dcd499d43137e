// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the relay views into a single Bubble Tea program.
//
// This file defines the Bubble Tea message types used by the application:
//   - Auth: login, register, and session-restore completions
//   - Directory: search completions (token-stamped) and contact adds
//   - Chats: listing, history ingestion, and send acknowledgments
//   - Profile: update completions
//   - Clipboard: copy results
//
// All message types follow Bubble Tea conventions and are immutable.
package app

import (
	"github.com/jeranaias/relay-tui/internal/api"
	"github.com/jeranaias/relay-tui/internal/session"
)

// =============================================================================
// AUTH MESSAGES
// =============================================================================

// sessionRestoredMsg delivers the startup restore result. Session is nil
// when nothing valid was persisted.
type sessionRestoredMsg struct {
	Session *session.Session
}

// authResultMsg delivers a login or register completion.
type authResultMsg struct {
	Session *session.Session
	Err     error
}

// =============================================================================
// DIRECTORY MESSAGES
// =============================================================================

// searchResultMsg delivers a directory search completion. Token identifies
// which issued request this answers; stale tokens are discarded on apply.
type searchResultMsg struct {
	Token   int64
	Results []api.Candidate
	Err     error
}

// contactAddedMsg delivers an add-contact completion for one candidate.
type contactAddedMsg struct {
	CandidateID string
	Err         error
}

// =============================================================================
// CHAT MESSAGES
// =============================================================================

// chatsLoadedMsg delivers the backend chat listing.
type chatsLoadedMsg struct {
	Chats []api.ChatSummary
	Err   error
}

// historyLoadedMsg delivers one conversation's backend history for
// ingestion into the local log.
type historyLoadedMsg struct {
	ChatID   string
	Messages []api.WireMessage
	Err      error
}

// chatCreatedMsg delivers a create-chat completion after adding a contact.
type chatCreatedMsg struct {
	Chat *api.ChatSummary
	Err  error
}

// sendResultMsg acknowledges a best-effort delivery of a composed message.
// The local append already happened; a failure only surfaces a toast.
type sendResultMsg struct {
	ChatID string
	Err    error
}

// =============================================================================
// PROFILE & CLIPBOARD MESSAGES
// =============================================================================

// profileUpdatedMsg delivers a profile update completion.
type profileUpdatedMsg struct {
	User *api.Identity
	Err  error
}

// copiedMsg reports a clipboard copy attempt.
type copiedMsg struct {
	Err error
}
