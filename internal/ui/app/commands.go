// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the relay views into a single Bubble Tea program.
//
// This file defines the async commands. Each remote call runs in its own
// tea.Cmd and resolves to exactly one completion message; nothing blocks
// the update loop.
package app

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/relay-tui/internal/api"
	"github.com/jeranaias/relay-tui/internal/directory"
	"github.com/jeranaias/relay-tui/internal/session"
)

// restoreSessionCmd rehydrates the persisted session at startup.
func restoreSessionCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		return sessionRestoredMsg{Session: store.Restore()}
	}
}

// loginCmd authenticates with the backend.
func loginCmd(store *session.Store, username, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := store.Login(context.Background(), username, password)
		return authResultMsg{Session: sess, Err: err}
	}
}

// registerCmd creates an account and authenticates.
func registerCmd(store *session.Store, username, email, password, fullName string) tea.Cmd {
	return func() tea.Msg {
		sess, err := store.Register(context.Background(), username, email, password, fullName)
		return authResultMsg{Session: sess, Err: err}
	}
}

// searchCmd runs one directory search for an already-issued token.
// In-flight searches are never canceled; the token lets the update loop
// discard completions that are no longer the latest.
func searchCmd(dir *directory.Directory, token int64, query, requesterID string) tea.Cmd {
	return func() tea.Msg {
		results, err := dir.Search(context.Background(), query, requesterID)
		return searchResultMsg{Token: token, Results: results, Err: err}
	}
}

// addContactCmd records a contact relationship remotely.
func addContactCmd(dir *directory.Directory, requesterID, candidateID string) tea.Cmd {
	return func() tea.Msg {
		err := dir.AddContact(context.Background(), requesterID, candidateID)
		return contactAddedMsg{CandidateID: candidateID, Err: err}
	}
}

// loadChatsCmd fetches the backend chat listing.
func loadChatsCmd(client *api.Client, userID string) tea.Cmd {
	return func() tea.Msg {
		chats, err := client.ListChats(context.Background(), userID)
		return chatsLoadedMsg{Chats: chats, Err: err}
	}
}

// loadHistoryCmd fetches one conversation's history for ingestion.
func loadHistoryCmd(client *api.Client, chatID string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := client.ListMessages(context.Background(), chatID)
		return historyLoadedMsg{ChatID: chatID, Messages: msgs, Err: err}
	}
}

// createChatCmd opens a conversation with a freshly added contact.
func createChatCmd(client *api.Client, userID, contactUserID string) tea.Cmd {
	return func() tea.Msg {
		chat, err := client.CreateChat(context.Background(), userID, contactUserID)
		return chatCreatedMsg{Chat: chat, Err: err}
	}
}

// sendMessageCmd delivers an already-appended message best-effort.
func sendMessageCmd(client *api.Client, chatID, text string) tea.Cmd {
	return func() tea.Msg {
		err := client.SendMessage(context.Background(), chatID, text)
		return sendResultMsg{ChatID: chatID, Err: err}
	}
}

// updateProfileCmd pushes a display-name change to the backend.
func updateProfileCmd(client *api.Client, fullName string) tea.Cmd {
	return func() tea.Msg {
		user, err := client.UpdateProfile(context.Background(), fullName, "")
		return profileUpdatedMsg{User: user, Err: err}
	}
}

// copyCmd writes text to the system clipboard.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{Err: clipboard.WriteAll(text)}
	}
}
