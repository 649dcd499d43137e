// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core data structures for relay conversations.
package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// CHAT REGISTRY
// =============================================================================

// Chat is a lightweight descriptor of a conversation for list display.
type Chat struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar,omitempty"`
	LastMessage  string `json:"last_message,omitempty"`
	LastActivity string `json:"last_activity,omitempty"`
	UnreadCount  int    `json:"unread_count,omitempty"`
	Online       bool   `json:"online,omitempty"`
}

// Registry is the ordered collection of conversations visible to the user.
//
// Chats render in stable insertion order regardless of filter state or
// mutation. Filtering is a pure projection over the full set.
type Registry struct {
	chats    []Chat
	selected string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a chat to the registry. Adding an id that already exists
// replaces that chat's summary in place, preserving its position.
func (r *Registry) Add(chat Chat) {
	for i := range r.chats {
		if r.chats[i].ID == chat.ID {
			r.chats[i] = chat
			return
		}
	}
	r.chats = append(r.chats, chat)
}

// List returns the chats in stable insertion order, independent of any
// filter. The returned slice is a copy.
func (r *Registry) List() []Chat {
	out := make([]Chat, len(r.chats))
	copy(out, r.chats)
	return out
}

// Filter returns the chats whose name contains the query, case-insensitively.
// An empty query returns the full list. Filtering never mutates the
// underlying order and always recomputes from the full set.
func (r *Registry) Filter(query string) []Chat {
	needle := foldName(strings.TrimSpace(query))
	if needle == "" {
		return r.List()
	}

	var out []Chat
	for _, chat := range r.chats {
		if strings.Contains(foldName(chat.Name), needle) {
			out = append(out, chat)
		}
	}
	if out == nil {
		out = []Chat{}
	}
	return out
}

// Select records the active chat id. Selecting an id not present in the
// registry is permitted; stale ids simply yield an empty conversation
// instead of crashing the view layer.
func (r *Registry) Select(chatID string) {
	r.selected = chatID
}

// Selected returns the active chat id, or "" when nothing is selected.
func (r *Registry) Selected() string {
	return r.selected
}

// Get looks up a chat by id.
func (r *Registry) Get(chatID string) (Chat, bool) {
	for _, chat := range r.chats {
		if chat.ID == chatID {
			return chat, true
		}
	}
	return Chat{}, false
}

// Touch updates a chat's preview line and activity label in place. Position
// in the list is unchanged; unknown ids are ignored.
func (r *Registry) Touch(chatID, preview, activity string) {
	for i := range r.chats {
		if r.chats[i].ID == chatID {
			r.chats[i].LastMessage = preview
			r.chats[i].LastActivity = activity
			return
		}
	}
}

// foldName normalizes a display name for matching. NFC normalization keeps
// composed and decomposed accents from defeating the substring match.
func foldName(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
