// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the relay messaging backend.
package api

// =============================================================================
// WIRE TYPES
// =============================================================================

// Identity is the authenticated user profile as reported by the backend.
type Identity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Candidate is a user returned by directory search, carrying the
// relationship flag relative to the requester.
type Candidate struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	OnlineStatus bool   `json:"online_status"`
	IsContact    bool   `json:"is_contact"`
}

// ChatSummary is a conversation descriptor from the backend chat listing.
type ChatSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	LastMessage  string `json:"last_message,omitempty"`
	LastActivity string `json:"last_activity,omitempty"`
	UnreadCount  int    `json:"unread_count,omitempty"`
	Online       bool   `json:"online,omitempty"`
}

// WireMessage is a conversation entry from the backend message listing.
type WireMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	SenderID  string `json:"sender_id"`
	Timestamp string `json:"timestamp"`
}

// =============================================================================
// REQUESTS
// =============================================================================

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type addContactRequest struct {
	UserID        string `json:"user_id"`
	ContactUserID string `json:"contact_user_id"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type createChatRequest struct {
	UserID        string `json:"user_id"`
	ContactUserID string `json:"contact_user_id"`
}

type updateProfileRequest struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// =============================================================================
// RESPONSES
// =============================================================================

// AuthResponse is the payload of a successful login or register call.
type AuthResponse struct {
	User         Identity `json:"user"`
	SessionToken string   `json:"session_token"`
}

type searchResponse struct {
	Users []Candidate `json:"users"`
}

type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type chatsResponse struct {
	Chats []ChatSummary `json:"chats"`
}

type messagesResponse struct {
	Messages []WireMessage `json:"messages"`
}

type chatResponse struct {
	Chat ChatSummary `json:"chat"`
}

type profileResponse struct {
	User Identity `json:"user"`
}

// errorResponse is the backend's error envelope on non-2xx responses.
type errorResponse struct {
	Error string `json:"error"`
}
