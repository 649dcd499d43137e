// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the relay messaging backend.
package api

import (
	"errors"
	"fmt"
)

// Op identifies which remote operation raised an error.
type Op string

// Remote operations.
const (
	OpLogin         Op = "login"
	OpRegister      Op = "register"
	OpSearch        Op = "search"
	OpAddContact    Op = "add_contact"
	OpListChats     Op = "list_chats"
	OpListMessages  Op = "list_messages"
	OpSendMessage   Op = "send_message"
	OpCreateChat    Op = "create_chat"
	OpUpdateProfile Op = "update_profile"
)

// Error classification sentinels. All remote failures are boundary failures
// at root, distinguished only by which operation raised them.
var (
	// ErrNotConfigured indicates no server base URL is configured.
	ErrNotConfigured = errors.New("server not configured")

	// ErrAuth classifies login and register failures.
	ErrAuth = errors.New("authentication failed")

	// ErrSearch classifies user search failures.
	ErrSearch = errors.New("search failed")

	// ErrContact classifies add-contact failures.
	ErrContact = errors.New("contact update failed")
)

// Error represents a classified failure from the messaging backend.
//
// Message carries the boundary's reported error text when the response
// included one; UserMessage falls back to a generic phrase otherwise so the
// UI never renders an empty notification.
type Error struct {
	Op      Op
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api %s (HTTP %d): %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s: %s", e.Op, e.Message)
}

// Unwrap maps the operation to its classification sentinel, so callers can
// use errors.Is(err, api.ErrAuth) and friends.
func (e *Error) Unwrap() error {
	switch e.Op {
	case OpLogin, OpRegister:
		return ErrAuth
	case OpSearch:
		return ErrSearch
	case OpAddContact:
		return ErrContact
	default:
		return nil
	}
}

// UserMessage returns the text to show the user: the boundary's reported
// message when present, else a generic fallback for the operation.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Op {
	case OpLogin:
		return "Login failed. Please try again."
	case OpRegister:
		return "Registration failed. Please try again."
	case OpSearch:
		return "Search failed. Please try again."
	case OpAddContact:
		return "Could not add contact. Please try again."
	default:
		return "Request failed. Please try again."
	}
}

// UserMessage extracts a user-visible message from any error, applying the
// classified fallbacks for *Error values.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if errors.Is(err, ErrNotConfigured) {
		return "No server configured. Set server.base_url in ~/.relay/config.toml."
	}
	return "Request failed. Please try again."
}
