// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable local persistence for session state.
//
// Session state lives in two independent string slots under the relay
// directory: the serialized identity and the bearer token. Both must be
// present and non-empty for a load to succeed; anything else reads as
// ErrNoSession. Writes go through util.AtomicWriteFile with 0600
// permissions.
//
// Conversation history is deliberately not persisted; it exists only for
// the running session.
package storage
