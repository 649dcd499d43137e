// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core data structures for relay conversations.
//
// # Key Types
//
//   - Message: a single conversation entry, text or file attachment
//   - Log: the append-only ordered message sequence for one conversation
//   - History: lazily created Logs keyed by conversation id
//   - Chat: lightweight conversation descriptor for list display
//   - Registry: the ordered, filterable collection of visible chats
//
// # Ordering
//
// Logs are append-only and never reorder past entries. Message IDs come
// from a per-log monotonic sequence, so ID order, positional order, and
// append order all agree. Remote ingestion appends through the same path
// as local composition and inherits the same guarantee.
package model
