// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the authenticated identity and bearer credential.
//
// A Session exists only as an all-or-nothing pair: an identity without a
// token (or the reverse) is treated as no session. The Store is the single
// writer of persisted session state; login and register install and persist
// the pair, Restore rehydrates it at startup, and Logout erases it.
// Malformed persisted data always reads as absence, never as a startup
// failure.
package session
