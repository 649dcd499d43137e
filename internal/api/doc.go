// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the relay messaging backend.
//
// The backend exposes authentication, directory search, contact management,
// and conversation endpoints over JSON. Every client method returns either a
// success value or a classified *Error; nothing is retried automatically,
// and every failure requires explicit user re-initiation.
//
// # Error Classification
//
// Errors unwrap to one of the classification sentinels:
//
//	errors.Is(err, api.ErrAuth)    // login / register
//	errors.Is(err, api.ErrSearch)  // user search
//	errors.Is(err, api.ErrContact) // add contact
//
// UserMessage extracts the text to display: the backend's reported message
// when present, else a generic fallback per operation.
//
// # Security
//
// Responses are read through a size-limited reader, request logging never
// includes headers or bodies, and the Authorization header is cleared
// immediately after each request.
package api
