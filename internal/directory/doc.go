// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package directory resolves search queries to candidate users and tracks
// contact-relationship state.
//
// The result set is replaced wholesale on each accepted search; there is no
// incremental merging. Because in-flight searches are never canceled, every
// search carries a monotonically increasing request token and a completion
// is discarded unless its token is the latest issued. The is_contact flag
// is a cache of last-known backend truth: monotonic within one result set,
// refreshed entirely by the next search.
package directory
