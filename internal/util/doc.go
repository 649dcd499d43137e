// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the relay application.
//
// This package contains common helper functions used throughout the
// application for string manipulation, display formatting, and file
// operations.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth, PadWidth: display-width aware layout helpers
//   - Initials: avatar placeholder text from a display name
//
// Display Formatting:
//   - FormatFileSize: attachment sizes in megabytes ("2.4 MB")
//   - FormatClock: hour:minute timestamps for message bubbles
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
package util
