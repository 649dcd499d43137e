// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the relay TUI.
//
// Components here are stateless renderers plus the ToastManager, which
// holds the non-blocking notification stack. Views compose these instead
// of styling inline.
package components
