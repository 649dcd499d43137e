// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app assembles the relay terminal application.
//
// The package follows the standard Bubble Tea split: model.go holds state,
// update.go the transition logic, view.go the rendering, commands.go the
// async work, and messages.go the completion types. Remote calls never run
// inside Update; they run as commands and come back as one message each.
package app
