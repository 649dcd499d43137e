// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the relay TUI.
//
// Colors are lipgloss.AdaptiveColor pairs that pick the right variant for
// light and dark terminals. Theme bundles every style the views use, so a
// single NewTheme call at startup configures the whole surface.
package styles
