// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Spot-check that styles render without panicking and apply content
	out := theme.ChatItemSelected.Render("Alexey Ivanov")
	if out == "" {
		t.Error("ChatItemSelected produced empty output")
	}
	if theme.MineBubble.Render("hi") == "" {
		t.Error("MineBubble produced empty output")
	}
}

func TestStatusIndicators(t *testing.T) {
	if StatusIndicators.Online == StatusIndicators.Offline {
		t.Error("online and offline indicators must differ by shape, not only color")
	}
	if StatusIndicators.Error == "" || StatusIndicators.Success == "" {
		t.Error("indicators must be non-empty")
	}
}
