// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the relay TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/relay-tui/internal/model"
	"github.com/jeranaias/relay-tui/internal/ui/styles"
)

// RenderMessage renders one conversation entry as a bubble. Own messages
// align right in blue, peer messages left in neutral tones, file entries
// show a paperclip line with the size label.
func RenderMessage(theme *styles.Theme, msg model.Message, paneWidth int) string {
	bubbleWidth := paneWidth - 10
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	timestamp := theme.BubbleTime.Render(msg.Clock())

	var bubble string
	switch msg.Kind {
	case model.KindFile:
		content := "📎 " + msg.FileName + "  " + msg.SizeLabel()
		bubble = theme.FileBubble.Render(content)
	default:
		body := wrap(msg.Text, bubbleWidth)
		if msg.IsMine {
			bubble = theme.MineBubble.Render(body)
		} else {
			bubble = theme.PeerBubble.Render(body)
		}
	}

	line := lipgloss.JoinVertical(lipgloss.Left, bubble, timestamp)
	if msg.IsMine && paneWidth > 0 {
		return lipgloss.PlaceHorizontal(paneWidth, lipgloss.Right, line)
	}
	return line
}
