// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the relay TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar             lipgloss.Style
	SectionItem         lipgloss.Style
	SectionItemActive   lipgloss.Style
	ChatItem            lipgloss.Style
	ChatItemSelected    lipgloss.Style
	ChatName            lipgloss.Style
	ChatPreview         lipgloss.Style
	ChatTime            lipgloss.Style
	UnreadBadge         lipgloss.Style
	OnlineDot           lipgloss.Style
	OfflineDot          lipgloss.Style
	AvatarPlaceholder   lipgloss.Style
	SidebarSearchBorder lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	MineBubble lipgloss.Style
	PeerBubble lipgloss.Style
	FileBubble lipgloss.Style
	BubbleTime lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// AUTH FORM STYLES
	// ==========================================================================

	AuthBox    lipgloss.Style
	AuthTitle  lipgloss.Style
	AuthLabel  lipgloss.Style
	AuthHint   lipgloss.Style
	AuthError  lipgloss.Style
	AuthSwitch lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// PLACEHOLDER / EMPTY STATE STYLES
	// ==========================================================================

	Placeholder      lipgloss.Style
	PlaceholderTitle lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status styles with shapes and high contrast
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		PaddingRight(1)

	t.SectionItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.SectionItemActive = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Padding(0, 1)

	t.ChatItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ChatItemSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Blue).
		Bold(true).
		Padding(0, 1)

	t.ChatName = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.ChatPreview = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ChatTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.UnreadBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Amber).
		Bold(true).
		Padding(0, 1)

	t.OnlineDot = lipgloss.NewStyle().
		Foreground(Emerald)

	t.OfflineDot = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.AvatarPlaceholder = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true).
		Padding(0, 1)

	t.SidebarSearchBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	// Message bubbles
	t.MineBubble = lipgloss.NewStyle().
		Foreground(MineBubbleFg).
		Background(MineBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(MineBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.PeerBubble = lipgloss.NewStyle().
		Foreground(PeerBubbleFg).
		Background(PeerBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(PeerBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.FileBubble = lipgloss.NewStyle().
		Foreground(FileBubbleFg).
		Background(FileBubbleBg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Amber).
		PaddingLeft(2).
		MarginLeft(4)

	t.BubbleTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Auth form
	t.AuthBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blue).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.AuthTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		MarginBottom(1)

	t.AuthLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.AuthHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.AuthError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.AuthSwitch = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Placeholders
	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Align(lipgloss.Center)

	t.PlaceholderTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true).
		Align(lipgloss.Center)

	// ACCESSIBILITY: shaped indicators keep state readable without color
	t.SuccessStyle = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.WarningStyle = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.InfoStyle = lipgloss.NewStyle().Foreground(Cyan)
}
