// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the relay views into a single Bubble Tea program.
//
// This file renders the interface: the auth screen while signed out, and the
// sidebar plus section pane afterwards.
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/relay-tui/internal/ui"
	"github.com/jeranaias/relay-tui/internal/ui/components"
	"github.com/jeranaias/relay-tui/internal/ui/styles"
	"github.com/jeranaias/relay-tui/internal/util"
)

// sectionLabels maps each section to its sidebar label.
var sectionLabels = map[ui.Section]string{
	ui.SectionChats:    "Chats",
	ui.SectionGroups:   "Groups",
	ui.SectionChannels: "Channels",
	ui.SectionContacts: "Contacts",
	ui.SectionProfile:  "Profile",
	ui.SectionSettings: "Settings",
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the full screen.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if !m.state.Authed {
		return m.viewAuth()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), m.viewSection())

	parts := []string{body}
	if m.toasts.HasToasts() {
		parts = append(parts, components.RenderToastStack(m.toasts.Toasts(), m.width, 0))
	}
	parts = append(parts, m.viewStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// =============================================================================
// AUTH SCREEN
// =============================================================================

func (m Model) viewAuth() string {
	t := m.theme

	title := "Sign in to relay"
	submit := "Sign in"
	switchHint := "Ctrl+T  create an account"
	if m.mode == authRegister {
		title = "Create your relay account"
		submit = "Register"
		switchHint = "Ctrl+T  back to sign in"
	}

	var b strings.Builder
	b.WriteString(t.AuthTitle.Render(title))
	b.WriteString("\n\n")

	labels := map[int]string{
		fieldUsername: "Username",
		fieldEmail:    "Email",
		fieldFullName: "Full name",
		fieldPassword: "Password",
	}
	for _, idx := range m.authFields() {
		b.WriteString(t.AuthLabel.Render(labels[idx]))
		b.WriteString("\n")
		b.WriteString(m.authInputs[idx].View())
		b.WriteString("\n\n")
	}

	if m.authBusy {
		b.WriteString(m.spin.View() + " " + t.AuthHint.Render("Contacting server..."))
	} else {
		b.WriteString(t.AuthHint.Render("Enter  " + submit))
	}
	b.WriteString("\n")
	b.WriteString(t.AuthSwitch.Render(switchHint))

	box := t.AuthBox.Render(b.String())
	screen := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)

	if m.toasts.HasToasts() {
		return lipgloss.JoinVertical(lipgloss.Left,
			screen,
			components.RenderToastStack(m.toasts.Toasts(), m.width, 0),
		)
	}
	return screen
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) viewSidebar() string {
	t := m.theme
	w := m.sidebarWidth()

	var b strings.Builder
	for _, s := range ui.Sections {
		label := sectionLabels[s]
		if s == m.state.Section {
			b.WriteString(t.SectionItemActive.Render("▸ " + label))
		} else {
			b.WriteString(t.SectionItem.Render("  " + label))
		}
		b.WriteString("\n")
	}

	if m.state.Section == ui.SectionChats {
		b.WriteString("\n")
		b.WriteString(t.SidebarSearchBorder.Width(w - 4).Render(m.filter.View()))
		b.WriteString("\n\n")
		b.WriteString(m.viewChatList(w))
	}

	return t.Sidebar.Width(w).Height(m.height - 1).Render(b.String())
}

func (m Model) viewChatList(w int) string {
	t := m.theme
	chats := m.visibleChats()
	if len(chats) == 0 {
		if m.filter.Value() != "" {
			return t.Placeholder.Render("No chats match")
		}
		return t.Placeholder.Render("No conversations yet")
	}

	var b strings.Builder
	for i, chat := range chats {
		dot := t.OfflineDot.Render(styles.StatusIndicators.Offline)
		if chat.Online {
			dot = t.OnlineDot.Render(styles.StatusIndicators.Online)
		}

		name := util.TruncateWidth(chat.Name, w-10)
		line := dot + " " + name
		if chat.UnreadCount > 0 {
			line += " " + t.UnreadBadge.Render(util.IntToString(chat.UnreadCount))
		}

		style := t.ChatItem
		if i == m.cursor && m.focus == focusSidebar {
			style = t.ChatItemSelected
		} else if chat.ID == m.state.SelectedChat {
			style = t.ChatItemSelected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		preview := chat.LastMessage
		if preview != "" {
			if chat.LastActivity != "" {
				preview += "  " + chat.LastActivity
			}
			b.WriteString("  " + t.ChatPreview.Render(util.TruncateWidth(preview, w-6)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// =============================================================================
// SECTION PANES
// =============================================================================

func (m Model) viewSection() string {
	switch m.state.Section {
	case ui.SectionChats:
		return m.viewConversation()
	case ui.SectionGroups:
		return m.viewPlaceholderPane("Groups", "No groups yet")
	case ui.SectionChannels:
		return m.viewPlaceholderPane("Channels", "No channels yet")
	case ui.SectionContacts:
		return m.viewContacts()
	case ui.SectionProfile:
		return m.viewProfile()
	case ui.SectionSettings:
		return m.viewSettings()
	}
	return ""
}

func (m Model) viewConversation() string {
	t := m.theme
	w := m.conversationWidth()

	chat, known := m.selectedChat()
	if m.state.SelectedChat == "" {
		// Nothing selected is a distinct state from an empty conversation
		return m.pane(lipgloss.Place(w, m.paneHeight(), lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				t.PlaceholderTitle.Render("No chat selected"),
				t.Placeholder.Render("Choose a conversation from the sidebar"),
			)))
	}

	header := t.ChatName.Render(chat.Name)
	if !known {
		header = t.ChatName.Render("Conversation")
	} else if chat.Online {
		header += " " + t.OnlineDot.Render(styles.StatusIndicators.Online)
	}

	input := m.compose.View()
	prompt := t.InputPrompt.Render("> ")
	if m.focus == focusAttach {
		prompt = t.InputPrompt.Render("📎 ")
		input = m.attach.View()
	}

	return m.pane(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.view.View(),
		t.InputContainer.Width(w-2).Render(prompt+input),
	))
}

func (m Model) viewContacts() string {
	t := m.theme
	w := m.conversationWidth()

	var b strings.Builder
	b.WriteString(t.ChatName.Render("Find people"))
	b.WriteString("\n\n")
	b.WriteString(t.SidebarSearchBorder.Width(w - 4).Render(m.contactSearch.View()))
	b.WriteString("\n\n")

	if m.searchBusy {
		b.WriteString(m.spin.View() + " " + t.Placeholder.Render("Searching..."))
		return m.pane(b.String())
	}

	results := m.dir.Results()
	if len(results) == 0 {
		if strings.TrimSpace(m.contactSearch.Value()) == "" {
			b.WriteString(t.Placeholder.Render("Type a name to search the directory"))
		} else {
			b.WriteString(t.Placeholder.Render("No one matches"))
		}
		return m.pane(b.String())
	}

	for i, cand := range results {
		dot := t.OfflineDot.Render(styles.StatusIndicators.Offline)
		if cand.OnlineStatus {
			dot = t.OnlineDot.Render(styles.StatusIndicators.Online)
		}

		name := candidateName(cand)
		line := dot + " " + name + " " + t.ChatPreview.Render("@"+cand.Username)

		switch {
		case cand.IsContact:
			line += "  " + t.SuccessStyle.Render(styles.StatusIndicators.Success+" Contact")
		case m.pendingAdds[cand.ID]:
			line += "  " + t.InfoStyle.Render("Adding...")
		default:
			line += "  " + t.ShortcutDesc.Render("[Enter] Add")
		}

		style := t.ChatItem
		if i == m.contactCursor {
			style = t.ChatItemSelected
		}
		b.WriteString(style.Render(util.TruncateWidth(line, w-4)))
		b.WriteString("\n")
	}
	return m.pane(b.String())
}

func (m Model) viewProfile() string {
	t := m.theme

	sess := m.sessions.Current()
	if sess == nil {
		return m.pane(t.Placeholder.Render("Not signed in"))
	}
	u := sess.User

	var b strings.Builder
	b.WriteString(t.AvatarPlaceholder.Render(util.Initials(u.FullName)))
	b.WriteString("  ")
	b.WriteString(t.ChatName.Render(u.FullName))
	b.WriteString("\n\n")
	b.WriteString(t.AuthLabel.Render("Username  ") + "@" + u.Username + "\n")
	b.WriteString(t.AuthLabel.Render("Email     ") + u.Email + "\n")
	b.WriteString("\n")
	b.WriteString(t.AuthLabel.Render("Display name"))
	b.WriteString("\n")
	b.WriteString(m.profileName.View())
	b.WriteString("\n\n")
	if m.profileBusy {
		b.WriteString(m.spin.View() + " " + t.AuthHint.Render("Saving..."))
	} else {
		b.WriteString(t.AuthHint.Render("Enter  save changes"))
	}
	return m.pane(b.String())
}

func (m Model) viewSettings() string {
	t := m.theme

	var b strings.Builder
	b.WriteString(t.ChatName.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(t.AuthLabel.Render("Server   ") + m.cfg.Server.BaseURL + "\n")
	b.WriteString(t.AuthLabel.Render("Theme    ") + m.cfg.UI.Theme + "\n")
	b.WriteString(t.AuthLabel.Render("Storage  ") + m.cfg.Storage.Dir + "\n")
	b.WriteString("\n")
	b.WriteString(t.AuthHint.Render("Edit config.toml and relay reloads it live"))
	return m.pane(b.String())
}

func (m Model) viewPlaceholderPane(title, hint string) string {
	t := m.theme
	return m.pane(lipgloss.Place(m.conversationWidth(), m.paneHeight(), lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			t.PlaceholderTitle.Render(title),
			t.Placeholder.Render(hint),
		)))
}

// =============================================================================
// CHROME
// =============================================================================

func (m Model) viewStatusBar() string {
	t := m.theme

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, t.ShortcutKey.Render(h.Key)+" "+t.ShortcutDesc.Render(h.Desc))
	}
	left := strings.Join(parts, "  ")

	right := ""
	if sess := m.sessions.Current(); sess != nil {
		right = t.ShortcutDesc.Render("@" + sess.User.Username)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return t.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// pane wraps section content in the main-pane container.
func (m Model) pane(content string) string {
	return m.theme.Container.Width(m.conversationWidth()).Height(m.height - 1).Render(content)
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

func (m Model) sidebarWidth() int {
	w := m.cfg.UI.SidebarWidth
	if w <= 0 {
		w = 28
	}
	if m.width > 0 && w > m.width/2 {
		w = m.width / 2
	}
	return w
}

func (m Model) conversationWidth() int {
	w := m.width - m.sidebarWidth() - 2
	if w < 20 {
		w = 20
	}
	return w
}

// paneHeight is the usable height inside a section pane.
func (m Model) paneHeight() int {
	h := m.height - 2
	if h < 4 {
		h = 4
	}
	return h
}

// conversationHeight is the viewport height between header and input row.
func (m Model) conversationHeight() int {
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	return h
}

// refreshConversation rebuilds the viewport content for the open chat and
// scrolls to the newest entry.
func (m *Model) refreshConversation() {
	msgs := m.history.ForChat(m.state.SelectedChat)
	if len(msgs) == 0 {
		m.view.SetContent(m.theme.Placeholder.Render("No messages yet. Say hello."))
		return
	}

	rendered := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		rendered = append(rendered, components.RenderMessage(m.theme, msg, m.conversationWidth()-2))
	}
	m.view.SetContent(strings.Join(rendered, "\n"))
	m.view.GotoBottom()
}
