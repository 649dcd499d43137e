// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the relay views into a single Bubble Tea program.
//
// This file contains the update loop. Every remote completion arrives as a
// message from commands.go; all view-coordination state changes flow through
// ui.Reduce so the transition rules live in one place.
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/relay-tui/internal/api"
	"github.com/jeranaias/relay-tui/internal/model"
	"github.com/jeranaias/relay-tui/internal/ui"
	"github.com/jeranaias/relay-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = m.conversationWidth()
		m.view.Height = m.conversationHeight()
		m.refreshConversation()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case sessionRestoredMsg:
		return m.handleSessionRestored(msg)

	case authResultMsg:
		return m.handleAuthResult(msg)

	case searchResultMsg:
		return m.handleSearchResult(msg)

	case contactAddedMsg:
		return m.handleContactAdded(msg)

	case chatsLoadedMsg:
		return m.handleChatsLoaded(msg)

	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case chatCreatedMsg:
		return m.handleChatCreated(msg)

	case sendResultMsg:
		if msg.Err != nil {
			m.toasts.AddError("Not delivered: " + api.UserMessage(msg.Err))
		}
		return m, nil

	case profileUpdatedMsg:
		return m.handleProfileUpdated(msg)

	case copiedMsg:
		if msg.Err != nil {
			m.toasts.AddError("Copy failed")
		} else {
			m.toasts.AddStatus("Copied to clipboard")
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if !m.state.Authed {
			return m.updateAuth(msg)
		}
		return m.updateMain(msg)
	}

	return m, nil
}

// =============================================================================
// COMPLETION HANDLERS
// =============================================================================

func (m Model) handleSessionRestored(msg sessionRestoredMsg) (tea.Model, tea.Cmd) {
	if !msg.Session.Valid() {
		return m, nil
	}
	m.state = ui.Reduce(m.state, ui.SignedIn{})
	m.profileName.SetValue(msg.Session.User.FullName)
	if !m.client.IsConfigured() {
		return m, nil
	}
	return m, loadChatsCmd(m.client, msg.Session.User.ID)
}

func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	m.authBusy = false
	if msg.Err != nil {
		m.toasts.AddError(api.UserMessage(msg.Err))
		return m, nil
	}

	m.state = ui.Reduce(m.state, ui.SignedIn{})
	m.profileName.SetValue(msg.Session.User.FullName)
	for i := range m.authInputs {
		m.authInputs[i].Reset()
	}
	m.setFocus(focusSidebar)
	if !m.client.IsConfigured() {
		return m, nil
	}
	return m, loadChatsCmd(m.client, msg.Session.User.ID)
}

func (m Model) handleSearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if !m.dir.IsLatest(msg.Token) {
		// A newer search supersedes this one entirely, errors included
		return m, nil
	}
	m.searchBusy = false
	if msg.Err != nil {
		m.toasts.AddError(api.UserMessage(msg.Err))
		return m, nil
	}
	if m.dir.Apply(msg.Token, msg.Results) {
		m.contactCursor = 0
	}
	return m, nil
}

func (m Model) handleContactAdded(msg contactAddedMsg) (tea.Model, tea.Cmd) {
	delete(m.pendingAdds, msg.CandidateID)
	if msg.Err != nil {
		m.toasts.AddError(api.UserMessage(msg.Err))
		return m, nil
	}

	m.dir.MarkContact(msg.CandidateID)
	for _, cand := range m.dir.Results() {
		if cand.ID == msg.CandidateID {
			c := cand
			m.pendingChat = &c
			break
		}
	}
	m.toasts.AddSuccess("Contact added")
	return m, createChatCmd(m.client, m.userID(), msg.CandidateID)
}

func (m Model) handleChatsLoaded(msg chatsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.toasts.AddError(api.UserMessage(msg.Err))
		return m, nil
	}
	for _, c := range msg.Chats {
		m.registry.Add(model.Chat{
			ID:           c.ID,
			Name:         c.Name,
			Avatar:       c.AvatarURL,
			LastMessage:  c.LastMessage,
			LastActivity: c.LastActivity,
			UnreadCount:  c.UnreadCount,
			Online:       c.Online,
		})
	}
	return m, nil
}

func (m Model) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.toasts.AddError(api.UserMessage(msg.Err))
		return m, nil
	}

	log := m.history.Log(msg.ChatID)
	if log == nil || log.Seeded() {
		// Already absorbed; never re-ingest on reselect. A local append
		// made before this completion does not count as seeding, so the
		// fetched history still lands after it.
		return m, nil
	}
	me := m.userID()
	for _, w := range msg.Messages {
		ts, err := time.Parse(time.RFC3339, w.Timestamp)
		if err != nil {
			ts = time.Now()
		}
		log.Ingest(w.Text, ts, w.SenderID == me)
	}
	log.MarkSeeded()
	m.refreshConversation()
	return m, nil
}

func (m Model) handleChatCreated(msg chatCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.pendingChat != nil {
			// Backend could not open the conversation; start a local one so
			// the new contact is immediately reachable.
			chat := model.Chat{
				ID:     uuid.NewString(),
				Name:   candidateName(*m.pendingChat),
				Online: m.pendingChat.OnlineStatus,
			}
			m.pendingChat = nil
			m.registry.Add(chat)
			m.selectChat(chat.ID)
			return m, nil
		}
		m.toasts.AddError(api.UserMessage(msg.Err))
		return m, nil
	}

	m.pendingChat = nil
	m.registry.Add(model.Chat{
		ID:           msg.Chat.ID,
		Name:         msg.Chat.Name,
		Avatar:       msg.Chat.AvatarURL,
		LastMessage:  msg.Chat.LastMessage,
		LastActivity: msg.Chat.LastActivity,
		Online:       msg.Chat.Online,
	})
	m.selectChat(msg.Chat.ID)
	return m, nil
}

func (m Model) handleProfileUpdated(msg profileUpdatedMsg) (tea.Model, tea.Cmd) {
	m.profileBusy = false
	if msg.Err != nil {
		m.toasts.AddError(api.UserMessage(msg.Err))
		return m, nil
	}
	if sess := m.sessions.Current(); sess != nil && msg.User != nil {
		sess.User = *msg.User
		m.profileName.SetValue(msg.User.FullName)
	}
	m.toasts.AddSuccess("Profile updated")
	return m, nil
}

// =============================================================================
// AUTH KEYS
// =============================================================================

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.authBusy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleAuth):
		if m.mode == authLogin {
			m.mode = authRegister
		} else {
			m.mode = authLogin
		}
		m.setAuthFocus(0)
		return m, nil

	case msg.String() == "tab", msg.String() == "down":
		m.setAuthFocus(m.authFocus + 1)
		return m, nil

	case msg.String() == "shift+tab", msg.String() == "up":
		m.setAuthFocus(m.authFocus - 1)
		return m, nil

	case msg.String() == "enter":
		return m.submitAuth()
	}

	fields := m.authFields()
	idx := fields[m.authFocus]
	var cmd tea.Cmd
	m.authInputs[idx], cmd = m.authInputs[idx].Update(msg)
	return m, cmd
}

// authFields returns the input indices visible in the current auth mode.
func (m Model) authFields() []int {
	if m.mode == authLogin {
		return []int{fieldUsername, fieldPassword}
	}
	return []int{fieldUsername, fieldEmail, fieldFullName, fieldPassword}
}

// setAuthFocus moves focus to the given visible-field position, wrapping.
func (m *Model) setAuthFocus(pos int) {
	fields := m.authFields()
	if pos < 0 {
		pos = len(fields) - 1
	}
	pos %= len(fields)
	m.authFocus = pos

	for i := range m.authInputs {
		m.authInputs[i].Blur()
	}
	m.authInputs[fields[pos]].Focus()
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	username := m.authInputs[fieldUsername].Value()
	password := m.authInputs[fieldPassword].Value()
	if username == "" || password == "" {
		m.toasts.AddError("Username and password are required")
		return m, nil
	}

	m.authBusy = true
	if m.mode == authLogin {
		return m, loginCmd(m.sessions, username, password)
	}
	return m, registerCmd(
		m.sessions,
		username,
		m.authInputs[fieldEmail].Value(),
		password,
		m.authInputs[fieldFullName].Value(),
	)
}

// =============================================================================
// MAIN KEYS
// =============================================================================

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global bindings first. Ctrl chords never collide with text entry.
	switch {
	case key.Matches(msg, m.keys.Logout):
		return m.logout()

	case key.Matches(msg, m.keys.NextSection):
		m.switchSection(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevSection):
		m.switchSection(-1)
		return m, nil
	}

	switch m.focus {
	case focusSidebar:
		return m.updateSidebar(msg)
	case focusFilter:
		return m.updateFilter(msg)
	case focusCompose:
		return m.updateCompose(msg)
	case focusAttach:
		return m.updateAttach(msg)
	case focusContactSearch:
		return m.updateContacts(msg)
	case focusProfile:
		return m.updateProfile(msg)
	}
	return m, nil
}

func (m Model) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleChats())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		chats := m.visibleChats()
		if m.cursor >= len(chats) {
			return m, nil
		}
		chat := chats[m.cursor]
		cmd := m.selectChat(chat.ID)
		m.setFocus(focusCompose)
		return m, cmd

	case key.Matches(msg, m.keys.Filter):
		m.setFocus(focusFilter)
		return m, nil

	case key.Matches(msg, m.keys.Attach):
		if m.state.SelectedChat != "" {
			m.setFocus(focusAttach)
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLastMessage()

	case msg.String() == "]":
		m.switchSection(1)
		return m, nil

	case msg.String() == "[":
		m.switchSection(-1)
		return m, nil
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
		m.setFocus(focusSidebar)
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	// Visible set changed; keep the cursor inside it
	if n := len(m.visibleChats()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.setFocus(focusSidebar)
		return m, nil

	case key.Matches(msg, m.keys.Attach):
		m.setFocus(focusAttach)
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLastMessage()

	case key.Matches(msg, m.keys.Select):
		return m.submitCompose()
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m Model) submitCompose() (tea.Model, tea.Cmd) {
	chatID := m.state.SelectedChat
	log := m.history.Log(chatID)
	if log == nil {
		return m, nil
	}

	sent, ok := log.AppendText(m.compose.Value())
	if !ok {
		// Blank input appends nothing and keeps the draft
		return m, nil
	}
	m.compose.Reset()
	m.registry.Touch(chatID, sent.Text, sent.Clock())
	m.refreshConversation()

	// Local append is the source of truth; delivery is best effort and
	// only attempted when a backend exists to deliver to.
	if !m.client.IsConfigured() {
		return m, nil
	}
	return m, sendMessageCmd(m.client, chatID, sent.Text)
}

func (m Model) updateAttach(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.attach.Reset()
		m.setFocus(focusCompose)
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.submitAttach()
	}

	var cmd tea.Cmd
	m.attach, cmd = m.attach.Update(msg)
	return m, cmd
}

func (m Model) submitAttach() (tea.Model, tea.Cmd) {
	path := m.attach.Value()
	info, err := os.Stat(path)
	if err != nil {
		m.toasts.AddError("Cannot read file: " + path)
		return m, nil
	}

	chatID := m.state.SelectedChat
	log := m.history.Log(chatID)
	if log == nil {
		return m, nil
	}

	sent := log.AppendFile(filepath.Base(path), info.Size())
	m.registry.Touch(chatID, "📎 "+sent.FileName, sent.Clock())
	m.attach.Reset()
	m.setFocus(focusCompose)
	m.refreshConversation()
	return m, nil
}

func (m Model) updateContacts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.contactCursor > 0 {
			m.contactCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.contactCursor < len(m.dir.Results())-1 {
			m.contactCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.submitAddContact()
	}

	before := m.contactSearch.Value()
	var cmd tea.Cmd
	m.contactSearch, cmd = m.contactSearch.Update(msg)
	if m.contactSearch.Value() == before {
		return m, cmd
	}

	// Re-query on every edit. The token makes out-of-order completions
	// harmless: only the latest issued search may replace the result set.
	token := m.dir.Begin()
	m.searchBusy = true
	return m, tea.Batch(cmd, searchCmd(m.dir, token, m.contactSearch.Value(), m.userID()))
}

func (m Model) submitAddContact() (tea.Model, tea.Cmd) {
	results := m.dir.Results()
	if m.contactCursor >= len(results) {
		return m, nil
	}
	cand := results[m.contactCursor]
	if cand.IsContact || m.pendingAdds[cand.ID] {
		return m, nil
	}

	m.pendingAdds[cand.ID] = true
	return m, addContactCmd(m.dir, m.userID(), cand.ID)
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Select) {
		if m.profileBusy || m.profileName.Value() == "" {
			return m, nil
		}
		m.profileBusy = true
		return m, updateProfileCmd(m.client, m.profileName.Value())
	}

	var cmd tea.Cmd
	m.profileName, cmd = m.profileName.Update(msg)
	return m, cmd
}

// =============================================================================
// SHARED TRANSITIONS
// =============================================================================

// selectChat routes the selection through the reducer and fetches history
// until the conversation has been seeded from the backend.
func (m *Model) selectChat(chatID string) tea.Cmd {
	m.state = ui.Reduce(m.state, ui.SelectChat{ChatID: chatID})
	m.registry.Select(chatID)
	m.refreshConversation()

	if !m.client.IsConfigured() {
		return nil
	}
	if log := m.history.Log(chatID); log != nil && !log.Seeded() {
		return loadHistoryCmd(m.client, chatID)
	}
	return nil
}

// switchSection cycles the active section by delta. Selection is preserved
// across switches; returning to chats restores the open conversation.
func (m *Model) switchSection(delta int) {
	cur := 0
	for i, s := range ui.Sections {
		if s == m.state.Section {
			cur = i
			break
		}
	}
	next := (cur + delta + len(ui.Sections)) % len(ui.Sections)

	leaving := m.state.Section
	m.state = ui.Reduce(m.state, ui.SwitchSection{Section: ui.Sections[next]})
	if m.state.Section == leaving {
		return
	}

	if leaving == ui.SectionContacts {
		m.dir.Clear()
		m.contactSearch.Reset()
		m.contactCursor = 0
	}

	switch m.state.Section {
	case ui.SectionContacts:
		m.setFocus(focusContactSearch)
	case ui.SectionProfile:
		m.setFocus(focusProfile)
	default:
		m.setFocus(focusSidebar)
	}
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	m.sessions.Logout()
	m.state = ui.Reduce(m.state, ui.SignedOut{})

	m.registry = model.NewRegistry()
	m.history = model.NewHistory()
	m.dir.Clear()
	m.pendingAdds = make(map[string]bool)
	m.pendingChat = nil
	m.cursor = 0
	m.contactCursor = 0
	m.filter.Reset()
	m.compose.Reset()
	m.attach.Reset()
	m.contactSearch.Reset()
	m.profileName.Reset()

	m.mode = authLogin
	m.setAuthFocus(0)
	return m, nil
}

// copyLastMessage copies the newest text message of the open conversation.
func (m *Model) copyLastMessage() tea.Cmd {
	msgs := m.history.ForChat(m.state.SelectedChat)
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Kind == model.KindText {
			return copyCmd(msgs[i].Text)
		}
	}
	return nil
}

// setFocus moves keyboard focus between panes, blurring every input first.
func (m *Model) setFocus(f focusArea) {
	m.filter.Blur()
	m.compose.Blur()
	m.attach.Blur()
	m.contactSearch.Blur()
	m.profileName.Blur()

	m.focus = f
	switch f {
	case focusFilter:
		m.filter.Focus()
	case focusCompose:
		m.compose.Focus()
	case focusAttach:
		m.attach.Focus()
	case focusContactSearch:
		m.contactSearch.Focus()
	case focusProfile:
		m.profileName.Focus()
	}
}

// userID returns the authenticated user's id, or "" when signed out.
func (m *Model) userID() string {
	if sess := m.sessions.Current(); sess != nil {
		return sess.User.ID
	}
	return ""
}

// candidateName picks the display name for a search candidate.
func candidateName(c api.Candidate) string {
	if c.FullName != "" {
		return c.FullName
	}
	return c.Username
}
