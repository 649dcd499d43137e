// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the relay views into a single Bubble Tea program.
package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/relay-tui/internal/api"
	"github.com/jeranaias/relay-tui/internal/config"
	"github.com/jeranaias/relay-tui/internal/directory"
	"github.com/jeranaias/relay-tui/internal/model"
	"github.com/jeranaias/relay-tui/internal/session"
	"github.com/jeranaias/relay-tui/internal/ui"
	"github.com/jeranaias/relay-tui/internal/ui/components"
	"github.com/jeranaias/relay-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS & AUTH MODE
// =============================================================================

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusSidebar focusArea = iota
	focusFilter
	focusCompose
	focusAttach
	focusContactSearch
	focusProfile
)

// authMode selects between the two auth forms.
type authMode int

const (
	authLogin authMode = iota
	authRegister
)

// authField indexes into the auth form inputs.
const (
	fieldUsername = iota
	fieldEmail
	fieldFullName
	fieldPassword
	authFieldCount
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the top-level Bubble Tea model for relay.
type Model struct {
	cfg   *config.Config
	theme *styles.Theme

	// Domain state
	client   *api.Client
	sessions *session.Store
	dir      *directory.Directory
	registry *model.Registry
	history  *model.History

	// View coordination: one explicit state object, changed only via ui.Reduce
	state ui.State

	// Auth form
	mode       authMode
	authInputs [authFieldCount]textinput.Model
	authFocus  int
	authBusy   bool

	// Chats pane
	filter  textinput.Model
	compose textinput.Model
	attach  textinput.Model
	cursor  int

	// Contacts pane
	contactSearch textinput.Model
	searchBusy    bool
	pendingAdds   map[string]bool
	pendingChat   *api.Candidate
	contactCursor int

	// Profile pane
	profileName textinput.Model
	profileBusy bool

	// Chrome
	view    viewport.Model
	spin    spinner.Model
	toasts  *components.ToastManager
	keys    KeyMap
	focus   focusArea
	width   int
	height  int
}

// New assembles the application model. The session is not restored here;
// Init issues the restore so startup stays non-blocking.
func New(cfg *config.Config, client *api.Client, sessions *session.Store) Model {
	theme := styles.NewTheme()

	newInput := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Prompt = ""
		return in
	}

	m := Model{
		cfg:      cfg,
		theme:    theme,
		client:   client,
		sessions: sessions,
		dir:      directory.New(client),
		registry: model.NewRegistry(),
		history:  model.NewHistory(),
		state:    ui.InitialState(),

		filter:        newInput("Search chats...", 64),
		compose:       newInput("Write a message...", 2000),
		attach:        newInput("Path to file...", 512),
		contactSearch: newInput("Search people...", 64),
		profileName:   newInput("Full name", 128),

		toasts:      components.NewToastManager(),
		keys:        DefaultKeyMap(),
		pendingAdds: make(map[string]bool),
	}

	for i := range m.authInputs {
		switch i {
		case fieldUsername:
			m.authInputs[i] = newInput("Username", 64)
		case fieldEmail:
			m.authInputs[i] = newInput("Email", 128)
		case fieldFullName:
			m.authInputs[i] = newInput("Full name", 128)
		case fieldPassword:
			m.authInputs[i] = newInput("Password", 128)
			m.authInputs[i].EchoMode = textinput.EchoPassword
			m.authInputs[i].EchoCharacter = '•'
		}
	}
	m.authInputs[fieldUsername].Focus()

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot

	m.view = viewport.New(0, 0)

	return m
}

// Init restores any persisted session and starts the toast ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		restoreSessionCmd(m.sessions),
		m.spin.Tick,
		components.ToastTickCmd(),
	)
}

// selectedChat resolves the active chat summary, if the selection is known.
func (m *Model) selectedChat() (model.Chat, bool) {
	if m.state.SelectedChat == "" {
		return model.Chat{}, false
	}
	return m.registry.Get(m.state.SelectedChat)
}

// visibleChats applies the current filter to the registry.
func (m *Model) visibleChats() []model.Chat {
	return m.registry.Filter(m.filter.Value())
}
