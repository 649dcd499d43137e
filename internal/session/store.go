// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the authenticated identity and bearer credential.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jeranaias/relay-tui/internal/api"
	"github.com/jeranaias/relay-tui/internal/storage"
)

// Session is the paired identity and credential proving an authenticated
// actor. A session with one half missing is invalid and is treated as no
// session everywhere.
type Session struct {
	User  api.Identity
	Token string
}

// Valid reports whether both halves are present.
func (s *Session) Valid() bool {
	return s != nil && s.User.ID != "" && s.Token != ""
}

// Store owns the current Session. It is the only writer of persisted
// session storage; other components read the session through Current.
// Login/Register/Restore run off the update loop, so current is guarded.
type Store struct {
	mu      sync.Mutex
	client  *api.Client
	persist *storage.SessionStore
	current *Session
}

// NewStore creates a session store backed by the given API client and
// persistence layer.
func NewStore(client *api.Client, persist *storage.SessionStore) *Store {
	return &Store{
		client:  client,
		persist: persist,
	}
}

// Current returns the active session, or nil when unauthenticated.
func (s *Store) Current() *Session {
	s.mu.Lock()
	cur := s.current
	s.mu.Unlock()

	if cur.Valid() {
		return cur
	}
	return nil
}

// Login authenticates and, on success, installs and persists the session.
// On failure the stored state is untouched and the classified error is
// returned as-is.
func (s *Store) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.install(resp)
}

// Register creates an account and, on success, installs and persists the
// resulting session under the same contract as Login.
func (s *Store) Register(ctx context.Context, username, email, password, fullName string) (*Session, error) {
	resp, err := s.client.Register(ctx, username, email, password, fullName)
	if err != nil {
		return nil, err
	}
	return s.install(resp)
}

// Restore rehydrates the session from persisted storage at startup.
// Returns nil when either half is absent or malformed; corrupt stored data
// is never a fatal startup error.
func (s *Store) Restore() *Session {
	userJSON, token, err := s.persist.Load()
	if err != nil {
		return nil
	}

	var user api.Identity
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil || user.ID == "" {
		// Malformed identity reads as no session
		return nil
	}

	sess := &Session{User: user, Token: token}
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	s.client.SetToken(token)
	return sess
}

// Logout clears the in-memory session and erases persisted storage.
// Idempotent: safe to call with no active session.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.client.ClearToken()
	_ = s.persist.Clear()
}

// install stores a fresh auth response as the current session and persists
// both halves. Persistence failure does not invalidate the in-memory
// session; the user stays logged in for the running process.
func (s *Store) install(resp *api.AuthResponse) (*Session, error) {
	sess := &Session{User: resp.User, Token: resp.SessionToken}
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	s.client.SetToken(sess.Token)

	userJSON, err := json.Marshal(sess.User)
	if err == nil {
		_ = s.persist.Save(string(userJSON), sess.Token)
	}
	return sess, nil
}
