// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable local persistence for session state.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/relay-tui/internal/util"
)

// File names for the two session slots.
const (
	userFile  = "session_user.json"
	tokenFile = "session_token"
)

// ErrNoSession indicates no complete session is persisted.
var ErrNoSession = errors.New("no persisted session")

// SessionStore persists the authenticated identity and bearer credential as
// two independent string slots under a single directory.
//
// The session store is the only writer of these files; no other component
// may touch them.
type SessionStore struct {
	dir string
}

// NewSessionStore creates a store rooted at the given directory.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

// Save persists both halves of a session. The token is written first and the
// identity last, so a crash between the writes leaves a pair that Load
// rejects as incomplete rather than a half-usable session.
// SECURITY: Session files are written with 0600 permissions.
func (s *SessionStore) Save(userJSON, token string) error {
	if strings.TrimSpace(userJSON) == "" || strings.TrimSpace(token) == "" {
		return errors.New("refusing to persist a partial session")
	}

	if err := util.AtomicWriteFile(s.tokenPath(), []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	if err := util.AtomicWriteFile(s.userPath(), []byte(userJSON), 0600); err != nil {
		// Roll back the token so no half-pair survives
		os.Remove(s.tokenPath())
		return fmt.Errorf("failed to persist session user: %w", err)
	}
	return nil
}

// Load reads both slots. Returns ErrNoSession when either half is absent or
// empty; malformed content is the caller's concern (the identity slot is
// opaque here), but missing files are never an error beyond ErrNoSession.
func (s *SessionStore) Load() (userJSON, token string, err error) {
	userBytes, err := os.ReadFile(s.userPath())
	if err != nil {
		return "", "", ErrNoSession
	}
	tokenBytes, err := os.ReadFile(s.tokenPath())
	if err != nil {
		return "", "", ErrNoSession
	}

	userJSON = strings.TrimSpace(string(userBytes))
	token = strings.TrimSpace(string(tokenBytes))
	if userJSON == "" || token == "" {
		return "", "", ErrNoSession
	}
	return userJSON, token, nil
}

// Clear erases both slots. Idempotent: missing files are not an error.
func (s *SessionStore) Clear() error {
	var firstErr error
	for _, path := range []string{s.userPath(), s.tokenPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to clear session slot %s: %w", filepath.Base(path), err)
			}
		}
	}
	return firstErr
}

func (s *SessionStore) userPath() string {
	return filepath.Join(s.dir, userFile)
}

func (s *SessionStore) tokenPath() string {
	return filepath.Join(s.dir, tokenFile)
}
