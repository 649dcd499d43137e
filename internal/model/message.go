// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core data structures for relay conversations.
package model

import (
	"time"

	"github.com/jeranaias/relay-tui/internal/util"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// MessageKind distinguishes plain text messages from file attachments.
type MessageKind string

const (
	// KindText is a plain text message.
	KindText MessageKind = "text"
	// KindFile is a file attachment entry. FileName is always set and Text
	// is always empty for this kind.
	KindFile MessageKind = "file"
)

// Message represents a single entry in a conversation log.
//
// ID is assigned by the owning Log and increases monotonically, so the
// natural sort order of IDs equals arrival order. Position order in the log
// defines sent order for the whole application.
type Message struct {
	ID        int64       `json:"id"`
	Kind      MessageKind `json:"kind"`
	Text      string      `json:"text,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	IsMine    bool        `json:"is_mine"`
	FileName  string      `json:"file_name,omitempty"`
	FileSize  int64       `json:"file_size,omitempty"`
}

// Clock returns the message timestamp at hour:minute granularity for display.
func (m Message) Clock() string {
	return util.FormatClock(m.Timestamp)
}

// SizeLabel returns the attachment size in megabytes with one decimal place.
// Only meaningful for KindFile messages.
func (m Message) SizeLabel() string {
	return util.FormatFileSize(m.FileSize)
}
