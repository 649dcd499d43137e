// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the relay application.
package util

import (
	"strconv"
	"time"
)

// FormatFileSize renders a byte count in megabytes with one decimal place,
// matching how attachments are labeled in the message pane ("2.4 MB").
func FormatFileSize(bytes int64) string {
	mb := float64(bytes) / 1024 / 1024
	return strconv.FormatFloat(mb, 'f', 1, 64) + " MB"
}

// FormatClock renders a timestamp at hour:minute granularity for message
// bubbles and chat-list activity labels.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}
