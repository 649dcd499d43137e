// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package directory resolves search queries to candidate users and tracks
// contact-relationship state.
package directory

import (
	"context"
	"strings"
	"sync"

	"github.com/jeranaias/relay-tui/internal/api"
)

// Directory holds the current search result set.
//
// Each search is issued a monotonically increasing request token. In-flight
// searches are never canceled; instead, a completion whose token is not the
// latest issued is discarded on Apply, so a slow stale response can never
// overwrite a newer result set.
type Directory struct {
	mu      sync.Mutex
	client  *api.Client
	results []api.Candidate
	issued  int64
}

// New creates an empty directory backed by the given API client.
func New(client *api.Client) *Directory {
	return &Directory{client: client}
}

// Begin issues the request token for a new search. Tokens increase
// monotonically; only the most recently issued token's results are accepted.
func (d *Directory) Begin() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.issued++
	return d.issued
}

// Search performs the remote query for a previously issued token.
//
// Empty or whitespace-only queries return an empty result without calling
// the remote boundary. The query is otherwise sent verbatim; relevance
// ranking belongs to the backend.
func (d *Directory) Search(ctx context.Context, query, requesterID string) ([]api.Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return []api.Candidate{}, nil
	}
	return d.client.SearchUsers(ctx, query, requesterID)
}

// IsLatest reports whether token is the most recently issued request token.
// Completions for superseded tokens carry nothing worth surfacing, success
// or failure alike.
func (d *Directory) IsLatest(token int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return token == d.issued
}

// Apply installs a completed search's results if its token is still the
// latest issued, replacing the prior result set wholesale. Stale tokens are
// discarded and leave the current set untouched. Reports whether the
// results were accepted.
func (d *Directory) Apply(token int64, results []api.Candidate) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if token != d.issued {
		return false
	}
	d.results = results
	return true
}

// Results returns a copy of the current result set in boundary order.
func (d *Directory) Results() []api.Candidate {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]api.Candidate, len(d.results))
	copy(out, d.results)
	return out
}

// AddContact records the relationship remotely. On success the caller flips
// the candidate's flag through MarkContact; the flag itself never gates the
// call, it only drives UI affordance.
func (d *Directory) AddContact(ctx context.Context, requesterID, candidateID string) error {
	return d.client.AddContact(ctx, requesterID, candidateID)
}

// MarkContact sets is_contact for the matching candidate in the current
// result set only. The flag is monotonic: once true it never reverts within
// this set. A subsequent fresh search reflects the backend's then-current
// truth instead. Reports whether a candidate matched.
func (d *Directory) MarkContact(candidateID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.results {
		if d.results[i].ID == candidateID {
			d.results[i].IsContact = true
			return true
		}
	}
	return false
}

// Clear drops the current result set, used when leaving the contacts view.
func (d *Directory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.results = nil
}
