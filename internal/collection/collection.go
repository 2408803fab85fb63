// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package collection maintains the persisted set of saved looks.
package collection

import (
	"fmt"
	"os"

	"github.com/stylegenie/stylegenie-tui/internal/history"
	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/storage"
)

// Store is an order-preserving set of saved results keyed by HistoryItem
// ID, most-recently-saved first. Unlike the session ledger it survives
// restarts: every mutation rewrites the collection document in full.
//
// Persistence is fire-and-forget: a failed write is reported to stderr and
// the in-memory state stays authoritative for the session.
type Store struct {
	items  []model.HistoryItem
	cursor int
	repo   *storage.CollectionRepo
}

// Load builds the store from the persisted document.
func Load(repo *storage.CollectionRepo) (*Store, error) {
	items, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return &Store{items: items, cursor: -1, repo: repo}, nil
}

// Toggle saves item if absent, removes it if already saved. Saving
// prepends so the newest favorite appears first.
func (s *Store) Toggle(item model.HistoryItem) {
	if s.Contains(item.ID) {
		s.Remove(item.ID)
		return
	}
	s.items = append([]model.HistoryItem{item}, s.items...)
	s.persist()
}

// Remove deletes the entry with the given id; absent ids are a no-op.
func (s *Store) Remove(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			if s.cursor >= len(s.items) {
				s.cursor = len(s.items) - 1
			}
			s.persist()
			return
		}
	}
}

// Contains reports whether an item with the given id is saved.
func (s *Store) Contains(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			return true
		}
	}
	return false
}

// Items returns the saved looks, most recent first. Callers must not
// mutate entries.
func (s *Store) Items() []model.HistoryItem {
	return s.items
}

// Len returns the number of saved looks.
func (s *Store) Len() int {
	return len(s.items)
}

// =============================================================================
// NAVIGATION
// =============================================================================

// The collection has its own display cursor, independent of the session
// ledger, with the same clamped no-op semantics.

// Select points the cursor at index for viewing; out-of-range indexes are
// ignored.
func (s *Store) Select(index int) {
	if index >= 0 && index < len(s.items) {
		s.cursor = index
	}
}

// Current returns the item under the cursor, or false when nothing is
// selected.
func (s *Store) Current() (model.HistoryItem, bool) {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return model.HistoryItem{}, false
	}
	return s.items[s.cursor], true
}

// Navigate moves the cursor one step, clamped to the sequence bounds.
func (s *Store) Navigate(dir history.Direction) {
	switch dir {
	case history.Prev:
		if s.cursor > 0 {
			s.cursor--
		}
	case history.Next:
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
	}
}

// Cursor returns the current cursor position (-1 when nothing selected).
func (s *Store) Cursor() int {
	return s.cursor
}

func (s *Store) persist() {
	if err := s.repo.Save(s.items); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist collection: %v\n", err)
	}
}
