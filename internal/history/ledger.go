// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides the session-scoped ledger of generated results.
package history

import "github.com/stylegenie/stylegenie-tui/internal/model"

// Direction selects prev/next navigation through a result sequence.
type Direction int

const (
	Prev Direction = iota
	Next
)

// Ledger is an append-only, zero-indexed sequence of generated results
// with a cursor for the currently displayed item. The cursor is -1 while
// empty and otherwise stays within [0, Len()-1]. The ledger lives for the
// session only; saved favorites go to the collection instead.
type Ledger struct {
	items  []model.HistoryItem
	cursor int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{cursor: -1}
}

// Append adds a result to the end and moves the cursor to it: the most
// recent generation is always what gets displayed.
func (l *Ledger) Append(item model.HistoryItem) {
	l.items = append(l.items, item)
	l.cursor = len(l.items) - 1
}

// Current returns the item under the cursor, or false when empty.
func (l *Ledger) Current() (model.HistoryItem, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return model.HistoryItem{}, false
	}
	return l.items[l.cursor], true
}

// Navigate moves the cursor one step. Out-of-range requests are silent
// no-ops so the UI can always fire prev/next without bounds checks.
func (l *Ledger) Navigate(dir Direction) {
	switch dir {
	case Prev:
		if l.cursor > 0 {
			l.cursor--
		}
	case Next:
		if l.cursor < len(l.items)-1 {
			l.cursor++
		}
	}
}

// Cursor returns the current cursor position (-1 when empty).
func (l *Ledger) Cursor() int {
	return l.cursor
}

// Len returns the number of results recorded this session.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Items returns the underlying sequence, oldest first. Callers must not
// mutate entries; results are immutable once appended.
func (l *Ledger) Items() []model.HistoryItem {
	return l.items
}

// Reset drops all session results, for the "new session" action.
func (l *Ledger) Reset() {
	l.items = nil
	l.cursor = -1
}
