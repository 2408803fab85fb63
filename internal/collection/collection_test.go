// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package collection

import (
	"reflect"
	"testing"

	"github.com/stylegenie/stylegenie-tui/internal/history"
	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/storage"
)

func newStore(t *testing.T) (*Store, *storage.CollectionRepo) {
	t.Helper()
	repo := storage.NewCollectionRepo(storage.NewMemStore())
	s, err := Load(repo)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, repo
}

func look(name string) model.HistoryItem {
	return model.NewHistoryItem("img", name, "desc", model.KindFashion, nil)
}

func TestToggle_SavePrependsAndPersists(t *testing.T) {
	s, repo := newStore(t)

	a, b := look("a"), look("b")
	s.Toggle(a)
	s.Toggle(b)

	if !s.Contains(a.ID) || !s.Contains(b.ID) {
		t.Fatal("toggled items should be saved")
	}
	if s.Items()[0].ID != b.ID {
		t.Error("most recently saved item should be first")
	}

	// Every mutation rewrites the full document.
	persisted, err := repo.Load()
	if err != nil {
		t.Fatalf("repo.Load: %v", err)
	}
	if len(persisted) != 2 || persisted[0].ID != b.ID {
		t.Errorf("persisted document out of sync: %+v", persisted)
	}
}

func TestToggle_IsItsOwnInverse(t *testing.T) {
	s, _ := newStore(t)
	seed := look("seed")
	s.Toggle(seed)

	before := append([]model.HistoryItem(nil), s.Items()...)

	item := look("x")
	s.Toggle(item)
	s.Toggle(item)

	if !reflect.DeepEqual(before, s.Items()) {
		t.Errorf("toggle twice should restore the store: %+v vs %+v", before, s.Items())
	}
}

func TestRemove_AbsentIsNoOp(t *testing.T) {
	s, _ := newStore(t)
	s.Toggle(look("a"))

	s.Remove("no-such-id")
	if s.Len() != 1 {
		t.Errorf("remove of absent id changed the store, len=%d", s.Len())
	}
}

func TestRemove_ClampsCursor(t *testing.T) {
	s, _ := newStore(t)
	a, b := look("a"), look("b")
	s.Toggle(a)
	s.Toggle(b) // order: b, a

	s.Select(1)
	s.Remove(a.ID)

	if s.Cursor() != 0 {
		t.Errorf("cursor not clamped after removal, got %d", s.Cursor())
	}
	cur, ok := s.Current()
	if !ok || cur.ID != b.ID {
		t.Errorf("current after removal = %+v", cur)
	}
}

func TestNavigate_IndependentCursor(t *testing.T) {
	s, _ := newStore(t)
	for _, n := range []string{"a", "b", "c"} {
		s.Toggle(look(n))
	}

	if s.Cursor() != -1 {
		t.Errorf("cursor should start unselected, got %d", s.Cursor())
	}

	s.Select(5) // out of range, ignored
	if s.Cursor() != -1 {
		t.Errorf("out-of-range select moved cursor to %d", s.Cursor())
	}

	s.Select(2)
	s.Navigate(history.Next) // at end, no-op
	if s.Cursor() != 2 {
		t.Errorf("next past end moved cursor to %d", s.Cursor())
	}
	s.Navigate(history.Prev)
	s.Navigate(history.Prev)
	s.Navigate(history.Prev) // at start, no-op
	if s.Cursor() != 0 {
		t.Errorf("prev past start moved cursor to %d", s.Cursor())
	}
}

func TestLoad_RestoresPersistedItems(t *testing.T) {
	repo := storage.NewCollectionRepo(storage.NewMemStore())
	first, err := Load(repo)
	if err != nil {
		t.Fatal(err)
	}
	saved := look("keeper")
	first.Toggle(saved)

	// A second session sees the persisted favorite.
	second, err := Load(repo)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Contains(saved.ID) {
		t.Error("collection should survive reload")
	}
}
