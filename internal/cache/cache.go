// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache stores generated preview thumbnails on disk so a style card
// keeps its preview across runs. Entries are keyed by the photo, the style
// description, and the generation kind; changing any of the three produces a
// different key, so stale previews are never served.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/stylegenie/stylegenie-tui/internal/model"
)

// =============================================================================
// SCHEMA
// =============================================================================

// DatabaseFile is the cache database filename inside the data directory.
const DatabaseFile = "previews.db"

const schema = `
CREATE TABLE IF NOT EXISTS previews (
	key        TEXT PRIMARY KEY,
	thumbnail  TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_previews_created ON previews(created_at);
`

// ErrClosed indicates use of a cache after Close.
var ErrClosed = errors.New("preview cache is closed")

// =============================================================================
// PREVIEW CACHE
// =============================================================================

// PreviewCache is a bounded on-disk thumbnail cache backed by SQLite.
type PreviewCache struct {
	db         *sql.DB
	maxEntries int
	now        func() time.Time
}

// Open opens (or creates) the preview cache at path. maxEntries bounds the
// cache; inserting past the bound evicts the oldest entries.
func Open(path string, maxEntries int) (*PreviewCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &PreviewCache{db: db, maxEntries: maxEntries, now: time.Now}, nil
}

// WithClock overrides the entry timestamp source. Used in tests.
func (c *PreviewCache) WithClock(now func() time.Time) *PreviewCache {
	c.now = now
	return c
}

// Close releases the database handle.
func (c *PreviewCache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Key derives the cache key for one preview request.
func Key(image, description string, kind model.ResultKind) string {
	h := sha256.New()
	h.Write([]byte(image))
	h.Write([]byte{0})
	h.Write([]byte(description))
	h.Write([]byte{0})
	h.Write([]byte(kind))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached thumbnail for a preview request, if present.
func (c *PreviewCache) Get(image, description string, kind model.ResultKind) (string, bool, error) {
	if c.db == nil {
		return "", false, ErrClosed
	}
	var thumbnail string
	err := c.db.QueryRow(
		"SELECT thumbnail FROM previews WHERE key = ?",
		Key(image, description, kind),
	).Scan(&thumbnail)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read preview: %w", err)
	}
	return thumbnail, true, nil
}

// Put stores a thumbnail and evicts the oldest entries past the bound.
func (c *PreviewCache) Put(image, description string, kind model.ResultKind, thumbnail string) error {
	if c.db == nil {
		return ErrClosed
	}
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO previews (key, thumbnail, created_at) VALUES (?, ?, ?)",
		Key(image, description, kind), thumbnail, c.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to store preview: %w", err)
	}
	return c.evict()
}

// Len returns the number of cached previews.
func (c *PreviewCache) Len() (int, error) {
	if c.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM previews").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count previews: %w", err)
	}
	return n, nil
}

// Clear removes every cached preview.
func (c *PreviewCache) Clear() error {
	if c.db == nil {
		return ErrClosed
	}
	if _, err := c.db.Exec("DELETE FROM previews"); err != nil {
		return fmt.Errorf("failed to clear previews: %w", err)
	}
	return nil
}

// evict removes the oldest entries beyond maxEntries.
func (c *PreviewCache) evict() error {
	_, err := c.db.Exec(`
		DELETE FROM previews WHERE key IN (
			SELECT key FROM previews
			ORDER BY created_at DESC
			LIMIT -1 OFFSET ?
		)`, c.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to evict previews: %w", err)
	}
	return nil
}
