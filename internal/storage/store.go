// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the two StyleGenie documents: the saved-items
// collection and the usage/entitlement record.
//
// Documents are opaque JSON blobs with replace-on-write semantics. Writes
// are atomic (temp file + fsync + rename) so a crash never leaves a
// partial document. There is no cross-document consistency: the collection
// and usage documents are independent and last-write-wins.
package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/stylegenie/stylegenie-tui/internal/util"
)

// Document names of the two persisted blobs.
const (
	CollectionDocument = "collection.json"
	UsageDocument      = "usage.json"
)

// DocumentStore is the storage port: whole-document reads and writes keyed
// by name. The file-backed implementation is the production adapter; tests
// substitute MemStore.
type DocumentStore interface {
	// Load returns the document bytes and whether the document exists.
	Load(name string) ([]byte, bool, error)

	// Save replaces the document in full.
	Save(name string, data []byte) error
}

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore stores each document as a JSON file under BaseDir.
type FileStore struct {
	// BaseDir is the data directory, default ~/.stylegenie.
	BaseDir string
}

// DefaultDataDir returns the default data directory under the user's home.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stylegenie"), nil
}

// NewFileStore creates a file store rooted at baseDir, creating the
// directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{BaseDir: baseDir}, nil
}

// Load implements DocumentStore.
func (s *FileStore) Load(name string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.BaseDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Save implements DocumentStore with an atomic replace.
func (s *FileStore) Save(name string, data []byte) error {
	return util.AtomicWriteFile(filepath.Join(s.BaseDir, name), data, 0644)
}

// =============================================================================
// IN-MEMORY STORE
// =============================================================================

// MemStore is an in-memory DocumentStore for tests.
type MemStore struct {
	mu   sync.Mutex
	docs map[string][]byte

	// SaveErr, when set, is returned by every Save. Lets tests exercise
	// persistence failure paths.
	SaveErr error
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

// Load implements DocumentStore.
func (s *MemStore) Load(name string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[name]
	return data, ok, nil
}

// Save implements DocumentStore.
func (s *MemStore) Save(name string, data []byte) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.docs[name] = cp
	return nil
}
