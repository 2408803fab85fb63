// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stylegenie/stylegenie-tui/internal/entitlement"
	"github.com/stylegenie/stylegenie-tui/internal/model"
)

// =============================================================================
// COLLECTION REPOSITORY
// =============================================================================

// CollectionRepo loads and saves the ordered list of saved looks.
type CollectionRepo struct {
	store DocumentStore
}

// NewCollectionRepo creates a collection repository over store.
func NewCollectionRepo(store DocumentStore) *CollectionRepo {
	return &CollectionRepo{store: store}
}

// Load reads the saved collection, most-recently-saved first. A missing
// document is an empty collection, not an error.
func (r *CollectionRepo) Load() ([]model.HistoryItem, error) {
	data, ok, err := r.store.Load(CollectionDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection document: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var items []model.HistoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode collection document: %w", err)
	}
	return items, nil
}

// Save replaces the collection document in full.
func (r *CollectionRepo) Save(items []model.HistoryItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	if err := r.store.Save(CollectionDocument, data); err != nil {
		return fmt.Errorf("failed to write collection document: %w", err)
	}
	return nil
}

// =============================================================================
// USAGE REPOSITORY
// =============================================================================

// UsageRepo loads, reconciles, and saves the entitlement record.
type UsageRepo struct {
	store DocumentStore
}

// NewUsageRepo creates a usage repository over store.
func NewUsageRepo(store DocumentStore) *UsageRepo {
	return &UsageRepo{store: store}
}

// LoadOrInit returns the reconciled usage record, persisting any change it
// made. Must run once at startup before any other usage read:
//   - first run: a fresh free-tier record is created and saved
//   - day rollover: counters reset and the reset is saved
//   - corrupt document: replaced by a fresh record rather than failing
//     startup (losing today's counter beats an unusable app)
func (r *UsageRepo) LoadOrInit(engine *entitlement.Engine, now time.Time) (entitlement.UserUsage, error) {
	data, ok, err := r.store.Load(UsageDocument)
	if err != nil {
		return entitlement.UserUsage{}, fmt.Errorf("failed to read usage document: %w", err)
	}

	if !ok {
		usage := entitlement.NewUsage(now)
		return usage, r.Save(usage)
	}

	var usage entitlement.UserUsage
	if err := json.Unmarshal(data, &usage); err != nil {
		usage = entitlement.NewUsage(now)
		return usage, r.Save(usage)
	}

	reconciled := engine.ReconcileDayRollover(usage)
	if reconciled != usage {
		if err := r.Save(reconciled); err != nil {
			return entitlement.UserUsage{}, err
		}
	}
	return reconciled, nil
}

// Save replaces the usage document in full. Callers persist every updated
// record before treating it as durable.
func (r *UsageRepo) Save(usage entitlement.UserUsage) error {
	data, err := json.MarshalIndent(usage, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode usage: %w", err)
	}
	if err := r.store.Save(UsageDocument, data); err != nil {
		return fmt.Errorf("failed to write usage document: %w", err)
	}
	return nil
}
