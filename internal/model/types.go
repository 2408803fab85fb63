// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain types for StyleGenie: style suggestions,
// generated results, grounding links, and the transient mix selection.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// STYLE SUGGESTIONS
// =============================================================================

// StyleItem is a single suggested style (a hairstyle or an outfit).
//
// Name doubles as the in-session identity key: color and thumbnail updates
// match by name across both suggestion lists. Duplicate names across lists
// are a documented limitation of that scheme; generated results carry a
// stable UUID instead.
type StyleItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// SelectedColor is a preset name ("Auburn") or a "#rrggbb" hex string.
	// Empty means the model's default color.
	SelectedColor string `json:"selected_color,omitempty"`

	// Thumbnail is an opaque image handle (base64 data URI) present only
	// after a preview has been generated. Changing the color stales it.
	Thumbnail string `json:"thumbnail,omitempty"`
}

// AnalysisResult is the AI's read of the uploaded photo plus its suggestion
// lists. Lists grow monotonically within a session as "load more" is used.
type AnalysisResult struct {
	FaceShape  string      `json:"faceShape"`
	SkinTone   string      `json:"skinTone"`
	HairStyles []StyleItem `json:"hairStyles"`
	Outfits    []StyleItem `json:"outfits"`
}

// =============================================================================
// GENERATED RESULTS
// =============================================================================

// ResultKind distinguishes what a generated result changed.
type ResultKind string

const (
	KindHair    ResultKind = "hair"
	KindFashion ResultKind = "fashion"
	KindMix     ResultKind = "mix"
)

// Valid reports whether k is one of the closed set of result kinds.
func (k ResultKind) Valid() bool {
	switch k {
	case KindHair, KindFashion, KindMix:
		return true
	}
	return false
}

// HistoryItem is one generated visualization. Immutable after creation;
// identity is ID. Items holds the source style(s): one entry for hair or
// fashion, exactly two (hair then outfit) for mix.
type HistoryItem struct {
	ID          string      `json:"id"`
	Image       string      `json:"image"`
	StyleName   string      `json:"style_name"`
	Description string      `json:"description"`
	Kind        ResultKind  `json:"kind"`
	Items       []StyleItem `json:"items"`
	Timestamp   time.Time   `json:"timestamp"`
}

// NewHistoryItem builds an immutable result record with a fresh UUID.
func NewHistoryItem(image, styleName, description string, kind ResultKind, items []StyleItem) HistoryItem {
	return HistoryItem{
		ID:          uuid.NewString(),
		Image:       image,
		StyleName:   styleName,
		Description: description,
		Kind:        kind,
		Items:       items,
		Timestamp:   time.Now(),
	}
}

// =============================================================================
// MIX SELECTION
// =============================================================================

// MixSelection is the transient two-slot pick used to build a combined
// hair + outfit generation request.
type MixSelection struct {
	Hair   *StyleItem
	Outfit *StyleItem
}

// Complete reports whether both slots are filled, the precondition for a
// mix generation.
func (m MixSelection) Complete() bool {
	return m.Hair != nil && m.Outfit != nil
}

// =============================================================================
// GROUNDING
// =============================================================================

// GroundingChunk is one citation-backed link from a search or maps lookup.
type GroundingChunk struct {
	URI     string `json:"uri"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`

	// FromMaps marks chunks produced by maps grounding so the UI can label
	// them "View on Google Maps" instead of "Visit Store".
	FromMaps bool `json:"from_maps,omitempty"`
}

// GroundingResult is the full answer of a grounded lookup: a text summary
// plus ordered link chunks. Consumed read-only by the UI.
type GroundingResult struct {
	Text   string           `json:"text"`
	Chunks []GroundingChunk `json:"chunks"`
}

// Coordinates is a latitude/longitude pair for the salon lookup.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
