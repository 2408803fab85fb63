// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"github.com/stylegenie/stylegenie-tui/internal/genai"
	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/payment"
)

// Effect is an asynchronous call the UI layer must execute on the
// controller's behalf. Every effect carries the request ID its completion
// must echo back; the controller ignores completions whose ID no longer
// matches the pending call.
type Effect interface {
	effectID() uint64
}

// AnalyzeEffect requests style suggestions for the session photo.
type AnalyzeEffect struct {
	RequestID uint64
	Image     string
	Mode      genai.AnalysisMode
	Query     string
}

// LoadMorePairEffect requests more hairstyles and more outfits as two
// concurrent calls. The completion must carry both results or an error;
// a partial result is never delivered.
type LoadMorePairEffect struct {
	RequestID uint64
	Image     string
}

// VisualizeEffect requests a try-on image for a prepared description.
type VisualizeEffect struct {
	RequestID   uint64
	Image       string
	Description string
	Kind        model.ResultKind
}

// LinkTryOnEffect requests a description of the product at URL followed by
// a fashion try-on of that description.
type LinkTryOnEffect struct {
	RequestID uint64
	Image     string
	URL       string
}

// PreviewEffect requests a free thumbnail for one style card.
type PreviewEffect struct {
	RequestID   uint64
	Image       string
	Name        string
	Description string
	Kind        model.ResultKind
}

// SalonSearchEffect requests a nearby-salon lookup.
type SalonSearchEffect struct {
	RequestID uint64
	Coords    model.Coordinates
}

// ShoppingSearchEffect requests shopping links for an outfit.
type ShoppingSearchEffect struct {
	RequestID uint64
	Item      model.StyleItem
}

// PurchaseEffect requests a simulated payment for a plan.
type PurchaseEffect struct {
	RequestID uint64
	Option    payment.OptionID
}

func (e AnalyzeEffect) effectID() uint64        { return e.RequestID }
func (e LoadMorePairEffect) effectID() uint64   { return e.RequestID }
func (e VisualizeEffect) effectID() uint64      { return e.RequestID }
func (e LinkTryOnEffect) effectID() uint64      { return e.RequestID }
func (e PreviewEffect) effectID() uint64        { return e.RequestID }
func (e SalonSearchEffect) effectID() uint64    { return e.RequestID }
func (e ShoppingSearchEffect) effectID() uint64 { return e.RequestID }
func (e PurchaseEffect) effectID() uint64       { return e.RequestID }
