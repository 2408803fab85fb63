// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the screen state machine that drives the app:
// upload, analysis, dashboard browsing, gated try-on generation, result
// display, and the saved collection. The controller is pure with respect to
// I/O. Triggers return typed Effects that the UI layer executes
// asynchronously, and completions are delivered back through Complete*
// methods carrying the request ID of the effect they answer. Completions
// with a stale request ID are discarded.
package session

import (
	"fmt"

	"github.com/stylegenie/stylegenie-tui/internal/model"
)

// =============================================================================
// STATES
// =============================================================================

// State is the current screen of the app.
type State int

const (
	// StateUpload waits for a photo.
	StateUpload State = iota

	// StateAnalyzing is a transient busy state for analysis and grounding
	// lookups.
	StateAnalyzing

	// StateDashboard shows the suggested style lists.
	StateDashboard

	// StateGeneratingImage is a transient busy state for try-on synthesis.
	StateGeneratingImage

	// StateShowingResult displays one generated look.
	StateShowingResult

	// StateCollection browses the saved looks.
	StateCollection
)

func (s State) String() string {
	switch s {
	case StateUpload:
		return "upload"
	case StateAnalyzing:
		return "analyzing"
	case StateDashboard:
		return "dashboard"
	case StateGeneratingImage:
		return "generating"
	case StateShowingResult:
		return "result"
	case StateCollection:
		return "collection"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Busy reports whether the state is transient and must block re-entrant
// triggers until the pending call resolves.
func (s State) Busy() bool {
	return s == StateAnalyzing || s == StateGeneratingImage
}

// Tab selects which style list the dashboard shows.
type Tab string

const (
	TabHair    Tab = "hair"
	TabFashion Tab = "fashion"
	TabMix     Tab = "mix"
)

// SearchMode selects how the dashboard search box is interpreted.
type SearchMode string

const (
	// SearchText asks the stylist for suggestions matching the query.
	SearchText SearchMode = "text"

	// SearchLink treats the query as a product URL to try on.
	SearchLink SearchMode = "link"
)

// ResultSource tells the result screen which sequence it is paging
// through, and where closing it returns to.
type ResultSource int

const (
	SourceHistory ResultSource = iota
	SourceCollection
)

// =============================================================================
// ERRORS
// =============================================================================

// PreconditionError indicates a trigger whose preconditions do not hold,
// such as a mix try-on with an incomplete selection pair.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// ErrIncompleteMix rejects mix generation without both slots filled.
var ErrIncompleteMix = &PreconditionError{Reason: "mix requires both a hairstyle and an outfit"}

// Notices shown for recoverable failures.
const (
	noticeAnalysisFailed   = "Failed to analyze image. Please try again."
	noticeLoadMoreFailed   = "Could not load more styles."
	noticeSearchFailed     = "Search failed. Please try again."
	noticeLinkFailed       = "Could not process this link. Please try a valid product URL or describe the item."
	noticeGenerationFailed = "Generation failed. Please try again."
	noticeMixFailed        = "Mix generation failed."
	noticeNoLocation       = "Please enable location services to find salons."
)

// Loading messages shown while a busy state is pending.
const (
	loadingAnalyzing  = "Analyzing your features to find the perfect styles..."
	loadingMoreStyles = "Consulting the AI stylist for more ideas..."
	loadingLink       = "Analyzing product link..."
	loadingMix        = "Mixing styles to create your complete look..."
	loadingSalons     = "Locating top-rated salons nearby..."
	loadingShopping   = "Finding shopping links..."
	loadingPayment    = "Processing Payment..."
)

// linkedOutfitName labels history items generated from a product URL.
const linkedOutfitName = "Linked Outfit"

// mixLookName labels history items generated from a mix selection.
const mixLookName = "Mix & Match Look"

// pendingGeneration holds the metadata of an in-flight try-on so the
// resulting image can be turned into a history item on completion.
type pendingGeneration struct {
	styleName   string
	description string
	kind        model.ResultKind
	items       []model.StyleItem
}
