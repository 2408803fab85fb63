// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stylegenie/stylegenie-tui/internal/config"
	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/payment"
)

// =============================================================================
// COMPLETION MESSAGES
// =============================================================================
// Each collaborator call posts exactly one of these back into the Bubble Tea
// loop. The id echoes the request ID the controller issued; the controller
// drops completions whose id is stale.

// analysisDoneMsg carries the result of a style analysis call.
type analysisDoneMsg struct {
	id     uint64
	result *model.AnalysisResult
	err    error
}

// loadMorePairDoneMsg carries the joined result of the concurrent
// more-hairstyles and more-outfits calls. err is non-nil when either failed.
type loadMorePairDoneMsg struct {
	id      uint64
	hair    *model.AnalysisResult
	fashion *model.AnalysisResult
	err     error
}

// visualizeDoneMsg carries a generated try-on image. description echoes the
// prompt used, which for link try-ons is produced by the describe step.
type visualizeDoneMsg struct {
	id          uint64
	image       string
	description string
	err         error
}

// previewDoneMsg carries a thumbnail for one style card.
type previewDoneMsg struct {
	id        uint64
	thumbnail string
	err       error
}

// groundingDoneMsg carries a salon or shopping lookup result. Grounded
// lookups never fail outright; errors surface as explanatory chunks.
type groundingDoneMsg struct {
	id     uint64
	result model.GroundingResult
}

// purchaseDoneMsg carries a simulated payment receipt.
type purchaseDoneMsg struct {
	id      uint64
	receipt *payment.Receipt
	err     error
}

// configReloadedMsg is posted when the config file changes on disk.
type configReloadedMsg struct {
	cfg *config.Config
}

// noticeExpiredMsg clears a transient notice after its display window.
type noticeExpiredMsg struct {
	seq int
}

// NewConfigReloadedMsg wraps a freshly loaded config for delivery with
// Program.Send from the config watcher goroutine.
func NewConfigReloadedMsg(cfg *config.Config) tea.Msg {
	return configReloadedMsg{cfg: cfg}
}
