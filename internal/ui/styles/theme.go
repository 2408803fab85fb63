// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	// ==========================================================================
	// DASHBOARD STYLES
	// ==========================================================================

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	StyleCard         lipgloss.Style
	StyleCardSelected lipgloss.Style
	StyleName         lipgloss.Style
	StyleDesc         lipgloss.Style
	StyleColorSwatch  lipgloss.Style
	ThumbnailBadge    lipgloss.Style

	AnalysisSummary lipgloss.Style

	// ==========================================================================
	// RESULT SCREEN STYLES
	// ==========================================================================

	ResultBox   lipgloss.Style
	ResultTitle lipgloss.Style
	ResultMeta  lipgloss.Style
	SavedBadge  lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES
	// ==========================================================================

	LoadingBox  lipgloss.Style
	Spinner     lipgloss.Style
	LoadingText lipgloss.Style

	NoticeBox  lipgloss.Style
	NoticeText lipgloss.Style

	PlanBox         lipgloss.Style
	PlanName        lipgloss.Style
	PlanCost        lipgloss.Style
	PlanFeature     lipgloss.Style
	PlanSelected    lipgloss.Style
	LinkTitle       lipgloss.Style
	LinkURI         lipgloss.Style
	LinkSnippet     lipgloss.Style
	GroundingHeader lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	QuotaOK      lipgloss.Style
	QuotaLow     lipgloss.Style
	QuotaEmpty   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Violet).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Pink).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Pink)

	// Dashboard
	t.TabActive = lipgloss.NewStyle().
		Background(Violet).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 2)

	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 2)

	t.StyleCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.StyleCardSelected = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Violet).
		Padding(0, 1)

	t.StyleName = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.StyleDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StyleColorSwatch = lipgloss.NewStyle().
		Foreground(Pink).
		Italic(true)

	t.ThumbnailBadge = lipgloss.NewStyle().
		Foreground(Emerald)

	t.AnalysisSummary = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Result screen
	t.ResultBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Violet).
		Padding(1, 2).
		Align(lipgloss.Center)

	t.ResultTitle = lipgloss.NewStyle().
		Foreground(Pink).
		Bold(true)

	t.ResultMeta = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SavedBadge = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	// Overlays
	t.LoadingBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Violet).
		Padding(1, 3).
		Align(lipgloss.Center)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Violet)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.NoticeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Amber).
		Padding(0, 2)

	t.NoticeText = lipgloss.NewStyle().
		Foreground(Amber)

	t.PlanBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Gold).
		Padding(1, 2)

	t.PlanName = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.PlanCost = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	t.PlanFeature = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.PlanSelected = lipgloss.NewStyle().
		Background(Gold).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.LinkTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.LinkURI = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	t.LinkSnippet = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.GroundingHeader = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.QuotaOK = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.QuotaLow = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.QuotaEmpty = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Pink).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}
