// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/stylegenie/stylegenie-tui/internal/entitlement"
	"github.com/stylegenie/stylegenie-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is a key binding shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom line: remaining quota on the left, active
// shortcuts on the right.
type StatusBar struct {
	theme *styles.Theme
}

// NewStatusBar creates a status bar bound to a theme.
func NewStatusBar(theme *styles.Theme) StatusBar {
	return StatusBar{theme: theme}
}

// View renders the bar at the given width.
func (s *StatusBar) View(engine *entitlement.Engine, usage entitlement.UserUsage, shortcuts []Shortcut, width int) string {
	quota := s.renderQuota(engine, usage)
	keys := s.renderShortcuts(shortcuts)

	gap := width - lipgloss.Width(quota) - lipgloss.Width(keys)
	if gap < 1 {
		keys = runewidth.Truncate(keys, width-lipgloss.Width(quota)-1, "...")
		gap = 1
	}
	return s.theme.StatusBar.Render(quota + strings.Repeat(" ", gap) + keys)
}

func (s *StatusBar) renderQuota(engine *entitlement.Engine, usage entitlement.UserUsage) string {
	remaining := engine.Remaining(usage)
	limit := engine.TotalLimit(usage)

	label := fmt.Sprintf("%s plan: %d/%d styles left", planLabel(usage.Tier), remaining, limit)
	if engine.TrialExpired(usage) {
		return s.theme.QuotaEmpty.Render("Free trial ended: upgrade to continue")
	}
	switch {
	case remaining == 0:
		return s.theme.QuotaEmpty.Render(label)
	case remaining <= 3:
		return s.theme.QuotaLow.Render(label)
	default:
		return s.theme.QuotaOK.Render(label)
	}
}

func (s *StatusBar) renderShortcuts(shortcuts []Shortcut) string {
	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		parts = append(parts,
			s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(parts, "  ")
}

func planLabel(tier entitlement.Tier) string {
	switch tier {
	case entitlement.TierMonthly:
		return "Monthly"
	case entitlement.TierYearly:
		return "Yearly"
	case entitlement.TierLifetime:
		return "Lifetime"
	default:
		return "Free"
	}
}
