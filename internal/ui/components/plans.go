// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stylegenie/stylegenie-tui/internal/payment"
	"github.com/stylegenie/stylegenie-tui/internal/ui/styles"
)

// =============================================================================
// PLANS MODAL
// =============================================================================

// PlanPicker renders the purchase catalog as a modal with a highlighted
// option. Confirming returns the selected option to the caller.
type PlanPicker struct {
	theme   *styles.Theme
	options []payment.Option
	cursor  int
}

// NewPlanPicker creates a plan picker over the full purchase catalog.
func NewPlanPicker(theme *styles.Theme) PlanPicker {
	return PlanPicker{theme: theme, options: payment.Catalog()}
}

// Reset moves the cursor back to the first option.
func (p *PlanPicker) Reset() {
	p.cursor = 0
}

// MoveUp moves the highlight one option up.
func (p *PlanPicker) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// MoveDown moves the highlight one option down.
func (p *PlanPicker) MoveDown() {
	if p.cursor < len(p.options)-1 {
		p.cursor++
	}
}

// Selected returns the highlighted purchase option.
func (p *PlanPicker) Selected() payment.Option {
	return p.options[p.cursor]
}

// View renders the modal.
func (p *PlanPicker) View(width int) string {
	var cards []string
	for i, opt := range p.options {
		cards = append(cards, p.renderOption(opt, i == p.cursor))
	}

	body := strings.Join(cards, "\n")
	title := p.theme.ResultTitle.Render("Out of free styles? Upgrade your look.")
	hint := p.theme.StyleDesc.Render("up/down to choose, enter to buy, esc to close")

	inner := width - p.theme.PlanBox.GetHorizontalFrameSize()
	if inner < 30 {
		inner = 30
	}
	return p.theme.PlanBox.Width(inner).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint))
}

func (p *PlanPicker) renderOption(opt payment.Option, selected bool) string {
	name := p.theme.PlanName.Render(opt.Name)
	cost := p.theme.PlanCost.Render(fmt.Sprintf("₹%d %s", opt.Cost, opt.Period))

	line := fmt.Sprintf("%s  %s", name, cost)
	if selected {
		line = p.theme.PlanSelected.Render("> ") + line
	} else {
		line = "  " + line
	}

	var b strings.Builder
	b.WriteString(line)
	for _, feat := range opt.Features {
		b.WriteString("\n    ")
		b.WriteString(p.theme.PlanFeature.Render("- " + feat))
	}
	return b.String()
}
