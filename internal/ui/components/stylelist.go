// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/ui/styles"
)

// =============================================================================
// STYLE LIST
// =============================================================================

// StyleList renders a scrollable list of suggestion cards with a cursor.
// The caller owns the backing slice; the list only tracks position.
type StyleList struct {
	theme  *styles.Theme
	cursor int
	offset int
	height int
}

// NewStyleList creates a style list bound to a theme.
func NewStyleList(theme *styles.Theme) StyleList {
	return StyleList{theme: theme, height: 8}
}

// SetHeight sets the number of visible cards.
func (l *StyleList) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	l.height = h
	l.clamp(l.cursor + 1) // keep offset consistent with the new window
}

// Cursor returns the index of the highlighted card.
func (l *StyleList) Cursor() int {
	return l.cursor
}

// Reset moves the cursor back to the top.
func (l *StyleList) Reset() {
	l.cursor = 0
	l.offset = 0
}

// MoveUp moves the cursor one card up.
func (l *StyleList) MoveUp(total int) {
	if l.cursor > 0 {
		l.cursor--
	}
	l.clamp(total)
}

// MoveDown moves the cursor one card down.
func (l *StyleList) MoveDown(total int) {
	if l.cursor < total-1 {
		l.cursor++
	}
	l.clamp(total)
}

func (l *StyleList) clamp(total int) {
	if total == 0 {
		l.cursor, l.offset = 0, 0
		return
	}
	if l.cursor >= total {
		l.cursor = total - 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
}

// View renders the visible window of cards. mixName, when non-empty, marks
// the card currently occupying a mix slot.
func (l *StyleList) View(items []model.StyleItem, width int, mixName string) string {
	if len(items) == 0 {
		return l.theme.StyleDesc.Render("No suggestions yet.")
	}
	l.clamp(len(items))

	end := l.offset + l.height
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	for i := l.offset; i < end; i++ {
		b.WriteString(l.renderCard(items[i], i == l.cursor, items[i].Name == mixName, width))
		b.WriteString("\n")
	}
	if l.offset > 0 || end < len(items) {
		b.WriteString(l.theme.StyleDesc.Render(
			fmt.Sprintf("%d/%d", l.cursor+1, len(items))))
	}
	return b.String()
}

func (l *StyleList) renderCard(item model.StyleItem, selected, inMix bool, width int) string {
	cardStyle := l.theme.StyleCard
	if selected {
		cardStyle = l.theme.StyleCardSelected
	}

	inner := width - cardStyle.GetHorizontalFrameSize()
	if inner < 16 {
		inner = 16
	}

	name := l.theme.StyleName.Render(runewidth.Truncate(item.Name, inner, "..."))
	var badges []string
	if item.Thumbnail != "" {
		badges = append(badges, l.theme.ThumbnailBadge.Render("[preview]"))
	}
	if item.SelectedColor != "" {
		badges = append(badges, l.theme.StyleColorSwatch.Render("● "+item.SelectedColor))
	}
	if inMix {
		badges = append(badges, l.theme.SavedBadge.Render("[mix]"))
	}

	top := name
	if len(badges) > 0 {
		top = lipgloss.JoinHorizontal(lipgloss.Center, name, " ", strings.Join(badges, " "))
	}
	desc := l.theme.StyleDesc.Render(runewidth.Truncate(item.Description, inner, "..."))

	return cardStyle.Width(inner).Render(top + "\n" + desc)
}
