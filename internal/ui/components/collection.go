// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/ui/styles"
)

// =============================================================================
// COLLECTION LIST
// =============================================================================

// CollectionList renders saved looks newest-first with a cursor.
type CollectionList struct {
	theme  *styles.Theme
	cursor int
	offset int
	height int
}

// NewCollectionList creates a collection list bound to a theme.
func NewCollectionList(theme *styles.Theme) CollectionList {
	return CollectionList{theme: theme, height: 10}
}

// SetHeight sets the number of visible rows.
func (c *CollectionList) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	c.height = h
}

// Cursor returns the index of the highlighted item.
func (c *CollectionList) Cursor() int {
	return c.cursor
}

// Reset moves the cursor back to the top.
func (c *CollectionList) Reset() {
	c.cursor = 0
	c.offset = 0
}

// MoveUp moves the cursor one row up.
func (c *CollectionList) MoveUp(total int) {
	if c.cursor > 0 {
		c.cursor--
	}
	c.clamp(total)
}

// MoveDown moves the cursor one row down.
func (c *CollectionList) MoveDown(total int) {
	if c.cursor < total-1 {
		c.cursor++
	}
	c.clamp(total)
}

func (c *CollectionList) clamp(total int) {
	if total == 0 {
		c.cursor, c.offset = 0, 0
		return
	}
	if c.cursor >= total {
		c.cursor = total - 1
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.height {
		c.offset = c.cursor - c.height + 1
	}
}

// View renders the visible window of saved looks.
func (c *CollectionList) View(items []model.HistoryItem, width int) string {
	if len(items) == 0 {
		return c.theme.StyleDesc.Render("Nothing saved yet. Press 's' on a result to keep it.")
	}
	c.clamp(len(items))

	end := c.offset + c.height
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	for i := c.offset; i < end; i++ {
		b.WriteString(c.renderRow(items[i], i == c.cursor, width))
		b.WriteString("\n")
	}
	if c.offset > 0 || end < len(items) {
		b.WriteString(c.theme.StyleDesc.Render(fmt.Sprintf("%d/%d", c.cursor+1, len(items))))
	}
	return b.String()
}

func (c *CollectionList) renderRow(item model.HistoryItem, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	kind := "hair"
	if item.Kind == model.KindFashion {
		kind = "outfit"
	}
	when := item.Timestamp.Format("Jan 2 15:04")

	name := c.theme.StyleName.Render(runewidth.Truncate(item.StyleName, width-30, "..."))
	meta := c.theme.ResultMeta.Render(fmt.Sprintf("%s · %s", kind, when))
	return marker + name + "  " + meta
}
