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
// GROUNDING LINKS
// =============================================================================

// GroundingLinks renders a grounded lookup result: the text summary followed
// by its ordered link chunks.
type GroundingLinks struct {
	theme  *styles.Theme
	cursor int
}

// NewGroundingLinks creates a grounding links view.
func NewGroundingLinks(theme *styles.Theme) GroundingLinks {
	return GroundingLinks{theme: theme}
}

// Cursor returns the index of the highlighted chunk.
func (g *GroundingLinks) Cursor() int {
	return g.cursor
}

// Reset moves the cursor back to the first chunk.
func (g *GroundingLinks) Reset() {
	g.cursor = 0
}

// MoveUp moves the cursor one chunk up.
func (g *GroundingLinks) MoveUp() {
	if g.cursor > 0 {
		g.cursor--
	}
}

// MoveDown moves the cursor one chunk down.
func (g *GroundingLinks) MoveDown(total int) {
	if g.cursor < total-1 {
		g.cursor++
	}
}

// SelectedURI returns the URI under the cursor, or "" when there are no
// chunks or the cursor points at the unconfigured placeholder.
func (g *GroundingLinks) SelectedURI(result *model.GroundingResult) string {
	if result == nil || g.cursor >= len(result.Chunks) {
		return ""
	}
	uri := result.Chunks[g.cursor].URI
	if uri == "#" {
		return ""
	}
	return uri
}

// View renders the grounding result within the given width.
func (g *GroundingLinks) View(result *model.GroundingResult, width int) string {
	if result == nil {
		return ""
	}

	var b strings.Builder
	if result.Text != "" {
		b.WriteString(g.theme.GroundingHeader.Render(wrap(result.Text, width)))
		b.WriteString("\n\n")
	}

	for i, chunk := range result.Chunks {
		title := chunk.Title
		if title == "" {
			title = chunk.URI
		}
		marker := "  "
		if i == g.cursor {
			marker = "> "
		}
		label := "Visit Store"
		if chunk.FromMaps {
			label = "View on Google Maps"
		}

		b.WriteString(marker)
		b.WriteString(g.theme.LinkTitle.Render(runewidth.Truncate(title, width-4, "...")))
		b.WriteString("\n")
		if chunk.Snippet != "" {
			b.WriteString("  ")
			b.WriteString(g.theme.LinkSnippet.Render(runewidth.Truncate(chunk.Snippet, width-4, "...")))
			b.WriteString("\n")
		}
		b.WriteString("  ")
		b.WriteString(g.theme.LinkURI.Render(fmt.Sprintf("%s: %s", label, runewidth.Truncate(chunk.URI, width-len(label)-6, "..."))))
		b.WriteString("\n")
	}
	return b.String()
}

// wrap breaks text on word boundaries to fit the given width.
func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(text)
	var b strings.Builder
	line := 0
	for i, w := range words {
		wlen := runewidth.StringWidth(w)
		if line > 0 && line+1+wlen > width {
			b.WriteString("\n")
			line = 0
		} else if i > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(w)
		line += wlen
	}
	return b.String()
}
