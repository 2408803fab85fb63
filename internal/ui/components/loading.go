// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the StyleGenie TUI.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stylegenie/stylegenie-tui/internal/ui/styles"
)

// =============================================================================
// LOADING OVERLAY
// =============================================================================

// LoadingOverlay shows a spinner and a progress message while a collaborator
// call is in flight.
type LoadingOverlay struct {
	spinner   spinner.Model
	theme     *styles.Theme
	message   string
	startTime time.Time
	active    bool
}

// NewLoadingOverlay creates an inactive loading overlay.
func NewLoadingOverlay(theme *styles.Theme) LoadingOverlay {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner
	return LoadingOverlay{spinner: s, theme: theme}
}

// Start activates the overlay with a message and returns the tick command.
func (l *LoadingOverlay) Start(message string) tea.Cmd {
	l.active = true
	l.message = message
	l.startTime = time.Now()
	return l.spinner.Tick
}

// Stop deactivates the overlay.
func (l *LoadingOverlay) Stop() {
	l.active = false
	l.message = ""
}

// Active reports whether the overlay is showing.
func (l *LoadingOverlay) Active() bool {
	return l.active
}

// SetMessage updates the progress message mid-flight.
func (l *LoadingOverlay) SetMessage(message string) {
	l.message = message
}

// Update advances the spinner animation.
func (l *LoadingOverlay) Update(msg tea.Msg) tea.Cmd {
	if !l.active {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the overlay box.
func (l *LoadingOverlay) View() string {
	if !l.active {
		return ""
	}
	elapsed := time.Since(l.startTime).Round(time.Second)
	line := fmt.Sprintf("%s %s", l.spinner.View(), l.theme.LoadingText.Render(l.message))
	if elapsed >= 2*time.Second {
		line += " " + l.theme.LoadingText.Render(fmt.Sprintf("(%s)", elapsed))
	}
	return l.theme.LoadingBox.Render(line)
}
