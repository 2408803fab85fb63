// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the top-level Bubble Tea program for StyleGenie.
package app

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/session"
	"github.com/stylegenie/stylegenie-tui/internal/ui/components"
	"github.com/stylegenie/stylegenie-tui/internal/ui/styles"
)

// =============================================================================
// INPUT MODES
// =============================================================================

// inputMode tracks which text prompt, if any, currently owns the keyboard.
type inputMode int

const (
	inputNone   inputMode = iota
	inputUpload           // photo file path
	inputSearch           // custom style query or product URL
	inputColor            // color choice for the highlighted card
	inputFilter           // hair color filter
)

// =============================================================================
// APP MODEL
// =============================================================================

// Model is the Bubble Tea model for the whole app. All session semantics
// live in the controller; this model owns terminal concerns only.
type Model struct {
	ctrl   *session.Controller
	runner *Runner
	theme  *styles.Theme
	keys   KeyMap

	width  int
	height int

	overlay    components.LoadingOverlay
	hairList   components.StyleList
	outfitList components.StyleList
	saved      components.CollectionList
	links      components.GroundingLinks
	plans      components.PlanPicker
	status     components.StatusBar

	input     textinput.Model
	inputMode inputMode

	// colorIdx indexes HairColorPresets while picking; len(presets) means
	// "default" (clear the color).
	colorIdx int

	// exportNote is the outcome of the last image export, shown on the
	// result screen until the next key press there.
	exportNote string

	noticeSeq int
	quitting  bool
}

// New wires the app model around a prepared controller and effect runner.
func New(ctrl *session.Controller, runner *Runner, theme *styles.Theme) Model {
	input := textinput.New()
	input.CharLimit = 512
	input.Width = 60
	input.Placeholder = "path to your photo (jpeg)"
	input.Focus()

	return Model{
		inputMode:  inputUpload,
		ctrl:       ctrl,
		runner:     runner,
		theme:      theme,
		keys:       DefaultKeyMap(),
		overlay:    components.NewLoadingOverlay(theme),
		hairList:   components.NewStyleList(theme),
		outfitList: components.NewStyleList(theme),
		saved:      components.NewCollectionList(theme),
		links:      components.NewGroundingLinks(theme),
		plans:      components.NewPlanPicker(theme),
		status:     components.NewStatusBar(theme),
		input:      input,
	}
}

// Init starts the app on the upload prompt.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// activeList returns the style list for the current tab. The mix tab reuses
// the hair list for its picker hints.
func (m *Model) activeList() *components.StyleList {
	if m.ctrl.ActiveTab() == session.TabFashion {
		return &m.outfitList
	}
	return &m.hairList
}

// activeItems returns the suggestions shown on the current tab.
func (m *Model) activeItems() []model.StyleItem {
	a := m.ctrl.Analysis()
	if a == nil {
		return nil
	}
	if m.ctrl.ActiveTab() == session.TabFashion {
		return a.Outfits
	}
	return a.HairStyles
}

// selectedItem returns the card under the cursor on the current tab.
func (m *Model) selectedItem() (model.StyleItem, bool) {
	items := m.activeItems()
	cursor := m.activeList().Cursor()
	if cursor < 0 || cursor >= len(items) {
		return model.StyleItem{}, false
	}
	return items[cursor], true
}

// loadPhoto reads and encodes the photo at path for the analysis call.
func loadPhoto(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
