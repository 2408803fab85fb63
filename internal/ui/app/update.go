// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stylegenie/stylegenie-tui/internal/history"
	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/session"
)

// noticeDuration is how long a transient notice stays on screen.
const noticeDuration = 5 * time.Second

// Update routes messages to the controller and keeps the terminal-side
// state (lists, overlay, inputs) in sync with it.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		listHeight := (msg.Height - 14) / 4
		m.hairList.SetHeight(listHeight)
		m.outfitList.SetHeight(listHeight)
		m.saved.SetHeight(msg.Height - 8)
		m.input.Width = msg.Width - 10
		return m, nil

	case spinner.TickMsg:
		cmd := m.overlay.Update(msg)
		return m, cmd

	case analysisDoneMsg:
		m.ctrl.CompleteAnalysis(msg.id, msg.result, msg.err)
		m.hairList.Reset()
		m.outfitList.Reset()
		return m.settled()

	case loadMorePairDoneMsg:
		m.ctrl.CompleteLoadMorePair(msg.id, msg.hair, msg.fashion, msg.err)
		return m.settled()

	case visualizeDoneMsg:
		m.ctrl.CompleteVisualize(msg.id, msg.image, msg.description, msg.err)
		return m.settled()

	case previewDoneMsg:
		m.ctrl.CompletePreview(msg.id, msg.thumbnail, msg.err)
		return m, nil

	case groundingDoneMsg:
		m.ctrl.CompleteGrounding(msg.id, msg.result)
		m.links.Reset()
		return m.settled()

	case purchaseDoneMsg:
		m.ctrl.CompletePurchase(msg.id, msg.receipt, msg.err)
		return m.settled()

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.ctrl.ClearNotice()
		}
		return m, nil

	case configReloadedMsg:
		if lat, lng, ok := msg.cfg.Coordinates(); ok {
			m.ctrl.SetLocation(model.Coordinates{Latitude: lat, Longitude: lng})
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// settled resyncs the overlay and notice timer after any controller
// completion or action.
func (m Model) settled() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if cmd := m.syncOverlay(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.scheduleNotice(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) syncOverlay() tea.Cmd {
	loading := m.ctrl.LoadingMessage()
	switch {
	case loading == "":
		m.overlay.Stop()
		return nil
	case !m.overlay.Active():
		return m.overlay.Start(loading)
	default:
		m.overlay.SetMessage(loading)
		return nil
	}
}

// scheduleNotice arms the expiry timer for whatever notice is showing.
func (m *Model) scheduleNotice() tea.Cmd {
	if m.ctrl.Notice() == "" {
		return nil
	}
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// run executes a controller effect and resyncs the overlay.
func (m Model) run(effect session.Effect) (tea.Model, tea.Cmd) {
	if effect == nil {
		return m.settled()
	}
	cmds := []tea.Cmd{m.runner.Exec(effect)}
	if cmd := m.syncOverlay(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.scheduleNotice(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputMode != inputNone && m.inputMode != inputUpload {
		return m.handlePromptKey(msg)
	}
	if m.ctrl.PlansOpen() {
		return m.handlePlansKey(msg)
	}

	switch m.ctrl.State() {
	case session.StateUpload:
		return m.handleUploadKey(msg)
	case session.StateDashboard:
		return m.handleDashboardKey(msg)
	case session.StateShowingResult:
		return m.handleResultKey(msg)
	case session.StateCollection:
		return m.handleCollectionKey(msg)
	default:
		// Busy screens ignore everything except quit.
		return m, nil
	}
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		path := m.input.Value()
		if path == "" {
			return m, nil
		}
		photo, err := loadPhoto(path)
		if err != nil {
			m.input.SetValue("")
			m.input.Placeholder = fmt.Sprintf("could not read %s, try again", path)
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.inputMode = inputNone
		return m.run(m.ctrl.UploadImage(photo))

	case key.Matches(msg, m.keys.Collection):
		m.ctrl.OpenCollection()
		m.saved.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.activeList()
	items := m.activeItems()

	switch {
	case key.Matches(msg, m.keys.Up):
		list.MoveUp(len(items))
	case key.Matches(msg, m.keys.Down):
		list.MoveDown(len(items))

	case key.Matches(msg, m.keys.TabHair):
		m.ctrl.SelectTab(session.TabHair)
	case key.Matches(msg, m.keys.TabFashion):
		m.ctrl.SelectTab(session.TabFashion)
	case key.Matches(msg, m.keys.TabMix):
		m.ctrl.SelectTab(session.TabMix)

	case key.Matches(msg, m.keys.Submit):
		if m.ctrl.ActiveTab() == session.TabMix {
			return m.runMix()
		}
		if item, ok := m.selectedItem(); ok {
			return m.run(m.ctrl.TryOn(item))
		}
	case key.Matches(msg, m.keys.MixGo):
		if m.ctrl.ActiveTab() == session.TabMix {
			return m.runMix()
		}

	case key.Matches(msg, m.keys.Preview):
		if item, ok := m.selectedItem(); ok {
			return m.run(m.ctrl.GeneratePreview(item))
		}
	case key.Matches(msg, m.keys.LoadMore):
		return m.run(m.ctrl.LoadMore())

	case key.Matches(msg, m.keys.Search):
		return m.openPrompt(inputSearch)
	case key.Matches(msg, m.keys.LinkMode):
		if m.ctrl.SearchMode() == session.SearchText {
			m.ctrl.SetSearchMode(session.SearchLink)
		} else {
			m.ctrl.SetSearchMode(session.SearchText)
		}

	case key.Matches(msg, m.keys.Color):
		if _, ok := m.selectedItem(); ok {
			m.colorIdx = 0
			m.inputMode = inputColor
		}
	case key.Matches(msg, m.keys.Filter):
		if m.ctrl.ActiveTab() == session.TabHair {
			m.colorIdx = 0
			m.inputMode = inputFilter
		}

	case key.Matches(msg, m.keys.MixSelect):
		if item, ok := m.selectedItem(); ok {
			switch m.ctrl.ActiveTab() {
			case session.TabHair:
				m.ctrl.SelectMixHair(item)
			case session.TabFashion:
				m.ctrl.SelectMixOutfit(item)
			}
		}
	case key.Matches(msg, m.keys.MixClear):
		m.ctrl.ClearMix()

	case key.Matches(msg, m.keys.Salons):
		return m.run(m.ctrl.FindSalons())
	case key.Matches(msg, m.keys.Shopping):
		if m.ctrl.ActiveTab() == session.TabFashion {
			if item, ok := m.selectedItem(); ok {
				return m.run(m.ctrl.FindShopping(item))
			}
		}

	case key.Matches(msg, m.keys.Collection):
		m.ctrl.OpenCollection()
		m.saved.Reset()
	case key.Matches(msg, m.keys.Plans):
		m.plans.Reset()
		m.ctrl.OpenPlans()
	case key.Matches(msg, m.keys.NewSession):
		m.ctrl.NewSession()
		return m.toUploadPrompt()
	case key.Matches(msg, m.keys.Back):
		if m.ctrl.Grounding() != nil {
			m.ctrl.ClearGrounding()
		}
	}
	return m, nil
}

func (m Model) runMix() (tea.Model, tea.Cmd) {
	effect, err := m.ctrl.MixTryOn()
	var pre *session.PreconditionError
	if errors.As(err, &pre) {
		return m.settled()
	}
	return m.run(effect)
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.exportNote = ""
	switch {
	case key.Matches(msg, m.keys.Export):
		if item, ok := m.ctrl.CurrentResult(); ok {
			name, err := exportLook(item)
			if err != nil {
				m.exportNote = fmt.Sprintf("Export failed: %v", err)
			} else {
				m.exportNote = "Saved image to " + name
			}
		}
	case key.Matches(msg, m.keys.Left):
		m.ctrl.Navigate(history.Prev)
	case key.Matches(msg, m.keys.Right):
		m.ctrl.Navigate(history.Next)
	case key.Matches(msg, m.keys.Save):
		m.ctrl.ToggleSaveCurrent()
	case key.Matches(msg, m.keys.Salons):
		return m.run(m.ctrl.FindSalons())
	case key.Matches(msg, m.keys.Shopping):
		if item, ok := m.ctrl.CurrentResult(); ok {
			switch {
			case item.Kind == model.KindFashion && len(item.Items) > 0:
				return m.run(m.ctrl.FindShopping(item.Items[0]))
			case item.Kind == model.KindMix && len(item.Items) > 1:
				// Mix items hold hair then outfit; shop the outfit half.
				return m.run(m.ctrl.FindShopping(item.Items[1]))
			}
		}
	case key.Matches(msg, m.keys.Up):
		if g := m.ctrl.Grounding(); g != nil {
			m.links.MoveUp()
		}
	case key.Matches(msg, m.keys.Down):
		if g := m.ctrl.Grounding(); g != nil {
			m.links.MoveDown(len(g.Chunks))
		}
	case key.Matches(msg, m.keys.Back):
		if m.ctrl.Grounding() != nil {
			m.ctrl.ClearGrounding()
		} else {
			m.ctrl.CloseResult()
		}
	}
	return m, nil
}

func (m Model) handleCollectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.ctrl.Collection().Items()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.saved.MoveUp(len(items))
	case key.Matches(msg, m.keys.Down):
		m.saved.MoveDown(len(items))
	case key.Matches(msg, m.keys.Submit):
		if len(items) > 0 {
			m.ctrl.ViewCollectionItem(m.saved.Cursor())
		}
	case key.Matches(msg, m.keys.Delete):
		if cursor := m.saved.Cursor(); cursor < len(items) {
			m.ctrl.DeleteFromCollection(items[cursor].ID)
			m.saved.MoveUp(len(items) - 1)
		}
	case key.Matches(msg, m.keys.Back):
		m.ctrl.CloseCollection()
		if m.ctrl.State() == session.StateUpload {
			return m.toUploadPrompt()
		}
	}
	return m, nil
}

func (m Model) handlePlansKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.plans.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.plans.MoveDown()
	case key.Matches(msg, m.keys.Submit):
		return m.run(m.ctrl.Purchase(m.plans.Selected().ID))
	case key.Matches(msg, m.keys.Back):
		m.ctrl.ClosePlans()
	}
	return m, nil
}

// =============================================================================
// PROMPTS
// =============================================================================

func (m Model) openPrompt(mode inputMode) (tea.Model, tea.Cmd) {
	m.inputMode = mode
	m.input.SetValue("")
	if mode == inputSearch && m.ctrl.SearchMode() == session.SearchLink &&
		m.ctrl.ActiveTab() == session.TabFashion {
		m.input.Placeholder = "paste a product page URL"
	} else {
		m.input.Placeholder = "describe a style, e.g. 90s grunge"
	}
	return m, m.input.Focus()
}

func (m Model) toUploadPrompt() (tea.Model, tea.Cmd) {
	m.inputMode = inputUpload
	m.input.SetValue("")
	m.input.Placeholder = "path to your photo (jpeg)"
	return m, m.input.Focus()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode == inputColor || m.inputMode == inputFilter {
		return m.handleColorKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.inputMode = inputNone
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		query := m.input.Value()
		m.inputMode = inputNone
		m.input.Blur()
		m.input.SetValue("")
		return m.run(m.ctrl.SubmitSearch(query))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleColorKey drives the preset color picker. The slot one past the
// presets clears the color.
func (m Model) handleColorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := len(model.HairColorPresets) + 1
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.colorIdx > 0 {
			m.colorIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.colorIdx < total-1 {
			m.colorIdx++
		}
	case key.Matches(msg, m.keys.Back):
		m.inputMode = inputNone
	case key.Matches(msg, m.keys.Submit):
		color := ""
		if m.colorIdx < len(model.HairColorPresets) {
			color = model.HairColorPresets[m.colorIdx].Name
		}
		if m.inputMode == inputFilter {
			m.ctrl.SetColorFilter(color)
		} else if item, ok := m.selectedItem(); ok {
			m.ctrl.SetColor(item.Name, color)
		}
		m.inputMode = inputNone
	}
	return m, nil
}
