// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/session"
	"github.com/stylegenie/stylegenie-tui/internal/ui/components"
)

// View renders the screen for the current session state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	var body string
	switch {
	case m.ctrl.PlansOpen():
		body = m.viewPlans()
	case m.ctrl.State() == session.StateUpload:
		body = m.viewUpload()
	case m.ctrl.State() == session.StateAnalyzing,
		m.ctrl.State() == session.StateGeneratingImage:
		body = m.viewBusy()
	case m.ctrl.State() == session.StateDashboard:
		body = m.viewDashboard()
	case m.ctrl.State() == session.StateShowingResult:
		body = m.viewResult()
	case m.ctrl.State() == session.StateCollection:
		body = m.viewCollection()
	}

	sections := []string{m.viewHeader(), body}
	if notice := m.ctrl.Notice(); notice != "" {
		sections = append(sections, m.theme.NoticeBox.Render(m.theme.NoticeText.Render(notice)))
	}
	sections = append(sections, m.viewStatus())

	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewHeader() string {
	title := m.theme.HeaderTitle.Render("StyleGenie")
	sub := m.theme.StyleDesc.Render("AI hairstyle & outfit try-on")
	return m.theme.Header.Render(title + "  " + sub)
}

func (m Model) viewStatus() string {
	return m.status.View(m.ctrl.Engine(), m.ctrl.Usage(), m.shortcuts(), m.width-2)
}

func (m Model) shortcuts() []components.Shortcut {
	switch m.ctrl.State() {
	case session.StateUpload:
		return []components.Shortcut{
			{Key: "Enter", Desc: "analyze"},
			{Key: "v", Desc: "collection"},
			{Key: "C-c", Desc: "quit"},
		}
	case session.StateDashboard:
		return []components.Shortcut{
			{Key: "1/2/3", Desc: "tabs"},
			{Key: "Enter", Desc: "try on"},
			{Key: "p", Desc: "preview"},
			{Key: "m", Desc: "more"},
			{Key: "/", Desc: "search"},
			{Key: "u", Desc: "upgrade"},
		}
	case session.StateShowingResult:
		return []components.Shortcut{
			{Key: "left/right", Desc: "history"},
			{Key: "s", Desc: "save"},
			{Key: "e", Desc: "export"},
			{Key: "n", Desc: "salons"},
			{Key: "Esc", Desc: "back"},
		}
	case session.StateCollection:
		return []components.Shortcut{
			{Key: "Enter", Desc: "view"},
			{Key: "d", Desc: "delete"},
			{Key: "Esc", Desc: "back"},
		}
	default:
		return []components.Shortcut{{Key: "C-c", Desc: "quit"}}
	}
}

// =============================================================================
// SCREENS
// =============================================================================

func (m Model) viewUpload() string {
	intro := m.theme.Container.Render(strings.Join([]string{
		m.theme.ResultTitle.Render("Find your next look"),
		"",
		"Upload a clear, front-facing photo and get hairstyle and",
		"outfit suggestions tailored to your face shape and skin tone.",
		"",
		m.input.View(),
	}, "\n"))
	return intro
}

func (m Model) viewBusy() string {
	return m.theme.Container.Render(m.overlay.View())
}

func (m Model) viewDashboard() string {
	var sections []string

	if a := m.ctrl.Analysis(); a != nil {
		sections = append(sections, m.theme.AnalysisSummary.Render(
			fmt.Sprintf("Face shape: %s   Skin tone: %s", a.FaceShape, a.SkinTone)))
	}
	sections = append(sections, m.viewTabs())

	if g := m.ctrl.Grounding(); g != nil {
		sections = append(sections, m.links.View(g, m.width-6))
		sections = append(sections, m.theme.StyleDesc.Render("Esc to dismiss"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	switch m.ctrl.ActiveTab() {
	case session.TabMix:
		sections = append(sections, m.viewMix())
	default:
		sections = append(sections, m.viewStyleTab())
	}

	if m.inputMode == inputSearch {
		sections = append(sections, m.input.View())
	}
	if m.inputMode == inputColor || m.inputMode == inputFilter {
		sections = append(sections, m.viewColorPicker())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	render := func(tab session.Tab, label string) string {
		if m.ctrl.ActiveTab() == tab {
			return m.theme.TabActive.Render(label)
		}
		return m.theme.TabInactive.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		render(session.TabHair, "1 Hairstyles"),
		render(session.TabFashion, "2 Outfits"),
		render(session.TabMix, "3 Mix & Match"),
	)
}

func (m Model) viewStyleTab() string {
	var sections []string

	if m.ctrl.ActiveTab() == session.TabHair {
		if filter := m.ctrl.ColorFilter(); filter != "" {
			sections = append(sections, m.theme.StyleColorSwatch.Render("Filter: "+filter))
		}
	}
	if m.ctrl.ActiveTab() == session.TabFashion {
		mode := "text"
		if m.ctrl.SearchMode() == session.SearchLink {
			mode = "link"
		}
		sections = append(sections, m.theme.StyleDesc.Render("search mode: "+mode+" (L toggles)"))
	}

	mixName := ""
	mix := m.ctrl.Mix()
	if m.ctrl.ActiveTab() == session.TabHair && mix.Hair != nil {
		mixName = mix.Hair.Name
	}
	if m.ctrl.ActiveTab() == session.TabFashion && mix.Outfit != nil {
		mixName = mix.Outfit.Name
	}

	list := m.activeList()
	sections = append(sections, list.View(m.activeItems(), m.width-6, mixName))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewMix() string {
	mix := m.ctrl.Mix()
	slot := func(label string, item *model.StyleItem) string {
		if item == nil {
			return m.theme.StyleCard.Render(label + ": " + m.theme.StyleDesc.Render("empty, pick with space"))
		}
		line := label + ": " + m.theme.StyleName.Render(item.Name)
		if item.SelectedColor != "" {
			line += " " + m.theme.StyleColorSwatch.Render("● "+item.SelectedColor)
		}
		return m.theme.StyleCardSelected.Render(line)
	}

	hint := "space on tabs 1 and 2 fills the slots, g generates, x clears"
	return lipgloss.JoinVertical(lipgloss.Left,
		slot("Hair", mix.Hair),
		slot("Outfit", mix.Outfit),
		m.theme.StyleDesc.Render(hint),
	)
}

func (m Model) viewColorPicker() string {
	title := "Pick a hair color"
	if m.inputMode == inputFilter {
		title = "Filter all hairstyles by color"
	} else if m.ctrl.ActiveTab() == session.TabFashion {
		title = "Pick a fabric color"
	}

	var rows []string
	rows = append(rows, m.theme.ResultTitle.Render(title))
	for i, preset := range model.HairColorPresets {
		marker := "  "
		if i == m.colorIdx {
			marker = "> "
		}
		rows = append(rows, marker+m.theme.StyleColorSwatch.Render("● ")+preset.Name)
	}
	marker := "  "
	if m.colorIdx == len(model.HairColorPresets) {
		marker = "> "
	}
	rows = append(rows, marker+"Default (no color)")

	return m.theme.Container.Render(strings.Join(rows, "\n"))
}

func (m Model) viewResult() string {
	item, ok := m.ctrl.CurrentResult()
	if !ok {
		return m.theme.Container.Render(m.theme.StyleDesc.Render("No result to show."))
	}

	var sections []string
	title := item.StyleName
	if m.ctrl.Collection().Contains(item.ID) {
		title += " " + m.theme.SavedBadge.Render("[saved]")
	}
	sections = append(sections, m.theme.ResultTitle.Render(title))
	sections = append(sections, m.theme.StyleDesc.Render(item.Description))

	kind := "hairstyle"
	switch item.Kind {
	case model.KindFashion:
		kind = "outfit"
	case model.KindMix:
		kind = "mix & match look"
	}
	sections = append(sections, m.theme.ResultMeta.Render(fmt.Sprintf(
		"%s  ·  generated %s  ·  image %d KB",
		kind, item.Timestamp.Format("15:04:05"), len(item.Image)/1024)))

	if source := m.ctrl.Source(); source == session.SourceHistory {
		ledger := m.ctrl.Ledger()
		if ledger.Len() > 1 {
			sections = append(sections, m.theme.ResultMeta.Render(
				fmt.Sprintf("look %d of %d this session", ledger.Cursor()+1, ledger.Len())))
		}
	}

	if m.exportNote != "" {
		sections = append(sections, m.theme.ResultMeta.Render(m.exportNote))
	}

	body := m.theme.ResultBox.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	if g := m.ctrl.Grounding(); g != nil {
		return lipgloss.JoinVertical(lipgloss.Left, body, m.links.View(g, m.width-6))
	}
	return body
}

func (m Model) viewCollection() string {
	header := m.theme.ResultTitle.Render("My Collection")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.saved.View(m.ctrl.Collection().Items(), m.width-6),
	)
}

func (m Model) viewPlans() string {
	view := m.plans.View(m.width - 4)
	if m.overlay.Active() {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.overlay.View())
	}
	return view
}
