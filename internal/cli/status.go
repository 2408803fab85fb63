// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for StyleGenie.
//
// Command: status
// Short:   Display plan, quota, and configuration status
// Aliases: s
//
// Examples:
//   stylegenie status             Show plan and remaining styles
//   stylegenie status --json      Status as JSON for scripts
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stylegenie/stylegenie-tui/internal/cache"
	"github.com/stylegenie/stylegenie-tui/internal/config"
	"github.com/stylegenie/stylegenie-tui/internal/entitlement"
	"github.com/stylegenie/stylegenie-tui/internal/storage"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("135")). // Violet
				MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	valueGreenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	valueYellowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("220"))

	valueRedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	valueDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	statusSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// =============================================================================
// HANDLE STATUS
// =============================================================================

// HandleStatus handles the "status" command: current plan, today's quota,
// API key configuration, and storage counts.
func HandleStatus(args *Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := collectStatus(cfg)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("status", data).Print()
	}

	separator := strings.Repeat("=", 41)
	fmt.Println()
	fmt.Println(statusTitleStyle.Render("StyleGenie Status"))
	fmt.Println(statusSeparatorStyle.Render(separator))

	fmt.Println(sectionStyle.Render("Plan"))
	fmt.Printf("  %s%s\n", labelStyle.Render("Tier:"), valueStyle.Render(data.Plan))
	fmt.Printf("  %s%s\n", labelStyle.Render("Remaining:"), renderRemaining(data))
	fmt.Printf("  %s%s\n", labelStyle.Render("Used Today:"),
		valueStyle.Render(fmt.Sprintf("%d of %d", data.UsedToday, data.DailyLimit)))
	if data.TopUpsToday > 0 {
		fmt.Printf("  %s%s\n", labelStyle.Render("Top-ups:"),
			valueGreenStyle.Render(fmt.Sprintf("+%d today", data.TopUpsToday)))
	}
	if data.TrialEnded {
		fmt.Printf("  %s%s\n", labelStyle.Render("Trial:"),
			valueRedStyle.Render("Ended, upgrade to continue"))
	}

	fmt.Println(sectionStyle.Render("Configuration"))
	fmt.Printf("  %s%s\n", labelStyle.Render("Gemini Key:"), renderConfigured(data.GeminiKey))
	fmt.Printf("  %s%s\n", labelStyle.Render("Search Key:"), renderConfigured(data.SearchKey))

	fmt.Println(sectionStyle.Render("Storage"))
	fmt.Printf("  %s%s\n", labelStyle.Render("Saved Looks:"),
		valueStyle.Render(fmt.Sprintf("%d", data.SavedLooks)))
	fmt.Printf("  %s%s\n", labelStyle.Render("Previews:"),
		valueStyle.Render(fmt.Sprintf("%d cached", data.CacheFiles)))
	fmt.Println()

	return nil
}

func collectStatus(cfg *config.Config) (StatusData, error) {
	engine := entitlement.NewEngine()

	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		return StatusData{}, err
	}
	usage, err := storage.NewUsageRepo(store).LoadOrInit(engine, time.Now())
	if err != nil {
		return StatusData{}, err
	}
	saved, err := storage.NewCollectionRepo(store).Load()
	if err != nil {
		return StatusData{}, err
	}

	data := StatusData{
		Plan:        string(usage.Tier),
		DailyLimit:  engine.TotalLimit(usage),
		UsedToday:   usage.DailyCount,
		Remaining:   engine.Remaining(usage),
		TopUpsToday: usage.ExtraDailyLimit,
		TrialEnded:  engine.TrialExpired(usage),
		GeminiKey:   cfg.Gemini.APIKey != "",
		SearchKey:   cfg.Search.APIKey != "" && cfg.Search.EngineID != "",
		SavedLooks:  len(saved),
	}

	if cfg.Cache.Enabled {
		if pc, cerr := cache.Open(previewCachePath(cfg), cfg.Cache.MaxEntries); cerr == nil {
			if n, lerr := pc.Len(); lerr == nil {
				data.CacheFiles = n
			}
			pc.Close()
		}
	}
	return data, nil
}

func renderRemaining(data StatusData) string {
	label := fmt.Sprintf("%d styles", data.Remaining)
	switch {
	case data.Remaining == 0:
		return valueRedStyle.Render(label)
	case data.Remaining <= 3:
		return valueYellowStyle.Render(label)
	default:
		return valueGreenStyle.Render(label)
	}
}

func renderConfigured(ok bool) string {
	if ok {
		return valueGreenStyle.Render("Configured")
	}
	return valueDimStyle.Render("Not configured")
}
