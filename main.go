// StyleGenie TUI - AI hairstyle and outfit try-on for your terminal.
//
// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stylegenie/stylegenie-tui/internal/cache"
	"github.com/stylegenie/stylegenie-tui/internal/cli"
	"github.com/stylegenie/stylegenie-tui/internal/collection"
	"github.com/stylegenie/stylegenie-tui/internal/config"
	"github.com/stylegenie/stylegenie-tui/internal/entitlement"
	"github.com/stylegenie/stylegenie-tui/internal/genai"
	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/payment"
	"github.com/stylegenie/stylegenie-tui/internal/search"
	"github.com/stylegenie/stylegenie-tui/internal/session"
	"github.com/stylegenie/stylegenie-tui/internal/storage"
	"github.com/stylegenie/stylegenie-tui/internal/ui/app"
	"github.com/stylegenie/stylegenie-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async message delivery
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	var err error
	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdStatus:
		err = cli.HandleStatus(args)
	case cli.CmdCollection:
		err = cli.HandleCollection(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdCache:
		err = cli.HandleCache(args)
	case cli.CmdPlans:
		err = cli.HandlePlans(args)
	case cli.CmdVersion:
		fmt.Println(cli.VersionString())
	case cli.CmdHelp:
		if args.Subcommand != "" {
			fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", args.Subcommand)
		}
		fmt.Print(cli.Usage())
	default:
		runTUI()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI wires the collaborators and starts the Bubble Tea program.
func runTUI() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Entitlement state loads before anything else so day rollover is
	// reconciled exactly once at startup.
	engine := entitlement.NewEngine()
	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	usageRepo := storage.NewUsageRepo(store)
	usage, err := usageRepo.LoadOrInit(engine, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	saved, err := collection.Load(storage.NewCollectionRepo(store))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	aiClient := genai.NewClient(cfg.Gemini.APIKey)
	if !aiClient.IsConfigured() {
		fmt.Fprintln(os.Stderr, "Error: no Gemini API key configured.")
		fmt.Fprintln(os.Stderr, "Set STYLEGENIE_API_KEY or add it to the config file (\"stylegenie config init\").")
		os.Exit(1)
	}
	searchClient := search.NewClient(cfg.Search.APIKey, cfg.Search.EngineID)

	var previews *cache.PreviewCache
	if cfg.Cache.Enabled {
		previews, err = cache.Open(filepath.Join(cfg.DataDir, cache.DatabaseFile), cfg.Cache.MaxEntries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: preview cache disabled: %v\n", err)
		} else {
			defer previews.Close()
		}
	}

	ctrl := session.New(engine, usage, usageRepo, saved)
	if lat, lng, ok := cfg.Coordinates(); ok {
		ctrl.SetLocation(model.Coordinates{Latitude: lat, Longitude: lng})
	}

	runner := app.NewRunner(aiClient, searchClient, payment.NewProcessor(), previews)
	theme := styles.NewTheme()
	m := app.New(ctrl, runner, theme)

	p := tea.NewProgram(m, tea.WithAltScreen())
	programMu.Lock()
	programRef = p
	programMu.Unlock()

	watcher := startConfigWatcher()
	if watcher != nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running stylegenie: %v\n", err)
		os.Exit(1)
	}
}

// startConfigWatcher reloads config on file changes and posts the result
// into the running program. A missing config file is not an error; the
// watcher just never fires.
func startConfigWatcher() *config.Watcher {
	path, err := config.ConfigPath()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	watcher, err := config.NewWatcher(path, func(cfg *config.Config) {
		programMu.Lock()
		p := programRef
		programMu.Unlock()
		if p != nil {
			p.Send(app.NewConfigReloadedMsg(cfg))
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config watcher unavailable: %v\n", err)
		return nil
	}
	if err := watcher.Watch(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config watcher unavailable: %v\n", err)
		watcher.Close()
		return nil
	}
	return watcher
}
