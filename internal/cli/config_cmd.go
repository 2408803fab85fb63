// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command for StyleGenie.
//
// Command: config
//
// Examples:
//   stylegenie config            Show effective configuration
//   stylegenie config path       Print the config file path
//   stylegenie config init       Write a default config file
package cli

import (
	"fmt"
	"os"

	"github.com/stylegenie/stylegenie-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args *Args) error {
	switch args.Subcommand {
	case "", "show":
		return showConfig(args)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "init":
		return initConfig()
	default:
		return fmt.Errorf("unknown config subcommand %q (want show, path, or init)", args.Subcommand)
	}
}

func showConfig(args *Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if args.JSON {
		// Redact credentials; presence is what scripts need.
		view := map[string]interface{}{
			"data_dir":          cfg.DataDir,
			"gemini_key_set":    cfg.Gemini.APIKey != "",
			"search_key_set":    cfg.Search.APIKey != "",
			"search_engine_set": cfg.Search.EngineID != "",
			"location_enabled":  cfg.Location.Enabled,
			"cache_enabled":     cfg.Cache.Enabled,
			"cache_max_entries": cfg.Cache.MaxEntries,
			"theme":             cfg.UI.Theme,
		}
		return NewJSONResponse("config", view).Print()
	}

	fmt.Println()
	fmt.Println(statusTitleStyle.Render("Configuration"))
	fmt.Printf("  %s%s\n", labelStyle.Render("Data Dir:"), valueStyle.Render(cfg.DataDir))
	fmt.Printf("  %s%s\n", labelStyle.Render("Gemini Key:"), renderConfigured(cfg.Gemini.APIKey != ""))
	fmt.Printf("  %s%s\n", labelStyle.Render("Search Key:"), renderConfigured(cfg.Search.APIKey != ""))
	fmt.Printf("  %s%s\n", labelStyle.Render("Engine ID:"), renderConfigured(cfg.Search.EngineID != ""))
	fmt.Printf("  %s%s\n", labelStyle.Render("Location:"), renderEnabled(cfg.Location.Enabled))
	fmt.Printf("  %s%s\n", labelStyle.Render("Cache:"), renderEnabled(cfg.Cache.Enabled))
	fmt.Printf("  %s%s\n", labelStyle.Render("Theme:"), valueStyle.Render(cfg.UI.Theme))
	fmt.Println()
	return nil
}

func initConfig() error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := config.Save(config.Default()); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", path)
	fmt.Println("Add your Gemini API key under [gemini] to get started.")
	return nil
}

func renderEnabled(ok bool) string {
	if ok {
		return valueGreenStyle.Render("Enabled")
	}
	return valueDimStyle.Render("Disabled")
}
