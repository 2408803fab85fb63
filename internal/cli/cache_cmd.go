// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// cache_cmd.go - Preview cache management for StyleGenie.
//
// Command: cache
//
// Examples:
//   stylegenie cache stats       Show cached preview count
//   stylegenie cache clear       Drop all cached previews
package cli

import (
	"fmt"

	"github.com/stylegenie/stylegenie-tui/internal/cache"
	"github.com/stylegenie/stylegenie-tui/internal/config"
)

// HandleCache handles the "cache" command.
func HandleCache(args *Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pc, err := cache.Open(previewCachePath(cfg), cfg.Cache.MaxEntries)
	if err != nil {
		return fmt.Errorf("open preview cache: %w", err)
	}
	defer pc.Close()

	switch args.Subcommand {
	case "", "stats":
		n, err := pc.Len()
		if err != nil {
			return err
		}
		if args.JSON {
			return NewJSONResponse("cache", map[string]int{
				"entries":     n,
				"max_entries": cfg.Cache.MaxEntries,
			}).Print()
		}
		fmt.Printf("Preview cache: %d entries (limit %d)\n", n, cfg.Cache.MaxEntries)
		return nil

	case "clear":
		if err := pc.Clear(); err != nil {
			return err
		}
		fmt.Println("Preview cache cleared.")
		return nil

	default:
		return fmt.Errorf("unknown cache subcommand %q (want stats or clear)", args.Subcommand)
	}
}
