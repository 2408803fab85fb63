// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// collection_cmd.go - Saved looks management from the command line.
//
// Command: collection
// Aliases: looks
//
// Examples:
//   stylegenie collection              List saved looks
//   stylegenie collection list --json  Saved looks as JSON
//   stylegenie collection rm <id>      Remove a saved look
package cli

import (
	"fmt"

	"github.com/stylegenie/stylegenie-tui/internal/config"
	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/storage"
	"github.com/stylegenie/stylegenie-tui/internal/util"
)

// HandleCollection handles the "collection" command.
func HandleCollection(args *Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := storage.NewFileStore(cfg.DataDir)
	if err != nil {
		return err
	}
	repo := storage.NewCollectionRepo(store)
	items, err := repo.Load()
	if err != nil {
		return err
	}

	switch args.Subcommand {
	case "", "list":
		return printCollection(items, args.JSON)
	case "rm", "remove":
		return removeFromCollection(repo, items, args.ConfigKey)
	default:
		return fmt.Errorf("unknown collection subcommand %q (want list or rm)", args.Subcommand)
	}
}

func printCollection(items []model.HistoryItem, asJSON bool) error {
	if asJSON {
		entries := make([]CollectionEntry, 0, len(items))
		for _, item := range items {
			entries = append(entries, CollectionEntry{
				ID:        item.ID,
				StyleName: item.StyleName,
				Kind:      string(item.Kind),
				Timestamp: item.Timestamp,
			})
		}
		return NewJSONResponse("collection", entries).Print()
	}

	if len(items) == 0 {
		fmt.Println("No saved looks yet. Save one from a result screen with 's'.")
		return nil
	}

	fmt.Println()
	fmt.Println(statusTitleStyle.Render(fmt.Sprintf("My Collection (%d)", len(items))))
	for _, item := range items {
		fmt.Printf("  %s  %-32s  %s  %s\n",
			valueDimStyle.Render(item.ID[:8]),
			valueStyle.Render(util.TruncateString(item.StyleName, 32)),
			valueDimStyle.Render(string(item.Kind)),
			valueDimStyle.Render(item.Timestamp.Format("2006-01-02 15:04")))
	}
	fmt.Println()
	return nil
}

func removeFromCollection(repo *storage.CollectionRepo, items []model.HistoryItem, id string) error {
	if id == "" {
		return fmt.Errorf("collection rm needs a look id (see \"collection list\")")
	}

	kept := items[:0]
	removed := false
	for _, item := range items {
		// Accept the short prefix shown by the list output.
		if item.ID == id || (len(id) >= 8 && len(item.ID) >= len(id) && item.ID[:len(id)] == id) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return fmt.Errorf("no saved look with id %q", id)
	}
	if err := repo.Save(kept); err != nil {
		return err
	}
	fmt.Println("Removed.")
	return nil
}
