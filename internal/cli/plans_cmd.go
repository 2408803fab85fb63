// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// plans_cmd.go - Upgrade catalog listing for StyleGenie.
//
// Command: plans
// Aliases: upgrade
//
// Examples:
//   stylegenie plans             Show upgrade options
//   stylegenie plans --json      Catalog as JSON
package cli

import (
	"fmt"

	"github.com/stylegenie/stylegenie-tui/internal/payment"
)

// HandlePlans handles the "plans" command. Purchases themselves happen in
// the TUI; the CLI only lists the catalog.
func HandlePlans(args *Args) error {
	catalog := payment.Catalog()

	if args.JSON {
		entries := make([]PlanEntry, 0, len(catalog))
		for _, opt := range catalog {
			entries = append(entries, PlanEntry{
				ID:       string(opt.ID),
				Name:     opt.Name,
				Cost:     opt.Cost,
				Period:   opt.Period,
				Features: opt.Features,
			})
		}
		return NewJSONResponse("plans", entries).Print()
	}

	fmt.Println()
	fmt.Println(statusTitleStyle.Render("Upgrade Options"))
	for _, opt := range catalog {
		fmt.Printf("  %s %s\n",
			valueStyle.Render(opt.Name),
			valueGreenStyle.Render(fmt.Sprintf("₹%d %s", opt.Cost, opt.Period)))
		for _, feat := range opt.Features {
			fmt.Printf("    %s\n", valueDimStyle.Render("- "+feat))
		}
	}
	fmt.Println()
	fmt.Println(valueDimStyle.Render("Purchase from inside the app with 'u'."))
	return nil
}
