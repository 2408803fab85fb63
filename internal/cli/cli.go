// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for StyleGenie.
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdStatus
	CmdCollection
	CmdConfig
	CmdCache
	CmdPlans
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON    bool
	Quiet   bool
	Verbose bool

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `stylegenie - AI hairstyle and outfit try-on for your terminal

StyleGenie analyzes a photo and suggests hairstyles and outfits matched
to your face shape and skin tone, with AI-generated try-on images.

Usage:
  stylegenie                   Start TUI (default)
  stylegenie status, s         Show plan and remaining styles
  stylegenie collection [list|rm <id>]
                               Manage saved looks
  stylegenie config [show|path|init]
                               Configuration
  stylegenie cache [stats|clear]
                               Preview cache management
  stylegenie plans             Show upgrade options
  stylegenie version, -v       Show version

Global flags:
  --json                       Machine-readable output
  --quiet, -q                  Suppress non-essential output
  --verbose                    Verbose output

Configuration:
  Config file lives at ~/.stylegenie/config.toml (created by "config init").
  The Gemini API key is read from it, or from STYLEGENIE_API_KEY or
  GEMINI_API_KEY. Shopping search needs STYLEGENIE_SEARCH_KEY and
  STYLEGENIE_SEARCH_ENGINE_ID, or the matching [search] config keys.

Examples:
  stylegenie                   # start the app
  stylegenie status --json     # quota as JSON, for scripts
  stylegenie collection list   # saved looks, newest first
  stylegenie cache clear       # drop all cached previews
`

// Usage returns the top-level help text.
func Usage() string {
	return usageText
}

// VersionString returns the formatted version line.
func VersionString() string {
	return fmt.Sprintf("stylegenie %s (%s, %s, %s/%s)",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// Parse maps raw command-line arguments (without the program name) to a
// command and its parsed arguments.
func Parse(raw []string) (Command, *Args) {
	args := &Args{}

	var positional []string
	for _, arg := range raw {
		switch arg {
		case "--json":
			args.JSON = true
		case "--quiet", "-q":
			args.Quiet = true
		case "--verbose":
			args.Verbose = true
		default:
			positional = append(positional, arg)
		}
	}
	args.Raw = positional

	if len(positional) == 0 {
		return CmdTUI, args
	}

	cmd := positional[0]
	rest := positional[1:]
	if len(rest) > 0 {
		args.Subcommand = rest[0]
	}
	if len(rest) > 1 {
		args.ConfigKey = rest[1]
	}
	if len(rest) > 2 {
		args.ConfigVal = rest[2]
	}

	switch strings.ToLower(cmd) {
	case "status", "s":
		return CmdStatus, args
	case "collection", "looks":
		return CmdCollection, args
	case "config":
		return CmdConfig, args
	case "cache":
		return CmdCache, args
	case "plans", "upgrade":
		return CmdPlans, args
	case "version", "-v", "--version":
		return CmdVersion, args
	case "help", "-h", "--help":
		return CmdHelp, args
	default:
		// Unknown commands fall through to help so typos are not silent.
		args.Subcommand = cmd
		return CmdHelp, args
	}
}
