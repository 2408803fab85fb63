// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, args := Parse(nil)
	if cmd != CmdTUI {
		t.Errorf("Parse(nil) = %v, want CmdTUI", cmd)
	}
	if args.JSON {
		t.Error("JSON should default to false")
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want Command
	}{
		{"status", []string{"status"}, CmdStatus},
		{"status alias", []string{"s"}, CmdStatus},
		{"collection", []string{"collection"}, CmdCollection},
		{"collection alias", []string{"looks"}, CmdCollection},
		{"config", []string{"config"}, CmdConfig},
		{"cache", []string{"cache"}, CmdCache},
		{"plans", []string{"plans"}, CmdPlans},
		{"plans alias", []string{"upgrade"}, CmdPlans},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"unknown falls to help", []string{"frobnicate"}, CmdHelp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, _ := Parse(tc.raw)
			if cmd != tc.want {
				t.Errorf("Parse(%v) = %v, want %v", tc.raw, cmd, tc.want)
			}
		})
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := Parse([]string{"status", "--json", "-q"})
	if cmd != CmdStatus {
		t.Fatalf("cmd = %v, want CmdStatus", cmd)
	}
	if !args.JSON {
		t.Error("--json not parsed")
	}
	if !args.Quiet {
		t.Error("-q not parsed")
	}
}

func TestParseSubcommandAndValues(t *testing.T) {
	_, args := Parse([]string{"collection", "rm", "abc12345"})
	if args.Subcommand != "rm" {
		t.Errorf("Subcommand = %q, want rm", args.Subcommand)
	}
	if args.ConfigKey != "abc12345" {
		t.Errorf("ConfigKey = %q, want abc12345", args.ConfigKey)
	}
}

func TestUsageMentionsEveryCommand(t *testing.T) {
	usage := Usage()
	for _, want := range []string{"status", "collection", "config", "cache", "plans", "version"} {
		if !strings.Contains(usage, want) {
			t.Errorf("usage text missing %q", want)
		}
	}
}

func TestVersionString(t *testing.T) {
	if !strings.Contains(VersionString(), Version) {
		t.Error("VersionString should include the version number")
	}
}
