// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared helpers for CLI command handlers.
package cli

import (
	"path/filepath"

	"github.com/stylegenie/stylegenie-tui/internal/cache"
	"github.com/stylegenie/stylegenie-tui/internal/config"
)

// previewCachePath returns the preview cache database path under the
// configured data directory.
func previewCachePath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, cache.DatabaseFile)
}
