// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for StyleGenie.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file location:
//   - ~/.stylegenie/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete StyleGenie configuration.
type Config struct {
	// Version of the config schema.
	Version string `toml:"version"`

	// DataDir is where the collection, usage record, and preview cache
	// live (empty = ~/.stylegenie).
	DataDir string `toml:"data_dir"`

	// Gemini API configuration
	Gemini GeminiConfig `toml:"gemini"`

	// Shopping search configuration
	Search SearchConfig `toml:"search"`

	// Device location for salon lookups
	Location LocationConfig `toml:"location"`

	// Preview cache configuration
	Cache CacheConfig `toml:"cache"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// GeminiConfig contains the generative AI credentials.
type GeminiConfig struct {
	// APIKey is the Gemini API key
	APIKey string `toml:"api_key"`
}

// SearchConfig contains the Google Programmable Search Engine credentials.
type SearchConfig struct {
	// APIKey is the Custom Search JSON API key (may equal the Gemini key)
	APIKey string `toml:"api_key"`
	// EngineID is the programmable search engine identifier (cx)
	EngineID string `toml:"engine_id"`
}

// LocationConfig contains the coordinates used for nearby-salon lookups.
// A TUI has no geolocation API, so the location is configured explicitly.
type LocationConfig struct {
	// Enabled controls whether salon lookups are offered
	Enabled bool `toml:"enabled"`
	// Latitude in decimal degrees
	Latitude float64 `toml:"latitude"`
	// Longitude in decimal degrees
	Longitude float64 `toml:"longitude"`
}

// CacheConfig controls the on-disk preview thumbnail cache.
type CacheConfig struct {
	// Enabled controls whether previews are cached between runs
	Enabled bool `toml:"enabled"`
	// MaxEntries bounds the cache size; oldest entries are evicted
	MaxEntries int `toml:"max_entries"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light"
	Theme string `toml:"theme"`
	// CompactMode collapses style cards to single lines
	CompactMode bool `toml:"compact_mode"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// CurrentVersion is the config schema version written by this build.
const CurrentVersion = "1.0"

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Location: LocationConfig{
			Enabled: false,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 200,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the StyleGenie configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".stylegenie"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on the config file.
// SECURITY: Config files should be 0600 (owner read/write only) to protect API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when no file exists. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
// SECURITY: Checks and fixes file permissions on load.
func LoadFromPath(path string) (*Config, error) {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML file: %w", err)
	}
	cfg.fillDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills zero values the decoder left behind.
func (c *Config) fillDefaults() {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "dark"
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 200
	}
}

// ApplyEnvOverrides applies environment variable overrides. Environment
// values win over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("STYLEGENIE_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.Gemini.APIKey == "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("STYLEGENIE_SEARCH_KEY"); v != "" {
		c.Search.APIKey = v
	}
	if v := os.Getenv("STYLEGENIE_SEARCH_ENGINE_ID"); v != "" {
		c.Search.EngineID = v
	}
	if v := os.Getenv("STYLEGENIE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("STYLEGENIE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("STYLEGENIE_LAT"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			c.Location.Latitude = lat
			c.Location.Enabled = true
		}
	}
	if v := os.Getenv("STYLEGENIE_LNG"); v != "" {
		if lng, err := strconv.ParseFloat(v, 64); err == nil {
			c.Location.Longitude = lng
			c.Location.Enabled = true
		}
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration as TOML.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# StyleGenie configuration file")
	fmt.Fprintln(file, "# Generated by stylegenie - edit with care")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("must be dark or light, got %q", c.UI.Theme),
		})
	}
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, ValidationError{
			Field:   "cache.max_entries",
			Message: "must not be negative",
		})
	}
	if c.Location.Enabled {
		if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
			errs = append(errs, ValidationError{
				Field:   "location.latitude",
				Message: "must be between -90 and 90",
			})
		}
		if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
			errs = append(errs, ValidationError{
				Field:   "location.longitude",
				Message: "must be between -180 and 180",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Coordinates returns the configured location, if enabled.
func (c *Config) Coordinates() (lat, lng float64, ok bool) {
	if !c.Location.Enabled {
		return 0, 0, false
	}
	return c.Location.Latitude, c.Location.Longitude, true
}
