// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - Structured JSON output for scripting.
package cli

import (
	"encoding/json"
	"fmt"
	"time"
)

// JSONResponse is the envelope for all --json command output.
type JSONResponse struct {
	Command   string      `json:"command"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewJSONResponse wraps command data in the standard envelope.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Command:   command,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Print writes the response as indented JSON to stdout.
func (r *JSONResponse) Print() error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// StatusData is the JSON payload of the status command.
type StatusData struct {
	Plan        string `json:"plan"`
	DailyLimit  int    `json:"daily_limit"`
	UsedToday   int    `json:"used_today"`
	Remaining   int    `json:"remaining"`
	TopUpsToday int    `json:"topups_today"`
	TrialEnded  bool   `json:"trial_ended"`
	GeminiKey   bool   `json:"gemini_key_configured"`
	SearchKey   bool   `json:"search_key_configured"`
	SavedLooks  int    `json:"saved_looks"`
	CacheFiles  int    `json:"cached_previews"`
}

// CollectionEntry is one saved look in collection list output.
type CollectionEntry struct {
	ID        string    `json:"id"`
	StyleName string    `json:"style_name"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// PlanEntry is one purchase option in plans output.
type PlanEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Cost     int      `json:"cost_inr"`
	Period   string   `json:"period"`
	Features []string `json:"features"`
}
