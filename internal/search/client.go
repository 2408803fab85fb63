// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search finds shopping links for suggested outfits through the
// Google Custom Search JSON API.
//
// Lookups never fail hard. A missing configuration or a transport error is
// reported back as an explanatory result chunk so the caller can render it
// like any other search hit.
package search

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/stylegenie/stylegenie-tui/internal/model"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultBaseURL is the Custom Search JSON API endpoint.
	DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"

	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps the response body read (4 MB).
	MaxResponseSize = 4 * 1024 * 1024
)

// queryPrefix steers the engine toward storefront results.
const queryPrefix = "buy online "

// Result texts shown alongside shopping lookups.
const (
	resultsFoundText   = "Here are some shopping options found on the web:"
	noResultsText      = "No products found. Please try a different style."
	notConfiguredTitle = "Configuration Missing"
	notConfiguredText  = "Set the search engine ID and key in your config to enable shopping results."
	searchErrorTitle   = "Search Error"
	searchErrorText    = "Unable to fetch search results at this time."
)

// sharedHTTPClient is reused across searches to pool connections.
var sharedHTTPClient = &http.Client{
	Timeout: DefaultTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
}

// =============================================================================
// CLIENT
// =============================================================================

// Client queries a Google Programmable Search Engine.
type Client struct {
	apiKey     string
	engineID   string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a search client. Either credential may be empty; lookups
// on an unconfigured client return an explanatory chunk instead of hits.
func NewClient(apiKey, engineID string) *Client {
	return &Client{
		apiKey:     apiKey,
		engineID:   engineID,
		baseURL:    DefaultBaseURL,
		httpClient: sharedHTTPClient,
	}
}

// WithBaseURL overrides the API endpoint. Used in tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// WithHTTPClient overrides the HTTP client. Used in tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// IsConfigured reports whether both credentials are set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != "" && c.engineID != ""
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type searchItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

// =============================================================================
// OPERATIONS
// =============================================================================

// FindShoppingLinks searches the web for places to buy the given outfit.
// The query is derived from the outfit name and its selected color. The
// returned result always carries a text line describing the outcome.
func (c *Client) FindShoppingLinks(ctx context.Context, item model.StyleItem) model.GroundingResult {
	chunks := c.search(ctx, queryPrefix+model.ShoppingQuery(item))

	text := noResultsText
	if len(chunks) > 0 {
		text = resultsFoundText
	}
	return model.GroundingResult{Text: text, Chunks: chunks}
}

// search runs one Custom Search query. Failures come back as a single
// explanatory chunk rather than an error.
func (c *Client) search(ctx context.Context, query string) []model.GroundingChunk {
	if !c.IsConfigured() {
		return []model.GroundingChunk{{
			URI:     "#",
			Title:   notConfiguredTitle,
			Snippet: notConfiguredText,
		}}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return errorChunk()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errorChunk()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil || resp.StatusCode != http.StatusOK {
		if err == nil {
			err = fmt.Errorf("search API returned status %d", resp.StatusCode)
		}
		fmt.Fprintf(os.Stderr, "Warning: shopping search failed: %v\n", err)
		return errorChunk()
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return errorChunk()
	}

	chunks := make([]model.GroundingChunk, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		chunks = append(chunks, model.GroundingChunk{
			URI:     it.Link,
			Title:   it.Title,
			Snippet: it.Snippet,
		})
	}
	return chunks
}

func errorChunk() []model.GroundingChunk {
	return []model.GroundingChunk{{
		URI:     "#",
		Title:   searchErrorTitle,
		Snippet: searchErrorText,
	}}
}
