// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package genai provides the Gemini generateContent client used for photo
// analysis, try-on image synthesis, and grounded lookups.
//
// The session core treats these calls as opaque asynchronous capabilities;
// everything here is request/response glue plus the error taxonomy the
// state machine consumes.
package genai

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the Gemini API.
const (
	// DefaultBaseURL is the Gemini REST endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// TextModel handles analysis, link descriptions, and grounded lookups.
	TextModel = "gemini-2.5-flash"

	// ImageModel handles try-on visualizations.
	ImageModel = "gemini-2.5-flash-image"

	// DefaultTimeout is the per-request timeout. Image synthesis is slow,
	// so this is generous.
	DefaultTimeout = 120 * time.Second

	// MaxResponseSize caps response bodies; generated images are large but
	// bounded.
	MaxResponseSize = 32 * 1024 * 1024
)

// Error variables for the collaborator contract.
var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("Gemini API key not configured")

	// ErrAnalysisFailed indicates a malformed or empty analysis response.
	ErrAnalysisFailed = errors.New("failed to analyze image")

	// ErrGenerationFailed indicates no image payload came back from a
	// visualization request.
	ErrGenerationFailed = errors.New("failed to generate image visualization")

	// ErrUnsafeLink indicates the link description was rejected by the
	// safety check or came back empty.
	ErrUnsafeLink = errors.New("could not retrieve a safe description from this link")
)

// APIError is a non-2xx response from the Gemini API.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("Gemini error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("Gemini error (HTTP %d)", e.Status)
}

// sharedHTTPClient pools connections across all Gemini requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// Client is a client for the Gemini generateContent API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	// limiter spaces out requests client-side; generation quota is the
	// entitlement engine's job, this only keeps bursts polite.
	limiter *rate.Limiter
}

// NewClient creates a Gemini client. An empty API key is allowed; requests
// will fail with ErrNotConfigured.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		httpClient: sharedHTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
	}
}

// WithBaseURL sets a custom base URL (tests point this at a local server).
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithHTTPClient sets a custom HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// IsConfigured returns true if the client has an API key.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type tool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
	GoogleMaps   *struct{} `json:"googleMaps,omitempty"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type retrievalConfig struct {
	LatLng latLng `json:"latLng"`
}

type toolConfig struct {
	RetrievalConfig *retrievalConfig `json:"retrievalConfig,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []tool            `json:"tools,omitempty"`
	ToolConfig       *toolConfig       `json:"toolConfig,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type groundingWeb struct {
	URI     string `json:"uri"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}

type groundingMaps struct {
	URI                string `json:"uri"`
	Title              string `json:"title"`
	PlaceAnswerSources []struct {
		ReviewSnippets []struct {
			Content string `json:"content"`
		} `json:"reviewSnippets"`
	} `json:"placeAnswerSources,omitempty"`
}

type groundingChunk struct {
	Web  *groundingWeb  `json:"web,omitempty"`
	Maps *groundingMaps `json:"maps,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []groundingChunk `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// text returns the concatenated text parts of the first candidate.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// image returns the first inline image of the first candidate as a data
// URI, or false if the response carries no image payload.
func (r *generateResponse) image() (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	for _, p := range r.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			return "data:" + p.InlineData.MimeType + ";base64," + p.InlineData.Data, true
		}
	}
	return "", false
}

// =============================================================================
// REQUEST EXECUTION
// =============================================================================

// generateContent posts a request to the given model and decodes the
// response. No automatic retries: every failure surfaces to the user, who
// re-initiates explicitly.
func (c *Client) generateContent(ctx context.Context, modelName string, req *generateRequest) (*generateResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, modelName)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode}
		if decoded.Error != nil {
			apiErr.Message = decoded.Error.Message
		}
		return nil, apiErr
	}

	return &decoded, nil
}
