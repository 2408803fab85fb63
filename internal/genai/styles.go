// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stylegenie/stylegenie-tui/internal/model"
)

// AnalysisMode selects which suggestion request to make against the photo.
type AnalysisMode string

const (
	// ModeInitial asks for the first full suggestion set.
	ModeInitial AnalysisMode = "initial"
	// ModeMoreHair asks for additional hairstyles only.
	ModeMoreHair AnalysisMode = "more_hair"
	// ModeMoreFashion asks for additional outfits only.
	ModeMoreFashion AnalysisMode = "more_fashion"
	// ModeCustom asks for suggestions matching a free-text query.
	ModeCustom AnalysisMode = "custom"
)

// analysisSchema constrains the analysis response to the AnalysisResult
// JSON shape.
var analysisSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "faceShape": {"type": "STRING"},
    "skinTone": {"type": "STRING"},
    "hairStyles": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "name": {"type": "STRING"},
          "description": {"type": "STRING"}
        }
      }
    },
    "outfits": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "name": {"type": "STRING"},
          "description": {"type": "STRING"}
        }
      }
    }
  }
}`)

func styleRequestFor(mode AnalysisMode, query string) string {
	switch mode {
	case ModeCustom:
		return fmt.Sprintf(`suggest 5 hairstyles and 5 fashion outfit styles that match this specific request: %q. If the request is about hair, focus on hair; if fashion, focus on fashion.`, query)
	case ModeMoreHair:
		return "suggest 10 MORE DIFFERENT suitable hairstyles and 1 outfit style"
	case ModeMoreFashion:
		return "suggest 1 hairstyle and 10 MORE DIFFERENT trendy fashion outfit styles"
	default:
		return "suggest 10 suitable hairstyles and 10 trendy fashion outfit styles"
	}
}

// AnalyzeStyles analyzes the user's photo and suggests styles. The image
// is raw base64 JPEG data without a data-URI prefix. Returns
// ErrAnalysisFailed when the response is empty or not the expected shape.
func (c *Client) AnalyzeStyles(ctx context.Context, imageB64 string, mode AnalysisMode, query string) (*model.AnalysisResult, error) {
	prompt := fmt.Sprintf(`Analyze the person in this image. Identify their face shape and skin tone.
Based on this analysis, %s that would flatter them.

SAFETY GUIDELINES:
1. STRICTLY PROHIBIT any suggestions that are sexually explicit, nude, vulgar, or inappropriate.
2. All fashion suggestions must be modest and suitable for a general audience.
3. If the user's custom request implies nudity or inappropriateness, ignore it and provide safe, trendy alternatives.

Return the result in JSON format.`, styleRequestFor(mode, query))

	req := &generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageB64}},
			{Text: prompt},
		}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   analysisSchema,
		},
	}

	resp, err := c.generateContent(ctx, TextModel, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	text := resp.text()
	if text == "" {
		return nil, ErrAnalysisFailed
	}

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	return &result, nil
}

// DescribeOutfitFromURL extracts a visual description of the clothing item
// behind a product URL using search grounding. The model answers
// INVALID_SAFETY for inappropriate items; that, or an empty answer, yields
// ErrUnsafeLink.
func (c *Client) DescribeOutfitFromURL(ctx context.Context, url string) (string, error) {
	prompt := fmt.Sprintf(`Visit this URL or search for this product link: %s.
Describe the main clothing item found there in detailed visual terms so it can be recreated (color, fabric, cut, length, style).
Focus ONLY on the clothing item.

SAFETY CHECK: If the item at the link is inappropriate, nude, or lingerie, return "INVALID_SAFETY".`, url)

	req := &generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		Tools:    []tool{{GoogleSearch: &struct{}{}}},
	}

	resp, err := c.generateContent(ctx, TextModel, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnsafeLink, err)
	}

	text := resp.text()
	if text == "" || strings.Contains(text, "INVALID_SAFETY") {
		return "", ErrUnsafeLink
	}
	return text, nil
}

// VisualizeStyle renders the described style onto the user's photo and
// returns the generated image as a data URI. Returns ErrGenerationFailed
// when the response carries no image payload.
func (c *Client) VisualizeStyle(ctx context.Context, imageB64, description string, kind model.ResultKind) (string, error) {
	var prompt string
	switch kind {
	case model.KindHair:
		prompt = fmt.Sprintf("Change the person's hairstyle to %s. Keep their face and expression exactly the same. Only change the hair. Ensure the image is photorealistic, professional, and safe for all audiences.", description)
	case model.KindFashion:
		prompt = fmt.Sprintf("Change the person's clothing to %s. Keep their face, head, and background exactly the same. High fashion photography style. SAFETY WARNING: The output MUST BE FULLY CLOTHED and MODEST.", description)
	case model.KindMix:
		prompt = fmt.Sprintf("Change the person's hairstyle AND clothing. %s Keep their face, expression and skin tone exactly the same. High fashion photography style. SAFETY WARNING: The output MUST BE FULLY CLOTHED and MODEST.", description)
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrGenerationFailed, kind)
	}

	req := &generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageB64}},
			{Text: prompt},
		}}},
	}

	resp, err := c.generateContent(ctx, ImageModel, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	img, ok := resp.image()
	if !ok {
		return "", ErrGenerationFailed
	}
	return img, nil
}

// FindNearbySalons looks up top-rated salons around the given coordinates
// using maps grounding. Never returns an error: internal failures yield an
// empty-chunk result with explanatory text, matching the grounded-lookup
// contract.
func (c *Client) FindNearbySalons(ctx context.Context, coords model.Coordinates) model.GroundingResult {
	req := &generateRequest{
		Contents: []content{{Parts: []part{{Text: "Find top rated hair salons nearby."}}}},
		Tools:    []tool{{GoogleMaps: &struct{}{}}},
		ToolConfig: &toolConfig{
			RetrievalConfig: &retrievalConfig{
				LatLng: latLng{Latitude: coords.Latitude, Longitude: coords.Longitude},
			},
		},
	}

	resp, err := c.generateContent(ctx, TextModel, req)
	if err != nil {
		return model.GroundingResult{Text: "Unable to find salons at this moment."}
	}

	var chunks []model.GroundingChunk
	if len(resp.Candidates) > 0 {
		for _, gc := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			switch {
			case gc.Maps != nil:
				chunk := model.GroundingChunk{
					URI:      gc.Maps.URI,
					Title:    gc.Maps.Title,
					FromMaps: true,
				}
				if len(gc.Maps.PlaceAnswerSources) > 0 && len(gc.Maps.PlaceAnswerSources[0].ReviewSnippets) > 0 {
					chunk.Snippet = gc.Maps.PlaceAnswerSources[0].ReviewSnippets[0].Content
				}
				chunks = append(chunks, chunk)
			case gc.Web != nil:
				chunks = append(chunks, model.GroundingChunk{
					URI:     gc.Web.URI,
					Title:   gc.Web.Title,
					Snippet: gc.Web.Snippet,
				})
			}
		}
	}

	text := resp.text()
	if text == "" {
		text = "Here are some top-rated salons found near your location."
	}
	return model.GroundingResult{Text: text, Chunks: chunks}
}
