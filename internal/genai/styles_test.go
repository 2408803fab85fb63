// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stylegenie/stylegenie-tui/internal/model"
)

// textResponse builds a generateContent response whose candidate carries a
// single text part.
func textResponse(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key").WithBaseURL(srv.URL).WithHTTPClient(srv.Client()), srv
}

func TestAnalyzeStyles_ParsesResult(t *testing.T) {
	payload := `{"faceShape":"oval","skinTone":"warm","hairStyles":[{"name":"Bob Cut","description":"chin-length bob"}],"outfits":[{"name":"Linen Suit","description":"beige linen suit"}]}`

	var gotPath string
	var gotReq generateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(textResponse(payload)))
	})

	result, err := client.AnalyzeStyles(context.Background(), "imgdata", ModeInitial, "")
	if err != nil {
		t.Fatalf("AnalyzeStyles: %v", err)
	}

	if !strings.Contains(gotPath, TextModel) {
		t.Errorf("analysis should hit the text model, got path %q", gotPath)
	}
	if result.FaceShape != "oval" || result.SkinTone != "warm" {
		t.Errorf("analysis mangled: %+v", result)
	}
	if len(result.HairStyles) != 1 || result.HairStyles[0].Name != "Bob Cut" {
		t.Errorf("hair styles mangled: %+v", result.HairStyles)
	}
	if gotReq.GenerationConfig == nil || gotReq.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Error("analysis request should constrain the response to JSON")
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].InlineData == nil {
		t.Error("analysis request should carry the photo inline")
	}
}

func TestAnalyzeStyles_PromptVariesByMode(t *testing.T) {
	var prompts []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompts = append(prompts, req.Contents[0].Parts[1].Text)
		w.Write([]byte(textResponse(`{"faceShape":"","skinTone":"","hairStyles":[],"outfits":[]}`)))
	})

	ctx := context.Background()
	client.AnalyzeStyles(ctx, "img", ModeInitial, "")
	client.AnalyzeStyles(ctx, "img", ModeMoreHair, "")
	client.AnalyzeStyles(ctx, "img", ModeMoreFashion, "")
	client.AnalyzeStyles(ctx, "img", ModeCustom, "boho chic")

	if !strings.Contains(prompts[0], "10 suitable hairstyles and 10 trendy") {
		t.Errorf("initial prompt: %q", prompts[0])
	}
	if !strings.Contains(prompts[1], "10 MORE DIFFERENT suitable hairstyles") {
		t.Errorf("more_hair prompt: %q", prompts[1])
	}
	if !strings.Contains(prompts[2], "10 MORE DIFFERENT trendy fashion") {
		t.Errorf("more_fashion prompt: %q", prompts[2])
	}
	if !strings.Contains(prompts[3], "boho chic") {
		t.Errorf("custom prompt should embed the query: %q", prompts[3])
	}
}

func TestAnalyzeStyles_EmptyResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.AnalyzeStyles(context.Background(), "img", ModeInitial, "")
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Errorf("empty response error = %v, want ErrAnalysisFailed", err)
	}
}

func TestDescribeOutfitFromURL_SafetyRejection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(textResponse("INVALID_SAFETY")))
	})

	_, err := client.DescribeOutfitFromURL(context.Background(), "https://example.com/item")
	if !errors.Is(err, ErrUnsafeLink) {
		t.Errorf("safety rejection error = %v, want ErrUnsafeLink", err)
	}
}

func TestDescribeOutfitFromURL_UsesSearchGrounding(t *testing.T) {
	var gotReq generateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(textResponse("A-line midi dress in emerald satin.")))
	})

	desc, err := client.DescribeOutfitFromURL(context.Background(), "https://example.com/dress")
	if err != nil {
		t.Fatalf("DescribeOutfitFromURL: %v", err)
	}
	if desc != "A-line midi dress in emerald satin." {
		t.Errorf("description = %q", desc)
	}
	if len(gotReq.Tools) != 1 || gotReq.Tools[0].GoogleSearch == nil {
		t.Error("link description should request search grounding")
	}
}

func TestVisualizeStyle_ReturnsDataURI(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/jpeg","data":"Z2VuZXJhdGVk"}}]}}]}`
		w.Write([]byte(resp))
	})

	img, err := client.VisualizeStyle(context.Background(), "img", "a chin-length bob", model.KindHair)
	if err != nil {
		t.Fatalf("VisualizeStyle: %v", err)
	}
	if img != "data:image/jpeg;base64,Z2VuZXJhdGVk" {
		t.Errorf("image = %q", img)
	}
}

func TestVisualizeStyle_NoImagePayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(textResponse("sorry, no image")))
	})

	_, err := client.VisualizeStyle(context.Background(), "img", "desc", model.KindFashion)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("missing image error = %v, want ErrGenerationFailed", err)
	}
}

func TestFindNearbySalons_SwallowsFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError)
	})

	result := client.FindNearbySalons(context.Background(), model.Coordinates{Latitude: 12.9, Longitude: 77.6})
	if len(result.Chunks) != 0 {
		t.Errorf("failed lookup should return no chunks, got %d", len(result.Chunks))
	}
	if result.Text == "" {
		t.Error("failed lookup should still carry explanatory text")
	}
}

func TestFindNearbySalons_MapsChunks(t *testing.T) {
	var gotReq generateRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		resp := `{"candidates":[{"content":{"parts":[{"text":"Found 1 salon."}]},"groundingMetadata":{"groundingChunks":[{"maps":{"uri":"https://maps.example/s1","title":"Salon One","placeAnswerSources":[{"reviewSnippets":[{"content":"Great cuts"}]}]}}]}}]}`
		w.Write([]byte(resp))
	})

	result := client.FindNearbySalons(context.Background(), model.Coordinates{Latitude: 12.9, Longitude: 77.6})

	if gotReq.ToolConfig == nil || gotReq.ToolConfig.RetrievalConfig.LatLng.Latitude != 12.9 {
		t.Error("salon lookup should pass coordinates in the retrieval config")
	}
	if len(result.Chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(result.Chunks))
	}
	chunk := result.Chunks[0]
	if !chunk.FromMaps || chunk.Title != "Salon One" || chunk.Snippet != "Great cuts" {
		t.Errorf("maps chunk mangled: %+v", chunk)
	}
	if result.Text != "Found 1 salon." {
		t.Errorf("text = %q", result.Text)
	}
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient("")
	_, err := client.AnalyzeStyles(context.Background(), "img", ModeInitial, "")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("unconfigured client error = %v, want ErrNotConfigured", err)
	}
}
