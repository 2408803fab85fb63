// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stylegenie/stylegenie-tui/internal/model"
)

func TestFindShoppingLinks_MapsItems(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if r.URL.Query().Get("cx") != "engine-1" {
			t.Errorf("cx = %q", r.URL.Query().Get("cx"))
		}
		w.Write([]byte(`{"items":[{"title":"Emerald Dress - Shop","link":"https://shop.example/d1","snippet":"In stock"}]}`))
	}))
	defer srv.Close()

	client := NewClient("key-1", "engine-1").WithBaseURL(srv.URL).WithHTTPClient(srv.Client())
	result := client.FindShoppingLinks(context.Background(), model.StyleItem{
		Name:          "Emerald Dress",
		Description:   "satin midi dress",
		SelectedColor: "emerald",
	})

	if !strings.HasPrefix(gotQuery, "buy online ") {
		t.Errorf("query should be prefixed for storefront results, got %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "emerald Emerald Dress") {
		t.Errorf("query should lead with the selected color, got %q", gotQuery)
	}
	if result.Text != resultsFoundText {
		t.Errorf("text = %q", result.Text)
	}
	if len(result.Chunks) != 1 || result.Chunks[0].URI != "https://shop.example/d1" {
		t.Errorf("chunks mangled: %+v", result.Chunks)
	}
}

func TestFindShoppingLinks_NoItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient("key-1", "engine-1").WithBaseURL(srv.URL).WithHTTPClient(srv.Client())
	result := client.FindShoppingLinks(context.Background(), model.StyleItem{Name: "Bolero"})

	if result.Text != noResultsText {
		t.Errorf("text = %q", result.Text)
	}
	if len(result.Chunks) != 0 {
		t.Errorf("chunks = %+v, want none", result.Chunks)
	}
}

func TestFindShoppingLinks_NotConfigured(t *testing.T) {
	client := NewClient("", "")
	result := client.FindShoppingLinks(context.Background(), model.StyleItem{Name: "Bolero"})

	if len(result.Chunks) != 1 || result.Chunks[0].Title != notConfiguredTitle {
		t.Fatalf("unconfigured lookup should return an explanatory chunk, got %+v", result.Chunks)
	}
	if result.Text != resultsFoundText {
		t.Errorf("text = %q", result.Text)
	}
}

func TestFindShoppingLinks_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("key-1", "engine-1").WithBaseURL(srv.URL).WithHTTPClient(srv.Client())
	result := client.FindShoppingLinks(context.Background(), model.StyleItem{Name: "Bolero"})

	if len(result.Chunks) != 1 || result.Chunks[0].Title != searchErrorTitle {
		t.Fatalf("failed lookup should return an error chunk, got %+v", result.Chunks)
	}
}

func TestFindShoppingLinks_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient("key-1", "engine-1").WithBaseURL(srv.URL)
	result := client.FindShoppingLinks(context.Background(), model.StyleItem{Name: "Bolero"})

	if len(result.Chunks) != 1 || result.Chunks[0].Title != searchErrorTitle {
		t.Fatalf("unreachable server should return an error chunk, got %+v", result.Chunks)
	}
}
