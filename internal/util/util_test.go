// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short unchanged", "Bob Cut", 10, "Bob Cut"},
		{"exact unchanged", "Bob", 3, "Bob"},
		{"truncated", "Asymmetrical Pixie", 10, "Asymmet..."},
		{"tiny max", "Pixie", 2, "Pi"},
		{"zero max", "Pixie", 0, ""},
		{"multibyte", "Café Chic Bob Déluxe", 10, "Café Ch..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateString(tc.in, tc.maxLen); got != tc.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestSlugifyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Curtain Bangs", "curtain-bangs"},
		{"Mix & Match Look", "mix-match-look"},
		{"90s Grunge!", "90s-grunge"},
		{"  spaced  out  ", "spaced-out"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := SlugifyName(tc.in); got != tc.want {
			t.Errorf("SlugifyName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "doc.json")

	if err := AtomicWriteFile(path, []byte(`{"v":1}`), 0644); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != `{"v":1}` {
		t.Errorf("content = %q", data)
	}

	// Overwrite replaces the whole document.
	if err := AtomicWriteFile(path, []byte(`{"v":2}`), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != `{"v":2}` {
		t.Errorf("content after overwrite = %q", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}
