// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("[chat]\nreply_delay_ms = 500\n")

	if err := AtomicWriteFile(path, data, 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", content, data)
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "config.toml")

	if err := AtomicWriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := AtomicWriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "updated" {
		t.Errorf("Content = %q, want %q", content, "updated")
	}

	// No temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("Expected 1 file in dir, found %d", len(entries))
	}
}

// =============================================================================
// WIDTH TESTS
// =============================================================================

func TestStringWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"meow", 4},
		{"にゃ", 4},
		{"シャー！", 8},
		{"a にゃ", 6},
	}

	for _, tc := range tests {
		if got := StringWidth(tc.input); got != tc.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		want     string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"にゃーんにゃーん", 9, "にゃー..."},
		{"hello", 0, ""},
		{"hello", 2, "he"},
	}

	for _, tc := range tests {
		if got := TruncateWidth(tc.input, tc.maxWidth); got != tc.want {
			t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.input, tc.maxWidth, got, tc.want)
		}
	}
}

func TestTruncateLeftWidth(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		want     string
	}{
		{"/tmp/cat.txt", 20, "/tmp/cat.txt"},
		{"/home/cat/responses.txt", 16, "...responses.txt"},
		{"にゃーんにゃーん", 9, "...ゃーん"},
		{"hello", 0, ""},
		{"hello", 2, "lo"},
	}

	for _, tc := range tests {
		if got := TruncateLeftWidth(tc.input, tc.maxWidth); got != tc.want {
			t.Errorf("TruncateLeftWidth(%q, %d) = %q, want %q", tc.input, tc.maxWidth, got, tc.want)
		}
	}
}

// =============================================================================
// WRAP TESTS
// =============================================================================

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{"fits", "meow", 10, []string{"meow"}},
		{"breaks at space", "the cat sat down", 8, []string{"the cat", "sat down"}},
		{"hard break CJK", "にゃにゃにゃ", 4, []string{"にゃ", "にゃ", "にゃ"}},
		{"keeps newlines", "a\nb", 10, []string{"a", "b"}},
		{"zero width", "a b", 0, []string{"a b"}},
		{"wide rune in narrow pane", "にゃ", 1, []string{"に", "ゃ"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Wrap(tc.input, tc.width)
			if len(got) != len(tc.want) {
				t.Fatalf("Wrap(%q, %d) = %q, want %q", tc.input, tc.width, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Wrap(%q, %d)[%d] = %q, want %q", tc.input, tc.width, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestWrap_NoLineExceedsWidth(t *testing.T) {
	text := "にゃーん meow シャー！ purr にゃにゃにゃにゃにゃにゃにゃにゃ"
	for _, width := range []int{3, 5, 8, 13, 20} {
		for _, line := range Wrap(text, width) {
			if StringWidth(line) > width {
				t.Errorf("width %d: line %q is %d cells", width, line, StringWidth(line))
			}
		}
	}
}
