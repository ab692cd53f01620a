// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responses

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend persists the response list.
type Backend interface {
	// Load returns the stored entries in insertion order. A missing
	// resource is created empty and yields no entries.
	Load(ctx context.Context) ([]string, error)

	// Append stores exactly one new entry after the existing ones.
	Append(ctx context.Context, text string) error

	// Location describes where the entries live (a path).
	Location() string

	// Close releases any held resources.
	Close() error
}

// Backend kinds accepted by NewBackend.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// NewBackend opens the backend of the given kind at path.
func NewBackend(kind, path string) (Backend, error) {
	switch strings.ToLower(kind) {
	case "", KindFile:
		return NewFileBackend(path), nil
	case KindSQLite:
		return NewSQLiteBackend(path), nil
	default:
		return nil, fmt.Errorf("unknown response backend %q", kind)
	}
}

// =============================================================================
// TEXT NORMALIZATION
// =============================================================================

// NormalizeEntry trims an entry and converts it to Unicode NFC.
// The result is empty for blank input.
func NormalizeEntry(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}

// cleanEntries drops blank entries and normalizes the rest, keeping order.
func cleanEntries(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if entry := NormalizeEntry(line); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

// decodeText strips a leading byte order mark. UTF-16 files carrying a BOM
// are decoded to UTF-8; anything else passes through unchanged.
func decodeText(data []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(out), nil
}

// splitLines splits file content on newlines. Carriage returns are left for
// NormalizeEntry to trim.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
