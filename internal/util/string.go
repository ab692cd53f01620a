// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// StringWidth returns the number of terminal cells s occupies.
// Kana, kanji and fullwidth forms count as two cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth cuts s so it fits in maxWidth cells, ending in "..." when
// anything was removed and there is room for it.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// TruncateLeftWidth is TruncateWidth keeping the end of s, for paths whose
// file name matters more than the directory.
func TruncateLeftWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	prefix := "..."
	if maxWidth <= 3 {
		prefix = ""
	}
	budget := maxWidth - runewidth.StringWidth(prefix)

	runes := []rune(s)
	cells := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if cells+w > budget {
			break
		}
		cells += w
		start--
	}
	return prefix + string(runes[start:])
}

// Wrap splits text into lines no wider than width cells.
//
// Existing newlines are kept. Lines are broken at the last space that fits;
// text without spaces (Japanese, long URLs) is broken at the cell boundary.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return strings.Split(text, "\n")
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapLine(para, width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var lines []string
	runes := []rune(line)
	for len(runes) > 0 {
		cells := 0
		cut := 0
		lastSpace := -1
		for cut < len(runes) {
			w := runewidth.RuneWidth(runes[cut])
			if cells+w > width {
				break
			}
			if unicode.IsSpace(runes[cut]) {
				lastSpace = cut
			}
			cells += w
			cut++
		}
		if cut == len(runes) {
			lines = append(lines, string(runes))
			break
		}
		if cut == 0 {
			// A single rune wider than the pane still has to go somewhere.
			cut = 1
		}
		if lastSpace > 0 {
			lines = append(lines, strings.TrimRightFunc(string(runes[:lastSpace]), unicode.IsSpace))
			runes = runes[lastSpace+1:]
			continue
		}
		lines = append(lines, string(runes[:cut]))
		runes = runes[cut:]
	}
	return lines
}
