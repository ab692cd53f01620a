// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
	"os"

	"golang.org/x/term"
)

// =============================================================================
// TERMINAL PROBES
// =============================================================================

// fallbackWidth is used for markdown wrapping when stdout has no size.
const fallbackWidth = 80

// narrowestWidth keeps glamour from wrapping every other word.
const narrowestWidth = 40

// IsTTY reports whether stdin is attached to a terminal.
func IsTTY() bool {
	return isTerminalFile(os.Stdin)
}

// IsStdoutTTY reports whether stdout is attached to a terminal.
func IsStdoutTTY() bool {
	return isTerminalFile(os.Stdout)
}

// isTerminalWriter is false for anything that is not an *os.File, so test
// buffers always get plain output.
func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminalFile(f)
}

func isTerminalFile(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// GetTerminalWidth returns the width of stdout, clamped to narrowestWidth.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil || width <= 0:
		return fallbackWidth
	case width < narrowestWidth:
		return narrowestWidth
	default:
		return width
	}
}

// ColorsEnabled decides whether line-mode output to w is styled.
// NO_COLOR wins over FORCE_COLOR; otherwise only terminals get colour.
func ColorsEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return isTerminalWriter(w)
}
