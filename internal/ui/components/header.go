// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nyaliza/nyaliza-tui/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - title, backdrop banner and command hint
// =============================================================================

// DefaultHint reminds the user of the two commands.
const DefaultHint = "/add <text> で教える ・ /exit で終了"

// Header is the title bar of the chat window.
type Header struct {
	Title    string    // Window title (default: "NyaLIZA")
	Hint     string    // Line under the title
	Backdrop *Backdrop // Optional image banner
	Width    int       // Available width
	theme    *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "NyaLIZA",
		Hint:  DefaultHint,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetBackdrop replaces the banner. Nil removes it.
func (h *Header) SetBackdrop(b *Backdrop) {
	h.Backdrop = b
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 20 {
		width = 20
	}
	// Border and padding take four cells.
	innerWidth := width - 4

	center := lipgloss.NewStyle().Width(innerWidth).Align(lipgloss.Center)

	var title string
	if h.theme != nil && h.theme.HasTrueColor {
		title = GradientTitle(h.Title, styles.Brand.Dark, styles.AddedText.Dark)
	} else {
		title = h.titleStyle().Render(h.Title)
	}

	lines := []string{center.Render(title)}

	// Skip the banner when the window is narrower than the image.
	if h.Backdrop != nil && h.Backdrop.Width() <= innerWidth {
		lines = append(lines, center.Render(h.Backdrop.View()))
	}

	if h.Hint != "" {
		lines = append(lines, center.Render(h.hintStyle().Render(h.Hint)))
	}

	return h.boxStyle().Width(width - 2).Render(strings.Join(lines, "\n"))
}

// Height returns the number of terminal rows View occupies.
func (h *Header) Height() int {
	return lipgloss.Height(h.View())
}

func (h *Header) titleStyle() lipgloss.Style {
	if h.theme != nil {
		return h.theme.HeaderTitle
	}
	return lipgloss.NewStyle().Bold(true)
}

func (h *Header) hintStyle() lipgloss.Style {
	if h.theme != nil {
		return h.theme.HeaderHint
	}
	return lipgloss.NewStyle()
}

func (h *Header) boxStyle() lipgloss.Style {
	if h.theme != nil {
		return h.theme.Header
	}
	return lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Padding(0, 1)
}

// =============================================================================
// GRADIENT TITLE (for terminals with true color support)
// =============================================================================

// GradientTitle colours text with a left-to-right gradient between two hex
// colours.
func GradientTitle(text string, startColor, endColor string) string {
	chars := []rune(text)
	n := len(chars)
	if n == 0 {
		return ""
	}
	if n < 3 {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(startColor)).Render(text)
	}

	var result strings.Builder
	for i, char := range chars {
		t := float64(i) / float64(n-1)
		style := lipgloss.NewStyle().Bold(true).Foreground(interpolateColor(startColor, endColor, t))
		result.WriteString(style.Render(string(char)))
	}
	return result.String()
}

// interpolateColor blends two hex colours; t runs from 0 (start) to 1 (end).
func interpolateColor(start, end string, t float64) lipgloss.Color {
	sr, sg, sb := parseHexColor(strings.TrimPrefix(start, "#"))
	er, eg, eb := parseHexColor(strings.TrimPrefix(end, "#"))

	r := uint8(float64(sr) + t*(float64(er)-float64(sr)))
	g := uint8(float64(sg) + t*(float64(eg)-float64(sg)))
	b := uint8(float64(sb) + t*(float64(eb)-float64(sb)))

	return lipgloss.Color(formatHexColor(r, g, b))
}

// parseHexColor parses a six digit hex colour. Malformed input is white.
func parseHexColor(hex string) (r, g, b uint8) {
	if len(hex) < 6 {
		return 255, 255, 255
	}
	return parseHexByte(hex[0:2]), parseHexByte(hex[2:4]), parseHexByte(hex[4:6])
}

// parseHexByte parses a two-character hex string into a byte
func parseHexByte(s string) uint8 {
	if len(s) != 2 {
		return 255
	}

	var result uint8
	for _, c := range s {
		result *= 16
		switch {
		case c >= '0' && c <= '9':
			result += uint8(c - '0')
		case c >= 'a' && c <= 'f':
			result += uint8(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			result += uint8(c - 'A' + 10)
		default:
			return 255
		}
	}
	return result
}
