// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHint  lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT STYLES
	// ==========================================================================

	Transcript lipgloss.Style
	Timestamp  lipgloss.Style
	User       lipgloss.Style
	Cat        lipgloss.Style
	Added      lipgloss.Style
	Duplicate  lipgloss.Style
	Notice     lipgloss.Style
	Failure    lipgloss.Style
	Info       lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	StatusBar      lipgloss.Style
	Spinner        lipgloss.Style
	CompletionItem lipgloss.Style
	CompletionSel  lipgloss.Style
}

// NewTheme creates a new theme. mode is "auto", "dark" or "light"; auto
// asks the terminal for its background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Brand).
		Padding(0, 1).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Brand)

	t.HeaderHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Transcript
	t.Transcript = lipgloss.NewStyle().Padding(0, 1)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)
	t.User = lipgloss.NewStyle().Foreground(UserText)
	t.Cat = lipgloss.NewStyle().Foreground(CatText).Bold(true)
	t.Added = lipgloss.NewStyle().Foreground(AddedText)
	t.Duplicate = lipgloss.NewStyle().Foreground(DuplicateText)
	t.Notice = lipgloss.NewStyle().Foreground(NoticeText)
	t.Failure = lipgloss.NewStyle().Foreground(FailureText).Bold(true)
	t.Info = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Brand).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(Surface).
		Padding(0, 1)

	t.Spinner = lipgloss.NewStyle().Foreground(Brand)

	t.CompletionItem = lipgloss.NewStyle().Foreground(TextMuted)
	t.CompletionSel = lipgloss.NewStyle().Foreground(Brand).Bold(true)
}
