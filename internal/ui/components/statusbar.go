// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nyaliza/nyaliza-tui/internal/ui/styles"
	"github.com/nyaliza/nyaliza-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status is what the cat is doing.
type Status int

const (
	StatusReady Status = iota
	StatusThinking
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "待機中"
	case StatusThinking:
		return "考え中"
	default:
		return "?"
	}
}

// StatusBar is the bottom line of the window.
type StatusBar struct {
	Status    Status
	Spinner   string // Current spinner frame, shown while thinking
	Responses int    // Size of the response list
	Location  string // Where the list is stored
	Queued    int    // Messages waiting for an answer
	Width     int
	theme     *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the bar. The location is truncated first when space runs out.
func (s *StatusBar) View() string {
	status := s.Status.String()
	if s.Status == StatusThinking && s.Spinner != "" {
		status = s.Spinner + " " + status
	}
	if s.Queued > 0 {
		status += fmt.Sprintf(" (+%d)", s.Queued)
	}

	left := fmt.Sprintf("%s │ 応答 %d件", status, s.Responses)
	right := "Tab 補完 ・ PgUp/PgDn スクロール ・ Esc 終了"

	// Two cells of padding plus the separators.
	avail := s.Width - 2 - util.StringWidth(left) - util.StringWidth(right) - 6
	loc := ""
	if s.Location != "" && avail > 3 {
		loc = util.TruncateLeftWidth(s.Location, avail)
	}

	parts := []string{left}
	if loc != "" {
		parts = append(parts, loc)
	}
	content := strings.Join(parts, " │ ")

	gap := s.Width - 2 - util.StringWidth(content) - util.StringWidth(right)
	if gap >= 1 {
		content += strings.Repeat(" ", gap) + right
	}

	style := lipgloss.NewStyle().Padding(0, 1)
	if s.theme != nil {
		style = s.theme.StatusBar
	}
	if s.Width > 2 {
		style = style.Width(s.Width).MaxWidth(s.Width)
	}
	return style.Render(content)
}
