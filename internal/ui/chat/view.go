// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nyaliza/nyaliza-tui/internal/session"
	"github.com/nyaliza/nyaliza-tui/internal/ui/components"
	"github.com/nyaliza/nyaliza-tui/internal/ui/styles"
	"github.com/nyaliza/nyaliza-tui/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

func (m Model) renderChat() string {
	if !m.ready {
		return "にゃ…"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		m.renderInput(),
		m.renderStatus(),
	)
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

// renderStatus shows the completion candidates while Tab cycles through
// them, the status bar otherwise.
func (m Model) renderStatus() string {
	if m.completion.Visible && len(m.completion.Completions) > 1 {
		return m.renderCompletions()
	}

	sb := m.statusBar
	sb.Status = components.StatusReady
	sb.Spinner = ""
	sb.Queued = m.session.Queued()
	if m.session.State() == session.AwaitingResponse {
		sb.Status = components.StatusThinking
		sb.Spinner = m.spinner.View()
	}
	if m.store != nil {
		sb.Responses = m.store.Len()
		sb.Location = m.store.Location()
	}
	return sb.View()
}

func (m Model) renderCompletions() string {
	parts := make([]string, 0, len(m.completion.Completions))
	for i, c := range m.completion.Completions {
		style := m.theme.CompletionItem
		if i == m.completion.Selected {
			style = m.theme.CompletionSel
		}
		parts = append(parts, style.Render(c.Display))
	}
	return m.theme.StatusBar.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, "  "))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderTranscript wraps and styles every line for a pane width cells wide.
func (m Model) renderTranscript(width int) string {
	if len(m.lines) == 0 {
		return ""
	}

	// Transcript padding takes one cell on each side.
	wrapAt := width - 2
	if wrapAt < 1 {
		wrapAt = 1
	}

	var rendered []string
	for _, line := range m.lines {
		style := LineStyle(m.theme, line.Kind)
		for _, part := range util.Wrap(line.Text, wrapAt) {
			rendered = append(rendered, style.Render(part))
		}
	}
	return m.theme.Transcript.Render(strings.Join(rendered, "\n"))
}

// LineStyle picks the colour of a transcript line. The line-mode REPL uses
// it too.
func LineStyle(theme *styles.Theme, kind session.LineKind) lipgloss.Style {
	switch kind {
	case session.LineUser:
		return theme.User
	case session.LineCat:
		return theme.Cat
	case session.LineAdded:
		return theme.Added
	case session.LineDuplicate:
		return theme.Duplicate
	case session.LineEmptyArgument, session.LineUnknown, session.LineBusy:
		return theme.Notice
	case session.LineWriteFailed, session.LineError:
		return theme.Failure
	default:
		return theme.Info
	}
}
