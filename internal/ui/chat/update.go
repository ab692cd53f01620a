// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyaliza/nyaliza-tui/internal/session"
)

const (
	msgReloaded     = "応答リストを読み直したにゃ（%d件）"
	msgReloadFailed = "応答リストの読み直しに失敗したにゃ…"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case ResponsesReloadedMsg:
		return m.handleReload()

	case spinner.TickMsg:
		// Ticking stops by itself once the reply has arrived.
		if m.session.State() != session.AwaitingResponse {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.header.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)

	// Layout: header + viewport + input (top border and one line) + status
	const (
		inputAreaHeight = 2
		statusBarHeight = 1
	)

	viewportHeight := m.height - m.header.Height() - inputAreaHeight - statusBarHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.viewport.Width = max(m.width, 1)
	m.viewport.Height = viewportHeight

	// Input line has Padding(0,1) and the prompt takes two cells. The
	// placeholder and cursor may overhang Width by a few more.
	const promptLen = 2
	m.input.Width = max(m.width-6-promptLen, 10)

	m.refreshTranscript()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.logger.Debug("window closed by key", "key", msg.String())
		m.session.Close()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		m.input.Reset()
		m.completion.Clear()
		return m.apply(m.session.Submit(text))

	case key.Matches(msg, m.keys.Complete):
		m.complete()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	// Any other key edits the input and invalidates the completion list.
	m.completion.Clear()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	res, ok := m.session.Respond(msg.Ticket)
	if !ok {
		return m, nil
	}
	return m.apply(res)
}

func (m Model) handleReload() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}

	before := m.store.Stored()
	n, err := m.store.Reload(context.Background())
	if err != nil {
		m.logger.Warn("response list reload failed", "path", m.store.Location(), "error", err)
		m.appendLines(m.session.Error(msgReloadFailed))
		return m, nil
	}

	m.logger.Info("response list reloaded", "path", m.store.Location(), "count", n)
	// Our own /add also touches the file, and a reload then only drops the
	// placeholder reply. Stored entries are what an outside edit changes.
	if after := m.store.Stored(); after != before {
		m.appendLines(m.session.Info(fmt.Sprintf(msgReloaded, after)))
	}
	return m, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// apply shows the lines of a session result and runs what it asks for.
func (m Model) apply(res session.Result) (tea.Model, tea.Cmd) {
	m.appendLines(res.Lines...)

	if res.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	if res.Schedule == nil {
		return m, nil
	}
	// A queued reply is scheduled while the previous tick chain still runs.
	if m.spinning {
		return m, replyAfter(*res.Schedule)
	}
	m.spinning = true
	return m, tea.Batch(replyAfter(*res.Schedule), m.spinner.Tick)
}

// complete fills the input from the command completer. A second Tab with
// several candidates cycles through them.
func (m *Model) complete() {
	if m.completion.Visible && len(m.completion.Completions) > 1 {
		m.completion.Next()
		m.setInput(m.completion.Accept())
		return
	}

	value := m.input.Value()
	candidates := m.completer.Complete(value, len(value))
	switch len(candidates) {
	case 0:
		m.completion.Clear()
	case 1:
		m.completion.Clear()
		m.setInput(candidates[0].Value)
	default:
		m.completion.Update(value, candidates)
		m.setInput(m.completion.Accept())
	}
}

func (m *Model) setInput(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
}

func (m *Model) appendLines(lines ...session.Line) {
	if len(lines) == 0 {
		return
	}
	m.lines = append(m.lines, lines...)
	m.refreshTranscript()
}

// refreshTranscript re-renders the viewport content and follows the newest
// line unless the user has scrolled away from it.
func (m *Model) refreshTranscript() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderTranscript(m.viewport.Width))
	if atBottom {
		m.viewport.GotoBottom()
	}
}
