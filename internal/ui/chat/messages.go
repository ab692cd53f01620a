// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyaliza/nyaliza-tui/internal/session"
)

// =============================================================================
// REPLY MESSAGES
// =============================================================================

// ReplyMsg is delivered when the reply delay for Ticket has elapsed.
type ReplyMsg struct {
	Ticket uint64
}

// replyAfter turns a session schedule into a delayed ReplyMsg.
func replyAfter(s session.Schedule) tea.Cmd {
	ticket := s.Ticket
	return tea.Tick(s.Delay, func(time.Time) tea.Msg {
		return ReplyMsg{Ticket: ticket}
	})
}

// =============================================================================
// RESPONSE LIST MESSAGES
// =============================================================================

// ResponsesReloadedMsg reports that the response file changed on disk.
type ResponsesReloadedMsg struct{}
