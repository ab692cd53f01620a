// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyaliza/nyaliza-tui/internal/config"
	"github.com/nyaliza/nyaliza-tui/internal/logging"
	"github.com/nyaliza/nyaliza-tui/internal/responses"
	"github.com/nyaliza/nyaliza-tui/internal/session"
	"github.com/nyaliza/nyaliza-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// catStore answers every message with reply and counts reloads.
type catStore struct {
	reply     string
	added     []string
	reloads   int
	reloadN   int
	reloadErr error
}

func (c *catStore) PickRandom() string { return c.reply }

func (c *catStore) Append(ctx context.Context, text string) (responses.AddResult, error) {
	c.added = append(c.added, text)
	return responses.Added, nil
}

func (c *catStore) Reload(ctx context.Context) (int, error) {
	c.reloads++
	return c.reloadN, c.reloadErr
}

func (c *catStore) Len() int { return 1 + len(c.added) }

// Stored starts from an empty file; after a reload it reports reloadN.
func (c *catStore) Stored() int {
	if c.reloads > 0 {
		return c.reloadN
	}
	return len(c.added)
}

func (c *catStore) Location() string { return "/tmp/cat_responses.txt" }

func newTestModel(t *testing.T, store *catStore) Model {
	t.Helper()

	sess := session.New(store, session.Options{Logger: logging.Discard()})
	theme := styles.NewTheme("dark")
	theme.HasTrueColor = false

	m := New(sess, store, theme, Options{Logger: logging.Discard()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update must return a chat Model")
	return nm, cmd
}

func typeAndSubmit(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func lineTexts(m Model) []string {
	var out []string
	for _, l := range m.Lines() {
		out = append(out, l.Text)
	}
	return out
}

// =============================================================================
// CHAT FLOW
// =============================================================================

func TestSubmit_EchoesThenReplies(t *testing.T) {
	m := newTestModel(t, &catStore{reply: "にゃーん"})

	m, cmd := typeAndSubmit(t, m, "こんにちは")
	require.NotNil(t, cmd, "a reply must be scheduled")
	assert.Equal(t, []string{"こんにちは"}, lineTexts(m))
	assert.Empty(t, m.input.Value(), "input is cleared")
	assert.Equal(t, session.AwaitingResponse, m.Session().State())

	m, _ = update(t, m, ReplyMsg{Ticket: 1})
	assert.Equal(t, []string{"こんにちは", "にゃーん"}, lineTexts(m))
	assert.Equal(t, session.Idle, m.Session().State())
	assert.Contains(t, m.viewport.View(), "にゃーん")
}

func TestSubmit_EmptyDoesNothing(t *testing.T) {
	m := newTestModel(t, &catStore{})

	m, cmd := typeAndSubmit(t, m, "   ")
	assert.Nil(t, cmd)
	assert.Empty(t, m.Lines())
}

func TestReply_StaleTicketIgnored(t *testing.T) {
	m := newTestModel(t, &catStore{reply: "にゃ"})

	m, _ = typeAndSubmit(t, m, "hello")
	m, _ = update(t, m, ReplyMsg{Ticket: 42})
	assert.Len(t, m.Lines(), 1)
}

func TestAddCommand_ShowsStatusLine(t *testing.T) {
	store := &catStore{}
	m := newTestModel(t, store)

	m, cmd := typeAndSubmit(t, m, "/add ゴロゴロ")
	assert.Nil(t, cmd, "commands never schedule a reply")
	assert.Equal(t, []string{"ゴロゴロ"}, store.added)
	require.Len(t, m.Lines(), 1)
	assert.Equal(t, session.LineAdded, m.Lines()[0].Kind)
}

func TestUnknownCommand(t *testing.T) {
	m := newTestModel(t, &catStore{})

	m, _ = typeAndSubmit(t, m, "/dance")
	require.Len(t, m.Lines(), 1)
	assert.Equal(t, "知らないコマンドだにゃ: /dance", m.Lines()[0].Text)
}

// =============================================================================
// QUITTING
// =============================================================================

func TestExitCommand_Quits(t *testing.T) {
	m := newTestModel(t, &catStore{reply: "にゃ"})

	m, _ = typeAndSubmit(t, m, "hello")
	m, cmd := typeAndSubmit(t, m, "/exit")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Quitting())
	assert.Empty(t, m.View())

	// The pending reply never shows up.
	m, _ = update(t, m, ReplyMsg{Ticket: 1})
	assert.Len(t, m.Lines(), 1)
}

func TestQuitKeys(t *testing.T) {
	for _, keyType := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		t.Run(keyType.String(), func(t *testing.T) {
			m := newTestModel(t, &catStore{})
			m, cmd := update(t, m, tea.KeyMsg{Type: keyType})
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
			assert.True(t, m.Session().Closed())
		})
	}
}

// =============================================================================
// COMPLETION
// =============================================================================

func TestTab_CompletesCommand(t *testing.T) {
	m := newTestModel(t, &catStore{})

	m.input.SetValue("/a")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "/add ", m.input.Value())
}

func TestTab_CyclesCandidates(t *testing.T) {
	m := newTestModel(t, &catStore{})

	m.input.SetValue("/")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "/add ", m.input.Value())
	assert.Contains(t, m.View(), "/exit", "candidates replace the status bar")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "/exit", m.input.Value())

	// Typing ends the cycle.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.False(t, m.completion.Visible)
}

func TestTab_NoMatch(t *testing.T) {
	m := newTestModel(t, &catStore{})

	m.input.SetValue("にゃ")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "にゃ", m.input.Value())
}

func TestQueuedReplies_OneSpinnerChain(t *testing.T) {
	store := &catStore{reply: "にゃ"}
	sess := session.New(store, session.Options{
		ReplyDelay: time.Millisecond,
		BusyPolicy: config.BusyQueue,
		Logger:     logging.Discard(),
	})
	m := New(sess, store, styles.NewTheme("dark"), Options{Logger: logging.Discard()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m, cmd := typeAndSubmit(t, m, "one")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.BatchMsg{}, cmd(), "first reply starts the spinner")
	assert.True(t, m.spinning)

	m, cmd = typeAndSubmit(t, m, "two")
	assert.Nil(t, cmd, "queued message waits for the pending reply")

	m, cmd = update(t, m, ReplyMsg{Ticket: 1})
	require.NotNil(t, cmd, "next queued reply is scheduled")
	assert.Equal(t, ReplyMsg{Ticket: 2}, cmd(), "no second spinner chain")

	m, cmd = update(t, m, ReplyMsg{Ticket: 2})
	assert.Nil(t, cmd)
	assert.Equal(t, session.Idle, sess.State())

	m, cmd = update(t, m, spinner.TickMsg{ID: m.spinner.ID()})
	assert.Nil(t, cmd, "the chain ends once idle")
	assert.False(t, m.spinning)

	m, cmd = typeAndSubmit(t, m, "three")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.BatchMsg{}, cmd(), "a new exchange restarts the spinner")
	assert.True(t, m.spinning)
}

// =============================================================================
// RELOAD
// =============================================================================

func TestResponsesReloaded(t *testing.T) {
	store := &catStore{reloadN: 3}
	m := newTestModel(t, store)

	m, _ = update(t, m, ResponsesReloadedMsg{})
	assert.Equal(t, 1, store.reloads)
	require.Len(t, m.Lines(), 1)
	assert.Equal(t, session.LineInfo, m.Lines()[0].Kind)
	assert.Equal(t, "応答リストを読み直したにゃ（3件）", m.Lines()[0].Text)
}

func TestResponsesReloaded_OwnAddIsQuiet(t *testing.T) {
	store := &catStore{reloadN: 1}
	m := newTestModel(t, store)

	m, _ = typeAndSubmit(t, m, "/add ゴロゴロ")
	require.Equal(t, []string{"ゴロゴロ"}, store.added)
	lines := len(m.Lines())

	m, _ = update(t, m, ResponsesReloadedMsg{})
	assert.Equal(t, 1, store.reloads)
	assert.Len(t, m.Lines(), lines, "the watcher event from our own write adds nothing")
}

func TestResponsesReloaded_FirstAddOverPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat_responses.txt")
	store := responses.NewStore(responses.NewFileBackend(path), responses.WithLogger(logging.Discard()))
	store.Load(context.Background())

	sess := session.New(store, session.Options{Logger: logging.Discard()})
	m := New(sess, store, styles.NewTheme("dark"), Options{Logger: logging.Discard()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m, _ = typeAndSubmit(t, m, "/add ゴロゴロ")
	require.Len(t, m.Lines(), 1)
	assert.Equal(t, session.LineAdded, m.Lines()[0].Kind)

	m, _ = update(t, m, ResponsesReloadedMsg{})
	assert.Len(t, m.Lines(), 1, "no reload notice for our own write")
	assert.Equal(t, []string{"ゴロゴロ"}, store.Responses())

	// An outside edit still shows up.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("シャー！\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	m, _ = update(t, m, ResponsesReloadedMsg{})
	require.Len(t, m.Lines(), 2)
	assert.Equal(t, "応答リストを読み直したにゃ（2件）", m.Lines()[1].Text)
}

func TestResponsesReloaded_Failure(t *testing.T) {
	store := &catStore{reloadErr: errors.New("permission denied")}
	m := newTestModel(t, store)

	m, _ = update(t, m, ResponsesReloadedMsg{})
	require.Len(t, m.Lines(), 1)
	assert.Equal(t, session.LineError, m.Lines()[0].Kind)
}

func TestResponsesReloaded_NoStore(t *testing.T) {
	sess := session.New(&catStore{}, session.Options{Logger: logging.Discard()})
	m := New(sess, nil, styles.NewTheme("dark"), Options{Logger: logging.Discard()})

	m, _ = update(t, m, ResponsesReloadedMsg{})
	assert.Empty(t, m.Lines())
}

// =============================================================================
// LAYOUT
// =============================================================================

func TestView_BeforeResize(t *testing.T) {
	sess := session.New(&catStore{}, session.Options{Logger: logging.Discard()})
	m := New(sess, nil, styles.NewTheme("dark"), Options{})
	assert.Equal(t, "にゃ…", m.View())
}

func TestView_FitsWindow(t *testing.T) {
	m := newTestModel(t, &catStore{reply: "にゃ"})
	m, _ = typeAndSubmit(t, m, "hello")

	view := m.View()
	assert.Contains(t, view, "NyaLIZA")
	assert.Contains(t, view, "hello")
	assert.LessOrEqual(t, lipgloss.Height(view), 30)
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 80)
	}
}

func TestResize_RewrapsTranscript(t *testing.T) {
	m := newTestModel(t, &catStore{})
	long := strings.Repeat("にゃ", 30) // 120 cells

	m, _ = typeAndSubmit(t, m, long)
	for _, line := range strings.Split(m.viewport.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 80)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 30})
	assert.Equal(t, 40, m.viewport.Width)
	for _, line := range strings.Split(m.viewport.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
	assert.Equal(t, 1, len(m.Lines()), "wrapping does not split transcript entries")
}

func TestNotices_ShownOnStart(t *testing.T) {
	sess := session.New(&catStore{}, session.Options{Logger: logging.Discard()})
	notice := sess.Error("背景画像を読み込めなかったにゃ")
	m := New(sess, nil, styles.NewTheme("dark"), Options{Notices: []session.Line{notice}})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, m.viewport.View(), "背景画像を読み込めなかったにゃ")
}

func TestLineStyle_EveryKind(t *testing.T) {
	theme := styles.NewTheme("dark")
	kinds := []session.LineKind{
		session.LineUser, session.LineCat, session.LineAdded, session.LineDuplicate,
		session.LineEmptyArgument, session.LineWriteFailed, session.LineUnknown,
		session.LineBusy, session.LineInfo, session.LineError,
	}
	for _, k := range kinds {
		assert.Contains(t, LineStyle(theme, k).Render("にゃ"), "にゃ")
	}
}
