// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyaliza/nyaliza-tui/internal/commands"
	"github.com/nyaliza/nyaliza-tui/internal/session"
	"github.com/nyaliza/nyaliza-tui/internal/ui/components"
	"github.com/nyaliza/nyaliza-tui/internal/ui/styles"
)

// =============================================================================
// MODEL
// =============================================================================

// ResponseList is the part of the response store the window reports on.
type ResponseList interface {
	Reload(ctx context.Context) (int, error)
	Len() int
	Stored() int
	Location() string
}

// Options configures a Model.
type Options struct {
	// Title is shown in the header and the terminal title bar
	Title string

	// CharLimit caps the input length. Zero means 1024.
	CharLimit int

	// Backdrop is the optional header banner
	Backdrop *components.Backdrop

	// Notices are shown at the top of the transcript on start
	Notices []session.Line

	Logger *slog.Logger
}

// Model is the Bubble Tea model of the chat window.
type Model struct {
	session *session.Session
	store   ResponseList
	theme   *styles.Theme
	logger  *slog.Logger
	title   string

	// Components
	header    *components.Header
	statusBar *components.StatusBar
	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model
	keys      KeyMap

	// Completion
	completer  *commands.Completer
	completion *commands.CompletionState

	// Transcript
	lines []session.Line

	// Dimensions
	width  int
	height int
	ready  bool

	// spinning is set while a spinner tick is in flight
	spinning bool

	quitting bool
}

// New creates the chat window around sess. store may be nil when the list
// cannot be reloaded (the status bar then shows no count).
func New(sess *session.Session, store ResponseList, theme *styles.Theme, opts Options) Model {
	if theme == nil {
		theme = styles.NewTheme("auto")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = "NyaLIZA"
	}
	if opts.CharLimit <= 0 {
		opts.CharLimit = 1024
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "にゃんでも話しかけてにゃ…"
	ti.CharLimit = opts.CharLimit
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = theme.InputText
	ti.PlaceholderStyle = theme.InputPlaceholder
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"ฅ", "ฅ^", "ฅ^•", "ฅ^•ω", "ฅ^•ω•", "ฅ^•ω•^", "ฅ^•ω•^ฅ"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	header := components.NewHeader(theme)
	header.Title = opts.Title
	header.SetBackdrop(opts.Backdrop)

	lines := make([]session.Line, 0, len(opts.Notices)+64)
	lines = append(lines, opts.Notices...)

	return Model{
		session:    sess,
		store:      store,
		theme:      theme,
		logger:     opts.Logger,
		title:      opts.Title,
		header:     header,
		statusBar:  components.NewStatusBar(theme),
		viewport:   vp,
		input:      ti,
		spinner:    sp,
		keys:       DefaultKeyMap(),
		completer:  commands.NewCompleter(sess.Registry()),
		completion: commands.NewCompletionState(),
		lines:      lines,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle(m.title))
}

// View renders the window.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderChat()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Lines returns the transcript.
func (m Model) Lines() []session.Line {
	return m.lines
}

// Quitting reports whether the window is closing.
func (m Model) Quitting() bool {
	return m.quitting
}

// Session returns the chat session driving the window.
func (m Model) Session() *session.Session {
	return m.session
}
