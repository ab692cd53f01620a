// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nyaliza/nyaliza-tui/internal/commands"
	"github.com/nyaliza/nyaliza-tui/internal/config"
	"github.com/nyaliza/nyaliza-tui/internal/responses"
)

// =============================================================================
// STATES AND LINES
// =============================================================================

// State is the session's position in the input/reply cycle.
type State int

const (
	// Idle means no reply is pending.
	Idle State = iota
	// AwaitingResponse means a reply has been scheduled but not shown.
	AwaitingResponse
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingResponse:
		return "awaiting-response"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// LineKind selects how a transcript line is styled.
type LineKind int

const (
	LineUser LineKind = iota
	LineCat
	LineAdded
	LineDuplicate
	LineEmptyArgument
	LineWriteFailed
	LineUnknown
	LineBusy
	LineInfo
	LineError
)

// Line is one entry of the transcript.
type Line struct {
	Kind LineKind
	Text string
	Time time.Time
}

// Schedule asks the caller to call Respond(Ticket) after Delay.
type Schedule struct {
	Delay  time.Duration
	Ticket uint64
}

// Result is what a Submit or Respond call produced.
type Result struct {
	// Lines to append to the transcript, in order
	Lines []Line

	// Quit is set when the user asked to leave
	Quit bool

	// Schedule is non-nil when a reply must be requested later
	Schedule *Schedule
}

const (
	msgBusy         = "ちょっと待ってにゃ…"
	msgCommandError = "コマンド処理でエラーが起きたにゃ…"
)

// =============================================================================
// SESSION
// =============================================================================

// Store is what the session needs from the response list.
type Store interface {
	PickRandom() string
	Append(ctx context.Context, text string) (responses.AddResult, error)
}

// Options configures a Session.
type Options struct {
	// ReplyDelay is the pause before the cat answers. Zero means 500ms.
	ReplyDelay time.Duration

	// BusyPolicy is config.BusyReject (default) or config.BusyQueue
	BusyPolicy string

	// Logger records teardown and command failures
	Logger *slog.Logger

	// Now supplies line timestamps. Nil means time.Now.
	Now func() time.Time
}

// OptionsFromConfig builds Options from the chat configuration.
func OptionsFromConfig(cfg config.ChatConfig, logger *slog.Logger) Options {
	return Options{
		ReplyDelay: cfg.ReplyDelay(),
		BusyPolicy: cfg.BusyPolicy,
		Logger:     logger,
	}
}

// Session is the chat state machine. It is safe for concurrent use, though
// callers normally drive it from a single event loop.
type Session struct {
	mu sync.Mutex

	store    Store
	registry *commands.Registry
	parser   *commands.Parser
	opts     Options
	ctx      context.Context
	cancel   context.CancelFunc

	state   State
	pending uint64 // ticket awaiting Respond, 0 when Idle
	last    uint64 // last ticket issued
	queued  int    // echoed messages waiting behind the pending one
	closed  bool
}

// New creates an idle session answering from store.
func New(store Store, opts Options) *Session {
	if opts.ReplyDelay <= 0 {
		opts.ReplyDelay = config.DefaultReplyDelay
	}
	if opts.BusyPolicy == "" {
		opts.BusyPolicy = config.BusyReject
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	registry := commands.NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		store:    store,
		registry: registry,
		parser:   commands.NewParser(registry),
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		state:    Idle,
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Queued returns how many echoed messages wait behind the pending reply.
func (s *Session) Queued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queued
}

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Registry exposes the command registry for completion.
func (s *Session) Registry() *commands.Registry {
	return s.registry
}

// =============================================================================
// INPUT
// =============================================================================

// Submit handles one line of user input.
func (s *Session) Submit(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Result{}
	}

	parsed := s.parser.Parse(text)
	if parsed.IsCommand {
		return s.runCommand(parsed)
	}

	if s.state == AwaitingResponse {
		if s.opts.BusyPolicy == config.BusyQueue {
			s.queued++
			return Result{Lines: []Line{s.line(LineUser, text)}}
		}
		return Result{Lines: []Line{s.line(LineBusy, msgBusy)}}
	}

	return Result{
		Lines:    []Line{s.line(LineUser, text)},
		Schedule: s.schedule(),
	}
}

// schedule moves to AwaitingResponse with a fresh ticket. Caller holds mu.
func (s *Session) schedule() *Schedule {
	s.last++
	s.pending = s.last
	s.state = AwaitingResponse
	return &Schedule{Delay: s.opts.ReplyDelay, Ticket: s.pending}
}

// runCommand executes a parsed command. Caller holds mu.
func (s *Session) runCommand(parsed commands.ParseResult) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			s.opts.Logger.Error("command panicked", "command", parsed.CommandName, "panic", r)
			result = Result{Lines: []Line{s.line(LineError, msgCommandError)}}
		}
	}()

	cctx := commands.NewContext(s.ctx, s.store, s.opts.Logger)
	outcome := s.registry.Execute(cctx, parsed)

	switch outcome.Kind {
	case commands.OutcomeQuit:
		s.teardown()
		return Result{Quit: true}
	case commands.OutcomeAdded:
		return Result{Lines: []Line{s.line(LineAdded, outcome.Message)}}
	case commands.OutcomeDuplicate:
		return Result{Lines: []Line{s.line(LineDuplicate, outcome.Message)}}
	case commands.OutcomeEmpty:
		return Result{Lines: []Line{s.line(LineEmptyArgument, outcome.Message)}}
	case commands.OutcomeWriteFailed:
		return Result{Lines: []Line{s.line(LineWriteFailed, outcome.Message)}}
	case commands.OutcomeUnknown:
		return Result{Lines: []Line{s.line(LineUnknown, outcome.Message)}}
	default:
		return Result{Lines: []Line{s.line(LineError, msgCommandError)}}
	}
}

// =============================================================================
// DELAYED REPLY
// =============================================================================

// Respond delivers the reply for ticket. It returns false, with nothing to
// show, when the session is closed or the ticket is no longer pending.
// When messages are queued the result schedules the next reply.
func (s *Session) Respond(ticket uint64) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.opts.Logger.Debug("reply suppressed, session closed", "ticket", ticket)
		return Result{}, false
	}
	if ticket == 0 || ticket != s.pending {
		s.opts.Logger.Debug("reply suppressed, stale ticket", "ticket", ticket, "pending", s.pending)
		return Result{}, false
	}

	result := Result{Lines: []Line{s.line(LineCat, s.store.PickRandom())}}

	if s.queued > 0 {
		s.queued--
		result.Schedule = s.schedule()
		return result, true
	}

	s.pending = 0
	s.state = Idle
	return result, true
}

// Cancel drops the pending reply (and any queued ones) without closing the
// session. Used when the user interrupts the wait in line mode.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = 0
	s.queued = 0
	s.state = Idle
}

// Close tears the session down. Pending replies are suppressed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardown()
}

// teardown marks the session closed. Caller holds mu.
func (s *Session) teardown() {
	if s.closed {
		return
	}
	s.closed = true
	s.pending = 0
	s.queued = 0
	s.state = Idle
	s.cancel()
}

// Info builds an informational line, for callers that report their own
// events (reloads, backdrop failures) in the transcript.
func (s *Session) Info(text string) Line {
	return Line{Kind: LineInfo, Text: text, Time: s.opts.Now()}
}

// Error builds an error line.
func (s *Session) Error(text string) Line {
	return Line{Kind: LineError, Text: text, Time: s.opts.Now()}
}

func (s *Session) line(kind LineKind, text string) Line {
	return Line{Kind: kind, Text: text, Time: s.opts.Now()}
}
