// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nyaliza/nyaliza-tui/internal/responses"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// ResponseAdder is the part of the response store that /add needs.
type ResponseAdder interface {
	Append(ctx context.Context, text string) (responses.AddResult, error)
}

// Context provides access to application state for command handlers.
// All fields are optional and may be nil - handlers should check before use.
type Context struct {
	// Ctx bounds blocking work such as writing the response file
	Ctx context.Context

	// Responses receives /add entries
	Responses ResponseAdder

	// Logger records handler failures
	Logger *slog.Logger
}

// NewContext creates a new command context with the given dependencies.
func NewContext(ctx context.Context, store ResponseAdder, logger *slog.Logger) *Context {
	return &Context{Ctx: ctx, Responses: store, Logger: logger}
}

func (c *Context) baseContext() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// =============================================================================
// OUTCOMES
// =============================================================================

// OutcomeKind classifies what a command did.
type OutcomeKind int

const (
	// OutcomeNone means the input was not a command.
	OutcomeNone OutcomeKind = iota
	// OutcomeQuit asks the application to terminate.
	OutcomeQuit
	// OutcomeAdded means /add stored a new reply.
	OutcomeAdded
	// OutcomeDuplicate means /add found the reply already known.
	OutcomeDuplicate
	// OutcomeEmpty means /add had nothing to add.
	OutcomeEmpty
	// OutcomeWriteFailed means /add could not persist the reply.
	OutcomeWriteFailed
	// OutcomeUnknown means the command name is not registered.
	OutcomeUnknown
)

// Outcome is the result of executing a command.
type Outcome struct {
	Kind OutcomeKind

	// Message is the status line to show the user (empty for quit)
	Message string

	// Err carries the underlying failure for OutcomeWriteFailed
	Err error
}

// Status messages shown in the transcript.
const (
	msgAdded       = "応答「%s」を追加しましたにゃ。"
	msgDuplicate   = "応答「%s」は既にあるにゃ。"
	msgEmpty       = "追加する応答内容が空っぽだにゃ。 (例: /add にゃーん)"
	msgWriteFailed = "応答「%s」のファイル保存に失敗したにゃ…"
	msgUnknown     = "知らないコマンドだにゃ: %s"
)

func unknownCommand(rawInput string) Outcome {
	return Outcome{Kind: OutcomeUnknown, Message: fmt.Sprintf(msgUnknown, rawInput)}
}

// =============================================================================
// HANDLER IMPLEMENTATIONS
// =============================================================================

// HandleExit requests termination. Arguments are ignored.
func HandleExit(ctx *Context, rawArgs string) Outcome {
	return Outcome{Kind: OutcomeQuit}
}

// HandleAdd stores rawArgs as a new reply.
func HandleAdd(ctx *Context, rawArgs string) Outcome {
	text := responses.NormalizeEntry(rawArgs)
	if text == "" {
		return Outcome{Kind: OutcomeEmpty, Message: msgEmpty}
	}
	if ctx.Responses == nil {
		err := errors.New("no response store configured")
		return Outcome{Kind: OutcomeWriteFailed, Message: fmt.Sprintf(msgWriteFailed, text), Err: err}
	}

	result, err := ctx.Responses.Append(ctx.baseContext(), text)
	if err != nil {
		return Outcome{Kind: OutcomeWriteFailed, Message: fmt.Sprintf(msgWriteFailed, text), Err: err}
	}

	switch result {
	case responses.Added:
		ctx.logger().Info("response added", "text", text)
		return Outcome{Kind: OutcomeAdded, Message: fmt.Sprintf(msgAdded, text)}
	case responses.Duplicate:
		return Outcome{Kind: OutcomeDuplicate, Message: fmt.Sprintf(msgDuplicate, text)}
	case responses.Empty:
		return Outcome{Kind: OutcomeEmpty, Message: msgEmpty}
	default:
		return Outcome{Kind: OutcomeWriteFailed, Message: fmt.Sprintf(msgWriteFailed, text)}
	}
}
