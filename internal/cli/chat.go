// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/nyaliza/nyaliza-tui/internal/commands"
	"github.com/nyaliza/nyaliza-tui/internal/config"
	"github.com/nyaliza/nyaliza-tui/internal/session"
	"github.com/nyaliza/nyaliza-tui/internal/ui/chat"
	"github.com/nyaliza/nyaliza-tui/internal/ui/styles"
)

const prompt = "にゃ> "

func (a *app) newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in line mode, with input history",
		Long: `Chat with the cat one line at a time. Up and down recall earlier
input; Tab completes /add and /exit. Ctrl+C while the cat is thinking
drops the pending reply; Ctrl+C or Ctrl+D at the prompt leaves.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLineChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader yields one line of input per call. io.EOF ends the chat.
type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
	logger      *slog.Logger
}

// NewChatCLI creates a liner-backed reader with history loaded from
// historyFile and Tab completion of command names.
func NewChatCLI(historyFile string, completer *commands.Completer, logger *slog.Logger) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completer.Words)

	c := &ChatCLI{line: line, historyFile: historyFile, logger: logger}
	c.loadHistory()
	return c
}

func (c *ChatCLI) loadHistory() {
	f, err := os.Open(c.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := c.line.ReadHistory(f); err != nil {
		c.logger.Debug("history not loaded", "path", c.historyFile, "error", err)
	}
}

// ReadLine reads a line with the given prompt. Ctrl+C at the prompt is
// reported as io.EOF.
func (c *ChatCLI) ReadLine(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory persists history with owner-only permissions.
func (c *ChatCLI) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		c.logger.Warn("history not saved", "path", c.historyFile, "error", err)
		return
	}
	defer f.Close()
	if _, err := c.line.WriteHistory(f); err != nil {
		c.logger.Warn("history not saved", "path", c.historyFile, "error", err)
	}
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() error {
	c.saveHistory()
	return c.line.Close()
}

// pipeReader reads lines from a non-terminal stdin.
type pipeReader struct {
	scanner *bufio.Scanner
}

func newPipeReader(r io.Reader) *pipeReader {
	return &pipeReader{scanner: bufio.NewScanner(r)}
}

func (p *pipeReader) ReadLine(string) (string, error) {
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	if err := p.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (p *pipeReader) Close() error { return nil }

// =============================================================================
// REPL
// =============================================================================

// waitFunc blocks for d and reports whether the reply should be shown.
type waitFunc func(ctx context.Context, d time.Duration) bool

// waitInterruptible waits for d unless Ctrl+C (or ctx) cuts it short.
func waitInterruptible(ctx context.Context, d time.Duration) bool {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-sigCtx.Done():
		return false
	}
}

// runLineChat wires the session to stdin and stdout.
func (a *app) runLineChat(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := a.newLogger(errOut)
	store, err := a.openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	sess := a.newSession(store, logger)
	defer sess.Close()

	var reader lineReader
	echo := true
	if f, ok := in.(*os.File); ok && f == os.Stdin && IsTTY() {
		echo = false
		history, err := a.cfg.HistoryPath()
		if err != nil {
			return err
		}
		reader = NewChatCLI(history, commands.NewCompleter(sess.Registry()), logger)
	} else {
		reader = newPipeReader(in)
	}
	defer reader.Close()

	var theme *styles.Theme
	if ColorsEnabled(out) {
		theme = styles.NewTheme(a.cfg.UI.Theme)
	}

	fmt.Fprintf(out, "%s - /add <text> で教える ・ /exit で終了\n", a.cfg.UI.Title)
	return chatLoop(ctx, sess, reader, out, theme, echo, waitInterruptible)
}

// chatLoop reads lines until /exit or end of input. Replies are printed
// after the session's delay; an interrupted wait cancels the reply. echo
// repeats the user's input, which a terminal already shows.
func chatLoop(ctx context.Context, sess *session.Session, reader lineReader, out io.Writer, theme *styles.Theme, echo bool, wait waitFunc) error {
	for {
		input, err := reader.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		res := sess.Submit(input)
		for {
			printLines(out, theme, res.Lines, echo)
			if res.Quit {
				return nil
			}
			if res.Schedule == nil {
				break
			}
			if !wait(ctx, res.Schedule.Delay) {
				sess.Cancel()
				fmt.Fprintln(out)
				break
			}
			next, ok := sess.Respond(res.Schedule.Ticket)
			if !ok {
				break
			}
			res = next
		}
	}
}

// printLines writes transcript lines, styled when theme is non-nil.
func printLines(out io.Writer, theme *styles.Theme, lines []session.Line, echo bool) {
	for _, line := range lines {
		if line.Kind == session.LineUser && !echo {
			continue
		}
		text := line.Text
		if theme != nil {
			text = chat.LineStyle(theme, line.Kind).Render(text)
		}
		fmt.Fprintln(out, text)
	}
}
