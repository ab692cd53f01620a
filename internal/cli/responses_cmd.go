// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/nyaliza/nyaliza-tui/internal/commands"
)

func (a *app) newResponsesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "responses",
		Aliases: []string{"r"},
		Short:   "Inspect and extend the cat's replies",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show every known reply",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.listResponses(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			},
		},
		&cobra.Command{
			Use:   "add <text>",
			Short: "Teach the cat a new reply",
			Long:  `Adds a reply exactly like "/add <text>" in the chat. Words are joined with single spaces.`,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.addResponse(cmd.Context(), strings.Join(args, " "), cmd.OutOrStdout(), cmd.ErrOrStderr())
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print where the replies are stored",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := a.cfg.ResponsesPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
	)
	return cmd
}

// listResponses prints the reply list, as rendered markdown on a terminal.
func (a *app) listResponses(ctx context.Context, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := a.newLogger(errOut)
	store, err := a.openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	list := store.Responses()

	if !isTerminalWriter(out) {
		for _, r := range list {
			fmt.Fprintln(out, r)
		}
		return nil
	}

	rendered, err := renderMarkdown(responsesMarkdown(store.Location(), list), GetTerminalWidth())
	if err != nil {
		// Plain output is still useful.
		logger.Debug("markdown rendering failed", "error", err)
		for _, r := range list {
			fmt.Fprintln(out, r)
		}
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}

// responsesMarkdown formats the list as a numbered markdown document.
func responsesMarkdown(location string, list []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# 応答リスト (%d件)\n\n", len(list))
	fmt.Fprintf(&sb, "`%s`\n\n", location)
	for i, r := range list {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, escapeMarkdown(r))
	}
	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "#", `\#`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// addResponse runs the /add command outside the chat.
func (a *app) addResponse(ctx context.Context, text string, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := a.newLogger(errOut)
	store, err := a.openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	outcome := commands.HandleAdd(commands.NewContext(ctx, store, logger), text)
	fmt.Fprintln(out, outcome.Message)

	switch outcome.Kind {
	case commands.OutcomeWriteFailed:
		return NewCommandError("responses", "add", outcome.Err)
	case commands.OutcomeEmpty:
		return &UsageError{Reason: "reply text is empty"}
	}
	return nil
}
