// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyaliza/nyaliza-tui/internal/config"
	"github.com/nyaliza/nyaliza-tui/internal/logging"
	"github.com/nyaliza/nyaliza-tui/internal/responses"
	"github.com/nyaliza/nyaliza-tui/internal/session"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "1.0.0"

// app holds the global flags and what PersistentPreRunE derives from them.
type app struct {
	configPath    string
	responsesPath string
	logLevel      string
	seed          uint64

	cfg *config.Config
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// NewRootCommand builds the nyaliza command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "nyaliza",
		Short: "NyaLIZA - a cat that chats back",
		Long: `NyaLIZA echoes what you say and answers with a random reply it has
learned. Teach it new replies with "/add <text>" and leave with "/exit".

Run without arguments to open the chat window.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !IsTTY() || !IsStdoutTTY() {
				return a.runLineChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			}
			return a.runTUI(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.nyaliza/config.toml)")
	flags.StringVar(&a.responsesPath, "responses", "", "response file or database")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.Uint64Var(&a.seed, "seed", 0, "seed for a reproducible reply order (0 picks randomly)")

	root.AddCommand(
		a.newChatCommand(),
		a.newResponsesCommand(),
		a.newConfigCommand(),
		newVersionCommand(),
	)
	return root
}

// loadConfig reads the config file and applies the global flags on top.
func (a *app) loadConfig() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return &ConfigError{Path: a.configPath, Err: err}
	}

	if a.responsesPath != "" {
		cfg.Responses.Path = a.responsesPath
	}
	if a.logLevel != "" {
		if _, err := logging.ParseLevel(a.logLevel); err != nil {
			return &UsageError{Reason: err.Error()}
		}
		cfg.Logging.Level = a.logLevel
	}

	config.SetGlobal(cfg)
	a.cfg = cfg
	return nil
}

// =============================================================================
// SHARED WIRING
// =============================================================================

// newLogger builds the logger for commands that write to w.
func (a *app) newLogger(w io.Writer) *slog.Logger {
	level, err := logging.ParseLevel(a.cfg.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(logging.Options{Level: level, Writer: w})
}

// openStore opens and loads the configured response list.
func (a *app) openStore(ctx context.Context, logger *slog.Logger) (*responses.Store, error) {
	path, err := a.cfg.ResponsesPath()
	if err != nil {
		return nil, err
	}

	backend, err := responses.NewBackend(a.cfg.Responses.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open response list: %w", err)
	}

	opts := []responses.Option{
		responses.WithLogger(logger),
		responses.WithPlaceholders(a.cfg.Responses.DefaultResponse, a.cfg.Responses.ErrorResponse),
	}
	if a.seed != 0 {
		opts = append(opts, responses.WithPicker(responses.NewSeededPicker(a.seed)))
	}

	store := responses.NewStore(backend, opts...)
	store.Load(ctx)
	return store, nil
}

// newSession wires a chat session to store.
func (a *app) newSession(store session.Store, logger *slog.Logger) *session.Session {
	return session.New(store, session.OptionsFromConfig(a.cfg.Chat, logger))
}
