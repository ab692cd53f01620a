// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nyaliza/nyaliza-tui/internal/config"
	"github.com/nyaliza/nyaliza-tui/internal/logging"
	"github.com/nyaliza/nyaliza-tui/internal/responses"
	"github.com/nyaliza/nyaliza-tui/internal/session"
	"github.com/nyaliza/nyaliza-tui/internal/ui/chat"
	"github.com/nyaliza/nyaliza-tui/internal/ui/components"
	"github.com/nyaliza/nyaliza-tui/internal/ui/styles"
)

const msgBackdropFailed = "背景画像を読み込めなかったにゃ: %s"

// runTUI opens the full-screen chat window.
func (a *app) runTUI(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logPath, err := a.cfg.LogPath()
	if err != nil {
		return err
	}
	logFile, err := logging.OpenFile(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := a.newLogger(logFile)
	slog.SetDefault(logger)
	logger.Info("starting window", "version", Version)

	store, err := a.openStore(ctx, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	sess := a.newSession(store, logger)
	defer sess.Close()

	var notices []session.Line
	backdrop, err := a.loadBackdrop()
	if err != nil {
		logger.Warn("background image unavailable", "path", a.cfg.UI.Background, "error", err)
		notices = append(notices, sess.Error(fmt.Sprintf(msgBackdropFailed, a.cfg.UI.Background)))
	}

	theme := styles.NewTheme(a.cfg.UI.Theme)
	model := chat.New(sess, store, theme, chat.Options{
		Title:     a.cfg.UI.Title,
		CharLimit: a.cfg.Chat.CharLimit,
		Backdrop:  backdrop,
		Notices:   notices,
		Logger:    logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if a.cfg.Responses.Watch && a.cfg.Responses.Backend == config.BackendFile {
		watcher, err := responses.NewWatcher(store.Location(), a.cfg.Responses.ReloadInterval(), func() {
			p.Send(chat.ResponsesReloadedMsg{})
		}, logger)
		if err == nil {
			if err = watcher.Start(); err != nil {
				watcher.Close()
			}
		}
		if err != nil {
			// Chatting works without live reload.
			logger.Warn("response file watcher disabled", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running window: %w", err)
	}
	logger.Info("window closed")
	return nil
}

// loadBackdrop decodes the configured background image. A relative path is
// looked up in the config directory, then the working directory.
func (a *app) loadBackdrop() (*components.Backdrop, error) {
	if !a.cfg.UI.ShowBackdrop || a.cfg.UI.Background == "" {
		return nil, nil
	}

	path := a.cfg.UI.Background
	if !filepath.IsAbs(path) {
		if dir, err := config.ConfigDir(); err == nil {
			candidate := filepath.Join(dir, path)
			if b, err := components.LoadBackdrop(candidate, a.cfg.UI.BackdropWidth); err == nil {
				return b, nil
			}
		}
	}
	return components.LoadBackdrop(path, a.cfg.UI.BackdropWidth)
}
