// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responses

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// =============================================================================
// FILE WATCHER
// =============================================================================

// Watcher reports edits made to the response file by other programs.
//
// The parent directory is watched so that editors which replace the file
// (write to a temp file, then rename) are still noticed. Notifications are
// throttled to one per interval; events arriving while a notification is
// pending are folded into it.
type Watcher struct {
	path     string
	onChange func()
	logger   *slog.Logger

	watcher *fsnotify.Watcher
	limiter *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

// NewWatcher creates a watcher for the file at path. onChange is called from
// the watcher goroutine and must not block for long.
func NewWatcher(path string, interval time.Duration, onChange func(), logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		path:     filepath.Clean(abs),
		onChange: onChange,
		logger:   logger,
		watcher:  fw,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. It returns once the directory watch is in place.
func (w *Watcher) Start() error {
	var err error
	w.startOnce.Do(func() {
		if addErr := w.watcher.Add(filepath.Dir(w.path)); addErr != nil {
			err = fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), addErr)
			close(w.done)
			return
		}
		go w.run()
	})
	return err
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.cancel()
		err = w.watcher.Close()
		// Start was never called
		w.startOnce.Do(func() { close(w.done) })
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if pending != nil {
				// Already scheduled
				continue
			}
			delay := w.limiter.Reserve().Delay()
			if delay <= 0 {
				w.notify()
				continue
			}
			timer = time.NewTimer(delay)
			pending = timer.C

		case <-pending:
			pending = nil
			w.notify()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("response watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (w *Watcher) notify() {
	if w.ctx.Err() != nil {
		return
	}
	w.logger.Debug("response file changed", "path", w.path)
	if w.onChange != nil {
		w.onChange()
	}
}
