// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responses

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// =============================================================================
// FILE BACKEND
// =============================================================================

// FileBackend stores one response per line in a plain UTF-8 text file.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

// NewFileBackend returns a backend for the text file at path.
// The file is not touched until Load or Append.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// lineEnding is the platform newline written after each appended entry.
func lineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Load reads every line of the file. A missing file is created empty,
// together with its parent directories.
func (b *FileBackend) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := b.create(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

func (b *FileBackend) create() error {
	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.OpenFile(b.path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", b.path, err)
	}
	return f.Close()
}

// Append writes text as a new line at the end of the file. If the file was
// hand-edited and lacks a trailing newline, one is written first so the
// entry lands on its own line.
func (b *FileBackend) Append(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.OpenFile(b.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", b.path, err)
	}

	prefix := ""
	if missing, err := missingTrailingNewline(f); err != nil {
		f.Close()
		return err
	} else if missing {
		prefix = lineEnding()
	}

	if _, err := f.WriteString(prefix + text + lineEnding()); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", b.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", b.path, err)
	}
	return nil
}

func missingTrailingNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", f.Name(), err)
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, fmt.Errorf("failed to read %s: %w", f.Name(), err)
	}
	return last[0] != '\n', nil
}

// Location returns the file path.
func (b *FileBackend) Location() string {
	return b.path
}

// Close is a no-op; the file is only held open during Load and Append.
func (b *FileBackend) Close() error {
	return nil
}
