// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responses

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/nyaliza/nyaliza-tui/internal/config"
)

// ErrPersist is returned by Append when the backend write fails.
var ErrPersist = errors.New("failed to persist response")

// =============================================================================
// ADD RESULT
// =============================================================================

// AddResult is the outcome of Store.Append.
type AddResult int

const (
	// Added means the entry was written and appended to the list.
	Added AddResult = iota
	// Duplicate means an identical entry already exists. Nothing was written.
	Duplicate
	// Empty means the entry was blank after trimming. Nothing was written.
	Empty
	// Failed means the backend write failed. The list is unchanged.
	Failed
)

// String returns a short name for the result.
func (r AddResult) String() string {
	switch r {
	case Added:
		return "added"
	case Duplicate:
		return "duplicate"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// STORE
// =============================================================================

// Store owns the in-memory response list and writes additions through to
// its backend. The list is only reachable through copies.
type Store struct {
	backend Backend
	picker  Picker
	logger  *slog.Logger

	defaultResponse string
	errorResponse   string

	mu   sync.RWMutex
	list []string

	// placeholder is set while list[0] is the default or error reply
	// rather than a stored entry
	placeholder bool
}

// Option configures a Store.
type Option func(*Store)

// WithPicker injects the random source used by PickRandom.
func WithPicker(p Picker) Option {
	return func(s *Store) {
		if p != nil {
			s.picker = p
		}
	}
}

// WithLogger sets the logger for load and write failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlaceholders overrides the default and error replies.
// Blank values keep the built-in text.
func WithPlaceholders(defaultResponse, errorResponse string) Option {
	return func(s *Store) {
		if d := NormalizeEntry(defaultResponse); d != "" {
			s.defaultResponse = d
		}
		if e := NormalizeEntry(errorResponse); e != "" {
			s.errorResponse = e
		}
	}
}

// NewStore creates a store over backend. Call Load before use.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:         backend,
		picker:          NewRandomPicker(),
		logger:          slog.Default(),
		defaultResponse: config.DefaultResponse,
		errorResponse:   config.ErrorResponse,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the backend and replaces the in-memory list.
//
// A missing or blank resource yields the single default reply. A read
// failure is logged and yields the single error reply. Load never fails.
func (s *Store) Load(ctx context.Context) []string {
	var list []string
	placeholder := false

	raw, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load responses",
			"location", s.backend.Location(), "error", err)
		list = []string{s.errorResponse}
		placeholder = true
	} else {
		list = cleanEntries(raw)
		if len(list) == 0 {
			list = []string{s.defaultResponse}
			placeholder = true
		} else {
			s.logger.Debug("responses loaded",
				"location", s.backend.Location(), "count", len(list))
		}
	}

	s.mu.Lock()
	s.list = list
	s.placeholder = placeholder
	s.mu.Unlock()

	return slices.Clone(list)
}

// Reload re-reads the backend after an outside edit. Unlike Load, a read
// failure keeps the current list and is returned.
func (s *Store) Reload(ctx context.Context) (int, error) {
	raw, err := s.backend.Load(ctx)
	if err != nil {
		return s.Len(), fmt.Errorf("reload %s: %w", s.backend.Location(), err)
	}

	list := cleanEntries(raw)
	placeholder := len(list) == 0
	if placeholder {
		list = []string{s.defaultResponse}
	}

	s.mu.Lock()
	s.list = list
	s.placeholder = placeholder
	s.mu.Unlock()

	s.logger.Info("responses reloaded", "location", s.backend.Location(), "count", len(list))
	return len(list), nil
}

// PickRandom returns a uniformly chosen reply. An empty list (Load not yet
// called) yields the default reply.
func (s *Store) PickRandom() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.list) == 0 {
		return s.defaultResponse
	}
	return s.list[s.picker.Intn(len(s.list))]
}

// Append adds text to the list and the backend.
//
// The text is trimmed and NFC-normalized first. Blank text yields Empty and
// an exact match yields Duplicate; neither writes anything. A backend
// failure yields Failed and an error wrapping ErrPersist, leaving the list
// unchanged.
func (s *Store) Append(ctx context.Context, text string) (AddResult, error) {
	entry := NormalizeEntry(text)
	if entry == "" {
		return Empty, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.list, entry) {
		return Duplicate, nil
	}

	if err := s.backend.Append(ctx, entry); err != nil {
		s.logger.Error("failed to persist response",
			"location", s.backend.Location(), "error", err)
		return Failed, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.list = append(s.list, entry)
	return Added, nil
}

// Responses returns a copy of the current list.
func (s *Store) Responses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.list)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Stored returns the number of entries that came from the backend or were
// added since, leaving out an in-memory placeholder reply.
func (s *Store) Stored() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.placeholder {
		return len(s.list) - 1
	}
	return len(s.list)
}

// Location describes where the list is persisted.
func (s *Store) Location() string {
	return s.backend.Location()
}

// DefaultResponse returns the reply used for an empty list.
func (s *Store) DefaultResponse() string {
	return s.defaultResponse
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
