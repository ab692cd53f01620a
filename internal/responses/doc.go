// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package responses owns the cat's canned reply list.
//
// A Store keeps the in-memory list and writes every accepted addition
// through to a Backend. Two backends exist:
//
//   - FileBackend: a newline-delimited UTF-8 text file (cat_responses.txt).
//     Blank lines are ignored, a leading byte order mark is stripped, and
//     each addition is one appended line.
//   - SQLiteBackend: the same contract stored in a single SQLite table.
//
// Loading never fails. A missing resource is created empty and yields the
// single default reply; a resource that cannot be read yields the single
// error reply. Every entry is trimmed and normalized to Unicode NFC so that
// duplicate detection compares like with like.
//
// Usage:
//
//	backend, err := responses.NewBackend(responses.KindFile, path)
//	store := responses.NewStore(backend, responses.WithLogger(logger))
//	store.Load(ctx)
//	reply := store.PickRandom()
//	result, err := store.Append(ctx, "にゃーん")
//
// A Watcher can reload the list when the file is edited outside the program.
package responses
