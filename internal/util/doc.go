// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the nyaliza packages.
//
// # Key Functions
//
// Display width (East Asian aware, backed by go-runewidth):
//   - StringWidth: terminal cell width of a string
//   - TruncateWidth: cut a string to a cell width with an ellipsis
//   - TruncateLeftWidth: keep the tail of a path that does not fit
//   - Wrap: hard-wrap text to a cell width, preferring spaces
//
// File Operations:
//   - AtomicWriteFile: crash-safe file replacement with fsync
//
// # Usage
//
//	// Wrap a cat reply for a 40 column pane
//	lines := util.Wrap("にゃーん、にゃーん", 40)
//
//	// Replace a config file in one step
//	err := util.AtomicWriteFile(path, data, 0600)
package util
