// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the chat window.
//
// Input beginning with "/" is a command. The first whitespace-delimited
// token names it (case-insensitive) and the trimmed remainder is its
// argument text.
//
// # Built-in Commands
//
//   - /add <text>: teach the cat a new reply
//   - /exit: leave the chat
//
// Anything else starting with "/" is reported as an unknown command.
//
// # Usage
//
//	registry := commands.NewRegistry()
//	parsed := commands.NewParser(registry).Parse(input)
//	if parsed.IsCommand {
//	    outcome := registry.Execute(ctx, parsed)
//	}
//
// Get completions:
//
//	completions := commands.NewCompleter(registry).Complete("/a", 2)
//	// one candidate, "/add " with a trailing space
package commands
