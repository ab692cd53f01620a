// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"
)

// Prefix marks input as a command.
const Prefix = "/"

// ParseResult is one line of input split into command name and argument.
type ParseResult struct {
	// IsCommand is set when the trimmed input starts with Prefix
	IsCommand bool

	// Command is the registered command, nil when the name is unknown
	Command *Command

	// CommandName is the lower-cased first token, e.g. "/add"
	CommandName string

	// RawInput is the whole trimmed line
	RawInput string

	// RawArgs is the rest of the line after the first whitespace run.
	// Inner whitespace is kept as typed.
	RawArgs string
}

// Parser splits input lines and resolves command names.
type Parser struct {
	registry *Registry
}

// NewParser creates a parser that resolves names against registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse classifies input. Command names match case-insensitively, so
// "/ADD" and "/add" are the same command.
func (p *Parser) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, Prefix) {
		return ParseResult{RawInput: input}
	}

	name, rest := cutToken(input)
	parsed := ParseResult{
		IsCommand:   true,
		CommandName: strings.ToLower(name),
		RawInput:    input,
		RawArgs:     strings.TrimSpace(rest),
	}
	if p.registry != nil {
		parsed.Command = p.registry.Get(parsed.CommandName)
	}
	return parsed
}

// cutToken splits s at its first whitespace rune. Tabs count, as do the
// ideographic spaces a Japanese IME produces.
func cutToken(s string) (token, rest string) {
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

// IsCommand reports whether input would be parsed as a command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), Prefix)
}

// ExtractCommandName returns the lower-cased command token of input, or ""
// for plain messages. "/ADD にゃーん" gives "/add".
func ExtractCommandName(input string) string {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, Prefix) {
		return ""
	}
	name, _ := cutToken(input)
	return strings.ToLower(name)
}

// GetPartialCommand returns input while it is still a bare command token
// being typed, and "" once it has an argument or is not a command.
func GetPartialCommand(input string) string {
	if !strings.HasPrefix(input, Prefix) {
		return ""
	}
	if _, rest := cutToken(input); rest != "" {
		return ""
	}
	return input
}
