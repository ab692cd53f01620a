// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completion is one candidate for the command name being typed.
type Completion struct {
	// Value replaces the input when accepted
	Value string

	// Display is the usage string shown in the status line
	Display string

	// Description is a short English gloss
	Description string
}

// Completer offers command names for a partially typed "/..." token.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a completer over registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns the commands whose name starts with the token before
// cursorPos, in name order. Only the command name is completed; once a
// space has been typed there is nothing to offer.
func (c *Completer) Complete(input string, cursorPos int) []Completion {
	if cursorPos >= 0 && cursorPos < len(input) {
		input = input[:cursorPos]
	}
	partial := strings.ToLower(GetPartialCommand(strings.TrimLeft(input, " \t")))
	if partial == "" || c.registry == nil {
		return nil
	}

	var out []Completion
	for _, cmd := range c.registry.All() {
		if cmd.Hidden || !strings.HasPrefix(cmd.Name, partial) {
			continue
		}
		out = append(out, completionFor(cmd))
	}
	return out
}

// Words adapts Complete to line editors that want plain strings.
func (c *Completer) Words(line string) []string {
	var out []string
	for _, comp := range c.Complete(line, len(line)) {
		out = append(out, comp.Value)
	}
	return out
}

// completionFor leaves a trailing space after commands that read text so
// the user can keep typing.
func completionFor(cmd *Command) Completion {
	comp := Completion{
		Value:       cmd.Name,
		Display:     cmd.Name,
		Description: cmd.Description,
	}
	if cmd.TakesArgs {
		comp.Value += " "
	}
	if cmd.Usage != "" {
		comp.Display = cmd.Usage
	}
	return comp
}

// =============================================================================
// TAB CYCLING
// =============================================================================

// CompletionState remembers the candidates offered by the last Tab press
// so repeated presses cycle through them.
type CompletionState struct {
	Typed       string
	Completions []Completion
	Selected    int
	Visible     bool
}

// NewCompletionState returns an empty state.
func NewCompletionState() *CompletionState {
	return &CompletionState{Selected: -1}
}

// Update offers a fresh candidate list for typed and selects the first.
func (cs *CompletionState) Update(typed string, completions []Completion) {
	cs.Typed = typed
	cs.Completions = completions
	cs.Selected = 0
	cs.Visible = len(completions) > 0
}

// Next selects the following candidate, wrapping at the end.
func (cs *CompletionState) Next() {
	if n := len(cs.Completions); n > 0 {
		cs.Selected = (cs.Selected + 1) % n
	}
}

// Accept returns the selected value, the first one when nothing is
// selected, or "" when there are no candidates.
func (cs *CompletionState) Accept() string {
	switch {
	case len(cs.Completions) == 0:
		return ""
	case cs.Selected < 0 || cs.Selected >= len(cs.Completions):
		return cs.Completions[0].Value
	default:
		return cs.Completions[cs.Selected].Value
	}
}

// Clear forgets the candidates.
func (cs *CompletionState) Clear() {
	*cs = CompletionState{Selected: -1}
}
