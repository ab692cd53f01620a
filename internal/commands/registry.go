// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Handler runs a command against the text that followed its name.
type Handler func(ctx *Context, rawArgs string) Outcome

// Command is one slash command the cat understands.
type Command struct {
	// Name is the lower-case token including the prefix, e.g. "/add"
	Name string

	// Description is a short English gloss used in completion
	Description string

	// Usage is the argument syntax, e.g. "/add <text>"
	Usage string

	// TakesArgs makes completion leave a trailing space
	TakesArgs bool

	Handler Handler

	// Hidden commands run but are never offered by completion
	Hidden bool
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry maps command names to commands. Only /add and /exit are
// registered by default.
type Registry struct {
	byName map[string]*Command
	order  []*Command
}

// NewRegistry returns a registry holding the built-in commands.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Command)}
	r.Register(&Command{
		Name:        "/add",
		Description: "Teach the cat a new reply",
		Usage:       "/add <text>",
		TakesArgs:   true,
		Handler:     HandleAdd,
	})
	r.Register(&Command{
		Name:        "/exit",
		Description: "Leave the chat",
		Usage:       "/exit",
		Handler:     HandleExit,
	})
	return r
}

// Register adds cmd, replacing any command with the same name.
func (r *Registry) Register(cmd *Command) {
	if old, ok := r.byName[cmd.Name]; ok {
		for i, c := range r.order {
			if c == old {
				r.order[i] = cmd
			}
		}
	} else {
		r.order = append(r.order, cmd)
	}
	r.byName[cmd.Name] = cmd
}

// Get looks up a lower-cased command name.
func (r *Registry) Get(name string) *Command {
	return r.byName[name]
}

// All returns the commands in registration order.
func (r *Registry) All() []*Command {
	return append([]*Command(nil), r.order...)
}

// Execute runs a parsed command. A "/..." token that names no registered
// command yields OutcomeUnknown quoting the raw input.
func (r *Registry) Execute(ctx *Context, parsed ParseResult) Outcome {
	switch {
	case !parsed.IsCommand:
		return Outcome{Kind: OutcomeNone}
	case parsed.Command == nil || parsed.Command.Handler == nil:
		return unknownCommand(parsed.RawInput)
	}
	if ctx == nil {
		ctx = &Context{}
	}
	return parsed.Command.Handler(ctx, parsed.RawArgs)
}
