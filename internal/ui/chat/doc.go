// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen NyaLIZA window as a Bubble Tea model.

The model owns no chat semantics. Every line the user enters is handed to
session.Session.Submit; the returned Result is appended to the transcript
and, when it carries a Schedule, turned into a tea.Tick that delivers a
ReplyMsg after the reply delay. ReplyMsg calls Session.Respond, which
suppresses replies for stale tickets or closed sessions.

Layout, top to bottom:

	header      title, optional backdrop banner, command hint
	transcript  scrolling viewport, re-wrapped on resize
	input       single-line textinput
	status      state, spinner and response count (or completions)

Key bindings are listed in keys.go. External edits of the response file
arrive as ResponsesReloadedMsg, sent by the caller's file watcher through
tea.Program.Send.
*/
package chat
