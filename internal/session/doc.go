// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the chat cycle between the user and the cat.
//
// A Session is a two-state machine:
//
//	Idle --plain message--> AwaitingResponse --Respond(ticket)--> Idle
//
// Submit echoes a plain message and returns a Schedule: the caller waits
// Schedule.Delay and then calls Respond with Schedule.Ticket. The session
// does no timing of its own, so the same code drives the full-screen UI
// (tea.Tick) and the line-mode REPL (time.After).
//
// Commands never change state. Plain messages submitted while a reply is
// pending follow the busy policy: "reject" refuses them with a status line,
// "queue" echoes them and answers each in turn.
//
// Once closed (or after /exit) every pending ticket is stale and Respond
// reports false without emitting anything.
package session
