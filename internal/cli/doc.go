// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the nyaliza command-line interface.
//
// Commands:
//
//	nyaliza                      Open the chat window (line mode without a terminal)
//	nyaliza chat                 Line-mode chat with input history
//	nyaliza responses list       Show the known replies
//	nyaliza responses add TEXT   Teach the cat a new reply
//	nyaliza responses path       Print where the replies are stored
//	nyaliza config init          Write the default config.toml
//	nyaliza config show          Print the effective configuration
//	nyaliza config path          Print the config file location
//	nyaliza version              Print the version
//
// Global flags:
//
//	--config PATH      Use this config file instead of ~/.nyaliza/config.*
//	--responses PATH   Use this response file (or database)
//	--log-level LEVEL  debug, info, warn or error
//	--seed N           Reproducible reply order (0 picks randomly)
//
// The full-screen window logs to ~/.nyaliza/nyaliza.log because Bubble Tea
// owns the terminal; every other command logs to stderr.
package cli
