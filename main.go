// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// NyaLIZA - a cat chatbot for the terminal.
//
// Type a line and the cat answers with one of the replies it knows.
// "/add <text>" teaches it a new reply; "/exit" closes the window.
package main

import (
	"os"

	"github.com/nyaliza/nyaliza-tui/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
