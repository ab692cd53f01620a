// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the pieces of the NyaLIZA window that are not
part of the Bubble Tea update loop itself.

Header (header.go) - Title, optional backdrop banner and the command hint.
Backdrop (backdrop.go) - Background image decoded once and rendered as
half-block cells with true-colour foreground and background.
StatusBar (statusbar.go) - Bottom line with the cat's state, the size of the
response list and where it is stored.

Components render with the styles from the styles package and never touch
the session; the chat model copies what they show into their fields.
*/
package components
