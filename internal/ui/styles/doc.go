// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the nyaliza window.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

Transcript lines are colored by what they report:

	UserText      - gray, the user's own words
	CatText       - white (dark ink on light terminals), the cat's reply
	AddedText     - aqua, a reply was learned
	DuplicateText - yellow, the reply was already known
	NoticeText    - orange, empty /add or unknown command
	FailureText   - red, the response file could not be written

# Theme System (theme.go)

	theme := styles.NewTheme("auto")
	if theme.IsDark {
		// Dark terminal detected
	}

The mode "dark" or "light" skips detection.
*/
package styles
