// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// TRANSCRIPT COLORS
// =============================================================================

// UserText - The user's echoed input
var UserText = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// CatText - The cat's replies
var CatText = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#FFFFFF"}

// AddedText - A new reply was stored
var AddedText = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#00FFFF"}

// DuplicateText - The reply already existed
var DuplicateText = lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FFFF00"}

// NoticeText - Empty /add and unknown commands
var NoticeText = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FFA500"}

// FailureText - Write failures and command errors
var FailureText = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#FF4040"}

// =============================================================================
// CHROME COLORS
// =============================================================================

// Brand - Title and prompt accent
var Brand = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Surface - Header and status bar background
var Surface = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// TextMuted - Hints and timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextPrimary - Input text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
