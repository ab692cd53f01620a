// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/nyaliza/nyaliza-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// writePNG writes a w x h image, red on the top half and blue below.
func writePNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 0xFF, A: 0xFF}
			if y >= h/2 {
				c = color.RGBA{B: 0xFF, A: 0xFF}
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "backdrop.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

// =============================================================================
// BACKDROP TESTS
// =============================================================================

func TestLoadBackdrop(t *testing.T) {
	path := writePNG(t, 40, 20)

	b, err := LoadBackdrop(path, 10)
	require.NoError(t, err)

	// 10 columns, 5 pixel rows rounded up to 6, three cell rows.
	rows := b.Rows()
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, 10, lipgloss.Width(row))
		assert.Contains(t, row, halfBlock)
	}
	assert.Equal(t, 10, b.Width())
	assert.Equal(t, path, b.Path)
}

func TestLoadBackdrop_CapsHeight(t *testing.T) {
	path := writePNG(t, 4, 400)

	b, err := LoadBackdrop(path, 8)
	require.NoError(t, err)
	assert.Len(t, b.Rows(), MaxBackdropRows)
}

func TestLoadBackdrop_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadBackdrop(filepath.Join(dir, "missing.jpg"), 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	text := filepath.Join(dir, "not-an-image.jpg")
	require.NoError(t, os.WriteFile(text, []byte("にゃ"), 0o644))
	_, err = LoadBackdrop(text, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, image.ErrFormat))

	_, err = LoadBackdrop(writePNG(t, 4, 4), 0)
	assert.Error(t, err)
}

func TestNilBackdrop(t *testing.T) {
	var b *Backdrop
	assert.Empty(t, b.View())
	assert.Nil(t, b.Rows())
	assert.Zero(t, b.Width())
}

func TestScaleImage_KeepsHalves(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{R: 0xFF, A: 0xFF}
			if y >= 4 {
				c = color.RGBA{B: 0xFF, A: 0xFF}
			}
			src.Set(x, y, c)
		}
	}

	got := scaleImage(src, 2, 2)
	require.Equal(t, image.Rect(0, 0, 2, 2), got.Bounds())
	for x := 0; x < 2; x++ {
		top, bottom := got.RGBAAt(x, 0), got.RGBAAt(x, 1)
		assert.Greater(t, top.R, top.B, "top row stays red")
		assert.Greater(t, bottom.B, bottom.R, "bottom row stays blue")
		assert.Equal(t, uint8(0xFF), top.A)
	}
}

func TestScaleImage_TransparentBecomesBlack(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 6))

	got := scaleImage(src, 3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, color.RGBA{A: 0xFF}, got.RGBAAt(x, y))
		}
	}
}

func TestLoadBackdrop_BMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	path := filepath.Join(t.TempDir(), "backdrop.bmp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, img))
	require.NoError(t, f.Close())

	b, err := LoadBackdrop(path, 8)
	require.NoError(t, err)
	assert.Len(t, b.Rows(), 2)
}

// =============================================================================
// COLOUR HELPERS
// =============================================================================

func TestHexColorRoundTrip(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
	}{
		{"A78BFA", 0xA7, 0x8B, 0xFA},
		{"00ffff", 0x00, 0xFF, 0xFF},
		{"zz0000", 0xFF, 0x00, 0x00},
		{"abc", 0xFF, 0xFF, 0xFF},
	}

	for _, tc := range tests {
		r, g, b := parseHexColor(tc.hex)
		assert.Equal(t, []uint8{tc.r, tc.g, tc.b}, []uint8{r, g, b}, tc.hex)
	}

	assert.Equal(t, "#A78BFA", formatHexColor(0xA7, 0x8B, 0xFA))
}

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#000000"), interpolateColor("#000000", "#FFFFFF", 0))
	assert.Equal(t, lipgloss.Color("#FFFFFF"), interpolateColor("#000000", "#FFFFFF", 1))
	assert.Equal(t, lipgloss.Color("#7F7F7F"), interpolateColor("#000000", "#FFFFFF", 0.5))
}

func TestGradientTitle(t *testing.T) {
	assert.Empty(t, GradientTitle("", "#000000", "#FFFFFF"))
	assert.Contains(t, GradientTitle("Ny", "#000000", "#FFFFFF"), "Ny")
	assert.Equal(t, len("NyaLIZA"), lipgloss.Width(GradientTitle("NyaLIZA", "#000000", "#FFFFFF")))
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestHeader_View(t *testing.T) {
	theme := styles.NewTheme("dark")
	theme.HasTrueColor = false
	h := NewHeader(theme)
	h.SetWidth(60)

	view := h.View()
	assert.Contains(t, view, "NyaLIZA")
	assert.Contains(t, view, "/exit")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60)
	}
}

func TestHeader_Backdrop(t *testing.T) {
	b, err := LoadBackdrop(writePNG(t, 48, 8), 48)
	require.NoError(t, err)
	require.Len(t, b.Rows(), 4)

	h := NewHeader(styles.NewTheme("dark"))
	h.SetWidth(60)
	plain := h.Height()

	h.SetBackdrop(b)
	assert.Equal(t, plain+len(b.Rows()), h.Height())

	// Too narrow for the banner.
	h.SetWidth(50)
	assert.Equal(t, plain, h.Height())

	h.SetWidth(60)
	h.SetBackdrop(nil)
	assert.Equal(t, plain, h.Height())
}

func TestHeader_NoTheme(t *testing.T) {
	h := NewHeader(nil)
	h.Hint = ""
	assert.Contains(t, h.View(), "NyaLIZA")
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusString(t *testing.T) {
	assert.Equal(t, "待機中", StatusReady.String())
	assert.Equal(t, "考え中", StatusThinking.String())
	assert.Equal(t, "?", Status(9).String())
}

func TestStatusBar_View(t *testing.T) {
	s := NewStatusBar(styles.NewTheme("dark"))
	s.SetWidth(100)
	s.Responses = 3
	s.Location = "/home/cat/.nyaliza/cat_responses.txt"

	view := s.View()
	assert.Contains(t, view, "待機中")
	assert.Contains(t, view, "応答 3件")
	assert.Contains(t, view, "cat_responses.txt")
	assert.Equal(t, 100, lipgloss.Width(view))

	s.Status = StatusThinking
	s.Spinner = "*"
	s.Queued = 2
	view = s.View()
	assert.Contains(t, view, "* 考え中 (+2)")
}

func TestStatusBar_NarrowDropsLocation(t *testing.T) {
	s := NewStatusBar(nil)
	s.SetWidth(30)
	s.Location = "/very/long/path/to/cat_responses.txt"

	assert.NotContains(t, s.View(), "cat_responses")
	assert.LessOrEqual(t, lipgloss.Width(s.View()), 30)
}
