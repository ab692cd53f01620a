// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// =============================================================================
// BACKDROP - background image rendered as half-block cells
// =============================================================================

// halfBlock paints the upper pixel as foreground and the lower one as
// background, so each cell carries two image rows.
const halfBlock = "▀"

// MaxBackdropRows caps the banner height so the transcript keeps most of
// the window.
const MaxBackdropRows = 12

// Backdrop is a pre-rendered image banner.
type Backdrop struct {
	Path  string
	rows  []string
	width int
}

// LoadBackdrop decodes the image at path (JPEG, PNG, GIF, BMP or WebP) and renders it
// width cells wide.
func LoadBackdrop(path string, width int) (*Backdrop, error) {
	if width <= 0 {
		return nil, fmt.Errorf("backdrop width must be positive, got %d", width)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open background image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode background image %s: %w", path, err)
	}

	rows := RenderImage(img, width, MaxBackdropRows)
	if len(rows) == 0 {
		return nil, errors.New("background image is empty")
	}
	return &Backdrop{Path: path, rows: rows, width: width}, nil
}

// Rows returns the rendered lines.
func (b *Backdrop) Rows() []string {
	if b == nil {
		return nil
	}
	return b.rows
}

// Width returns the banner width in cells.
func (b *Backdrop) Width() int {
	if b == nil {
		return 0
	}
	return b.width
}

// View joins the rendered lines.
func (b *Backdrop) View() string {
	if b == nil {
		return ""
	}
	return strings.Join(b.rows, "\n")
}

// RenderImage scales img to width cells, keeping its aspect ratio, and
// returns at most maxRows lines of half-block cells.
func RenderImage(img image.Image, width, maxRows int) []string {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 || width <= 0 {
		return nil
	}

	// Pixel grid of the output: one column per cell, two rows per cell.
	pixH := width * srcH / srcW
	if pixH < 2 {
		pixH = 2
	}
	if maxRows > 0 && pixH > maxRows*2 {
		pixH = maxRows * 2
	}
	if pixH%2 == 1 {
		pixH++
	}

	scaled := scaleImage(img, width, pixH)

	rows := make([]string, 0, pixH/2)
	for y := 0; y < pixH; y += 2 {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			top := scaled.RGBAAt(x, y)
			bottom := scaled.RGBAAt(x, y+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(formatHexColor(top.R, top.G, top.B))).
				Background(lipgloss.Color(formatHexColor(bottom.R, bottom.G, bottom.B))).
				Render(halfBlock))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// scaleImage resamples img onto an opaque w x h canvas. Transparent areas
// come out black, matching a dark terminal.
func scaleImage(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// formatHexColor formats RGB values as a hex color string
func formatHexColor(r, g, b uint8) string {
	const hexChars = "0123456789ABCDEF"
	return "#" +
		string(hexChars[r>>4]) + string(hexChars[r&0xF]) +
		string(hexChars[g>>4]) + string(hexChars[g&0xF]) +
		string(hexChars[b>>4]) + string(hexChars[b&0xF])
}
