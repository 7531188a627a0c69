package assets

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
)

// RenderPreview rasterizes an image file into half-block terminal cells,
// at most cols wide and rows tall, preserving the aspect ratio. Each cell
// carries two vertically stacked pixels via the upper-half-block glyph.
func RenderPreview(path string, cols, rows int) (string, error) {
	if cols < 1 || rows < 1 {
		return "", fmt.Errorf("preview needs a positive cell size, got %dx%d", cols, rows)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	w, h := fitCells(src.Bounds().Dx(), src.Bounds().Dy(), cols, rows)
	scaled := image.NewRGBA(image.Rect(0, 0, w, h*2))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.WriteString(renderCell(scaled, x, y))
		}
		if y+1 < h {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// fitCells scales pixel dimensions into a cell box, accounting for cells
// being twice as tall as they are wide.
func fitCells(px, py, cols, rows int) (int, int) {
	if px < 1 || py < 1 {
		return 1, 1
	}
	w := cols
	h := (py * w) / (px * 2)
	if h > rows {
		h = rows
		w = (px * h * 2) / py
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// renderCell emits one terminal cell for the two pixels stacked at (x, y).
func renderCell(img *image.RGBA, x, y int) string {
	top, topOK := pixelColor(img, x, y*2)
	bottom, bottomOK := pixelColor(img, x, y*2+1)

	switch {
	case !topOK && !bottomOK:
		return " "
	case topOK && !bottomOK:
		return lipgloss.NewStyle().Foreground(top).Render("▀")
	case !topOK && bottomOK:
		return lipgloss.NewStyle().Foreground(bottom).Render("▄")
	default:
		return lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀")
	}
}

// pixelColor reads a pixel, reporting opaque-enough pixels only.
func pixelColor(img *image.RGBA, x, y int) (lipgloss.Color, bool) {
	c := img.RGBAAt(x, y)
	if c.A < 64 {
		return "", false
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), true
}
