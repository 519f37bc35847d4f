// Package preview renders small terminal previews of local image files for
// the upload dialog and the single-image view. Pixels are mapped to ANSI
// half-block cells: one character column per pixel, two pixel rows per
// terminal row.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	// decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Preview is a rendered image held in memory until released. Releasing is
// explicit so the upload session can bound what staged previews retain.
type Preview struct {
	view     string
	width    int
	height   int
	released bool
}

// FromFile decodes and renders the image at path, bounded by max terminal
// columns.
func FromFile(path string, max int) (*Preview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return FromBytes(data, max)
}

// FromBytes decodes and renders image data, bounded by max terminal columns.
func FromBytes(data []byte, max int) (*Preview, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, os.ErrInvalid
	}
	if max <= 0 {
		max = 24
	}

	// Target pixel grid: max columns wide, rows in pixel pairs. A terminal
	// cell is about twice as tall as it is wide, so half blocks come out
	// roughly square.
	nw, nh := w, h
	if nw > max {
		nw = max
		nh = int(float64(h) * (float64(max) / float64(w)))
	}
	if nh > 2*max {
		nh = 2 * max
		nw = int(float64(w) * (float64(2*max) / float64(h)))
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 2 {
		nh = 2
	}
	if nh%2 != 0 {
		nh++
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	return &Preview{
		view:   renderHalfBlocks(dst),
		width:  nw,
		height: nh / 2,
	}, nil
}

// View returns the rendered preview, or "" once released.
func (p *Preview) View() string {
	if p.released {
		return ""
	}
	return p.view
}

// Size returns the preview's dimensions in terminal cells.
func (p *Preview) Size() (w, h int) { return p.width, p.height }

// Release drops the rendered cells so the memory can be reclaimed.
func (p *Preview) Release() {
	p.view = ""
	p.released = true
}

func renderHalfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			upper := hexColor(img, x, y)
			lower := hexColor(img, x, y+1)
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(upper)).
				Background(lipgloss.Color(lower)).
				Render("▀")
			sb.WriteString(cell)
		}
		if y+2 < b.Max.Y {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func hexColor(img *image.RGBA, x, y int) string {
	c := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
