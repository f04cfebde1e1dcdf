// Package render turns canvas snapshots into displayable images.
//
// It sits on the display side of the editor: it only reads a snapshot through
// its flattened byte form and never mutates it. Cells are upscaled to square
// blocks and optionally separated by grid lines, then encoded as PNG.
package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/ironsheep/pixel-canvas-mcp/internal/canvas"
)

const (
	// DefaultCellSize is the on-screen size of one canvas cell in pixels.
	DefaultCellSize = 50

	// MaxCellSize bounds the per-cell upscale factor.
	MaxCellSize = 256

	// MaxImageSide bounds either side of the rendered image in pixels.
	MaxImageSide = 8192
)

// ErrInvalidOptions is returned for a cell size or output size outside the
// supported range.
var ErrInvalidOptions = errors.New("invalid render options")

// Options controls how a snapshot is drawn.
type Options struct {
	// CellSize is the width and height of one cell in output pixels.
	CellSize int

	// ShowGrid draws 1px lines between cells and around the border.
	ShowGrid bool

	// GridColor is the color of the grid lines.
	GridColor canvas.Color
}

// DefaultOptions returns 50px cells with a black grid.
func DefaultOptions() Options {
	return Options{
		CellSize:  DefaultCellSize,
		ShowGrid:  true,
		GridColor: canvas.Color{},
	}
}

// Result contains a rendered snapshot encoded as base64 PNG.
type Result struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	CellSize    int    `json:"cell_size"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// ToImage converts a snapshot to an opaque image with one pixel per cell.
func ToImage(s *canvas.Snapshot) *image.NRGBA {
	w, h := s.Width(), s.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	flat := s.Flatten()
	for i := 0; i < w*h; i++ {
		img.Pix[i*4+0] = flat[i*3+0]
		img.Pix[i*4+1] = flat[i*3+1]
		img.Pix[i*4+2] = flat[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}

// Draw renders a snapshot to an image without encoding it.
//
// Returns ErrInvalidOptions if the cell size is outside 1..MaxCellSize or the
// output would exceed MaxImageSide on either axis.
func Draw(s *canvas.Snapshot, opts Options) (image.Image, error) {
	if opts.CellSize < 1 || opts.CellSize > MaxCellSize {
		return nil, fmt.Errorf("%w: cell size %d not in 1..%d", ErrInvalidOptions, opts.CellSize, MaxCellSize)
	}

	width := s.Width() * opts.CellSize
	height := s.Height() * opts.CellSize
	if width > MaxImageSide || height > MaxImageSide {
		return nil, fmt.Errorf("%w: %dx%d output exceeds %d pixels per side", ErrInvalidOptions, width, height, MaxImageSide)
	}

	var out image.Image = ToImage(s)
	if opts.CellSize > 1 {
		out = imaging.Resize(out, width, height, imaging.NearestNeighbor)
	}

	if opts.ShowGrid {
		out = drawGrid(out, s.Width(), s.Height(), opts)
	}
	return out, nil
}

// Render draws a snapshot and encodes it as base64 PNG.
func Render(s *canvas.Snapshot, opts Options) (*Result, error) {
	img, err := Draw(s, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode canvas image: %w", err)
	}

	return &Result{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		CellSize:    opts.CellSize,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// drawGrid strokes a line on every cell boundary, including the outer border.
// Lines sit on pixel centers so each one covers exactly one pixel column or
// row; the far border is pulled in to the last pixel.
func drawGrid(img image.Image, cols, rows int, opts Options) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetRGB255(int(opts.GridColor.R), int(opts.GridColor.G), int(opts.GridColor.B))
	dc.SetLineWidth(1)

	size := float64(opts.CellSize)
	w := float64(cols) * size
	h := float64(rows) * size

	for i := 0; i <= cols; i++ {
		x := math.Min(float64(i)*size+0.5, w-0.5)
		dc.DrawLine(x, 0, x, h)
		dc.Stroke()
	}
	for i := 0; i <= rows; i++ {
		y := math.Min(float64(i)*size+0.5, h-0.5)
		dc.DrawLine(0, y, w, y)
		dc.Stroke()
	}

	return dc.Image()
}
