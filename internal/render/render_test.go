package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/pixel-canvas-mcp/internal/canvas"
)

var red = canvas.Color{R: 255}

func paintedSnapshot(t *testing.T) *canvas.Snapshot {
	t.Helper()
	s, err := canvas.New(3, 2)
	require.NoError(t, err)
	next, changed, err := s.Brush(2, 1, red)
	require.NoError(t, err)
	require.True(t, changed)
	return next
}

// rgbAt returns the 8-bit RGB components at (x, y)
func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestToImage(t *testing.T) {
	img := ToImage(paintedSnapshot(t))

	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	r, g, b := rgbAt(img, 2, 1)
	assert.Equal(t, []uint8{255, 0, 0}, []uint8{r, g, b})

	r, g, b = rgbAt(img, 0, 0)
	assert.Equal(t, []uint8{31, 95, 111}, []uint8{r, g, b})

	_, _, _, a := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), a, "cells are opaque")
}

func TestDraw_UpscalesCells(t *testing.T) {
	opts := Options{CellSize: 10}
	img, err := Draw(paintedSnapshot(t), opts)
	require.NoError(t, err)

	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	// Center of the painted cell
	r, g, b := rgbAt(img, 25, 15)
	assert.Equal(t, []uint8{255, 0, 0}, []uint8{r, g, b})

	// Center of a default cell
	r, g, b = rgbAt(img, 5, 5)
	assert.Equal(t, []uint8{31, 95, 111}, []uint8{r, g, b})
}

func TestDraw_GridLines(t *testing.T) {
	opts := DefaultOptions()
	opts.CellSize = 20
	opts.GridColor = canvas.Color{R: 255, G: 255, B: 255}

	img, err := Draw(paintedSnapshot(t), opts)
	require.NoError(t, err)

	// Interior boundary between column 0 and column 1
	r, g, b := rgbAt(img, 20, 10)
	assert.Greater(t, int(r), 31, "grid line should brighten the boundary pixel")
	assert.Greater(t, int(g), 95)
	assert.Greater(t, int(b), 111)

	// Cell centers are untouched by the grid
	r, g, b = rgbAt(img, 10, 10)
	assert.Equal(t, []uint8{31, 95, 111}, []uint8{r, g, b})
}

func TestDraw_BorderMatchesInteriorLines(t *testing.T) {
	opts := DefaultOptions()
	opts.CellSize = 20
	opts.GridColor = canvas.Color{R: 255, G: 255, B: 255}

	img, err := Draw(paintedSnapshot(t), opts)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 60, 40), img.Bounds())

	ir, ig, ib := rgbAt(img, 20, 10)
	interior := []uint8{ir, ig, ib}
	assert.Equal(t, []uint8{255, 255, 255}, interior, "interior line covers its pixel column")

	border := []struct {
		name string
		x, y int
	}{
		{"left", 0, 10},
		{"right", 59, 10},
		{"top", 10, 0},
		{"bottom", 10, 39},
	}
	for _, tt := range border {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := rgbAt(img, tt.x, tt.y)
			assert.Equal(t, interior, []uint8{r, g, b})
		})
	}

	// Pixels just inside the border keep the cell color
	r, g, b := rgbAt(img, 1, 10)
	assert.Equal(t, []uint8{31, 95, 111}, []uint8{r, g, b})
}

func TestDraw_InvalidOptions(t *testing.T) {
	s := paintedSnapshot(t)

	tests := []struct {
		name string
		opts Options
	}{
		{"zero cell size", Options{CellSize: 0}},
		{"negative cell size", Options{CellSize: -4}},
		{"cell size too large", Options{CellSize: MaxCellSize + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Draw(s, tt.opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

func TestDraw_OutputTooLarge(t *testing.T) {
	s, err := canvas.New(1000, 10)
	require.NoError(t, err)

	_, err = Draw(s, Options{CellSize: 10})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestRender(t *testing.T) {
	result, err := Render(paintedSnapshot(t), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 150, result.Width)
	assert.Equal(t, 100, result.Height)
	assert.Equal(t, DefaultCellSize, result.CellSize)
	assert.Equal(t, "image/png", result.MimeType)

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 150, decoded.Bounds().Dx())

	r, g, b := rgbAt(decoded, 125, 75)
	assert.Equal(t, []uint8{255, 0, 0}, []uint8{r, g, b})
}

func TestRender_DoesNotMutateSnapshot(t *testing.T) {
	s := paintedSnapshot(t)
	before := s.Flatten()

	_, err := Render(s, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, before, s.Flatten())
}
