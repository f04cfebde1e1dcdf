package canvas

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color value cannot be read as exactly
// three 8-bit components.
var ErrInvalidColor = errors.New("invalid color")

// Color is an opaque RGB value with 8-bit components.
//
// Color is comparable; two colors are equal when all three components match.
type Color struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// DefaultColor fills every cell of a freshly constructed canvas.
var DefaultColor = Color{R: 31, G: 95, B: 111}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorFromBytes builds a Color from a byte vector laid out as r, g, b.
//
// The vector must hold exactly three components; anything else is reported as
// ErrInvalidColor rather than silently truncated or zero-filled.
func ColorFromBytes(b []byte) (Color, error) {
	if len(b) != 3 {
		return Color{}, fmt.Errorf("%w: expected 3 components, got %d", ErrInvalidColor, len(b))
	}
	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

// ParseColor parses a hex color string like "#FF0000", "ff0000" or "#F00".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	if hex == "" {
		return Color{}, fmt.Errorf("%w: empty color string", ErrInvalidColor)
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return Color{}, fmt.Errorf("%w: %q is not #RGB or #RRGGBB", ErrInvalidColor, s)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Bytes returns the color as a 3-byte r, g, b vector.
func (c Color) Bytes() []byte {
	return []byte{c.R, c.G, c.B}
}

// Hex returns the color in "#RRGGBB" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// HSL converts the color to HSL with hue in degrees and saturation and
// lightness as percentages.
func (c Color) HSL() HSLColor {
	h, s, l := c.colorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
