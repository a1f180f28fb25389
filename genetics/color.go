package genetics

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxColorDistance is the distance between black and white.
var MaxColorDistance = math.Sqrt(3 * 255 * 255)

// Color is an 8-bit RGB triplet.
type Color struct {
	R, G, B uint8
}

// RGB builds a color from its channels.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Distance returns the Euclidean distance between two colors in RGB space.
func (c Color) Distance(other Color) float64 {
	dr := float64(c.R) - float64(other.R)
	dg := float64(c.G) - float64(other.G)
	db := float64(c.B) - float64(other.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Lerp interpolates towards other. Bias 0 yields c, bias 1 yields other.
func (c Color) Lerp(other Color, bias float64) Color {
	bias = clamp(bias, 0, 1)
	return Color{
		R: lerpChannel(c.R, other.R, bias),
		G: lerpChannel(c.G, other.G, bias),
		B: lerpChannel(c.B, other.B, bias),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	return clampChannel(v)
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// ParseHex parses #rrggbb or #rgb.
func ParseHex(s string) (Color, error) {
	cc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	r, g, b := cc.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// clampChannel rounds v and saturates it to a byte.
func clampChannel(v float64) uint8 {
	return uint8(clamp(math.Round(v), 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
