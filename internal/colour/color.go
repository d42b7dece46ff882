// Package colour provides colour parsing, conversion, analysis, palette
// generation and dominant colour extraction.
package colour

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
)

// Color is an immutable sRGB colour. R, G and B are in [0, 255] and A is in
// [0, 1]. Values are compared by channel: two Colors with equal channels are
// interchangeable.
type Color struct {
	R, G, B float64
	A       float64
}

// Common reference colours.
var (
	White = Color{R: 255, G: 255, B: 255, A: 1}
	Black = Color{R: 0, G: 0, B: 0, A: 1}
)

// New returns a Color with every channel clamped to its legal range.
// Non-finite channel values become 0.
func New(r, g, b, a float64) Color {
	return Color{
		R: clamp(r, 0, 255),
		G: clamp(g, 0, 255),
		B: clamp(b, 0, 255),
		A: clamp(a, 0, 1),
	}
}

// FromRGBA8 returns a Color from 8-bit channels.
func FromRGBA8(r, g, b, a uint8) Color {
	return Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a) / 255}
}

// FromColor converts any color.Color. Premultiplied alpha is undone.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return FromRGBA8(n.R, n.G, n.B, n.A)
}

// Random returns an opaque colour with each channel drawn uniformly from
// [0, 255]. A nil source uses the package-level generator.
func Random(r *rand.Rand) Color {
	if r == nil {
		return FromRGBA8(uint8(rand.IntN(256)), uint8(rand.IntN(256)), uint8(rand.IntN(256)), 255)
	}
	return FromRGBA8(uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)), 255)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns the colour rounded to 8-bit non-premultiplied channels.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.RGB8()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(c.A * 255))}
}

// RGB8 returns the red, green and blue channels rounded to 8 bits.
func (c Color) RGB8() (r, g, b uint8) {
	return uint8(math.Round(c.R)), uint8(math.Round(c.G)), uint8(math.Round(c.B))
}

// Opaque reports whether the colour has full alpha once rounded to 8 bits.
func (c Color) Opaque() bool {
	return math.Round(c.A*255) >= 255
}

// Hex returns the canonical lowercase hex form, "#rrggbb" for opaque
// colours and "#rrggbbaa" otherwise.
func (c Color) Hex() string {
	r, g, b := c.RGB8()
	if c.Opaque() {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, uint8(math.Round(c.A*255)))
}

// String returns the hex form.
func (c Color) String() string {
	return c.Hex()
}

// RGBAString returns the colour as a compact CSS "rgba(r,g,b,a)" string.
func (c Color) RGBAString() string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, formatNumber(c.A, 3))
}

// WithAlpha returns a copy of the colour with the given alpha.
func (c Color) WithAlpha(a float64) Color {
	return New(c.R, c.G, c.B, a)
}

// normalised returns the colour channels scaled to [0, 1].
func (c Color) normalised() (r, g, b float64) {
	return c.R / 255, c.G / 255, c.B / 255
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
