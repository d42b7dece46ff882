package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Formats holds the textual representations of a colour.
// Every field is empty when the source colour was invalid.
type Formats struct {
	Hex     string `json:"hex"`
	RGB     string `json:"rgb"`
	HSL     string `json:"hsl"`
	HWB     string `json:"hwb"`
	CMYK    string `json:"cmyk"`
	LCH     string `json:"lch"`
	Keyword string `json:"keyword"`
}

// IsEmpty reports whether the formats came from invalid input.
func (f Formats) IsEmpty() bool {
	return f == Formats{}
}

// keywordsByHex maps "#rrggbb" to the alphabetically first CSS name.
var keywordsByHex = func() map[string]string {
	m := make(map[string]string, len(colornames.Names)+len(extraNames))
	for _, name := range colornames.Names {
		hex := FromColor(colornames.Map[name]).Hex()
		if _, exists := m[hex]; !exists {
			m[hex] = name
		}
	}
	for name, c := range extraNames {
		if _, exists := m[c.Hex()]; !exists {
			m[c.Hex()] = name
		}
	}
	return m
}()

// Convert sanitises and parses raw, then returns every representation.
// Invalid input yields empty Formats.
func Convert(raw string) Formats {
	c, err := ParseSanitized(raw)
	if err != nil {
		return Formats{}
	}
	return ToFormats(c)
}

// ToFormats returns every textual representation of c.
func ToFormats(c Color) Formats {
	return Formats{
		Hex:     c.Hex(),
		RGB:     RGBString(c),
		HSL:     HSLString(c),
		HWB:     HWBString(c),
		CMYK:    CMYKString(c),
		LCH:     LCHString(c),
		Keyword: Keyword(c),
	}
}

// RGBString returns CSS functional notation, "rgb(255, 0, 0)", or
// "rgba(255, 0, 0, 0.5)" for translucent colours.
func RGBString(c Color) string {
	r, g, b := c.RGB8()
	if c.Opaque() {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatNumber(c.A, 3))
}

// HSLString returns CSS functional notation, "hsl(0, 100%, 50%)".
func HSLString(c Color) string {
	h, s, l := c.HSL()
	hs := formatNumber(h, 2)
	if hs == "360" {
		hs = "0"
	}
	if c.Opaque() {
		return fmt.Sprintf("hsl(%s, %s%%, %s%%)", hs, formatNumber(s*100, 2), formatNumber(l*100, 2))
	}
	return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", hs, formatNumber(s*100, 2), formatNumber(l*100, 2), formatNumber(c.A, 3))
}

// HWB returns hue in degrees plus whiteness and blackness in [0, 1].
// Whiteness is min(R,G,B)/255 and blackness is 1 - max(R,G,B)/255.
func HWB(c Color) (h, w, b float64) {
	h, _, _ = c.HSL()
	w = math.Min(c.R, math.Min(c.G, c.B)) / 255
	b = 1 - math.Max(c.R, math.Max(c.G, c.B))/255
	return h, w, b
}

// HWBString returns "hwb(h, w%, b%)" with integer values.
func HWBString(c Color) string {
	h, w, b := HWB(c)
	return fmt.Sprintf("hwb(%d, %d%%, %d%%)", roundInt(normaliseHue(math.Round(h))), roundInt(w*100), roundInt(b*100))
}

// CMYK returns cyan, magenta, yellow and key in [0, 1].
// Pure black reports k = 1 with c = m = y = 0.
func CMYK(c Color) (cy, m, y, k float64) {
	r, g, b := c.normalised()
	k = 1 - math.Max(r, math.Max(g, b))
	if k >= 1 {
		return 0, 0, 0, 1
	}
	cy = (1 - r - k) / (1 - k)
	m = (1 - g - k) / (1 - k)
	y = (1 - b - k) / (1 - k)
	return cy, m, y, k
}

// CMYKString returns the CMYK percentages comma-joined, e.g. "0,100,100,0".
func CMYKString(c Color) string {
	cy, m, y, k := CMYK(c)
	return joinInts(cy*100, m*100, y*100, k*100)
}

// LCH returns CIE LCh(ab) under D65: lightness in [0, 100], chroma and hue
// in degrees. Achromatic colours report a hue of 0.
func LCH(c Color) (l, ch, h float64) {
	h, ch, l = toColorful(c).Hcl()
	return l * 100, ch * 100, h
}

// LCHString returns the rounded LCh components comma-joined.
func LCHString(c Color) string {
	l, ch, h := LCH(c)
	return joinInts(l, ch, normaliseHue(math.Round(h)))
}

// Keyword returns the CSS name whose value is exactly c, or "" when there is
// none. Translucent colours never have a keyword. Aliases resolve to the
// alphabetically first name.
func Keyword(c Color) string {
	if !c.Opaque() {
		return ""
	}
	return keywordsByHex[c.Hex()]
}

func joinInts(vs ...float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(roundInt(v))
	}
	return strings.Join(parts, ",")
}

// toColorful converts to go-colorful's [0, 1] representation, dropping alpha.
func toColorful(c Color) colorful.Color {
	r, g, b := c.normalised()
	return colorful.Color{R: r, G: g, B: b}
}

// fromColorful converts back, clamping out-of-gamut values.
func fromColorful(c colorful.Color, a float64) Color {
	c = c.Clamped()
	return New(c.R*255, c.G*255, c.B*255, a)
}
