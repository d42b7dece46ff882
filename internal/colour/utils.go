package colour

import (
	"image/color"
	"math"
	"strconv"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c color.Color) float64 {
	cc, ok := c.(Color)
	if !ok {
		cc = FromColor(c)
	}
	r, g, b := cc.normalised()

	// Calculate luminance using WCAG formula.
	return 0.2126*gammaCorrect(r) + 0.7152*gammaCorrect(g) + 0.0722*gammaCorrect(b)
}

// gammaCorrect linearises a gamma-encoded sRGB component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// Meets WCAG AA standard for normal text at 4.5:1, large text at 3:1.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 color.Color) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// normaliseHue wraps a hue in degrees into [0, 360).
func normaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HSL returns hue (0-360), saturation (0-1) and lightness (0-1).
// Achromatic colours report a hue of 0.
func (c Color) HSL() (h, s, l float64) {
	r, g, b := c.normalised()

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	// Lightness.
	l = (maxVal + minVal) / 2.0

	// Saturation.
	if delta == 0 {
		return 0, 0, l
	}

	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	// Hue.
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h *= 60
	return h, s, l
}

// HSLToColor converts HSL to an sRGB Color.
// h is hue in degrees (any value, wrapped), s and l are in [0, 1].
func HSLToColor(h, s, l, a float64) Color {
	if s == 0 {
		// Achromatic (grey).
		return New(l*255, l*255, l*255, a)
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	h = normaliseHue(h)
	return New(
		hueToRGB(p, q, h+120)*255,
		hueToRGB(p, q, h)*255,
		hueToRGB(p, q, h-120)*255,
		a,
	)
}

// hueToRGB is a helper for HSL to RGB conversion.
func hueToRGB(p, q, t float64) float64 {
	t = normaliseHue(t)

	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

// formatNumber renders v with at most prec decimals and no trailing zeros.
func formatNumber(v float64, prec int) string {
	p := math.Pow(10, float64(prec))
	v = math.Round(v*p) / p
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// roundInt rounds half away from zero and returns an int.
func roundInt(v float64) int {
	return int(math.Round(v))
}
