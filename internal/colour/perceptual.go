package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// LabStep is the CIE L* change applied by one Brighten or Darken step.
const LabStep = 18.0

// Space selects the colour space used for interpolation.
type Space int

const (
	// SpaceLab interpolates linearly in CIE L*a*b*.
	SpaceLab Space = iota
	// SpaceLCh interpolates in CIE LCh(ab), taking the shortest hue path.
	SpaceLCh
)

// Brighten raises CIE L* by amount steps of LabStep. Negative amounts darken.
// The result is clamped to sRGB and keeps the original alpha.
func (c Color) Brighten(amount float64) Color {
	l, a, b := toColorful(c).Lab()
	l += amount * LabStep / 100
	return fromColorful(colorful.Lab(l, a, b), c.A)
}

// Darken lowers CIE L* by amount steps of LabStep.
func (c Color) Darken(amount float64) Color {
	return c.Brighten(-amount)
}

// RotateHue returns c with its HSL hue shifted by deg degrees, wrapping
// modulo 360. Greys are unchanged.
func (c Color) RotateHue(deg float64) Color {
	h, s, l := c.HSL()
	if s == 0 {
		return c
	}
	return HSLToColor(normaliseHue(h+deg), s, l, c.A)
}

// Mix interpolates between c and other at t in [0, 1] in the given space.
func (c Color) Mix(other Color, t float64, space Space) Color {
	t = clamp(t, 0, 1)
	from, to := toColorful(c), toColorful(other)

	var mixed colorful.Color
	switch space {
	case SpaceLCh:
		mixed = from.BlendHcl(to, t)
	default:
		mixed = from.BlendLab(to, t)
	}
	return fromColorful(mixed, c.A+(other.A-c.A)*t)
}

// Scale samples count evenly spaced colours along a multi-stop gradient.
// Stops divide [0, 1] into equal segments. A count of 1 samples the midpoint.
func Scale(stops []Color, space Space, count int) []Color {
	if len(stops) == 0 || count < 1 {
		return nil
	}

	colours := make([]Color, count)
	if count == 1 {
		colours[0] = sample(stops, space, 0.5)
		return colours
	}
	for i := range count {
		colours[i] = sample(stops, space, float64(i)/float64(count-1))
	}
	return colours
}

// sample returns the gradient colour at position t in [0, 1].
func sample(stops []Color, space Space, t float64) Color {
	segments := len(stops) - 1
	if segments == 0 {
		return stops[0]
	}

	pos := t * float64(segments)
	i := int(math.Floor(pos))
	if i >= segments {
		i = segments - 1
	}
	if i < 0 {
		i = 0
	}
	return stops[i].Mix(stops[i+1], pos-float64(i), space)
}
