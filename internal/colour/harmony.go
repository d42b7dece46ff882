package colour

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for names outside the harmony set.
var ErrUnknownMode = errors.New("unknown harmony mode")

// Mode selects the palette generation strategy.
type Mode string

// Harmony modes.
const (
	ModeAnalogous     Mode = "analogous"
	ModeMonochrome    Mode = "monochrome"
	ModeComplementary Mode = "complementary"
	ModeTriadic       Mode = "triadic"
	ModeCompound      Mode = "compound"
	ModeShades        Mode = "shades"
	ModeTetradic      Mode = "tetradic"
	ModeSquare        Mode = "square"
)

// DefaultMode is used when no mode is given.
const DefaultMode = ModeAnalogous

// DefaultCount is the number of stops sampled by interpolating modes.
const DefaultCount = 6

// Modes returns every harmony mode in display order.
func Modes() []Mode {
	return []Mode{
		ModeAnalogous,
		ModeMonochrome,
		ModeComplementary,
		ModeTriadic,
		ModeCompound,
		ModeShades,
		ModeTetradic,
		ModeSquare,
	}
}

// Valid reports whether m is one of the harmony modes.
func (m Mode) Valid() bool {
	_, ok := strategies[m]
	return ok
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// Description returns a short human readable description of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeAnalogous:
		return "neighbouring hues 30° either side of the base"
	case ModeMonochrome:
		return "lightness ramp from a brighter to a darker base"
	case ModeComplementary:
		return "base and its opposite hue"
	case ModeTriadic:
		return "three hues 120° apart"
	case ModeCompound:
		return "base plus the two hues beside its complement (split complementary)"
	case ModeShades:
		return "lightness ramp, same as monochrome"
	case ModeTetradic:
		return "four hues 90° apart"
	case ModeSquare:
		return "four hues 90° apart, same as tetradic"
	default:
		return ""
	}
}

// ParseMode parses a mode name case-insensitively. An empty name returns
// DefaultMode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultMode, nil
	}
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q (valid modes: %s)", ErrUnknownMode, s, strings.Join(modeNames(), ", "))
	}
	return m, nil
}

func modeNames() []string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}

// strategy builds the primary palette for a base colour.
type strategy func(base Color, count int) []Color

// strategies maps each mode to its algorithm. Modes that share behaviour
// share the same function.
var strategies = map[Mode]strategy{
	ModeAnalogous:     analogous,
	ModeMonochrome:    monochrome,
	ModeComplementary: rotations(180),
	ModeTriadic:       rotations(120, 240),
	ModeCompound:      rotations(150, 210),
	ModeShades:        monochrome,
	ModeTetradic:      tetradic,
	ModeSquare:        tetradic,
}

var tetradic = rotations(90, 180, 270)

// analogous interpolates in LCh across the base hue -30°, base, +30°.
func analogous(base Color, count int) []Color {
	stops := []Color{base.RotateHue(-30), base, base.RotateHue(30)}
	return Scale(stops, SpaceLCh, count)
}

// monochrome interpolates in Lab from two steps brighter to two steps darker.
// The end stops are rounded to 8-bit channels first.
func monochrome(base Color, count int) []Color {
	return Scale([]Color{quantize(base.Brighten(2)), quantize(base.Darken(2))}, SpaceLab, count)
}

// rotations returns the base followed by one hue rotation per offset.
func rotations(offsets ...float64) strategy {
	return func(base Color, _ int) []Color {
		colours := make([]Color, 0, len(offsets)+1)
		colours = append(colours, base)
		for _, deg := range offsets {
			colours = append(colours, base.RotateHue(deg))
		}
		return colours
	}
}
