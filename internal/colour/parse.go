package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColour is returned when a string is not a recognised colour.
var ErrInvalidColour = errors.New("invalid colour")

// extraNames holds CSS Color Module Level 4 keywords missing from the SVG 1.1
// set in colornames.
var extraNames = map[string]Color{
	"rebeccapurple": FromRGBA8(0x66, 0x33, 0x99, 0xff),
}

// Parse parses a colour string. Accepted forms are hex ("#rgb", "#rgba",
// "#rrggbb", "#rrggbbaa", with or without the leading hash), rgb()/rgba(),
// hsl()/hsla() and CSS named colours. Parsing is case-insensitive and
// ignores surrounding whitespace. The input is not sanitised; see Sanitize.
func Parse(s string) (Color, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	if str == "" {
		return Color{}, fmt.Errorf("%w: empty string", ErrInvalidColour)
	}

	var (
		c  Color
		ok bool
	)
	switch {
	case str[0] == '#':
		c, ok = parseHex(str[1:])
	case strings.HasPrefix(str, "rgb"):
		c, ok = parseRGBFunc(str)
	case strings.HasPrefix(str, "hsl"):
		c, ok = parseHSLFunc(str)
	default:
		c, ok = parseName(str)
		if !ok {
			c, ok = parseHex(str)
		}
	}
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColour, s)
	}
	return c, nil
}

// MustParse is like Parse but panics on invalid input.
// Intended for constants and tests.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether s parses as a colour.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Sanitize strips an accidental trailing ",suffix" from user input, such as
// "#ff0000,hex". Strings that already parse are returned trimmed but
// otherwise unchanged, so "rgb(255, 0, 0)" survives intact.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if Valid(s) {
		return s
	}
	if i := strings.LastIndexByte(s, ','); i >= 0 && i < len(s)-1 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

// ParseSanitized sanitises s and parses the result.
func ParseSanitized(s string) (Color, error) {
	return Parse(Sanitize(s))
}

// parseName looks up a CSS named colour.
func parseName(s string) (Color, bool) {
	if c, ok := colornames.Map[s]; ok {
		return FromColor(c), true
	}
	c, ok := extraNames[s]
	return c, ok
}

// parseHex parses 3, 4, 6 or 8 hex digits.
func parseHex(s string) (Color, bool) {
	var digits [8]uint8
	if len(s) != 3 && len(s) != 4 && len(s) != 6 && len(s) != 8 {
		return Color{}, false
	}
	for i := 0; i < len(s); i++ {
		v, ok := hexDigit(s[i])
		if !ok {
			return Color{}, false
		}
		digits[i] = v
	}

	switch len(s) {
	case 3, 4:
		a := uint8(0xff)
		if len(s) == 4 {
			a = digits[3] * 0x11
		}
		return FromRGBA8(digits[0]*0x11, digits[1]*0x11, digits[2]*0x11, a), true
	default:
		a := uint8(0xff)
		if len(s) == 8 {
			a = digits[6]<<4 | digits[7]
		}
		return FromRGBA8(digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5], a), true
	}
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// functionArgs splits "name(a, b, c)" or "name(a b c / d)" into its
// arguments. The name must be one of names.
func functionArgs(s string, names ...string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	name := strings.TrimSpace(s[:open])
	matched := false
	for _, n := range names {
		if name == n {
			matched = true
			break
		}
	}
	if !matched {
		return nil, false
	}

	inner := s[open+1 : len(s)-1]
	var args []string
	if strings.Contains(inner, ",") {
		for _, part := range strings.Split(inner, ",") {
			args = append(args, strings.TrimSpace(part))
		}
	} else {
		// Space separated syntax with an optional "/ alpha".
		main, alpha, hasAlpha := strings.Cut(inner, "/")
		args = strings.Fields(main)
		if hasAlpha {
			args = append(args, strings.TrimSpace(alpha))
		}
	}
	if len(args) != 3 && len(args) != 4 {
		return nil, false
	}
	for _, a := range args {
		if a == "" {
			return nil, false
		}
	}
	return args, true
}

// parseNumber parses a finite number with an optional suffix, reporting
// whether the suffix was present.
func parseNumber(s, suffix string) (v float64, hadSuffix, ok bool) {
	if suffix != "" && strings.HasSuffix(s, suffix) {
		s = strings.TrimSuffix(s, suffix)
		hadSuffix = true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, false
	}
	return v, hadSuffix, true
}

// parseAlpha parses an alpha component given as a number or percentage.
func parseAlpha(s string) (float64, bool) {
	v, pct, ok := parseNumber(s, "%")
	if !ok {
		return 0, false
	}
	if pct {
		v /= 100
	}
	return clamp(v, 0, 1), true
}

func parseRGBFunc(s string) (Color, bool) {
	args, ok := functionArgs(s, "rgb", "rgba")
	if !ok {
		return Color{}, false
	}

	var ch [3]float64
	for i := range 3 {
		v, pct, ok := parseNumber(args[i], "%")
		if !ok {
			return Color{}, false
		}
		if pct {
			v = v / 100 * 255
		}
		ch[i] = v
	}

	a := 1.0
	if len(args) == 4 {
		if a, ok = parseAlpha(args[3]); !ok {
			return Color{}, false
		}
	}
	return New(ch[0], ch[1], ch[2], a), true
}

func parseHSLFunc(s string) (Color, bool) {
	args, ok := functionArgs(s, "hsl", "hsla")
	if !ok {
		return Color{}, false
	}

	h, _, ok := parseNumber(args[0], "deg")
	if !ok {
		return Color{}, false
	}
	sat, _, ok := parseNumber(args[1], "%")
	if !ok {
		return Color{}, false
	}
	light, _, ok := parseNumber(args[2], "%")
	if !ok {
		return Color{}, false
	}

	a := 1.0
	if len(args) == 4 {
		if a, ok = parseAlpha(args[3]); !ok {
			return Color{}, false
		}
	}
	return HSLToColor(h, clamp(sat/100, 0, 1), clamp(light/100, 0, 1), a), true
}
