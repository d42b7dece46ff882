package colour

import (
	"math"
	"strings"
)

// InputFormat is the syntactic form of a user supplied colour string.
type InputFormat string

// Input formats reported by Analyze.
const (
	FormatHex     InputFormat = "HEX"
	FormatRGB     InputFormat = "RGB"
	FormatHSL     InputFormat = "HSL"
	FormatOther   InputFormat = "Other"
	FormatUnknown InputFormat = "Unknown"
)

// Analysis holds perceptual metrics for a colour string.
// Invalid input produces the zero metrics with IsValid false and
// Format FormatUnknown.
type Analysis struct {
	IsValid    bool        `json:"isValid"`
	Format     InputFormat `json:"format"`
	Hue        int         `json:"hue"`
	Brightness int         `json:"brightness"`
	Luminance  int         `json:"luminance"`
	Contrast   float64     `json:"contrast"`
}

// Analyze computes metrics for raw with contrast measured against white.
func Analyze(raw string) Analysis {
	return AnalyzeAgainst(raw, White)
}

// AnalyzeAgainst computes metrics for raw with contrast measured against ref.
// Validity is judged on the sanitised string, the format on raw itself.
func AnalyzeAgainst(raw string, ref Color) Analysis {
	c, err := ParseSanitized(raw)
	if err != nil {
		return Analysis{Format: FormatUnknown}
	}

	m := Metrics(c, ref)
	m.Format = DetectFormat(raw)
	return m
}

// Metrics computes the numeric metrics of a parsed colour. Format is left
// as FormatOther since there is no input string to classify.
func Metrics(c, ref Color) Analysis {
	h, _, l := c.HSL()
	return Analysis{
		IsValid:    true,
		Format:     FormatOther,
		Hue:        int(normaliseHue(math.Round(h))),
		Brightness: roundInt(l * 100),
		Luminance:  roundInt(Luminance(c) * 100),
		Contrast:   ContrastRatio(c, ref),
	}
}

// DetectFormat classifies raw by a lightweight pattern match on the
// original string. Strings that do not parse are FormatUnknown.
func DetectFormat(raw string) InputFormat {
	if !Valid(Sanitize(raw)) {
		return FormatUnknown
	}
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(raw, "#"):
		return FormatHex
	case strings.Contains(lower, "rgb"):
		return FormatRGB
	case strings.Contains(lower, "hsl"):
		return FormatHSL
	default:
		return FormatOther
	}
}
