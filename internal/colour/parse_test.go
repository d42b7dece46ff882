package colour

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Color
	}{
		{name: "long hex", input: "#ff0000", want: Color{R: 255, A: 1}},
		{name: "short hex", input: "#F00", want: Color{R: 255, A: 1}},
		{name: "hex with alpha", input: "#00ff0080", want: Color{G: 255, A: 128.0 / 255}},
		{name: "short hex with alpha", input: "#00f8", want: Color{B: 255, A: 136.0 / 255}},
		{name: "bare hex", input: "0000ff", want: Color{B: 255, A: 1}},
		{name: "rgb", input: "rgb(255, 0, 0)", want: Color{R: 255, A: 1}},
		{name: "rgba", input: "rgba(0,0,255,0.5)", want: Color{B: 255, A: 0.5}},
		{name: "rgb percent", input: "rgb(100%, 0%, 0%)", want: Color{R: 255, A: 1}},
		{name: "rgb space syntax", input: "rgb(0 255 0 / 50%)", want: Color{G: 255, A: 0.5}},
		{name: "rgb clamps", input: "rgb(300, -5, 0)", want: Color{R: 255, A: 1}},
		{name: "hsl", input: "hsl(120, 100%, 50%)", want: Color{G: 255, A: 1}},
		{name: "hsl deg", input: "hsl(240deg 100% 50%)", want: Color{B: 255, A: 1}},
		{name: "hsla", input: "HSLA(0, 100%, 50%, 0.25)", want: Color{R: 255, A: 0.25}},
		{name: "hsl grey", input: "hsl(0, 0%, 100%)", want: Color{R: 255, G: 255, B: 255, A: 1}},
		{name: "keyword", input: "red", want: Color{R: 255, A: 1}},
		{name: "keyword mixed case", input: "  RebeccaPurple ", want: Color{R: 0x66, G: 0x33, B: 0x99, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"nope",
		"#ff000",
		"#ggg",
		"#ff0000,hex",
		"rgb(1, 2)",
		"rgb(1, 2, 3, 4, 5)",
		"rgb(a, b, c)",
		"rgb(NaN, 0, 0)",
		"rgb(255, 0, 0",
		"hsl(x, 50%, 50%)",
		"hsv(0, 100%, 100%)",
		"rgb(1,,2)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", input)
			}
			if !errors.Is(err, ErrInvalidColour) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidColour", input, err)
			}
			if Valid(input) {
				t.Errorf("Valid(%q) = true, want false", input)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "#ff0000,hex", want: "#ff0000"},
		{input: "  red  ", want: "red"},
		{input: "rgb(255, 0, 0)", want: "rgb(255, 0, 0)"},
		{input: "rgb(255, 0, 0),rgb", want: "rgb(255, 0, 0)"},
		{input: "hsl(0, 100%, 50%), hsl", want: "hsl(0, 100%, 50%)"},
		{input: "garbage", want: "garbage"},
		{input: "#fff,", want: "#fff,"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSanitizedSuffix(t *testing.T) {
	c, err := ParseSanitized("#ff0000,hex")
	if err != nil {
		t.Fatalf("ParseSanitized error = %v", err)
	}
	if c.Hex() != "#ff0000" {
		t.Errorf("Hex() = %q, want #ff0000", c.Hex())
	}
}

func TestHexRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 85 {
				input := fmt.Sprintf("#%02X%02x%02X", r, g, b)
				c, err := Parse(input)
				if err != nil {
					t.Fatalf("Parse(%q) error = %v", input, err)
				}
				if got, want := ToFormats(c).Hex, strings.ToLower(input); got != want {
					t.Fatalf("round trip %q = %q, want %q", input, got, want)
				}
			}
		}
	}

	if got := ToFormats(MustParse("#abc")).Hex; got != "#aabbcc" {
		t.Errorf("short hex canonical form = %q, want #aabbcc", got)
	}
	if got := ToFormats(MustParse("#AABBCC80")).Hex; got != "#aabbcc80" {
		t.Errorf("alpha hex canonical form = %q, want #aabbcc80", got)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on invalid input")
		}
	}()
	MustParse("not a colour")
}

func TestNewClamps(t *testing.T) {
	c := New(300, -1, 128, 2)
	want := Color{R: 255, G: 0, B: 128, A: 1}
	if c != want {
		t.Errorf("New() = %+v, want %+v", c, want)
	}
}
