package colour

import (
	"strings"
	"testing"
)

func testPalette() Palette {
	return Palette{
		NewEntry(MustParse("#ff0000")),
		NewEntry(MustParse("#00ff00")),
		NewEntry(MustParse("#0000ff80")),
	}
}

func TestPaletteAccessors(t *testing.T) {
	p := testPalette()

	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}

	e, err := p.Get(2)
	if err != nil {
		t.Fatalf("Get(2) error = %v", err)
	}
	if e.Hex != "#0000ff80" || e.RGBA != "rgba(0,0,255,0.502)" {
		t.Errorf("Get(2) = %+v", e)
	}

	for _, idx := range []int{-1, 3} {
		if _, err := p.Get(idx); err == nil {
			t.Errorf("Get(%d) expected error", idx)
		}
	}
}

func TestPaletteAllStopsEarly(t *testing.T) {
	var seen []string
	for i, e := range testPalette().All() {
		seen = append(seen, e.Hex)
		if i == 1 {
			break
		}
	}
	if len(seen) != 2 {
		t.Errorf("iterated %d entries, want 2", len(seen))
	}
}

func TestResultString(t *testing.T) {
	res := NewGenerator().Generate(Request{Input: "#ff0000", Mode: ModeTriadic})
	if got, want := res.String(), "triadic palette from #ff0000 (3 colours)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestResultJSON(t *testing.T) {
	res := NewGenerator().Generate(Request{Input: "#ff0000", Mode: ModeComplementary})
	data, err := res.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON error = %v", err)
	}
	for _, key := range []string{`"base": "#ff0000"`, `"mode": "complementary"`, `"secondary"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON missing %s:\n%s", key, data)
		}
	}
}
