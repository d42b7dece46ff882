package colour

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-hclog"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "analogous", want: ModeAnalogous},
		{input: "Triadic", want: ModeTriadic},
		{input: " square ", want: ModeSquare},
		{input: "", want: DefaultMode},
		{input: "rainbow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMode) {
					t.Fatalf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestModesAreValid(t *testing.T) {
	modes := Modes()
	if len(modes) != 8 {
		t.Fatalf("Modes() returned %d modes, want 8", len(modes))
	}
	for _, m := range modes {
		if !m.Valid() {
			t.Errorf("mode %q not valid", m)
		}
		if m.Description() == "" {
			t.Errorf("mode %q has no description", m)
		}
	}
	if Mode("rainbow").Valid() {
		t.Error("unknown mode reported valid")
	}
}

func TestGenerateFixedHueModes(t *testing.T) {
	tests := []struct {
		mode Mode
		want []string
	}{
		{mode: ModeComplementary, want: []string{"#ff0000", "#00ffff"}},
		{mode: ModeTriadic, want: []string{"#ff0000", "#00ff00", "#0000ff"}},
		{mode: ModeCompound, want: []string{"#ff0000", "#00ff80", "#0080ff"}},
		{mode: ModeTetradic, want: []string{"#ff0000", "#80ff00", "#00ffff", "#8000ff"}},
		{mode: ModeSquare, want: []string{"#ff0000", "#80ff00", "#00ffff", "#8000ff"}},
	}

	g := NewGenerator()
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			// Count is ignored by fixed-hue modes.
			res := g.Generate(Request{Input: "#ff0000", Mode: tt.mode, Count: 12})
			if diff := cmp.Diff(tt.want, res.Palette.ToHex()); diff != "" {
				t.Errorf("palette mismatch (-want +got):\n%s", diff)
			}
			if res.Randomised {
				t.Error("valid input reported as randomised")
			}
		})
	}
}

func TestGenerateInterpolatedCount(t *testing.T) {
	g := NewGenerator()
	for _, mode := range []Mode{ModeAnalogous, ModeMonochrome, ModeShades} {
		for _, count := range []int{1, 2, 6, 10} {
			res := g.Generate(Request{Input: "#3366cc", Mode: mode, Count: count})
			if len(res.Palette) != count {
				t.Errorf("%s count %d: got %d colours", mode, count, len(res.Palette))
			}
		}

		res := g.Generate(Request{Input: "#3366cc", Mode: mode})
		if len(res.Palette) != DefaultCount {
			t.Errorf("%s default count: got %d colours, want %d", mode, len(res.Palette), DefaultCount)
		}
	}
}

func TestGenerateAnalogousCentre(t *testing.T) {
	res := NewGenerator().Generate(Request{Input: "#ff0000", Mode: ModeAnalogous, Count: 3})
	if got := res.Palette[1].Hex; got != "#ff0000" {
		t.Errorf("analogous centre = %s, want base #ff0000", got)
	}
	if res.Palette[0].Hex == res.Palette[2].Hex {
		t.Errorf("analogous ends are identical: %s", res.Palette[0].Hex)
	}
}

func TestGenerateMonochromeRamp(t *testing.T) {
	res := NewGenerator().Generate(Request{Input: "#3366cc", Mode: ModeMonochrome, Count: 6})
	for i := 1; i < len(res.Palette); i++ {
		prev := Luminance(MustParse(res.Palette[i-1].Hex))
		cur := Luminance(MustParse(res.Palette[i].Hex))
		if cur >= prev {
			t.Errorf("monochrome step %d not darker: %s after %s", i, res.Palette[i].Hex, res.Palette[i-1].Hex)
		}
	}
}

func TestGenerateMonochromeStopsAreRounded(t *testing.T) {
	base := MustParse("#2a6f97")
	light := quantize(base.Brighten(2))
	dark := quantize(base.Darken(2))

	const count = 7
	res := NewGenerator().Generate(Request{Input: base.Hex(), Mode: ModeMonochrome, Count: count})
	if got := res.Palette[0].Hex; got != light.Hex() {
		t.Errorf("first stop = %s, want %s", got, light.Hex())
	}
	if got := res.Palette[count-1].Hex; got != dark.Hex() {
		t.Errorf("last stop = %s, want %s", got, dark.Hex())
	}
	for i := 1; i < count-1; i++ {
		want := light.Mix(dark, float64(i)/(count-1), SpaceLab).Hex()
		if got := res.Palette[i].Hex; got != want {
			t.Errorf("stop %d = %s, want %s", i, got, want)
		}
	}
}

func TestGenerateSharedModes(t *testing.T) {
	g := NewGenerator()
	pairs := [][2]Mode{
		{ModeTetradic, ModeSquare},
		{ModeMonochrome, ModeShades},
	}
	for _, base := range []string{"#ff0000", "#3366cc", "hsl(45, 80%, 60%)", "#777777"} {
		for _, p := range pairs {
			a := g.Generate(Request{Input: base, Mode: p[0], Count: 5})
			b := g.Generate(Request{Input: base, Mode: p[1], Count: 5})
			if diff := cmp.Diff(a.Palette, b.Palette); diff != "" {
				t.Errorf("%s vs %s for %s (-a +b):\n%s", p[0], p[1], base, diff)
			}
			if diff := cmp.Diff(a.Secondary, b.Secondary); diff != "" {
				t.Errorf("%s vs %s secondary for %s (-a +b):\n%s", p[0], p[1], base, diff)
			}
		}
	}
}

func TestGenerateUnknownModeFallsBack(t *testing.T) {
	g := NewGenerator()
	want := g.Generate(Request{Input: "#3366cc", Mode: ModeAnalogous, Count: 4})
	got := g.Generate(Request{Input: "#3366cc", Mode: Mode("rainbow"), Count: 4})

	if got.Mode != ModeAnalogous {
		t.Errorf("Mode = %q, want analogous", got.Mode)
	}
	if diff := cmp.Diff(want.Palette, got.Palette); diff != "" {
		t.Errorf("fallback palette mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateComplementaryHue(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	g := NewGenerator()

	checked := 0
	for range 500 {
		base := Random(rng)
		_, s, l := base.HSL()
		if s < 0.4 || l < 0.2 || l > 0.8 {
			continue
		}
		checked++

		res := g.GenerateFrom(base, ModeComplementary, 0)
		if len(res.Palette) != 2 {
			t.Fatalf("complementary returned %d colours", len(res.Palette))
		}
		baseHue, _, _ := base.HSL()
		gotHue, _, _ := MustParse(res.Palette[1].Hex).HSL()
		want := normaliseHue(baseHue + 180)
		if d := hueDistance(gotHue, want); d > 2 {
			t.Errorf("base %s: complement hue %.1f, want %.1f", base.Hex(), gotHue, want)
		}
	}
	if checked == 0 {
		t.Fatal("no saturated bases sampled")
	}
}

func TestGenerateSecondary(t *testing.T) {
	g := NewGenerator()
	for _, mode := range Modes() {
		res := g.Generate(Request{Input: "#2a6f97", Mode: mode, Count: 7})
		if len(res.Secondary) != len(res.Palette) {
			t.Fatalf("%s: secondary has %d colours, primary %d", mode, len(res.Secondary), len(res.Palette))
		}
		for i, e := range res.Palette {
			want := NewEntry(quantize(MustParse(e.Hex).Brighten(1)))
			if res.Secondary[i] != want {
				t.Errorf("%s[%d]: secondary = %+v, want %+v", mode, i, res.Secondary[i], want)
			}
		}
	}
}

func TestGenerateEntryProjection(t *testing.T) {
	res := NewGenerator().Generate(Request{Input: "#ff0000", Mode: ModeComplementary})
	want := Entry{Hex: "#ff0000", RGBA: "rgba(255,0,0,1)"}
	if res.Palette[0] != want {
		t.Errorf("entry = %+v, want %+v", res.Palette[0], want)
	}
}

func TestGenerateInvalidInputRandomises(t *testing.T) {
	g1 := NewGenerator(WithRand(rand.New(rand.NewPCG(7, 7))))
	g2 := NewGenerator(WithRand(rand.New(rand.NewPCG(7, 7))))

	a := g1.Generate(Request{Input: "not a colour", Mode: ModeTriadic})
	b := g2.Generate(Request{Input: "", Mode: ModeTriadic})

	if !a.Randomised || !b.Randomised {
		t.Error("invalid input not reported as randomised")
	}
	if a.BaseHex != b.BaseHex {
		t.Errorf("seeded generators disagree: %s vs %s", a.BaseHex, b.BaseHex)
	}
	if len(a.Palette) != 3 {
		t.Errorf("triadic palette has %d colours", len(a.Palette))
	}
}

func TestRandom(t *testing.T) {
	g := NewGenerator(WithRand(rand.New(rand.NewPCG(3, 4))))
	res := g.Random(ModeComplementary, 0)
	if !res.Randomised {
		t.Error("Random result not marked randomised")
	}
	if !Valid(res.BaseHex) {
		t.Errorf("BaseHex %q is not a valid colour", res.BaseHex)
	}
	if res.Palette[0].Hex != res.BaseHex {
		t.Errorf("first colour %s differs from base %s", res.Palette[0].Hex, res.BaseHex)
	}
}

// busyRecorder records Generator.Busy each time the generator logs.
type busyRecorder struct {
	g    *Generator
	seen []bool
}

func (r *busyRecorder) Write(p []byte) (int, error) {
	r.seen = append(r.seen, r.g.Busy())
	return len(p), nil
}

func TestGeneratorBusyDuringGeneration(t *testing.T) {
	rec := &busyRecorder{}
	g := NewGenerator(WithLogger(hclog.New(&hclog.LoggerOptions{
		Output: rec,
		Level:  hclog.Trace,
	})))
	rec.g = g

	if g.Busy() {
		t.Fatal("new generator reports busy")
	}
	g.Generate(Request{Input: "#3366cc", Mode: Mode("rainbow"), Count: 3})

	if len(rec.seen) < 2 {
		t.Fatalf("expected a fallback warning and a trace line, got %d log lines", len(rec.seen))
	}
	for i, busy := range rec.seen {
		if !busy {
			t.Errorf("log line %d written while generator not busy", i)
		}
	}
	if g.Busy() {
		t.Error("generator still busy after Generate returned")
	}
}

func TestGeneratorConcurrentUse(t *testing.T) {
	g := NewGenerator(WithRand(rand.New(rand.NewPCG(1, 1))))
	want := g.Generate(Request{Input: "#3366cc", Mode: ModeAnalogous, Count: 6})

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got := g.Generate(Request{Input: "#3366cc", Mode: ModeAnalogous, Count: 6})
			if diff := cmp.Diff(want.Palette, got.Palette); diff != "" {
				t.Errorf("goroutine %d palette mismatch:\n%s", i, diff)
			}
			_ = g.Generate(Request{Input: "", Mode: ModeSquare})
		}(i)
	}
	wg.Wait()

	if g.Busy() {
		t.Error("generator still busy after all calls returned")
	}
}
