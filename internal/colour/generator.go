package colour

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
)

// Entry is a display-ready palette colour.
type Entry struct {
	Hex  string `json:"hex"`
	RGBA string `json:"rgba"`
}

// NewEntry projects a colour into an Entry.
func NewEntry(c Color) Entry {
	return Entry{Hex: c.Hex(), RGBA: c.RGBAString()}
}

// Request describes a palette generation call.
type Request struct {
	// Input is the base colour string. Invalid or empty input is replaced
	// by a random colour.
	Input string

	// Mode selects the harmony strategy. Values outside the harmony set
	// fall back to analogous.
	Mode Mode

	// Count is the number of stops for interpolating modes. Values below 1
	// use DefaultCount.
	Count int
}

// Result is the outcome of a generation call.
type Result struct {
	Base       Color   `json:"-"`
	BaseHex    string  `json:"base"`
	Mode       Mode    `json:"mode"`
	Randomised bool    `json:"randomised"`
	Palette    Palette `json:"palette"`
	Secondary  Palette `json:"secondary"`
}

// ToJSON converts the result to indented JSON.
func (r Result) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Generator produces harmony palettes. It is safe for concurrent use.
type Generator struct {
	logger hclog.Logger

	mu  sync.Mutex
	rng *rand.Rand

	busy atomic.Int32
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the logger used for fallbacks and debug output.
func WithLogger(logger hclog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRand sets the random source used for substituted base colours.
func WithRand(r *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.rng = r
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Busy reports whether a generation is currently running.
func (g *Generator) Busy() bool {
	return g.busy.Load() > 0
}

// Generate builds the primary and secondary palettes for req.
func (g *Generator) Generate(req Request) Result {
	base, err := ParseSanitized(req.Input)
	randomised := false
	if err != nil {
		base = g.random()
		randomised = true
		g.logger.Debug("substituting random base colour", "input", req.Input, "base", base.Hex())
	}

	res := g.GenerateFrom(base, req.Mode, req.Count)
	res.Randomised = randomised
	return res
}

// Random picks a random base colour and generates its palette. The result's
// BaseHex can be written back to the caller's input field.
func (g *Generator) Random(mode Mode, count int) Result {
	res := g.GenerateFrom(g.random(), mode, count)
	res.Randomised = true
	return res
}

// GenerateFrom builds palettes for an already parsed base colour.
func (g *Generator) GenerateFrom(base Color, mode Mode, count int) Result {
	g.busy.Add(1)
	defer g.busy.Add(-1)

	if count < 1 {
		count = DefaultCount
	}

	build, ok := strategies[mode]
	if !ok {
		if mode != "" {
			g.logger.Warn("unknown harmony mode, using default", "mode", mode, "default", DefaultMode)
		}
		mode = DefaultMode
		build = strategies[mode]
	}

	colours := build(base, count)
	res := Result{
		Base:      base,
		BaseHex:   base.Hex(),
		Mode:      mode,
		Palette:   make(Palette, len(colours)),
		Secondary: make(Palette, len(colours)),
	}
	for i, c := range colours {
		c = quantize(c)
		res.Palette[i] = NewEntry(c)
		res.Secondary[i] = NewEntry(quantize(c.Brighten(1)))
	}

	g.logger.Trace("generated palette", "base", res.BaseHex, "mode", mode, "count", len(colours))
	return res
}

// random draws a base colour from the configured source.
func (g *Generator) random() Color {
	if g.rng == nil {
		return Random(nil)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return Random(g.rng)
}

// quantize rounds a colour to 8-bit channels so every projection of a
// palette colour agrees.
func quantize(c Color) Color {
	r, g, b := c.RGB8()
	return Color{R: float64(r), G: float64(g), B: float64(b), A: math.Round(c.A*255) / 255}
}

// String returns a short summary of the result.
func (r Result) String() string {
	return fmt.Sprintf("%s palette from %s (%d colours)", r.Mode, r.BaseHex, r.Palette.Len())
}
