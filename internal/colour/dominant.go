package colour

import (
	"fmt"
	"image"
	"slices"

	"golang.org/x/image/draw"
)

// DefaultMaxColours is the number of swatches returned by dominant extraction.
const DefaultMaxColours = 8

// Swatch is an extracted colour with its share of the sampled pixels.
type Swatch struct {
	Color  Color   `json:"-"`
	Hex    string  `json:"hex"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

// Hexes returns the hex strings of swatches in order.
func Hexes(swatches []Swatch) []string {
	hexes := make([]string, len(swatches))
	for i, s := range swatches {
		hexes[i] = s.Hex
	}
	return hexes
}

// DominantOptions controls dominant colour extraction.
type DominantOptions struct {
	// MaxColours caps the number of swatches returned. Values below 1 use
	// DefaultMaxColours.
	MaxColours int

	// Stride samples every Stride-th pixel along both axes. Values below 1
	// sample every pixel.
	Stride int
}

// frequencyTable counts 24-bit RGB keys and remembers first-seen order.
type frequencyTable struct {
	counts map[uint32]int
	order  []uint32
	total  int
}

func newFrequencyTable() *frequencyTable {
	return &frequencyTable{counts: make(map[uint32]int)}
}

func (t *frequencyTable) add(r, g, b uint8) {
	key := uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
	t.total++
}

// ranked returns at most limit swatches by descending count. Ties keep
// first-seen order.
func (t *frequencyTable) ranked(limit int) []Swatch {
	if t.total == 0 {
		return nil
	}

	keys := slices.Clone(t.order)
	slices.SortStableFunc(keys, func(a, b uint32) int {
		return t.counts[b] - t.counts[a]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}

	swatches := make([]Swatch, len(keys))
	for i, key := range keys {
		c := FromRGBA8(uint8(key>>16), uint8(key>>8), uint8(key), 255)
		swatches[i] = Swatch{
			Color:  c,
			Hex:    c.Hex(),
			Count:  t.counts[key],
			Weight: float64(t.counts[key]) / float64(t.total),
		}
	}
	return swatches
}

// ExtractDominant ranks the most frequent colours in a non-premultiplied
// RGBA buffer of width*height pixels, most frequent first. Alpha is
// ignored. An empty slice is returned when the buffer is empty or shorter
// than the dimensions require.
func ExtractDominant(pix []byte, width, height int, opts DominantOptions) []Swatch {
	if width <= 0 || height <= 0 || width > len(pix)/4/height {
		return nil
	}
	return extractStrided(pix, width*4, width, height, opts)
}

func extractStrided(pix []byte, rowStride, width, height int, opts DominantOptions) []Swatch {
	limit := opts.MaxColours
	if limit < 1 {
		limit = DefaultMaxColours
	}
	step := max(opts.Stride, 1)

	table := newFrequencyTable()
	for y := 0; y < height; y += step {
		row := pix[y*rowStride:]
		for x := 0; x < width; x += step {
			i := x * 4
			table.add(row[i], row[i+1], row[i+2])
		}
	}
	return table.ranked(limit)
}

// DominantExtractor extracts the most frequent exact colours of an image.
type DominantExtractor struct {
	Stride int
}

// NewDominantExtractor creates a DominantExtractor that samples every pixel.
func NewDominantExtractor() *DominantExtractor {
	return &DominantExtractor{Stride: 1}
}

// Extract returns up to count swatches, most frequent first.
func (e *DominantExtractor) Extract(img image.Image, count int) ([]Swatch, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := validateCount(count); err != nil {
		return nil, err
	}

	nrgba := toNRGBA(img)
	b := nrgba.Bounds()
	return extractStrided(nrgba.Pix, nrgba.Stride, b.Dx(), b.Dy(), DominantOptions{
		MaxColours: count,
		Stride:     e.Stride,
	}), nil
}

// toNRGBA returns img as a zero-origin NRGBA image, converting if needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
