package colour

import "fmt"

// Palette is an ordered list of display-ready colours.
type Palette []Entry

// Len returns the number of colours in the palette.
func (p Palette) Len() int {
	return len(p)
}

// ToHex returns the hex codes of the palette in order.
func (p Palette) ToHex() []string {
	hexColors := make([]string, len(p))
	for i, e := range p {
		hexColors[i] = e.Hex
	}
	return hexColors
}

// Get returns the entry at the specified index.
// Returns an error if the index is out of bounds.
func (p Palette) Get(index int) (Entry, error) {
	if index < 0 || index >= len(p) {
		return Entry{}, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p))
	}
	return p[index], nil
}

// All returns an iterator over all entries in the palette.
func (p Palette) All() func(func(int, Entry) bool) {
	return func(yield func(int, Entry) bool) {
		for i, e := range p {
			if !yield(i, e) {
				return
			}
		}
	}
}
