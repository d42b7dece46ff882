package colour

import (
	"fmt"
	"image"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract returns at most count swatches from an image, ranked by
	// weight with the heaviest first.
	Extract(img image.Image, count int) ([]Swatch, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmDominant counts exact colours and returns the most frequent.
	AlgorithmDominant Algorithm = "dominant"

	// AlgorithmKMeans uses k-means clustering for colour extraction.
	AlgorithmKMeans Algorithm = "kmeans"
)

// maxExtractCount bounds the count accepted by extractors.
const maxExtractCount = 256

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmDominant,
		AlgorithmKMeans,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmDominant:
		return NewDominantExtractor(), nil
	case AlgorithmKMeans:
		return NewKMeansExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
	Stride     int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmDominant,
		ColorCount: DefaultMaxColours,
		Stride:     1,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.Stride < 1 {
		return fmt.Errorf("stride must be at least 1, got %d", c.Stride)
	}
	return validateCount(c.ColorCount)
}

// Build creates the configured extractor.
func (c ExtractorConfig) Build() (Extractor, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	ex, err := NewExtractor(c.Algorithm)
	if err != nil {
		return nil, err
	}
	if d, ok := ex.(*DominantExtractor); ok {
		d.Stride = c.Stride
	}
	return ex, nil
}

func validateCount(count int) error {
	if count < 1 {
		return fmt.Errorf("color count must be at least 1, got %d", count)
	}
	if count > maxExtractCount {
		return fmt.Errorf("color count too large: %d (maximum: %d)", count, maxExtractCount)
	}
	return nil
}
