package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"slices"
)

// KMeansExtractor implements colour extraction using k-means clustering.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	rng           *rand.Rand
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
func NewKMeansExtractor() *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    2000,
	}
}

// WithRand makes centroid seeding deterministic. The source is not locked,
// so an extractor with its own source must not be shared across goroutines.
func (e *KMeansExtractor) WithRand(r *rand.Rand) *KMeansExtractor {
	e.rng = r
	return e
}

// Extract clusters the image colours into count groups and returns the
// centroids ranked by cluster size.
func (e *KMeansExtractor) Extract(img image.Image, count int) ([]Swatch, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := validateCount(count); err != nil {
		return nil, err
	}

	points, table := e.samplePoints(toNRGBA(img))
	if len(points) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	// Fewer distinct colours than clusters: the exact counts are the answer.
	if count >= len(table.order) {
		return table.ranked(count), nil
	}

	centroids, sizes := e.kmeans(points, count)

	swatches := make([]Swatch, len(centroids))
	for i, c := range centroids {
		col := New(c.R, c.G, c.B, 1)
		col = quantize(col)
		swatches[i] = Swatch{
			Color:  col,
			Hex:    col.Hex(),
			Count:  sizes[i],
			Weight: float64(sizes[i]) / float64(len(points)),
		}
	}
	slices.SortStableFunc(swatches, func(a, b Swatch) int {
		return b.Count - a.Count
	})
	return swatches, nil
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// samplePoints grid-samples at most maxSamples pixels and also counts the
// sampled colours exactly.
func (e *KMeansExtractor) samplePoints(img *image.NRGBA) ([]point3D, *frequencyTable) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	table := newFrequencyTable()
	if width == 0 || height == 0 {
		return nil, table
	}

	step := 1
	if total := width * height; total > e.maxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(e.maxSamples))), 1)
	}

	points := make([]point3D, 0, min(width*height, e.maxSamples))
	for y := 0; y < height; y += step {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < width; x += step {
			r, g, bl := row[x*4], row[x*4+1], row[x*4+2]
			table.add(r, g, bl)
			points = append(points, point3D{R: float64(r), G: float64(g), B: float64(bl)})
			if len(points) >= e.maxSamples {
				return points, table
			}
		}
	}
	return points, table
}

// kmeans clusters points and returns centroids with their cluster sizes.
func (e *KMeansExtractor) kmeans(points []point3D, k int) ([]point3D, []int) {
	centroids := e.seedCentroids(points, k)
	assignments := make([]int, len(points))

	for range e.maxIterations {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Fewer than 1% of points moved.
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		next := e.recalculate(points, assignments, k)
		movement := 0.0
		for i := range centroids {
			movement += centroids[i].distance(next[i])
		}
		centroids = next

		if movement/float64(k) < e.convergence {
			break
		}
	}

	sizes := make([]int, k)
	for _, a := range assignments {
		sizes[a]++
	}
	return centroids, sizes
}

// seedCentroids picks initial centroids with k-means++.
func (e *KMeansExtractor) seedCentroids(points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[e.randIntN(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			nearest := math.MaxFloat64
			for _, c := range centroids {
				nearest = math.Min(nearest, p.distance(c))
			}
			distances[i] = nearest * nearest
			total += distances[i]
		}

		if total == 0 {
			// Every point coincides with a centroid; nudge a duplicate.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := e.randFloat() * total
		cumulative := 0.0
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}
	return centroids
}

func nearestCentroid(p point3D, centroids []point3D) int {
	best := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := p.distance(c); d < best {
			best = d
			nearest = i
		}
	}
	return nearest
}

// recalculate moves each centroid to the mean of its points. Empty clusters
// are reseeded from a random point.
func (e *KMeansExtractor) recalculate(points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, p := range points {
		c := assignments[i]
		sums[c].R += p.R
		sums[c].G += p.G
		sums[c].B += p.B
		counts[c]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = points[e.randIntN(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return centroids
}

func (e *KMeansExtractor) randIntN(n int) int {
	if e.rng != nil {
		return e.rng.IntN(n)
	}
	return rand.IntN(n)
}

func (e *KMeansExtractor) randFloat() float64 {
	if e.rng != nil {
		return e.rng.Float64()
	}
	return rand.Float64()
}
