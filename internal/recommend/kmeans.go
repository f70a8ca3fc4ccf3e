// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"math"
	"math/rand"
)

// KMeansConfig holds clustering parameters.
type KMeansConfig struct {
	// NClusters is the number of clusters requested.
	NClusters int

	// Seed makes k-means++ initialization reproducible.
	Seed int64

	// MaxIter bounds Lloyd iterations per run.
	MaxIter int

	// NInit is the number of independent runs; the lowest inertia wins.
	NInit int

	// Tol is the convergence threshold on total squared centroid shift,
	// relative to the mean column variance of the input.
	Tol float64
}

// KMeans partitions vectors around centroids.
// The zero value is untrained; Fit or Restore trains it.
type KMeans struct {
	cfg       KMeansConfig
	centroids [][]float64
	inertia   float64
	iters     int
}

// NewKMeans creates an untrained clusterer.
func NewKMeans(cfg KMeansConfig) *KMeans {
	if cfg.NClusters <= 0 {
		cfg.NClusters = 5
	}
	if cfg.MaxIter <= 0 {
		cfg.MaxIter = 300
	}
	if cfg.NInit <= 0 {
		cfg.NInit = 1
	}
	if cfg.Tol < 0 {
		cfg.Tol = 0
	}
	return &KMeans{cfg: cfg}
}

// Trained reports whether centroids are available.
func (k *KMeans) Trained() bool {
	return len(k.centroids) > 0
}

// Centroids returns a copy of the fitted centroids.
func (k *KMeans) Centroids() [][]float64 {
	out := make([][]float64, len(k.centroids))
	for i, c := range k.centroids {
		out[i] = append([]float64(nil), c...)
	}
	return out
}

// Inertia is the sum of squared distances from each row to its centroid
// for the winning run.
func (k *KMeans) Inertia() float64 {
	return k.inertia
}

// Iterations is the number of Lloyd iterations of the winning run.
func (k *KMeans) Iterations() int {
	return k.iters
}

// Fit clusters rows and returns one label per row, in row order.
//
// With fewer rows than NClusters the effective cluster count is the row count.
// An empty input returns ErrEmptyCatalog and leaves the clusterer untouched.
func (k *KMeans) Fit(rows [][]float64) ([]int, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyCatalog
	}
	width := len(rows[0])
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("row %d has %d features, want %d: %w", i, len(r), width, ErrDimensionMismatch)
		}
	}

	nk := k.cfg.NClusters
	if nk > len(rows) {
		nk = len(rows)
	}
	tol := k.cfg.Tol * meanColumnVariance(rows)

	rng := rand.New(rand.NewSource(k.cfg.Seed)) //nolint:gosec // deterministic clustering, not security
	var (
		bestCentroids [][]float64
		bestLabels    []int
		bestInertia   = math.Inf(1)
		bestIters     int
	)
	for run := 0; run < k.cfg.NInit; run++ {
		centroids := initPlusPlus(rows, nk, rng)
		centroids, labels, inertia, iters := lloyd(rows, centroids, k.cfg.MaxIter, tol)
		if inertia < bestInertia {
			bestCentroids, bestLabels, bestInertia, bestIters = centroids, labels, inertia, iters
		}
	}

	k.centroids = bestCentroids
	k.inertia = bestInertia
	k.iters = bestIters
	return bestLabels, nil
}

// Predict returns the label of the centroid nearest to v.
func (k *KMeans) Predict(v []float64) (int, error) {
	if !k.Trained() {
		return 0, ErrUntrained
	}
	if len(v) != len(k.centroids[0]) {
		return 0, fmt.Errorf("vector has %d features, want %d: %w", len(v), len(k.centroids[0]), ErrDimensionMismatch)
	}
	label, _ := nearest(v, k.centroids)
	return label, nil
}

// Restore loads previously fitted centroids.
func (k *KMeans) Restore(centroids [][]float64, inertia float64) error {
	if len(centroids) == 0 {
		return ErrEmptyCatalog
	}
	if len(centroids) > k.cfg.NClusters {
		return fmt.Errorf("%d centroids exceed %d clusters", len(centroids), k.cfg.NClusters)
	}
	width := len(centroids[0])
	cp := make([][]float64, len(centroids))
	for i, c := range centroids {
		if len(c) != width {
			return fmt.Errorf("centroid %d: %w", i, ErrDimensionMismatch)
		}
		cp[i] = append([]float64(nil), c...)
	}
	k.centroids = cp
	k.inertia = inertia
	return nil
}

// initPlusPlus picks k starting centroids with k-means++ seeding: the first
// uniformly, each next one with probability proportional to its squared
// distance from the nearest centroid chosen so far.
func initPlusPlus(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), rows[rng.Intn(len(rows))]...))

	dist := make([]float64, len(rows))
	for len(centroids) < k {
		var total float64
		for i, r := range rows {
			_, d := nearest(r, centroids)
			dist[i] = d
			total += d
		}

		next := rng.Intn(len(rows))
		if total > 0 {
			target := rng.Float64() * total
			for i, d := range dist {
				target -= d
				if target <= 0 && d > 0 {
					next = i
					break
				}
			}
		}
		centroids = append(centroids, append([]float64(nil), rows[next]...))
	}
	return centroids
}

// lloyd runs assignment/update steps until the centroids stop moving.
// A cluster that loses all members keeps its previous centroid.
func lloyd(rows, centroids [][]float64, maxIter int, tol float64) ([][]float64, []int, float64, int) {
	labels := make([]int, len(rows))
	width := len(rows[0])
	iters := 0

	for iters < maxIter {
		iters++
		for i, r := range rows {
			labels[i], _ = nearest(r, centroids)
		}

		sums := make([][]float64, len(centroids))
		counts := make([]int, len(centroids))
		for c := range sums {
			sums[c] = make([]float64, width)
		}
		for i, r := range rows {
			c := labels[i]
			counts[c]++
			for j, x := range r {
				sums[c][j] += x
			}
		}

		var shift float64
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			for j := range sums[c] {
				sums[c][j] /= float64(counts[c])
			}
			shift += sqDist(centroids[c], sums[c])
			centroids[c] = sums[c]
		}
		if shift <= tol {
			break
		}
	}

	var inertia float64
	for i, r := range rows {
		label, d := nearest(r, centroids)
		labels[i] = label
		inertia += d
	}
	return centroids, labels, inertia, iters
}

// nearest returns the index of the closest centroid and the squared distance
// to it. Ties go to the lower index.
func nearest(v []float64, centroids [][]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := sqDist(v, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func meanColumnVariance(rows [][]float64) float64 {
	mean := meanVector(rows)
	var total float64
	for _, r := range rows {
		for j, x := range r {
			d := x - mean[j]
			total += d * d
		}
	}
	return total / float64(len(rows)) / float64(len(mean))
}
