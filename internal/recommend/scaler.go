// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"math"
)

// StandardScaler standardizes features to zero mean and unit variance.
// Variance is the population variance. A constant column gets scale 1 so it
// maps to zero instead of dividing by zero.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Fit computes per-column mean and standard deviation over rows.
func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return ErrEmptyCatalog
	}
	width := len(rows[0])
	for i, r := range rows {
		if len(r) != width {
			return fmt.Errorf("row %d has %d features, want %d: %w", i, len(r), width, ErrDimensionMismatch)
		}
	}

	mean := meanVector(rows)
	scale := make([]float64, width)
	for _, r := range rows {
		for j, x := range r {
			d := x - mean[j]
			scale[j] += d * d
		}
	}
	n := float64(len(rows))
	for j := range scale {
		std := math.Sqrt(scale[j] / n)
		if std == 0 {
			std = 1
		}
		scale[j] = std
	}

	s.Mean = mean
	s.Scale = scale
	return nil
}

// Fitted reports whether Fit has completed.
func (s *StandardScaler) Fitted() bool {
	return len(s.Mean) > 0
}

// Transform standardizes a single vector with the fitted parameters.
func (s *StandardScaler) Transform(v []float64) ([]float64, error) {
	if !s.Fitted() {
		return nil, ErrUntrained
	}
	if len(v) != len(s.Mean) {
		return nil, fmt.Errorf("vector has %d features, want %d: %w", len(v), len(s.Mean), ErrDimensionMismatch)
	}
	out := make([]float64, len(v))
	for j, x := range v {
		out[j] = (x - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

// TransformAll standardizes every row.
func (s *StandardScaler) TransformAll(rows [][]float64) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		t, err := s.Transform(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}
