// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import "errors"

var (
	// ErrNotFound is returned by a Catalog when a user or movie does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCatalog is returned by the clusterer when there is nothing to fit.
	// Recommender.Fit treats it as a no-op.
	ErrEmptyCatalog = errors.New("empty catalog")

	// ErrUntrained is returned when a prediction is requested before any fit.
	ErrUntrained = errors.New("model not trained")

	// ErrDimensionMismatch is returned when a vector does not match the fitted width.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
)
