// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"strings"

	"github.com/tomtom215/marquee/internal/models"
)

// TrackedGenres are the genre labels encoded as binary features, in vector order.
var TrackedGenres = [...]string{"Action", "Comedy", "Drama", "Sci-Fi", "Romance"}

// FeatureDim is the length of a movie feature vector:
// release year, rating, popularity, then one flag per tracked genre.
const FeatureDim = 3 + len(TrackedGenres)

// Extract encodes a movie as
// [release_year, rating, popularity, has_Action, has_Comedy, has_Drama, has_Sci-Fi, has_Romance].
// A genre flag is 1 when its label appears anywhere in the genre field.
func Extract(m *models.Movie) []float64 {
	v := make([]float64, FeatureDim)
	v[0] = float64(m.ReleaseYear)
	v[1] = m.Rating
	v[2] = float64(m.Popularity)
	for i, g := range TrackedGenres {
		if strings.Contains(m.Genre, g) {
			v[3+i] = 1
		}
	}
	return v
}

// ExtractAll encodes every movie, preserving order.
func ExtractAll(movies []models.Movie) [][]float64 {
	rows := make([][]float64, len(movies))
	for i := range movies {
		rows[i] = Extract(&movies[i])
	}
	return rows
}

// meanVector returns the column means of rows. rows must be non-empty.
func meanVector(rows [][]float64) []float64 {
	mean := make([]float64, len(rows[0]))
	for _, r := range rows {
		for j, x := range r {
			mean[j] += x
		}
	}
	n := float64(len(rows))
	for j := range mean {
		mean[j] /= n
	}
	return mean
}
