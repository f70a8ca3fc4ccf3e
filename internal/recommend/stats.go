// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// topGenreCount is how many genres each cluster summary lists.
const topGenreCount = 3

// ClusterStatistics summarizes every cluster that has at least one movie.
// Clusters without members are omitted. An untrained recommender returns an
// empty slice.
func (r *Recommender) ClusterStatistics(ctx context.Context) ([]ClusterStats, error) {
	m := r.current()
	if m == nil {
		return []ClusterStats{}, nil
	}

	movies, err := r.catalog.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	type acc struct {
		count     int
		ratingSum float64
		yearSum   float64
		genres    map[string]int
	}
	byCluster := make(map[int]*acc)
	for i := range movies {
		label, ok := m.labels[movies[i].ID]
		if !ok {
			continue
		}
		a := byCluster[label]
		if a == nil {
			a = &acc{genres: make(map[string]int)}
			byCluster[label] = a
		}
		a.count++
		a.ratingSum += movies[i].Rating
		a.yearSum += float64(movies[i].ReleaseYear)
		for _, g := range movies[i].Genres() {
			a.genres[g]++
		}
	}

	stats := make([]ClusterStats, 0, len(byCluster))
	for id := 0; id < r.cfg.NClusters; id++ {
		a, ok := byCluster[id]
		if !ok || a.count == 0 {
			continue
		}
		n := float64(a.count)
		stats = append(stats, ClusterStats{
			ClusterID:  id,
			MovieCount: a.count,
			AvgRating:  a.ratingSum / n,
			AvgYear:    a.yearSum / n,
			TopGenres:  topGenres(a.genres, topGenreCount),
		})
	}
	return stats, nil
}

// topGenres returns the k most frequent genres, ties broken by name.
func topGenres(counts map[string]int, k int) []GenreCount {
	out := make([]GenreCount, 0, len(counts))
	for g, c := range counts {
		out = append(out, GenreCount{Genre: g, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}
