// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/tomtom215/marquee/internal/models"
)

// CatalogFingerprint hashes every field that feeds the feature vectors.
// Two catalogs with the same fingerprint produce the same fit.
func CatalogFingerprint(movies []models.Movie) string {
	h := fnv.New64a()
	var buf [8]byte
	for i := range movies {
		m := &movies[i]
		binary.LittleEndian.PutUint64(buf[:], uint64(m.ID))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(m.ReleaseYear))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(m.Rating))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(m.Popularity))
		_, _ = h.Write(buf[:])
		_, _ = h.Write([]byte(m.Genre))
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%d:%016x", len(movies), h.Sum64())
}

// Snapshot exports the current model. ok is false when untrained.
func (r *Recommender) Snapshot() (*Model, bool) {
	m := r.current()
	if m == nil {
		return nil, false
	}
	labels := make(map[int64]int, len(m.labels))
	for id, l := range m.labels {
		labels[id] = l
	}
	return &Model{
		Version:     m.version,
		TrainedAt:   m.trainedAt,
		NClusters:   r.cfg.NClusters,
		Seed:        r.cfg.Seed,
		Fingerprint: m.fingerprint,
		Scaler: StandardScaler{
			Mean:  append([]float64(nil), m.scaler.Mean...),
			Scale: append([]float64(nil), m.scaler.Scale...),
		},
		Centroids: m.kmeans.Centroids(),
		Inertia:   m.kmeans.Inertia(),
		Labels:    labels,
	}, true
}

// WarmStart installs snap when it was produced with the same clustering
// parameters from a catalog identical to the current one. It reports whether
// the snapshot was used; when it was not, the caller should Fit.
func (r *Recommender) WarmStart(ctx context.Context, snap *Model) (bool, error) {
	if snap == nil {
		return false, nil
	}
	if snap.NClusters != r.cfg.NClusters || snap.Seed != r.cfg.Seed {
		r.logger.Info().
			Int("snapshot_clusters", snap.NClusters).
			Int64("snapshot_seed", snap.Seed).
			Msg("snapshot parameters differ, ignoring")
		return false, nil
	}

	r.fitMu.Lock()
	defer r.fitMu.Unlock()

	gen := r.mutations.Load()
	movies, err := r.catalog.ListMovies(ctx)
	if err != nil {
		return false, fmt.Errorf("load catalog: %w", err)
	}
	if fp := CatalogFingerprint(movies); fp != snap.Fingerprint {
		r.logger.Info().Str("snapshot", snap.Fingerprint).Str("catalog", fp).Msg("catalog changed since snapshot")
		return false, nil
	}
	for i := range movies {
		if _, ok := snap.Labels[movies[i].ID]; !ok {
			return false, nil
		}
	}

	if len(snap.Scaler.Mean) != FeatureDim || len(snap.Scaler.Scale) != FeatureDim {
		return false, fmt.Errorf("snapshot scaler: %w", ErrDimensionMismatch)
	}
	km := NewKMeans(r.cfg.kmeansConfig())
	if err := km.Restore(snap.Centroids, snap.Inertia); err != nil {
		return false, fmt.Errorf("restore centroids: %w", err)
	}
	if len(snap.Centroids[0]) != FeatureDim {
		return false, fmt.Errorf("snapshot centroids: %w", ErrDimensionMismatch)
	}
	for id, l := range snap.Labels {
		if l < 0 || l >= len(snap.Centroids) {
			return false, fmt.Errorf("snapshot label %d for movie %d out of range", l, id)
		}
	}

	if snap.Version > r.nextVersion {
		r.nextVersion = snap.Version
	}
	scaler := snap.Scaler
	m := &model{
		version:     snap.Version,
		trainedAt:   snap.TrainedAt,
		fingerprint: snap.Fingerprint,
		scaler:      &scaler,
		kmeans:      km,
		labels:      snap.Labels,
		movieCount:  len(movies),
	}

	r.mu.Lock()
	r.model = m
	r.mu.Unlock()
	r.fittedAt.Store(gen)

	r.logger.Info().
		Int64("model_version", m.version).
		Int("movies", len(movies)).
		Msg("model restored from snapshot")
	return true, nil
}
