// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// Catalog is the data access the recommender needs.
type Catalog interface {
	// ListMovies returns every movie with its popularity, ordered by ID.
	ListMovies(ctx context.Context) ([]models.Movie, error)

	// ListUsers returns every user with their watch history, ordered by ID.
	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUser returns a user with their watch history, or ErrNotFound.
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// Observer receives fit and recommendation outcomes, typically for metrics.
type Observer interface {
	ObserveFit(movies, clusters int, duration time.Duration, err error)
	ObserveRecommendation(mode string, duration time.Duration)
}

// Recommendation modes reported in Response.Mode.
const (
	// ModeFallbackUntrained: no model yet; movies ranked by rating.
	ModeFallbackUntrained = "fallback_untrained"

	// ModeCluster: every movie came from the user's cluster.
	ModeCluster = "cluster"

	// ModeClusterPadded: the cluster ran short and top-rated movies filled the rest.
	ModeClusterPadded = "cluster_padded"
)

// Response is the result of Recommend.
type Response struct {
	// UserID is the requested user.
	UserID int64 `json:"user_id"`

	// Movies are the recommendations in rank order.
	Movies []models.Movie `json:"movies"`

	// Mode tells which policy produced the result.
	Mode string `json:"mode"`

	// Cluster is the user's cluster, or -1 when no model was used.
	Cluster int `json:"cluster"`

	// NoSignal is true when the cluster came from the no-signal policy.
	NoSignal bool `json:"no_signal"`

	// ClusterCandidates counts unwatched movies in the user's cluster.
	ClusterCandidates int `json:"cluster_candidates"`

	// ModelVersion is the version of the model that served the request (0 if none).
	ModelVersion int64 `json:"model_version"`

	// TrainedAt is when that model was fitted.
	TrainedAt time.Time `json:"trained_at,omitempty"`
}

// GenreCount is a genre label with the number of movies carrying it.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// ClusterStats summarizes one non-empty cluster.
type ClusterStats struct {
	ClusterID  int          `json:"cluster_id"`
	MovieCount int          `json:"movie_count"`
	AvgRating  float64      `json:"avg_rating"`
	AvgYear    float64      `json:"avg_year"`
	TopGenres  []GenreCount `json:"top_genres"`
}

// Status reports the recommender state.
type Status struct {
	Trained         bool          `json:"trained"`
	Dirty           bool          `json:"dirty"`
	ModelVersion    int64         `json:"model_version"`
	TrainedAt       time.Time     `json:"trained_at,omitempty"`
	MovieCount      int           `json:"movie_count"`
	NClusters       int           `json:"n_clusters"`
	Inertia         float64       `json:"inertia"`
	FitCount        int64         `json:"fit_count"`
	LastFitDuration time.Duration `json:"last_fit_duration_ns"`
	LastError       string        `json:"last_error,omitempty"`
}

// Model is a serializable snapshot of a fitted model.
type Model struct {
	Version     int64          `json:"version"`
	TrainedAt   time.Time      `json:"trained_at"`
	NClusters   int            `json:"n_clusters"`
	Seed        int64          `json:"seed"`
	Fingerprint string         `json:"fingerprint"`
	Scaler      StandardScaler `json:"scaler"`
	Centroids   [][]float64    `json:"centroids"`
	Inertia     float64        `json:"inertia"`
	Labels      map[int64]int  `json:"labels"`
}
