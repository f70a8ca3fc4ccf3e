// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/models"
)

// NoSignalPolicy picks a cluster for a user with no usable history.
type NoSignalPolicy interface {
	Cluster(nClusters int) int
}

// RandomNoSignal draws uniformly from [0, nClusters) using a seeded source.
type RandomNoSignal struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomNoSignal creates a policy whose draws are reproducible for a seed.
func NewRandomNoSignal(seed int64) *RandomNoSignal {
	return &RandomNoSignal{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // reproducible draws, not security
}

// Cluster implements NoSignalPolicy.
func (p *RandomNoSignal) Cluster(nClusters int) int {
	if nClusters <= 1 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(nClusters)
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithNoSignalPolicy replaces the default seeded random policy.
func WithNoSignalPolicy(p NoSignalPolicy) Option {
	return func(r *Recommender) {
		r.noSignal = p
	}
}

// WithObserver attaches a fit/recommendation observer.
func WithObserver(o Observer) Option {
	return func(r *Recommender) {
		r.observer = o
	}
}

// model is the immutable product of one successful fit.
type model struct {
	version     int64
	trainedAt   time.Time
	fingerprint string
	scaler      *StandardScaler
	kmeans      *KMeans
	labels      map[int64]int
	movieCount  int
}

// Recommender owns the clustering model and serves recommendations from it.
//
// Readers take mu.RLock and see one consistent model. Fits are serialized by
// fitMu; the expensive work runs without holding mu, and the new model is
// swapped in under mu.Lock.
//
// Staleness is tracked with two counters: every catalog mutation bumps
// mutations, and a fit records the mutation count it started from. The model
// is dirty while those differ.
type Recommender struct {
	cfg      Config
	catalog  Catalog
	logger   zerolog.Logger
	noSignal NoSignalPolicy
	observer Observer

	mu    sync.RWMutex
	model *model

	fitMu       sync.Mutex
	mutations   atomic.Uint64
	fittedAt    atomic.Uint64
	fitCount    atomic.Int64
	lastFitDur  atomic.Int64
	lastFitErr  atomic.Value // string
	nextVersion int64
}

// NewRecommender creates an untrained recommender.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommender(cfg *Config, catalog Catalog, logger zerolog.Logger, opts ...Option) (*Recommender, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}

	r := &Recommender{
		cfg:     *cfg,
		catalog: catalog,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.noSignal == nil {
		r.noSignal = NewRandomNoSignal(cfg.NoSignalSeed)
	}
	r.lastFitErr.Store("")
	return r, nil
}

// Config returns a copy of the recommender configuration.
func (r *Recommender) Config() Config {
	return r.cfg
}

// MarkDirty records a catalog mutation. The current model keeps serving until
// the next fit.
func (r *Recommender) MarkDirty() {
	r.mutations.Add(1)
}

// Dirty reports whether the catalog changed since the last fit.
func (r *Recommender) Dirty() bool {
	return r.mutations.Load() != r.fittedAt.Load()
}

// Trained reports whether a model is available.
func (r *Recommender) Trained() bool {
	return r.current() != nil
}

func (r *Recommender) current() *model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.model
}

// Fit rebuilds the model from the full catalog.
//
// An empty catalog is a no-op: the recommender keeps its current state.
// On error the previous model is kept.
func (r *Recommender) Fit(ctx context.Context) error {
	r.fitMu.Lock()
	defer r.fitMu.Unlock()
	return r.fitLocked(ctx)
}

// RefitIfDirty fits only when the catalog changed since the last fit.
// It returns whether a fit ran.
func (r *Recommender) RefitIfDirty(ctx context.Context) (bool, error) {
	r.fitMu.Lock()
	defer r.fitMu.Unlock()
	if !r.Dirty() {
		return false, nil
	}
	return true, r.fitLocked(ctx)
}

func (r *Recommender) fitLocked(ctx context.Context) error {
	start := time.Now()
	gen := r.mutations.Load()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.FitTimeout)
	defer cancel()

	movies, err := r.catalog.ListMovies(ctx)
	if err != nil {
		err = fmt.Errorf("load catalog: %w", err)
		r.recordFit(0, start, err)
		return err
	}

	if len(movies) == 0 {
		r.fittedAt.Store(gen)
		r.logger.Info().Msg("catalog is empty, skipping fit")
		r.recordFit(0, start, nil)
		return nil
	}

	rows := ExtractAll(movies)
	scaler := &StandardScaler{}
	if err := scaler.Fit(rows); err != nil {
		err = fmt.Errorf("fit scaler: %w", err)
		r.recordFit(len(movies), start, err)
		return err
	}
	scaled, err := scaler.TransformAll(rows)
	if err != nil {
		err = fmt.Errorf("scale features: %w", err)
		r.recordFit(len(movies), start, err)
		return err
	}

	if err := ctx.Err(); err != nil {
		r.recordFit(len(movies), start, err)
		return fmt.Errorf("fit canceled: %w", err)
	}

	km := NewKMeans(r.cfg.kmeansConfig())
	assigned, err := km.Fit(scaled)
	if err != nil {
		err = fmt.Errorf("fit kmeans: %w", err)
		r.recordFit(len(movies), start, err)
		return err
	}

	labels := make(map[int64]int, len(movies))
	for i := range movies {
		labels[movies[i].ID] = assigned[i]
	}

	r.nextVersion++
	m := &model{
		version:     r.nextVersion,
		trainedAt:   time.Now(),
		fingerprint: CatalogFingerprint(movies),
		scaler:      scaler,
		kmeans:      km,
		labels:      labels,
		movieCount:  len(movies),
	}

	r.mu.Lock()
	r.model = m
	r.mu.Unlock()
	r.fittedAt.Store(gen)

	r.logger.Info().
		Int("movies", len(movies)).
		Int("clusters", len(km.centroids)).
		Float64("inertia", km.Inertia()).
		Int("iterations", km.Iterations()).
		Int64("model_version", m.version).
		Dur("duration", time.Since(start)).
		Msg("model fitted")

	r.recordFit(len(movies), start, nil)
	return nil
}

func (r *Recommender) recordFit(movies int, start time.Time, err error) {
	d := time.Since(start)
	r.fitCount.Add(1)
	r.lastFitDur.Store(int64(d))
	if err != nil {
		// Keep the model dirty so the next RefitIfDirty retries.
		r.mutations.Add(1)
		r.lastFitErr.Store(err.Error())
		r.logger.Error().Err(err).Int("movies", movies).Msg("fit failed")
	} else {
		r.lastFitErr.Store("")
	}
	if r.observer != nil {
		r.observer.ObserveFit(movies, r.cfg.NClusters, d, err)
	}
}

// GetUserCluster maps a user to a cluster.
//
// A user who is unknown or has watched nothing gets a cluster from the
// no-signal policy. Otherwise the mean feature vector of their watched movies
// is scaled and assigned to the nearest centroid.
func (r *Recommender) GetUserCluster(ctx context.Context, userID int64) (int, error) {
	m := r.current()
	if m == nil {
		return 0, ErrUntrained
	}

	user, err := r.lookupUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	movies, err := r.catalog.ListMovies(ctx)
	if err != nil {
		return 0, fmt.Errorf("load catalog: %w", err)
	}

	cluster, _, err := r.userCluster(m, movies, user)
	return cluster, err
}

// lookupUser returns nil (and no error) for an unknown user.
func (r *Recommender) lookupUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := r.catalog.GetUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	return user, nil
}

// userCluster returns the user's cluster and whether it came from the no-signal policy.
func (r *Recommender) userCluster(m *model, movies []models.Movie, user *models.User) (int, bool, error) {
	if user == nil || len(user.Watched) == 0 {
		return r.noSignal.Cluster(r.cfg.NClusters), true, nil
	}

	watched := user.WatchedSet()
	rows := make([][]float64, 0, len(watched))
	for i := range movies {
		if _, ok := watched[movies[i].ID]; ok {
			rows = append(rows, Extract(&movies[i]))
		}
	}
	if len(rows) == 0 {
		return r.noSignal.Cluster(r.cfg.NClusters), true, nil
	}

	scaled, err := m.scaler.Transform(meanVector(rows))
	if err != nil {
		return 0, false, fmt.Errorf("scale user vector: %w", err)
	}
	cluster, err := m.kmeans.Predict(scaled)
	if err != nil {
		return 0, false, fmt.Errorf("predict user cluster: %w", err)
	}
	return cluster, false, nil
}

// Recommend returns up to n movies for the user.
//
// Before the first fit it serves the top-rated movies, watched or not. Afterwards it serves
// unwatched movies from the user's cluster ranked by rating then popularity,
// padded with top-rated unwatched movies when the cluster runs short.
// An unknown user is served like a user with no history.
func (r *Recommender) Recommend(ctx context.Context, userID int64, n int) (*Response, error) {
	start := time.Now()
	n = r.limit(n)

	if r.cfg.LazyRefit && r.Dirty() {
		if _, err := r.RefitIfDirty(ctx); err != nil {
			r.logger.Warn().Err(err).Msg("lazy refit failed, serving previous model")
		}
	}

	movies, err := r.catalog.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	user, err := r.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var watched map[int64]struct{}
	if user != nil {
		watched = user.WatchedSet()
	}

	resp := &Response{UserID: userID, Cluster: -1}

	m := r.current()
	if m == nil {
		resp.Mode = ModeFallbackUntrained
		resp.Movies = topRated(movies, n)
		r.observe(resp.Mode, start)
		return resp, nil
	}

	cluster, noSignal, err := r.userCluster(m, movies, user)
	if err != nil {
		return nil, err
	}
	resp.Cluster = cluster
	resp.NoSignal = noSignal
	resp.ModelVersion = m.version
	resp.TrainedAt = m.trainedAt

	candidates := make([]models.Movie, 0)
	for i := range movies {
		label, ok := m.labels[movies[i].ID]
		if !ok || label != cluster {
			continue
		}
		if _, seen := watched[movies[i].ID]; seen {
			continue
		}
		candidates = append(candidates, movies[i])
	}
	sortByRank(candidates)
	resp.ClusterCandidates = len(candidates)

	resp.Mode = ModeCluster
	if len(candidates) < n {
		chosen := make(map[int64]struct{}, len(candidates))
		for i := range candidates {
			chosen[candidates[i].ID] = struct{}{}
		}
		padding := topRated(movies, n-len(candidates), watched, chosen)
		if len(padding) > 0 {
			resp.Mode = ModeClusterPadded
		}
		candidates = append(candidates, padding...)
	}
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	resp.Movies = candidates

	logger := r.logger.With().Int64("user_id", userID).Logger()
	logger.Debug().
		Int("cluster", cluster).
		Bool("no_signal", noSignal).
		Int("cluster_candidates", resp.ClusterCandidates).
		Int("returned", len(resp.Movies)).
		Str("mode", resp.Mode).
		Msg("recommendations computed")

	r.observe(resp.Mode, start)
	return resp, nil
}

func (r *Recommender) observe(mode string, start time.Time) {
	if r.observer != nil {
		r.observer.ObserveRecommendation(mode, time.Since(start))
	}
}

// limit applies the default and the cap to a requested count.
func (r *Recommender) limit(n int) int {
	if n <= 0 {
		return r.cfg.DefaultN
	}
	if n > r.cfg.MaxN {
		return r.cfg.MaxN
	}
	return n
}

// sortByRank orders movies by rating, then popularity, both descending.
// ID ascending makes exact ties deterministic.
func sortByRank(movies []models.Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		a, b := &movies[i], &movies[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.Popularity != b.Popularity {
			return a.Popularity > b.Popularity
		}
		return a.ID < b.ID
	})
}

// topRated returns up to n movies by rank, skipping any ID in the exclude sets.
func topRated(movies []models.Movie, n int, exclude ...map[int64]struct{}) []models.Movie {
	out := make([]models.Movie, 0, n)
	if n <= 0 {
		return out
	}
	for i := range movies {
		if excluded(movies[i].ID, exclude) {
			continue
		}
		out = append(out, movies[i])
	}
	sortByRank(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func excluded(id int64, sets []map[int64]struct{}) bool {
	for _, s := range sets {
		if _, ok := s[id]; ok {
			return true
		}
	}
	return false
}

// Status returns a point-in-time view of the recommender.
func (r *Recommender) Status() Status {
	st := Status{
		Dirty:           r.Dirty(),
		NClusters:       r.cfg.NClusters,
		FitCount:        r.fitCount.Load(),
		LastFitDuration: time.Duration(r.lastFitDur.Load()),
	}
	if msg, ok := r.lastFitErr.Load().(string); ok {
		st.LastError = msg
	}
	if m := r.current(); m != nil {
		st.Trained = true
		st.ModelVersion = m.version
		st.TrainedAt = m.trainedAt
		st.MovieCount = m.movieCount
		st.Inertia = m.kmeans.Inertia()
	}
	return st
}
