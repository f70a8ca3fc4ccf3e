// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/models"
)

// memCatalog is an in-memory Catalog for tests.
type memCatalog struct {
	mu      sync.Mutex
	movies  []models.Movie
	users   map[int64]*models.User
	listErr error
	lists   int
}

func newMemCatalog(movies []models.Movie) *memCatalog {
	return &memCatalog{movies: movies, users: make(map[int64]*models.User)}
}

func (c *memCatalog) ListMovies(_ context.Context) ([]models.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists++
	if c.listErr != nil {
		return nil, c.listErr
	}
	out := make([]models.Movie, len(c.movies))
	copy(out, c.movies)
	for i := range out {
		out[i].Popularity = 0
		for _, u := range c.users {
			if u.HasWatched(out[i].ID) {
				out[i].Popularity++
			}
		}
	}
	return out, nil
}

func (c *memCatalog) ListUsers(_ context.Context) ([]models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.User, 0, len(c.users))
	for _, u := range c.users {
		out = append(out, *u)
	}
	return out, nil
}

func (c *memCatalog) GetUser(_ context.Context, id int64) (*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	cp.Watched = append([]models.Watch(nil), u.Watched...)
	return &cp, nil
}

func (c *memCatalog) addUser(id int64, watched ...int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := &models.User{ID: id, Username: "user", Email: "user@example.com"}
	for _, m := range watched {
		u.Watched = append(u.Watched, models.Watch{MovieID: m, WatchedAt: time.Now()})
	}
	c.users[id] = u
}

func (c *memCatalog) addMovie(m models.Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movies = append(c.movies, m)
}

func (c *memCatalog) setListErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listErr = err
}

// seedMovies is the sample catalog shipped with the service, IDs 1..10.
func seedMovies() []models.Movie {
	return []models.Movie{
		{ID: 1, Title: "Inception", Genre: "Action,Sci-Fi", ReleaseYear: 2010, Rating: 8.8},
		{ID: 2, Title: "The Dark Knight", Genre: "Action,Drama", ReleaseYear: 2008, Rating: 9.0},
		{ID: 3, Title: "Pulp Fiction", Genre: "Drama,Crime", ReleaseYear: 1994, Rating: 8.9},
		{ID: 4, Title: "The Shawshank Redemption", Genre: "Drama", ReleaseYear: 1994, Rating: 9.3},
		{ID: 5, Title: "Forrest Gump", Genre: "Drama,Romance", ReleaseYear: 1994, Rating: 8.8},
		{ID: 6, Title: "The Matrix", Genre: "Action,Sci-Fi", ReleaseYear: 1999, Rating: 8.7},
		{ID: 7, Title: "Goodfellas", Genre: "Drama,Crime", ReleaseYear: 1990, Rating: 8.7},
		{ID: 8, Title: "The Godfather", Genre: "Drama,Crime", ReleaseYear: 1972, Rating: 9.2},
		{ID: 9, Title: "Fight Club", Genre: "Drama", ReleaseYear: 1999, Rating: 8.8},
		{ID: 10, Title: "The Silence of the Lambs", Genre: "Drama,Thriller", ReleaseYear: 1991, Rating: 8.6},
	}
}

// fixedNoSignal always returns the same cluster.
type fixedNoSignal int

func (f fixedNoSignal) Cluster(int) int { return int(f) }

// countingObserver records observer callbacks.
type countingObserver struct {
	mu    sync.Mutex
	fits  int
	errs  int
	modes map[string]int
}

func (o *countingObserver) ObserveFit(_, _ int, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fits++
	if err != nil {
		o.errs++
	}
}

func (o *countingObserver) ObserveRecommendation(mode string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.modes == nil {
		o.modes = make(map[string]int)
	}
	o.modes[mode]++
}

var errBoom = errors.New("boom")

func newTestRecommender(t *testing.T, catalog Catalog, opts ...Option) *Recommender {
	t.Helper()
	r, err := NewRecommender(DefaultConfig(), catalog, zerolog.New(io.Discard), opts...)
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}
	return r
}

func movieIDs(movies []models.Movie) []int64 {
	ids := make([]int64, len(movies))
	for i := range movies {
		ids[i] = movies[i].ID
	}
	return ids
}
