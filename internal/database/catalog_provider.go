// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

var _ recommend.Catalog = (*CatalogProvider)(nil)

// catalogBreakerName labels the breaker in logs and metrics.
const catalogBreakerName = "duckdb-catalog"

// CatalogProvider adapts the store to recommend.Catalog.
//
// Loads go through a circuit breaker so that a failing database fails fast
// instead of stalling every fit and request on query timeouts. ErrNotFound is
// an answer, not a failure, and never trips the breaker.
type CatalogProvider struct {
	db *DB
	cb *gobreaker.CircuitBreaker[any]
}

// NewCatalogProvider wraps db with the default breaker settings:
// open after 5 consecutive failures, probe again after 30 seconds.
func NewCatalogProvider(db *DB) *CatalogProvider {
	return newCatalogProvider(db, 5, 30*time.Second)
}

func newCatalogProvider(db *DB, failures uint32, timeout time.Duration) *CatalogProvider {
	metrics.CircuitBreakerState.WithLabelValues(catalogBreakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        catalogBreakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &CatalogProvider{db: db, cb: cb}
}

// execute runs fn through the breaker and records the outcome
func (p *CatalogProvider) execute(fn func() (any, error)) (any, error) {
	result, err := p.cb.Execute(fn)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(catalogBreakerName, "rejected").Inc()
	case err != nil && !errors.Is(err, ErrNotFound):
		metrics.CircuitBreakerRequests.WithLabelValues(catalogBreakerName, "failure").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(catalogBreakerName, "success").Inc()
	}
	return result, err
}

// State returns the breaker state.
func (p *CatalogProvider) State() gobreaker.State {
	return p.cb.State()
}

// ListMovies implements recommend.Catalog.
func (p *CatalogProvider) ListMovies(ctx context.Context) ([]models.Movie, error) {
	result, err := p.execute(func() (any, error) {
		return p.db.ListMovies(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Movie), nil
}

// ListUsers implements recommend.Catalog.
func (p *CatalogProvider) ListUsers(ctx context.Context) ([]models.User, error) {
	result, err := p.execute(func() (any, error) {
		return p.db.ListUsers(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.User), nil
}

// GetUser implements recommend.Catalog.
func (p *CatalogProvider) GetUser(ctx context.Context, id int64) (*models.User, error) {
	result, err := p.execute(func() (any, error) {
		return p.db.GetUser(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.User), nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
