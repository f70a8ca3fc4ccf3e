// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// CatalogStore is the persistence the handlers need. *database.DB satisfies it.
type CatalogStore interface {
	CreateMovie(ctx context.Context, in *models.MovieInput) (*models.Movie, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
	CreateUser(ctx context.Context, in *models.UserInput) (*models.User, error)
	GetUserDetail(ctx context.Context, id int64) (*models.UserDetail, error)
	RecordWatch(ctx context.Context, userID, movieID int64, rating *float64) error
	Stats(ctx context.Context) (*models.CatalogStats, error)
	Ping(ctx context.Context) error
}

// ModelService is the recommender surface used by the handlers.
// *recommend.Recommender satisfies it.
type ModelService interface {
	Recommend(ctx context.Context, userID int64, n int) (*recommend.Response, error)
	ClusterStatistics(ctx context.Context) ([]recommend.ClusterStats, error)
	Fit(ctx context.Context) error
	MarkDirty()
	Status() recommend.Status
}

// Refitter runs a full refit including any follow-up work such as saving a
// snapshot. When no Refitter is set, POST /model/refit calls ModelService.Fit.
type Refitter interface {
	Refit(ctx context.Context, source string) error
}

// EventPublisher publishes catalog change events. *events.Bus satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, event *events.CatalogEvent) error
}

// HandlerConfig holds per-request limits.
type HandlerConfig struct {
	// RequestTimeout bounds storage and model calls made by a handler.
	RequestTimeout time.Duration

	// FitTimeout bounds a refit requested over HTTP.
	FitTimeout time.Duration
}

// DefaultHandlerConfig returns the limits used when none are configured.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		RequestTimeout: 10 * time.Second,
		FitTimeout:     2 * time.Minute,
	}
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_catalog.go: movies, users and watches
//   - handlers_recommend.go: recommendations, cluster statistics and the model
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	store     CatalogStore
	model     ModelService
	refitter  Refitter
	publisher EventPublisher
	cfg       HandlerConfig
	startTime time.Time
}

// NewHandler creates a new API handler.
//
//	handler := api.NewHandler(db, rec, api.DefaultHandlerConfig())
//	handler.SetEventPublisher(bus)
//	router := api.NewRouter(handler, api.NewChiMiddleware(nil))
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(store CatalogStore, model ModelService, cfg HandlerConfig) *Handler {
	def := DefaultHandlerConfig()
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.FitTimeout <= 0 {
		cfg.FitTimeout = def.FitTimeout
	}
	return &Handler{
		store:     store,
		model:     model,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// SetEventPublisher sets the optional event publisher. Passing nil disables
// event publishing; the dirty flag still schedules a refit.
//
// Thread Safety: should be called once during startup.
func (h *Handler) SetEventPublisher(publisher EventPublisher) {
	h.publisher = publisher
}

// SetRefitter sets the component that performs HTTP-requested refits.
//
// Thread Safety: should be called once during startup.
func (h *Handler) SetRefitter(refitter Refitter) {
	h.refitter = refitter
}

// catalogChanged marks the model dirty and announces the change. Publishing
// failures are logged only: the dirty flag alone guarantees a later refit.
func (h *Handler) catalogChanged(ctx context.Context, event *events.CatalogEvent) {
	h.model.MarkDirty()
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("event_type", event.Type).Msg("Failed to publish catalog event")
	}
}
