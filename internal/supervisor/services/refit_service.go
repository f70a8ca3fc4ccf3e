// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Refit trigger sources, used as the metrics label.
const (
	RefitSourceStartup = "startup"
	RefitSourceEvent   = "event"
	RefitSourceTicker  = "ticker"
)

// Model is the part of the recommender the refit loop drives.
type Model interface {
	Fit(ctx context.Context) error
	RefitIfDirty(ctx context.Context) (bool, error)
	Snapshot() (*recommend.Model, bool)
	WarmStart(ctx context.Context, snap *recommend.Model) (bool, error)
}

// SnapshotStore persists the latest fitted model.
type SnapshotStore interface {
	Save(ctx context.Context, m *recommend.Model) error
	Load() (*recommend.Model, bool, error)
}

// EventSource delivers catalog change events.
type EventSource interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// RefitServiceConfig holds configuration for the refit service.
type RefitServiceConfig struct {
	// FitOnStartup fits when no usable snapshot was restored.
	FitOnStartup bool

	// Debounce is how long to wait after the first catalog event before
	// refitting, so bursts of writes produce a single fit.
	Debounce time.Duration

	// MinInterval is the minimum spacing between event-driven refits.
	MinInterval time.Duration

	// Interval is the periodic dirty check. Zero disables it.
	Interval time.Duration
}

// RefitService keeps the recommender model current.
//
// On start it restores the last snapshot when the catalog has not changed
// since it was taken, otherwise it fits. Afterwards it refits when catalog
// events arrive and on a fixed schedule, in both cases only when the
// recommender has been marked dirty. Every successful fit is snapshotted.
type RefitService struct {
	model   Model
	store   SnapshotStore
	source  EventSource
	config  RefitServiceConfig
	limiter *rate.Limiter
	logger  zerolog.Logger
	name    string
}

// NewRefitService creates a refit service. store and source may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefitService(model Model, store SnapshotStore, source EventSource, cfg RefitServiceConfig, logger zerolog.Logger) *RefitService {
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &RefitService{
		model:   model,
		store:   store,
		source:  source,
		config:  cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With().Str("service", "refit").Logger(),
		name:    "refit-service",
	}
}

// Serve implements suture.Service.
func (s *RefitService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("fit_on_startup", s.config.FitOnStartup).
		Dur("debounce", s.config.Debounce).
		Dur("interval", s.config.Interval).
		Msg("refit service starting")

	s.startup(ctx)

	watches, movies, err := s.subscribe(ctx)
	if err != nil {
		return err
	}

	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("refit service shutting down")
			return ctx.Err()

		case msg, ok := <-watches:
			if !ok {
				watches = nil
				continue
			}
			pending = s.onEvent(events.TopicWatchRecorded, msg, pending)

		case msg, ok := <-movies:
			if !ok {
				movies = nil
				continue
			}
			pending = s.onEvent(events.TopicMovieAdded, msg, pending)

		case <-pending:
			pending = nil
			if err := s.limiter.Wait(ctx); err != nil {
				return ctx.Err()
			}
			s.refitIfDirty(ctx, RefitSourceEvent)

		case <-tick:
			s.refitIfDirty(ctx, RefitSourceTicker)
		}
	}
}

// Refit fits unconditionally and snapshots the result.
func (s *RefitService) Refit(ctx context.Context, source string) error {
	metrics.RecordRefitTrigger(source)
	if err := s.model.Fit(ctx); err != nil {
		return fmt.Errorf("refit (%s): %w", source, err)
	}
	s.save(ctx)
	return nil
}

// String returns the service name for logging.
func (s *RefitService) String() string {
	return s.name
}

func (s *RefitService) startup(ctx context.Context) {
	if s.restore(ctx) {
		return
	}
	if !s.config.FitOnStartup {
		return
	}
	start := time.Now()
	if err := s.Refit(ctx, RefitSourceStartup); err != nil {
		s.logger.Warn().Err(err).Msg("initial fit failed, recommendations fall back to ratings")
		return
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("initial fit complete")
}

func (s *RefitService) restore(ctx context.Context) bool {
	if s.store == nil {
		return false
	}
	snap, ok, err := s.store.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("loading snapshot failed")
		return false
	}
	if !ok {
		return false
	}
	used, err := s.model.WarmStart(ctx, snap)
	if err != nil {
		s.logger.Warn().Err(err).Msg("snapshot rejected")
		return false
	}
	if used {
		s.logger.Info().Int64("model_version", snap.Version).Msg("model restored from snapshot")
	}
	return used
}

func (s *RefitService) subscribe(ctx context.Context) (watches, movies <-chan *message.Message, err error) {
	if s.source == nil {
		return nil, nil, nil
	}
	if watches, err = s.source.Subscribe(ctx, events.TopicWatchRecorded); err != nil {
		return nil, nil, fmt.Errorf("subscribe %s: %w", events.TopicWatchRecorded, err)
	}
	if movies, err = s.source.Subscribe(ctx, events.TopicMovieAdded); err != nil {
		return nil, nil, fmt.Errorf("subscribe %s: %w", events.TopicMovieAdded, err)
	}
	return watches, movies, nil
}

// onEvent acknowledges msg and arms the debounce timer if it is not running.
func (s *RefitService) onEvent(topic string, msg *message.Message, pending <-chan time.Time) <-chan time.Time {
	msg.Ack()
	metrics.RecordEventConsumed(topic)
	s.logger.Debug().Str("topic", topic).Str("event_id", msg.UUID).Msg("catalog event received")
	if pending != nil {
		return pending
	}
	return time.After(s.config.Debounce)
}

func (s *RefitService) refitIfDirty(ctx context.Context, source string) {
	ran, err := s.model.RefitIfDirty(ctx)
	if !ran {
		return
	}
	metrics.RecordRefitTrigger(source)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", source).Msg("refit failed")
		return
	}
	s.logger.Debug().Str("source", source).Msg("model refit")
	s.save(ctx)
}

func (s *RefitService) save(ctx context.Context) {
	if s.store == nil {
		return
	}
	snap, ok := s.model.Snapshot()
	if !ok {
		return
	}
	if err := s.store.Save(ctx, snap); err != nil {
		s.logger.Warn().Err(err).Msg("saving snapshot failed")
	}
}
