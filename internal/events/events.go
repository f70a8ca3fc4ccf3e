// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is the current CatalogEvent layout.
const SchemaVersion = 1

// Topics carrying catalog mutations.
const (
	TopicWatchRecorded = "catalog.watch_recorded"
	TopicMovieAdded    = "catalog.movie_added"
)

// Event types, one per topic.
const (
	TypeWatchRecorded = "watch_recorded"
	TypeMovieAdded    = "movie_added"
)

// ErrInvalidEvent is returned for events missing required fields.
var ErrInvalidEvent = errors.New("invalid event")

// CatalogEvent describes one committed catalog mutation.
type CatalogEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`

	MovieID int64 `json:"movie_id"`

	// Set for watch events only
	UserID int64    `json:"user_id,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
}

// NewWatchRecorded creates an event for a recorded watch.
func NewWatchRecorded(userID, movieID int64, rating *float64) *CatalogEvent {
	return &CatalogEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Type:          TypeWatchRecorded,
		Timestamp:     time.Now().UTC(),
		UserID:        userID,
		MovieID:       movieID,
		Rating:        rating,
	}
}

// NewMovieAdded creates an event for a new catalog entry.
func NewMovieAdded(movieID int64) *CatalogEvent {
	return &CatalogEvent{
		SchemaVersion: SchemaVersion,
		EventID:       uuid.New().String(),
		Type:          TypeMovieAdded,
		Timestamp:     time.Now().UTC(),
		MovieID:       movieID,
	}
}

// Topic returns the topic the event is published on.
func (e *CatalogEvent) Topic() string {
	switch e.Type {
	case TypeWatchRecorded:
		return TopicWatchRecorded
	case TypeMovieAdded:
		return TopicMovieAdded
	default:
		return ""
	}
}

// Validate checks required fields.
func (e *CatalogEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if e.Topic() == "" {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if e.MovieID <= 0 {
		return fmt.Errorf("%w: movie_id must be positive", ErrInvalidEvent)
	}
	if e.Type == TypeWatchRecorded && e.UserID <= 0 {
		return fmt.Errorf("%w: user_id must be positive", ErrInvalidEvent)
	}
	return nil
}
