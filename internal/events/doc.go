// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package events carries catalog mutations from the HTTP API to background
consumers.

Events are CatalogEvent values encoded with goccy/go-json and wrapped in
watermill messages keyed by a UUID event ID. They travel over an in-process
watermill gochannel:

	catalog.movie_added     a movie was inserted
	catalog.watch_recorded  a user watched (or re-watched) a movie

# Usage

	bus := events.NewBus(events.DefaultConfig(), logging.NewWatermillLogger(logger))
	defer bus.Close()

	msgs, err := bus.Subscribe(ctx, events.TopicWatchRecorded)
	...
	err = bus.Publish(ctx, events.NewWatchRecorded(userID, movieID, rating))

Publishing goes through a sony/gobreaker circuit breaker so a wedged bus
fails fast instead of blocking request handlers.

# Delivery

Delivery is at-most-once: events published with no subscriber attached are
dropped, and nothing survives a restart. Consumers use events only to
schedule work that the recommender's dirty flag would also trigger.
*/
package events
