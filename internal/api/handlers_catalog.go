// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// watchRecordedMessage is returned after a watch is stored.
const watchRecordedMessage = "Movie marked as watched; recommendations will be updated"

// CreateMovie handles POST /movies
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var in models.MovieInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&in); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	movie, err := h.store.CreateMovie(ctx, &in)
	if err != nil {
		respondStoreError(w, err, "movie")
		return
	}

	h.catalogChanged(r.Context(), events.NewMovieAdded(movie.ID))
	logging.Ctx(r.Context()).Info().Int64("movie_id", movie.ID).Str("title", sanitizeLogValue(movie.Title)).Msg("Movie created")

	respondSuccess(w, http.StatusCreated, movie, start)
}

// ListMovies handles GET /movies
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	movies, err := h.store.ListMovies(ctx)
	if err != nil {
		respondStoreError(w, err, "movies")
		return
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	respondSuccess(w, http.StatusOK, movies, start)
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var in models.UserInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&in); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	user, err := h.store.CreateUser(ctx, &in)
	if err != nil {
		respondStoreError(w, err, "user")
		return
	}

	logging.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User created")
	respondSuccess(w, http.StatusCreated, user, start)
}

// GetUser handles GET /users/{user_id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	detail, err := h.store.GetUserDetail(ctx, userID)
	if err != nil {
		respondStoreError(w, err, "user")
		return
	}
	respondSuccess(w, http.StatusOK, detail, start)
}

// RecordWatch handles POST /users/{user_id}/watch/{movie_id}
func (h *Handler) RecordWatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	movieID, err := pathID(r, "movie_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	var in models.WatchInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&in); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	if err := h.store.RecordWatch(ctx, userID, movieID, in.Rating); err != nil {
		respondStoreError(w, err, "user or movie")
		return
	}

	h.catalogChanged(r.Context(), events.NewWatchRecorded(userID, movieID, in.Rating))
	logging.Ctx(r.Context()).Info().Int64("user_id", userID).Int64("movie_id", movieID).Msg("Watch recorded")

	respondSuccess(w, http.StatusOK, map[string]string{"message": watchRecordedMessage}, start)
}

// CatalogStats handles GET /stats
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	stats, err := h.store.Stats(ctx)
	if err != nil {
		respondStoreError(w, err, "stats")
		return
	}
	respondSuccess(w, http.StatusOK, stats, start)
}
