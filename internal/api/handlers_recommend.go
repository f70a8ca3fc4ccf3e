// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/recommend"
)

// refitSourceAPI labels refits requested over HTTP.
const refitSourceAPI = "api"

// Recommendations handles GET /users/{user_id}/recommendations
//
// Query parameters:
//   - n_recommendations: number of movies to return (default from config,
//     non-positive values use the default, large values are capped)
//
// An unknown user is not an error: it gets the same answer as a user with no
// watch history.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := pathID(r, "user_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	n, err := queryInt(r, "n_recommendations", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	resp, err := h.model.Recommend(ctx, userID, n)
	if err != nil {
		respondStoreError(w, err, "user")
		return
	}

	logging.Ctx(r.Context()).Debug().
		Int64("user_id", userID).
		Str("mode", resp.Mode).
		Int("count", len(resp.Movies)).
		Msg("Recommendations served")
	respondSuccess(w, http.StatusOK, resp, start)
}

// ClusterStats handles GET /clusters/stats
func (h *Handler) ClusterStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	stats, err := h.model.ClusterStatistics(ctx)
	if err != nil {
		respondStoreError(w, err, "clusters")
		return
	}
	if stats == nil {
		stats = []recommend.ClusterStats{}
	}
	respondSuccess(w, http.StatusOK, stats, start)
}

// RefitModel handles POST /model/refit. The refit runs synchronously and the
// response carries the resulting status.
func (h *Handler) RefitModel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.FitTimeout)
	defer cancel()

	var err error
	if h.refitter != nil {
		err = h.refitter.Refit(ctx, refitSourceAPI)
	} else {
		err = h.model.Fit(ctx)
	}
	if err != nil {
		respondStoreError(w, err, "model")
		return
	}

	status := h.model.Status()
	logging.Ctx(r.Context()).Info().
		Int64("model_version", status.ModelVersion).
		Int("movies", status.MovieCount).
		Msg("Model refit requested over HTTP")
	respondSuccess(w, http.StatusOK, status, start)
}

// ModelStatus handles GET /model/status
func (h *Handler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, h.model.Status(), time.Now())
}
