// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"time"
)

// RecommendObserver feeds recommender fit and serving outcomes into the
// model metrics. It satisfies recommend.Observer.
type RecommendObserver struct{}

// ObserveFit records a fit. A fit over zero movies is counted as "empty".
func (RecommendObserver) ObserveFit(movies, clusters int, duration time.Duration, err error) {
	ModelFitDuration.Observe(duration.Seconds())
	ModelClusters.Set(float64(clusters))

	switch {
	case err != nil:
		ModelFitsTotal.WithLabelValues("error").Inc()
	case movies == 0:
		ModelFitsTotal.WithLabelValues("empty").Inc()
	default:
		ModelFitsTotal.WithLabelValues("success").Inc()
		ModelMovies.Set(float64(movies))
		ModelLastFitTimestamp.Set(float64(time.Now().Unix()))
	}
}

// ObserveRecommendation records one served recommendation request.
func (RecommendObserver) ObserveRecommendation(mode string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(mode).Inc()
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}
