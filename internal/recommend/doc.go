// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend implements cluster-based movie recommendations.
//
// # Pipeline
//
// Every movie is encoded as an 8-dimensional feature vector (Extract):
// release year, rating, popularity and five genre flags (Action, Comedy,
// Drama, Sci-Fi, Romance). The catalog's vectors are standardized
// (StandardScaler) and partitioned with k-means (KMeans) using seeded
// k-means++ initialization, so fitting the same catalog twice yields the same
// labels. Labels are stored per movie ID.
//
// A user is placed in the cluster nearest to the scaled mean vector of the
// movies they watched. Users without history are placed by a NoSignalPolicy;
// the default draws from a seeded source so tests stay deterministic.
//
// # Serving
//
//	rec, err := recommend.NewRecommender(cfg, catalog, logger)
//	if err := rec.Fit(ctx); err != nil { ... }
//	resp, err := rec.Recommend(ctx, userID, 5)
//
// Recommend falls back to top-rated movies until a model exists. With a model
// it ranks the user's unwatched cluster members by rating then popularity and
// pads with top-rated unwatched movies when the cluster runs short.
//
// # Refitting
//
// Catalog mutations call MarkDirty instead of refitting inline. A dirty model
// keeps serving until RefitIfDirty runs, either from the refit service or
// lazily at the start of Recommend when Config.LazyRefit is set.
//
// # Thread Safety
//
// Recommender is safe for concurrent use. Fits are serialized and build the
// new model without blocking readers; the swap is atomic with respect to
// Recommend, GetUserCluster and ClusterStatistics.
package recommend
