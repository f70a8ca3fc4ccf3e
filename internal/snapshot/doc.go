// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package snapshot persists fitted recommendation models in BadgerDB.

A snapshot lets the server come back up with the model it had before a
restart instead of refitting. The recommender decides whether a loaded
snapshot is still valid for the current catalog; this package only stores
and returns bytes.

Usage:

	store, err := snapshot.Open("/data/snapshots")
	if err != nil {
	    return err
	}
	defer store.Close()

	if model, ok, err := store.Load(); err == nil && ok {
	    used, _ := rec.WarmStart(ctx, model)
	}

Only the most recent model is kept under a single key. Saving replaces it.
*/
package snapshot
