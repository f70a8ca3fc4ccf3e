// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/movies", "200"))

	RecordAPIRequest("GET", "/movies", "200", 12*time.Millisecond)
	RecordAPIRequest("GET", "/movies", "200", 3*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/movies", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total increased by %v, want 2", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("api_active_requests = %v, want %v", got, before)
	}
}

func TestRecommendObserver_Fit(t *testing.T) {
	var obs RecommendObserver

	success := testutil.ToFloat64(ModelFitsTotal.WithLabelValues("success"))
	failed := testutil.ToFloat64(ModelFitsTotal.WithLabelValues("error"))
	empty := testutil.ToFloat64(ModelFitsTotal.WithLabelValues("empty"))

	obs.ObserveFit(10, 5, 20*time.Millisecond, nil)
	obs.ObserveFit(0, 5, time.Millisecond, nil)
	obs.ObserveFit(10, 5, time.Millisecond, errors.New("boom"))

	if d := testutil.ToFloat64(ModelFitsTotal.WithLabelValues("success")) - success; d != 1 {
		t.Errorf("success fits increased by %v, want 1", d)
	}
	if d := testutil.ToFloat64(ModelFitsTotal.WithLabelValues("error")) - failed; d != 1 {
		t.Errorf("error fits increased by %v, want 1", d)
	}
	if d := testutil.ToFloat64(ModelFitsTotal.WithLabelValues("empty")) - empty; d != 1 {
		t.Errorf("empty fits increased by %v, want 1", d)
	}
	if got := testutil.ToFloat64(ModelMovies); got != 10 {
		t.Errorf("recommend_model_movies = %v, want 10", got)
	}
	if got := testutil.ToFloat64(ModelClusters); got != 5 {
		t.Errorf("recommend_model_clusters = %v, want 5", got)
	}
}

func TestRecommendObserver_Recommendation(t *testing.T) {
	var obs RecommendObserver
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("cluster_padded"))

	obs.ObserveRecommendation("cluster_padded", time.Millisecond)

	if d := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("cluster_padded")) - before; d != 1 {
		t.Errorf("recommend_requests_total increased by %v, want 1", d)
	}
}

func TestRecordSnapshot(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("disk full"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SnapshotOperationsTotal.WithLabelValues("save", tt.result)
			before := testutil.ToFloat64(c)
			RecordSnapshot("save", tt.err)
			if d := testutil.ToFloat64(c) - before; d != 1 {
				t.Errorf("snapshot %s counter increased by %v, want 1", tt.result, d)
			}
		})
	}
}

func TestEventCounters(t *testing.T) {
	pub := EventsPublishedTotal.WithLabelValues("catalog.watch_recorded", "success")
	con := EventsConsumedTotal.WithLabelValues("catalog.watch_recorded")
	beforePub, beforeCon := testutil.ToFloat64(pub), testutil.ToFloat64(con)

	RecordEventPublished("catalog.watch_recorded", "success")
	RecordEventConsumed("catalog.watch_recorded")

	if testutil.ToFloat64(pub)-beforePub != 1 || testutil.ToFloat64(con)-beforeCon != 1 {
		t.Error("event counters did not increase by one")
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel(404); got != "404" {
		t.Errorf("StatusLabel(404) = %q", got)
	}
}
