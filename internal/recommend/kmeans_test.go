// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"reflect"
	"testing"
)

func blobs() [][]float64 {
	return [][]float64{
		{0, 0}, {0.1, 0.2}, {-0.1, 0.1},
		{10, 10}, {10.2, 9.9}, {9.8, 10.1},
		{-10, 10}, {-9.9, 10.2}, {-10.1, 9.8},
	}
}

func TestKMeans_RecoversSeparatedClusters(t *testing.T) {
	km := NewKMeans(KMeansConfig{NClusters: 3, Seed: 42, MaxIter: 100, NInit: 5, Tol: 1e-4})
	labels, err := km.Fit(blobs())
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	for g := 0; g < 3; g++ {
		base := labels[g*3]
		for i := 1; i < 3; i++ {
			if labels[g*3+i] != base {
				t.Errorf("group %d split across clusters: %v", g, labels)
			}
		}
	}
	if labels[0] == labels[3] || labels[0] == labels[6] || labels[3] == labels[6] {
		t.Errorf("distinct groups share a cluster: %v", labels)
	}

	got, err := km.Predict([]float64{9.5, 10.5})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if got != labels[3] {
		t.Errorf("Predict() = %d, want %d", got, labels[3])
	}
}

func TestKMeans_Deterministic(t *testing.T) {
	cfg := KMeansConfig{NClusters: 3, Seed: 42, MaxIter: 300, NInit: 10, Tol: 1e-4}
	first, err := NewKMeans(cfg).Fit(blobs())
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := NewKMeans(cfg).Fit(blobs())
		if err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("labels differ between runs: %v vs %v", first, again)
		}
	}
}

func TestKMeans_FewerRowsThanClusters(t *testing.T) {
	km := NewKMeans(KMeansConfig{NClusters: 5, Seed: 1})
	labels, err := km.Fit([][]float64{{0, 0}, {5, 5}})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if len(km.Centroids()) != 2 {
		t.Errorf("centroids = %d, want 2", len(km.Centroids()))
	}
	if labels[0] == labels[1] {
		t.Errorf("two distinct rows share a cluster: %v", labels)
	}
	if km.Inertia() != 0 {
		t.Errorf("Inertia() = %v, want 0", km.Inertia())
	}
}

func TestKMeans_DuplicateRows(t *testing.T) {
	km := NewKMeans(KMeansConfig{NClusters: 3, Seed: 42, NInit: 2})
	labels, err := km.Fit([][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	for _, l := range labels {
		if l < 0 || l >= 3 {
			t.Errorf("label %d out of range", l)
		}
	}
}

func TestKMeans_Errors(t *testing.T) {
	km := NewKMeans(KMeansConfig{NClusters: 2})
	if _, err := km.Predict([]float64{1}); !errors.Is(err, ErrUntrained) {
		t.Errorf("Predict() before Fit error = %v, want ErrUntrained", err)
	}
	if _, err := km.Fit(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Fit(nil) error = %v, want ErrEmptyCatalog", err)
	}
	if km.Trained() {
		t.Error("empty Fit must leave the clusterer untrained")
	}
	if _, err := km.Fit([][]float64{{1, 2}, {3}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Fit(ragged) error = %v, want ErrDimensionMismatch", err)
	}
	if _, err := km.Fit([][]float64{{1, 2}, {3, 4}}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := km.Predict([]float64{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Predict(narrow) error = %v, want ErrDimensionMismatch", err)
	}
}

func TestKMeans_Restore(t *testing.T) {
	km := NewKMeans(KMeansConfig{NClusters: 2})
	if err := km.Restore([][]float64{{0, 0}, {10, 10}}, 1.5); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got, _ := km.Predict([]float64{9, 9}); got != 1 {
		t.Errorf("Predict() = %d, want 1", got)
	}
	if err := km.Restore([][]float64{{0}, {1}, {2}}, 0); err == nil {
		t.Error("Restore() with too many centroids should fail")
	}
}

func TestNearest_TieGoesToLowerIndex(t *testing.T) {
	label, _ := nearest([]float64{0}, [][]float64{{-1}, {1}})
	if label != 0 {
		t.Errorf("nearest() = %d, want 0", label)
	}
}
