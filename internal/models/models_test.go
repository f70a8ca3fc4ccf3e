// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"reflect"
	"testing"
)

func TestMovie_Genres(t *testing.T) {
	tests := []struct {
		genre string
		want  []string
	}{
		{"Action,Sci-Fi", []string{"Action", "Sci-Fi"}},
		{"Drama", []string{"Drama"}},
		{" Drama , Crime ", []string{"Drama", "Crime"}},
		{"Drama,,Thriller", []string{"Drama", "Thriller"}},
		{"", nil},
	}
	for _, tt := range tests {
		m := Movie{Genre: tt.genre}
		if got := m.Genres(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Genres(%q) = %v, want %v", tt.genre, got, tt.want)
		}
	}
}

func TestUser_WatchedSet(t *testing.T) {
	rating := 8.5
	u := User{Watched: []Watch{{MovieID: 1, Rating: &rating}, {MovieID: 3}}}

	set := u.WatchedSet()
	if len(set) != 2 {
		t.Fatalf("WatchedSet() len = %d, want 2", len(set))
	}
	if _, ok := set[3]; !ok {
		t.Error("WatchedSet() missing movie 3")
	}
	if !u.HasWatched(1) || u.HasWatched(2) {
		t.Error("HasWatched() mismatch")
	}
}
