// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

func TestCreateMovie(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	m, err := db.CreateMovie(ctx, &models.MovieInput{
		Title: "  Alien ", Genre: "Sci-Fi,Horror", ReleaseYear: 1979, Rating: 8.5,
	})
	if err != nil {
		t.Fatalf("CreateMovie() error = %v", err)
	}
	if m.ID != 1 {
		t.Errorf("ID = %d, want 1", m.ID)
	}
	if m.Title != "Alien" {
		t.Errorf("Title = %q, want trimmed", m.Title)
	}
	if m.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	second := insertMovie(t, db, "Aliens", "Action,Sci-Fi", 1986, 8.4)
	if second.ID != 2 {
		t.Errorf("second ID = %d, want 2", second.ID)
	}

	got, err := db.GetMovie(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}
	if got.Title != "Alien" || got.Genre != "Sci-Fi,Horror" || got.ReleaseYear != 1979 || got.Rating != 8.5 {
		t.Errorf("GetMovie() = %+v", got)
	}
	if got.Popularity != 0 {
		t.Errorf("Popularity = %d, want 0", got.Popularity)
	}
}

func TestGetMovie_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetMovie(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMovie() error = %v, want ErrNotFound", err)
	}
	if !errors.Is(err, recommend.ErrNotFound) {
		t.Error("ErrNotFound should match the recommender sentinel")
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	insertUser(t, db, "alice")

	tests := []struct {
		name  string
		input models.UserInput
	}{
		{"duplicate username", models.UserInput{Username: "alice", Email: "other@example.com"}},
		{"duplicate email", models.UserInput{Username: "bob", Email: "alice@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.CreateUser(ctx, &tt.input)
			if !errors.Is(err, ErrConflict) {
				t.Errorf("CreateUser() error = %v, want ErrConflict", err)
			}
		})
	}

	users, err := db.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 1 {
		t.Errorf("ListUsers() returned %d users, want 1", len(users))
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetUser(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser() error = %v, want ErrNotFound", err)
	}
	if _, err := db.GetUserDetail(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserDetail() error = %v, want ErrNotFound", err)
	}
}

func TestRecordWatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	m1 := insertMovie(t, db, "Inception", "Action,Sci-Fi", 2010, 8.8)
	insertMovie(t, db, "Heat", "Action,Crime", 1995, 8.3)
	alice := insertUser(t, db, "alice")
	bob := insertUser(t, db, "bob")

	if err := db.RecordWatch(ctx, alice.ID, m1.ID, float64Ptr(9)); err != nil {
		t.Fatalf("RecordWatch() error = %v", err)
	}
	if err := db.RecordWatch(ctx, bob.ID, m1.ID, nil); err != nil {
		t.Fatalf("RecordWatch() error = %v", err)
	}
	// A re-watch replaces the rating and does not add a row
	if err := db.RecordWatch(ctx, alice.ID, m1.ID, float64Ptr(7.5)); err != nil {
		t.Fatalf("RecordWatch() re-watch error = %v", err)
	}

	got, err := db.GetMovie(ctx, m1.ID)
	if err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}
	if got.Popularity != 2 {
		t.Errorf("Popularity = %d, want 2", got.Popularity)
	}

	u, err := db.GetUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(u.Watched) != 1 {
		t.Fatalf("Watched = %d entries, want 1", len(u.Watched))
	}
	if u.Watched[0].Rating == nil || *u.Watched[0].Rating != 7.5 {
		t.Errorf("Watched rating = %v, want 7.5", u.Watched[0].Rating)
	}

	b, err := db.GetUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if len(b.Watched) != 1 || b.Watched[0].Rating != nil {
		t.Errorf("bob watched = %+v, want one unrated watch", b.Watched)
	}

	stats, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Movies != 2 || stats.Users != 2 || stats.Watches != 2 {
		t.Errorf("Stats() = %+v, want 2/2/2", stats)
	}
}

func TestRecordWatch_NotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	m := insertMovie(t, db, "Inception", "Action,Sci-Fi", 2010, 8.8)
	u := insertUser(t, db, "alice")

	tests := []struct {
		name    string
		userID  int64
		movieID int64
	}{
		{"unknown user", 99, m.ID},
		{"unknown movie", u.ID, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.RecordWatch(ctx, tt.userID, tt.movieID, nil)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("RecordWatch() error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestListMoviesAndUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if n, err := db.SeedMovies(ctx); err != nil || n != len(SeedCatalog) {
		t.Fatalf("SeedMovies() = %d, %v", n, err)
	}
	alice := insertUser(t, db, "alice")
	bob := insertUser(t, db, "bob")
	for _, id := range []int64{4, 1} {
		if err := db.RecordWatch(ctx, alice.ID, id, nil); err != nil {
			t.Fatalf("RecordWatch() error = %v", err)
		}
	}
	if err := db.RecordWatch(ctx, bob.ID, 4, float64Ptr(10)); err != nil {
		t.Fatalf("RecordWatch() error = %v", err)
	}

	movies, err := db.ListMovies(ctx)
	if err != nil {
		t.Fatalf("ListMovies() error = %v", err)
	}
	if len(movies) != 10 {
		t.Fatalf("ListMovies() returned %d, want 10", len(movies))
	}
	for i, m := range movies {
		if m.ID != int64(i+1) {
			t.Errorf("movies[%d].ID = %d, want %d", i, m.ID, i+1)
		}
	}
	if movies[3].Popularity != 2 || movies[0].Popularity != 1 || movies[1].Popularity != 0 {
		t.Errorf("popularity = %d/%d/%d, want 2/1/0", movies[3].Popularity, movies[0].Popularity, movies[1].Popularity)
	}

	users, err := db.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 2 || users[0].Username != "alice" || users[1].Username != "bob" {
		t.Fatalf("ListUsers() = %+v", users)
	}
	if len(users[0].Watched) != 2 || users[0].Watched[0].MovieID != 1 || users[0].Watched[1].MovieID != 4 {
		t.Errorf("alice watched = %+v, want movies 1 and 4", users[0].Watched)
	}

	detail, err := db.GetUserDetail(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetUserDetail() error = %v", err)
	}
	if len(detail.WatchedMovies) != 2 {
		t.Fatalf("WatchedMovies = %d, want 2", len(detail.WatchedMovies))
	}
	if detail.WatchedMovies[1].Title != "The Shawshank Redemption" || detail.WatchedMovies[1].Popularity != 2 {
		t.Errorf("WatchedMovies[1] = %+v", detail.WatchedMovies[1])
	}
}

func TestTopRated(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.SeedMovies(ctx); err != nil {
		t.Fatalf("SeedMovies() error = %v", err)
	}
	u := insertUser(t, db, "alice")
	if err := db.RecordWatch(ctx, u.ID, 4, nil); err != nil {
		t.Fatalf("RecordWatch() error = %v", err)
	}

	top, err := db.TopRated(ctx, 5, 0)
	if err != nil {
		t.Fatalf("TopRated() error = %v", err)
	}
	want := []string{"The Shawshank Redemption", "The Godfather", "The Dark Knight", "Pulp Fiction"}
	for i, title := range want {
		if top[i].Title != title {
			t.Errorf("top[%d] = %q, want %q", i, top[i].Title, title)
		}
	}
	if top[4].Rating != 8.8 {
		t.Errorf("top[4].Rating = %v, want 8.8", top[4].Rating)
	}

	excl, err := db.TopRated(ctx, 3, u.ID)
	if err != nil {
		t.Fatalf("TopRated(exclude) error = %v", err)
	}
	if len(excl) != 3 || excl[0].Title != "The Godfather" {
		t.Errorf("TopRated(exclude) = %+v, want The Godfather first", excl)
	}

	none, err := db.TopRated(ctx, 0, 0)
	if err != nil || len(none) != 0 {
		t.Errorf("TopRated(0) = %v, %v", none, err)
	}
}

func TestSeedMovies_OnlyWhenEmpty(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	n, err := db.SeedMovies(ctx)
	if err != nil || n != 10 {
		t.Fatalf("SeedMovies() = %d, %v; want 10", n, err)
	}
	n, err = db.SeedMovies(ctx)
	if err != nil || n != 0 {
		t.Fatalf("second SeedMovies() = %d, %v; want 0", n, err)
	}
	count, err := db.CountMovies(ctx)
	if err != nil || count != 10 {
		t.Errorf("CountMovies() = %d, %v; want 10", count, err)
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New(`Constraint Error: Duplicate key "username: alice" violates unique constraint.`), true},
		{errors.New("violates UNIQUE constraint"), true},
		{errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		if got := isUniqueConstraintError(tt.err); got != tt.want {
			t.Errorf("isUniqueConstraintError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
