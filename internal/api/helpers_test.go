// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// fakeStore is an in-memory CatalogStore.
type fakeStore struct {
	mu      sync.Mutex
	movies  []models.Movie
	users   map[int64]*models.User
	pingErr error
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[int64]*models.User)}
}

func (s *fakeStore) CreateMovie(_ context.Context, in *models.MovieInput) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	m := models.Movie{
		ID:          int64(len(s.movies) + 1),
		Title:       in.Title,
		Genre:       in.Genre,
		ReleaseYear: in.ReleaseYear,
		Rating:      in.Rating,
	}
	s.movies = append(s.movies, m)
	return &m, nil
}

func (s *fakeStore) ListMovies(_ context.Context) ([]models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Movie(nil), s.movies...), nil
}

func (s *fakeStore) CreateUser(_ context.Context, in *models.UserInput) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Username == in.Username || u.Email == in.Email {
			return nil, database.ErrConflict
		}
	}
	u := &models.User{ID: int64(len(s.users) + 1), Username: in.Username, Email: in.Email}
	s.users[u.ID] = u
	return u, nil
}

func (s *fakeStore) GetUserDetail(_ context.Context, id int64) (*models.UserDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &models.UserDetail{ID: u.ID, Username: u.Username, Email: u.Email, WatchedMovies: []models.WatchedMovie{}}, nil
}

func (s *fakeStore) RecordWatch(_ context.Context, userID, movieID int64, rating *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	u, ok := s.users[userID]
	if !ok || movieID > int64(len(s.movies)) {
		return database.ErrNotFound
	}
	u.Watched = append(u.Watched, models.Watch{MovieID: movieID, Rating: rating, WatchedAt: time.Now()})
	return nil
}

func (s *fakeStore) Stats(_ context.Context) (*models.CatalogStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.CatalogStats{Movies: int64(len(s.movies)), Users: int64(len(s.users))}, nil
}

func (s *fakeStore) Ping(_ context.Context) error {
	return s.pingErr
}

// fakeModel is a ModelService that records calls.
type fakeModel struct {
	mu       sync.Mutex
	dirty    int
	fits     int
	lastN    int
	lastUser int64
	fitErr   error
}

func (m *fakeModel) Recommend(_ context.Context, userID int64, n int) (*recommend.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUser, m.lastN = userID, n
	return &recommend.Response{
		UserID: userID,
		Movies: []models.Movie{{ID: 4, Title: "The Shawshank Redemption", Rating: 9.3}},
		Mode:   recommend.ModeFallbackUntrained,
	}, nil
}

func (m *fakeModel) ClusterStatistics(_ context.Context) ([]recommend.ClusterStats, error) {
	return nil, nil
}

func (m *fakeModel) Fit(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fits++
	return m.fitErr
}

func (m *fakeModel) MarkDirty() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty++
}

func (m *fakeModel) Status() recommend.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return recommend.Status{Trained: m.fits > 0, Dirty: m.dirty > 0, ModelVersion: int64(m.fits)}
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []*events.CatalogEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e *events.CatalogEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

// fakeRefitter records refit sources.
type fakeRefitter struct {
	sources []string
}

func (f *fakeRefitter) Refit(_ context.Context, source string) error {
	f.sources = append(f.sources, source)
	return nil
}

// testEnvelope mirrors models.APIResponse with a raw payload.
type testEnvelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

type testServer struct {
	store     *fakeStore
	model     *fakeModel
	publisher *fakePublisher
	handler   *Handler
	router    http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		store:     newFakeStore(),
		model:     &fakeModel{},
		publisher: &fakePublisher{},
	}
	ts.handler = NewHandler(ts.store, ts.model, DefaultHandlerConfig())
	ts.handler.SetEventPublisher(ts.publisher)
	ts.router = NewRouter(ts.handler, nil).SetupChi()
	return ts
}

// do sends a request and decodes the envelope.
func (ts *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: response is not an envelope: %v (%s)", method, path, err, rec.Body.String())
	}
	return rec, env
}

var errStorage = errors.New("disk on fire")
