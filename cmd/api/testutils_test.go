package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"showtimes/proj/internal/api/tasks"
	"showtimes/proj/internal/config"
	"showtimes/proj/internal/lib/logger"
	"showtimes/proj/internal/lib/validator"
	"showtimes/proj/internal/services"
	"showtimes/proj/internal/storage/sqlite"
)

const testToken = "upstream-token"

const moviesFixture = `[
  {
    "_id": "m1", "id": 1, "title": "Flow", "year": "2024", "durationMinutes": 85,
    "actors_abridged": [{"name": "Gints Zilbalodis"}],
    "certificate": {"is": "L", "color": "green"},
    "ratings": {"imdb": "8.0", "rotten_critics": "97"},
    "showtimes": [
      {"cinema": {"id": 2, "name": "Smárabíó"}, "schedule": [{"time": "17:00"}]},
      {"cinema": {"id": 1, "name": "Bíó Paradís"}, "schedule": [{"time": "21:30 (ISL TAL)"}]}
    ]
  },
  {
    "_id": "m2", "id": 2, "title": "Red One", "year": "2024", "durationMinutes": 123,
    "certificate": {"is": "12 ára", "color": "yellow"},
    "ratings": {"imdb": "6.1", "rotten_critics": "N/A"},
    "showtimes": [{"cinema": {"id": 2, "name": "Smárabíó"}, "schedule": [{"time": "20:00"}]}]
  }
]`

const upcomingFixture = `[
  {"_id": "u1", "title": "Mickey 17", "year": "2025", "omdb": [{"Released": "07 Mar 2025"}]},
  {"_id": "u2", "title": "Captain America", "year": "2025", "omdb": [{"Released": "14 Feb 2025"}]}
]`

const theatersFixture = `[
  {"id": 2, "name": "Smárabíó", "website": "smarabio.is"},
  {"id": 1, "name": "Bíó Paradís", "website": "https://bioparadis.is"}
]`

// fakeUpstream serves the listings fixtures behind a static token.
type fakeUpstream struct {
	authCalls atomic.Int32
	failWith  atomic.Int32
}

func (u *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/authenticate" {
		u.authCalls.Add(1)
		if user, _, ok := r.BasicAuth(); !ok || user != "tester" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": testToken})
		return
	}
	if r.Header.Get("x-access-token") != testToken {
		http.Error(w, "no token", http.StatusUnauthorized)
		return
	}
	if code := u.failWith.Load(); code != 0 {
		w.WriteHeader(int(code))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/movies":
		io.WriteString(w, moviesFixture)
	case "/upcoming":
		io.WriteString(w, upcomingFixture)
	case "/theaters":
		io.WriteString(w, theatersFixture)
	default:
		http.NotFound(w, r)
	}
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Locale: "is",
		Clients: config.ClientsConfig{Kvikmyndir: config.Kvikmyndir{
			BaseURL:  baseURL,
			Username: "tester",
			Password: "secret",
			Timeout:  5 * time.Second,
			TokenTTL: time.Hour,
		}},
	}
}

func NewTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	if cfg == nil {
		cfg = testConfig("http://127.0.0.1:0")
	}
	log := logger.Discard()
	store, err := sqlite.Open(":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	v := validator.New()
	bgTasks := tasks.New(log, 1, 4)
	bgTasks.Run()
	t.Cleanup(func() { bgTasks.Shutdown(context.Background()) })
	return NewApplication(cfg, log, services.New(log, cfg, store, v), v, bgTasks)
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeUpstream, *Application) {
	t.Helper()
	upstream := &fakeUpstream{}
	upstreamSrv := httptest.NewServer(upstream)
	t.Cleanup(upstreamSrv.Close)
	app := NewTestApplication(t, testConfig(upstreamSrv.URL))
	srv := httptest.NewServer(app.routes())
	t.Cleanup(srv.Close)
	return srv, upstream, app
}

type testResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, method, url, body string, header http.Header) (int, testResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var parsed testResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func decodeField[T any](t *testing.T, res testResponse, key string) T {
	t.Helper()
	var v T
	raw, ok := res.Data[key]
	require.True(t, ok, "missing data.%s", key)
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
