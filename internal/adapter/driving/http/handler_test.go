package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httphandler "github.com/ericfisherdev/postwriter/internal/adapter/driving/http"
	"github.com/ericfisherdev/postwriter/internal/application"
	"github.com/ericfisherdev/postwriter/internal/domain/model"
)

const testCookieName = "postwriter_session"

// --- Mock implementations ---

type mockSessionStore struct {
	sessions map[string]model.Session
	err      error
}

func (m *mockSessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockSessionStore) Save(_ context.Context, s model.Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionStore) DeleteIdleSince(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func (m *mockSessionStore) Count(_ context.Context) (int, error) {
	return len(m.sessions), nil
}

type mockGenerator struct{}

func (mockGenerator) Generate(_ context.Context, _ string) (string, error) {
	return "", errors.New("not used")
}

// --- Test setup ---

func setupMux(t *testing.T, store *mockSessionStore) http.Handler {
	t.Helper()

	verifier, err := application.NewAccessVerifier("", "")
	require.NoError(t, err)

	posts := application.NewPostService(store, mockGenerator{}, verifier)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(posts, testCookieName, logger))
	return httphandler.ApplyMiddleware(mux, logger)
}

func getSession(t *testing.T, handler http.Handler, cookieValue string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestHealth(t *testing.T) {
	handler := setupMux(t, &mockSessionStore{sessions: map[string]model.Session{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp httphandler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Time)
}

func TestSessionUsage(t *testing.T) {
	tests := []struct {
		name    string
		session model.Session
		want    httphandler.SessionUsageResponse
	}{
		{
			name:    "fresh",
			session: model.Session{ID: "abc"},
			want:    httphandler.SessionUsageResponse{Used: 0, Remaining: 2, FreeLimit: 2, CanGenerate: true},
		},
		{
			name:    "one used",
			session: model.Session{ID: "abc", Usage: model.Usage{GenerationCount: 1}},
			want:    httphandler.SessionUsageResponse{Used: 1, Remaining: 1, FreeLimit: 2, CanGenerate: true},
		},
		{
			name:    "exhausted",
			session: model.Session{ID: "abc", Usage: model.Usage{GenerationCount: 2}},
			want:    httphandler.SessionUsageResponse{Used: 2, Remaining: 0, FreeLimit: 2, CanGenerate: false, ShowUpgrade: true},
		},
		{
			name:    "privileged and exhausted",
			session: model.Session{ID: "abc", Usage: model.Usage{GenerationCount: 2}, Privileged: true},
			want:    httphandler.SessionUsageResponse{Used: 2, Remaining: 0, FreeLimit: 2, Privileged: true, CanGenerate: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockSessionStore{sessions: map[string]model.Session{"abc": tt.session}}
			handler := setupMux(t, store)

			rec := getSession(t, handler, "abc")

			assert.Equal(t, http.StatusOK, rec.Code)
			var resp httphandler.SessionUsageResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp)
		})
	}
}

func TestSessionUsage_NotFound(t *testing.T) {
	store := &mockSessionStore{sessions: map[string]model.Session{}}
	handler := setupMux(t, store)

	assert.Equal(t, http.StatusNotFound, getSession(t, handler, "").Code, "no cookie")
	assert.Equal(t, http.StatusNotFound, getSession(t, handler, "unknown").Code, "unknown session")
	assert.Empty(t, store.sessions, "lookup never creates a session")
}

func TestSessionUsage_StoreError(t *testing.T) {
	store := &mockSessionStore{sessions: map[string]model.Session{}, err: errors.New("db down")}
	handler := setupMux(t, store)

	rec := getSession(t, handler, "abc")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestApplyMiddleware_RecoversPanics(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})
	handler := httphandler.ApplyMiddleware(mux, logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Contains(t, logs.String(), "status=500")
}

func TestApplyMiddleware_LogsRequests(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /teapot", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := httphandler.ApplyMiddleware(mux, logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, logs.String(), "method=GET")
	assert.Contains(t, logs.String(), "path=/teapot")
	assert.Contains(t, logs.String(), "status=418")
}
