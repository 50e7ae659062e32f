// Package httphandler implements the JSON API driving adapter and the
// middleware shared by every route.
package httphandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/postwriter/internal/application"
	"github.com/ericfisherdev/postwriter/internal/domain/model"
)

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	posts      *application.PostService
	cookieName string
	logger     *slog.Logger
}

// NewHandler creates a Handler. cookieName is the session cookie issued by
// the web adapter.
func NewHandler(posts *application.PostService, cookieName string, logger *slog.Logger) *Handler {
	return &Handler{
		posts:      posts,
		cookieName: cookieName,
		logger:     logger,
	}
}

// RegisterAPIRoutes registers the JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/session", h.SessionUsage)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// SessionUsage returns the quota state of the caller's session. It never
// creates a session; a missing or unknown cookie is a 404.
func (h *Handler) SessionUsage(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	sess, err := h.posts.Lookup(r.Context(), cookie.Value)
	if err != nil {
		h.logger.Error("failed to look up session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if sess == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	writeJSON(w, http.StatusOK, toSessionUsageResponse(*sess))
}

func toSessionUsageResponse(sess model.Session) SessionUsageResponse {
	return SessionUsageResponse{
		Used:        sess.Usage.Used(),
		Remaining:   sess.Usage.Remaining(),
		FreeLimit:   model.FreeLimit,
		Privileged:  sess.Privileged,
		CanGenerate: application.CanGenerate(sess.Usage, sess.Privileged),
		ShowUpgrade: application.ShowUpgrade(sess.Usage, sess.Privileged),
	}
}
