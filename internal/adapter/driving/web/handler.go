// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	vm "github.com/ericfisherdev/postwriter/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/postwriter/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/postwriter/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/postwriter/internal/application"
)

const (
	pageTitle = "LinkedIn Post Writer"

	topicFormField      = "topic"
	accessCodeFormField = "access_code"

	// maxFormBytes caps the POST body; topics are a single line.
	maxFormBytes = 64 << 10

	quotaExhaustedMessage = "🚫 You've used all your free posts. Please enter an access code to continue."
	genericErrorMessage   = "something went wrong, please try again"
)

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	posts   *application.PostService
	cookies CookieOptions
	logger  *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(posts *application.PostService, cookies CookieOptions, logger *slog.Logger) *Handler {
	return &Handler{
		posts:   posts,
		cookies: cookies,
		logger:  logger,
	}
}

// Home renders the page for the caller's session, starting one if needed.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sess, err := h.posts.Session(r.Context(), SessionID(r))
	if err != nil {
		h.logger.Error("failed to load session", "error", err)
		clearSessionCookie(w, h.cookies)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, sess.ID, h.cookies)
	token := ensureCSRFToken(w, r, h.cookies.Secure)

	page := toHomeViewModel(sess, token, application.DefaultTopic)
	h.render(w, r, http.StatusOK, page)
}

// Generate handles the form submission: CSRF check, gate, generation, and
// re-rendering the page with the outcome.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	if !validateCSRF(r) {
		h.logger.Warn("csrf validation failed", "remote_addr", r.RemoteAddr)
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	topic := r.PostFormValue(topicFormField)
	accessCode := r.PostFormValue(accessCodeFormField)

	res, err := h.posts.Generate(r.Context(), SessionID(r), topic, accessCode)
	if res.Session.ID == "" {
		// The session could not be loaded or started; nothing to render.
		h.logger.Error("failed to load session for generation", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, res.Session.ID, h.cookies)
	token := ensureCSRFToken(w, r, h.cookies.Secure)
	page := toHomeViewModel(res.Session, token, topic)

	status := http.StatusOK
	switch {
	case errors.Is(err, application.ErrEmptyTopic):
		page.Warning = "✍️ " + upperFirst(err.Error()) + "."
		status = http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrGenerationFailed):
		page.Error = "❌ Error: " + generationCause(err)
		status = http.StatusBadGateway
	case err != nil:
		h.logger.Error("generation request failed", "session_id", res.Session.ID, "error", err)
		page.Error = "❌ Error: " + genericErrorMessage
		status = http.StatusInternalServerError
	case res.Status == application.StatusRejected:
		page.Warning = quotaExhaustedMessage
	case res.Status == application.StatusGenerated:
		page.Result = toResultViewModel(res.Post, res.Session)
	}

	h.render(w, r, status, page)
}

// render writes the full page. The component renders into a buffer first so
// a template error can still produce a 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page vm.HomeViewModel) {
	layout := templates.Layout(pageTitle, pages.Home(page))

	var buf bytes.Buffer
	if err := layout.Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write page", "error", err)
	}
}

// generationCause strips the sentinel prefix so the user sees the underlying
// provider message.
func generationCause(err error) string {
	return strings.TrimPrefix(err.Error(), application.ErrGenerationFailed.Error()+": ")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
