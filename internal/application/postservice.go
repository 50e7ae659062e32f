// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/postwriter/internal/domain/model"
	"github.com/ericfisherdev/postwriter/internal/domain/port/driven"
)

var (
	// ErrEmptyTopic is returned when the submitted topic is blank.
	ErrEmptyTopic = errors.New("please enter a topic to write about")

	// ErrGenerationFailed wraps any error returned by the text generator.
	ErrGenerationFailed = errors.New("generation failed")
)

// GenerateStatus is the outcome of a generation request that did not error.
type GenerateStatus string

const (
	// StatusGenerated means the generator produced a post and usage was recorded.
	StatusGenerated GenerateStatus = "generated"

	// StatusRejected means the free quota is exhausted and no valid access code
	// was supplied. The generator was not called.
	StatusRejected GenerateStatus = "rejected"
)

// GenerateResult carries the post (when generated) and the session state
// after the request. Session is populated on every return path, including
// errors, so callers can always render the usage meter.
type GenerateResult struct {
	Status  GenerateStatus
	Post    string
	Session model.Session
}

// PostService runs the generate-a-post use case: gate check, prompt
// construction, generator call, and usage recording.
type PostService struct {
	sessions  driven.SessionStore
	generator driven.TextGenerator
	access    *AccessVerifier
	locks     *sessionLocks
	now       func() time.Time
	newID     func() string
}

// NewPostService creates a PostService with all required dependencies.
func NewPostService(
	sessions driven.SessionStore,
	generator driven.TextGenerator,
	access *AccessVerifier,
) *PostService {
	return &PostService{
		sessions:  sessions,
		generator: generator,
		access:    access,
		locks:     newSessionLocks(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Session returns the session with the given ID, starting a new one when the
// ID is empty or unknown. The returned session's LastSeenAt is refreshed.
func (s *PostService) Session(ctx context.Context, id string) (model.Session, error) {
	if id != "" {
		existing, err := s.sessions.Get(ctx, id)
		if err != nil {
			return model.Session{}, fmt.Errorf("load session: %w", err)
		}
		if existing != nil {
			existing.LastSeenAt = s.now()
			if err := s.sessions.Save(ctx, *existing); err != nil {
				return model.Session{}, fmt.Errorf("touch session: %w", err)
			}
			return *existing, nil
		}
	}

	now := s.now()
	sess := model.Session{
		ID:         s.newID(),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return model.Session{}, fmt.Errorf("start session: %w", err)
	}

	slog.Info("session started", "session_id", sess.ID)
	return sess, nil
}

// Lookup returns the session with the given ID without creating or touching
// it. Returns (nil, nil) when the session does not exist.
func (s *PostService) Lookup(ctx context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, nil
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	return sess, nil
}

// Generate runs one generation request for the session. A rejected request
// returns StatusRejected with a nil error; a failed generator call returns
// ErrGenerationFailed and leaves the usage counter untouched.
func (s *PostService) Generate(ctx context.Context, sessionID, topic, accessCode string) (GenerateResult, error) {
	sess, unlock, err := s.lockedSession(ctx, sessionID)
	if err != nil {
		return GenerateResult{}, err
	}
	defer unlock()

	if !sess.Privileged && s.access.Verify(accessCode) {
		sess.Privileged = true
		if err := s.sessions.Save(ctx, sess); err != nil {
			return GenerateResult{Session: sess}, fmt.Errorf("save privilege: %w", err)
		}
		slog.Info("access code accepted", "session_id", sess.ID)
	}

	result := GenerateResult{Session: sess}

	if !CanGenerate(sess.Usage, sess.Privileged) {
		slog.Info("generation rejected, free quota exhausted",
			"session_id", sess.ID,
			"generation_count", sess.Usage.GenerationCount,
		)
		result.Status = StatusRejected
		return result, nil
	}

	if strings.TrimSpace(topic) == "" {
		return result, ErrEmptyTopic
	}

	start := s.now()
	post, err := s.generator.Generate(ctx, BuildPrompt(topic))
	if err != nil {
		slog.Error("generation failed", "session_id", sess.ID, "error", err)
		return result, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	sess.Usage = RecordUsage(sess.Usage, sess.Privileged)
	sess.LastSeenAt = s.now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return result, fmt.Errorf("record usage: %w", err)
	}

	slog.Info("post generated",
		"session_id", sess.ID,
		"privileged", sess.Privileged,
		"generation_count", sess.Usage.GenerationCount,
		"duration", s.now().Sub(start).Round(time.Millisecond),
	)

	return GenerateResult{
		Status:  StatusGenerated,
		Post:    post,
		Session: sess,
	}, nil
}

// lockedSession resolves the session and holds its lock until unlock is
// called. A request without a cookie gets a freshly minted ID that no other
// request can know yet, so it is locked under that ID rather than the empty
// cookie value.
func (s *PostService) lockedSession(ctx context.Context, id string) (model.Session, func(), error) {
	if id == "" {
		sess, err := s.Session(ctx, "")
		if err != nil {
			return model.Session{}, nil, err
		}
		return sess, s.locks.lock(sess.ID), nil
	}

	unlock := s.locks.lock(id)
	sess, err := s.Session(ctx, id)
	if err != nil {
		unlock()
		return model.Session{}, nil, err
	}
	return sess, unlock, nil
}
