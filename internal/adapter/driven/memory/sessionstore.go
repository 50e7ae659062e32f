// Package memory implements the SessionStore port with a process-local map.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ericfisherdev/postwriter/internal/domain/model"
	"github.com/ericfisherdev/postwriter/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions in memory. Values are copied in and out so
// callers never share state with the store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]model.Session)}
}

// Get returns a copy of the session, or (nil, nil) if it does not exist.
func (s *SessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

// Save upserts the session. The stored generation count and privilege are
// never lowered.
func (s *SessionStore) Save(_ context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.sessions[session.ID]; ok {
		session.Usage.GenerationCount = max(prev.Usage.GenerationCount, session.Usage.GenerationCount)
		session.Privileged = prev.Privileged || session.Privileged
		session.CreatedAt = prev.CreatedAt
	}
	s.sessions[session.ID] = session
	return nil
}

// Delete removes the session. Missing sessions are ignored.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// DeleteIdleSince removes sessions last seen before cutoff.
func (s *SessionStore) DeleteIdleSince(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.IdleSince(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of stored sessions.
func (s *SessionStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions), nil
}
