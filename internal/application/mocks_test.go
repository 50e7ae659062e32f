package application_test

import (
	"context"
	"sync"
	"time"

	"github.com/ericfisherdev/postwriter/internal/domain/model"
)

// --- Mock implementations ---

type mockGenerator struct {
	mu       sync.Mutex
	generate func(ctx context.Context, prompt string) (string, error)
	prompts  []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	return m.generate(ctx, prompt)
}

func (m *mockGenerator) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

type mockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
	getErr   error
	saveErr  error
	cutoffs  []time.Time
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]model.Session)}
}

func (m *mockSessionStore) Get(_ context.Context, id string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *mockSessionStore) Save(_ context.Context, s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if prev, ok := m.sessions[s.ID]; ok && prev.Usage.GenerationCount > s.Usage.GenerationCount {
		s.Usage = prev.Usage
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionStore) DeleteIdleSince(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cutoffs = append(m.cutoffs, cutoff)
	removed := 0
	for id, s := range m.sessions {
		if s.IdleSince(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *mockSessionStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions), nil
}

func (m *mockSessionStore) stored(id string) model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}
