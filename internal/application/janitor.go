package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ericfisherdev/postwriter/internal/domain/port/driven"
)

// SessionJanitor periodically removes sessions that have been idle longer
// than the configured TTL.
type SessionJanitor struct {
	sessions driven.SessionStore
	idleTTL  time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewSessionJanitor creates a SessionJanitor that sweeps every interval and
// removes sessions not seen within idleTTL.
func NewSessionJanitor(sessions driven.SessionStore, idleTTL, interval time.Duration) *SessionJanitor {
	return &SessionJanitor{
		sessions: sessions,
		idleTTL:  idleTTL,
		interval: interval,
		now:      time.Now,
	}
}

// Start sweeps once immediately and then on every tick until ctx is
// cancelled. It blocks, so run it in its own goroutine.
func (j *SessionJanitor) Start(ctx context.Context) {
	if _, err := j.Sweep(ctx); err != nil {
		slog.Error("initial session sweep failed", "error", err)
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session janitor stopped")
			return
		case <-ticker.C:
			if _, err := j.Sweep(ctx); err != nil {
				slog.Error("session sweep failed", "error", err)
			}
		}
	}
}

// Sweep deletes every session whose LastSeenAt is before now minus the idle
// TTL and returns how many were removed.
func (j *SessionJanitor) Sweep(ctx context.Context) (int, error) {
	cutoff := j.now().Add(-j.idleTTL)

	removed, err := j.sessions.DeleteIdleSince(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete idle sessions: %w", err)
	}

	if removed > 0 {
		remaining, err := j.sessions.Count(ctx)
		if err != nil {
			return removed, fmt.Errorf("count sessions: %w", err)
		}
		slog.Info("idle sessions swept", "removed", removed, "active", remaining)
	}
	return removed, nil
}
