package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/postwriter/internal/domain/model"
	"github.com/ericfisherdev/postwriter/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new SessionRepo backed by the given DB.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Get returns the session with the given ID, or (nil, nil) if it does not exist.
func (r *SessionRepo) Get(ctx context.Context, id string) (*model.Session, error) {
	const query = `
		SELECT id, generation_count, privileged, created_at, last_seen_at
		FROM sessions
		WHERE id = ?`

	var (
		sess       model.Session
		privileged int
		createdAt  string
		lastSeenAt string
	)

	err := r.db.Reader.QueryRowContext(ctx, query, id).Scan(
		&sess.ID,
		&sess.Usage.GenerationCount,
		&privileged,
		&createdAt,
		&lastSeenAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session %q: %w", id, err)
	}

	sess.Privileged = privileged == 1

	sess.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	sess.LastSeenAt, err = parseTime(lastSeenAt)
	if err != nil {
		return nil, fmt.Errorf("parse last_seen_at: %w", err)
	}

	return &sess, nil
}

// Save upserts the session. On conflict the larger generation count wins,
// privilege is never cleared, and created_at keeps its first value.
func (r *SessionRepo) Save(ctx context.Context, session model.Session) error {
	const query = `
		INSERT INTO sessions (id, generation_count, privileged, created_at, last_seen_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			generation_count = MAX(sessions.generation_count, excluded.generation_count),
			privileged       = MAX(sessions.privileged, excluded.privileged),
			last_seen_at     = excluded.last_seen_at`

	privileged := 0
	if session.Privileged {
		privileged = 1
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		session.ID,
		session.Usage.GenerationCount,
		privileged,
		formatTime(session.CreatedAt),
		formatTime(session.LastSeenAt),
	)
	if err != nil {
		return fmt.Errorf("save session %q: %w", session.ID, err)
	}
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	return nil
}

// DeleteIdleSince removes every session last seen before cutoff.
// Timestamps are stored as fixed-width UTC strings so the comparison is
// lexicographic.
func (r *SessionRepo) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	const query = `DELETE FROM sessions WHERE last_seen_at < ?`

	result, err := r.db.Writer.ExecContext(ctx, query, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("delete idle sessions: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// Count returns the number of stored sessions.
func (r *SessionRepo) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM sessions`

	var n int
	if err := r.db.Reader.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// timeLayout is RFC 3339 with a fixed nine-digit fraction so stored values
// sort the same way as the instants they represent.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime tries the stored layout first, then the SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		timeLayout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %q", s)
}
