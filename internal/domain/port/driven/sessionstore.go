package driven

import (
	"context"
	"time"

	"github.com/ericfisherdev/postwriter/internal/domain/model"
)

// SessionStore defines the driven port for session state. Implementations
// live only as long as the process; nothing survives a restart.
type SessionStore interface {
	// Get returns the session with the given ID, or (nil, nil) if it does not exist.
	Get(ctx context.Context, id string) (*model.Session, error)

	// Save inserts or updates a session. A stored generation count is never
	// lowered: the larger of the stored and supplied counts wins.
	Save(ctx context.Context, session model.Session) error

	// Delete removes the session with the given ID. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteIdleSince removes every session last seen before cutoff and
	// returns how many were removed.
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error)

	// Count returns the number of live sessions.
	Count(ctx context.Context) (int, error)
}
