package model

import "time"

// Session is the per-browser state behind the session cookie. Privileged is
// set once a correct access code has been supplied and is never cleared.
type Session struct {
	ID         string
	Usage      Usage
	Privileged bool
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// IdleSince reports whether the session has not been seen since cutoff.
func (s Session) IdleSince(cutoff time.Time) bool {
	return s.LastSeenAt.Before(cutoff)
}
