package models

import "time"

// RefreshToken is a server-side session record; Token is opaque hex.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the session ended before now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
