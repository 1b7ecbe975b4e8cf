// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents an authenticated user session backed by an opaque token.
// Only a SHA-256 hash of the token is ever stored; possession of the raw token
// is the sole proof of the session.
type Session struct {
	ID        uuid.UUID // The unique ID for this specific session record.
	UserID    int64     // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw session token for secure comparison in the database.
	ExpiresAt time.Time // The exact time when this session expires and becomes invalid.
	CreatedAt time.Time // Timestamp of when this session was created (i.e., when the user logged in).
}

// IsExpired reports whether the session has passed its expiry at the given instant.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
