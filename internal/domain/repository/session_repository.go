// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"cookbook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for session persistence.
var (
	// ErrSessionNotFound is returned when no session matches the given hash or ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when a session exists but has passed its expiry.
	ErrSessionExpired = errors.New("session has expired")
)

// SessionRepository defines the interface for session management operations.
// This supports multi-device login and remote logout functionality.
type SessionRepository interface {
	// CreateSession persists a new session record.
	CreateSession(ctx context.Context, session *entity.Session) error

	// FindSessionByHash retrieves a session record by its securely stored token hash.
	// An expired record yields ErrSessionExpired and is removed as a side effect,
	// so subsequent lookups behave exactly like an unknown token.
	FindSessionByHash(ctx context.Context, tokenHash string) (*entity.Session, error)

	// FindSessionsByUserID retrieves all active sessions for a specific user,
	// oldest first. This allows users to see their logins across devices.
	FindSessionsByUserID(ctx context.Context, userID int64) ([]*entity.Session, error)

	// DeleteSession removes a session by its ID, ending that session.
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// DeleteSessionByHash removes a session by its token hash. Deleting a
	// hash with no matching record is not an error; revocation is idempotent.
	DeleteSessionByHash(ctx context.Context, tokenHash string) error

	// DeleteSessionsByUserID removes all sessions for a specific user.
	// This backs "logout from all devices" and post-password-change revocation.
	DeleteSessionsByUserID(ctx context.Context, userID int64) error

	// DeleteExpiredSessions removes all expired sessions from the database.
	// This should be called periodically for cleanup.
	DeleteExpiredSessions(ctx context.Context) error

	// CountActiveSessionsByUserID returns the number of active (non-expired) sessions for a user.
	CountActiveSessionsByUserID(ctx context.Context, userID int64) (int, error)
}
