// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"cookbook/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ChangePasswordInput defines the data required to change a password.
// All existing sessions are revoked on success.
type ChangePasswordInput struct {
	SessionToken    string
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// SignupOutput returns the newly created user's public information.
type SignupOutput struct {
	User *entity.User
}

// LoginOutput returns the issued session token after a successful login.
// The token is opaque; the server keeps the only durable record of it.
type LoginOutput struct {
	SessionToken string
	User         *entity.User
}

// SessionInfo describes one active session without exposing its token hash.
type SessionInfo struct {
	ID        uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
	Current   bool
}

// AuthUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Logout revokes the session behind the given token. Revoking an
	// unknown or already-revoked token succeeds silently.
	Logout(ctx context.Context, sessionToken string) error

	// ChangePassword verifies the current password, stores a new hash and
	// revokes every session of the account.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error

	// GetActiveSessions lists the caller's live sessions, oldest first.
	GetActiveSessions(ctx context.Context, sessionToken string) ([]*SessionInfo, error)

	// RevokeSession ends one of the caller's other sessions by ID.
	RevokeSession(ctx context.Context, sessionToken string, sessionID uuid.UUID) error

	// LogoutAllDevices revokes every session of the caller's account.
	LogoutAllDevices(ctx context.Context, sessionToken string) error
}
