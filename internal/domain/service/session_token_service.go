package service

import "time"

// SessionTokenService defines the interface for issuing and hashing opaque
// session tokens. Tokens carry no claims; the session store is the single
// source of truth, which keeps revocation immediate.
type SessionTokenService interface {
	// GenerateToken returns a new cryptographically random token with at
	// least 128 bits of entropy, safe to hand to clients as a bearer token.
	GenerateToken() (string, error)

	// HashToken returns the hex-encoded SHA-256 digest of a raw token.
	// Only this digest is ever persisted.
	HashToken(token string) string

	// GetSessionDuration returns the configured session lifetime.
	GetSessionDuration() time.Duration
}
