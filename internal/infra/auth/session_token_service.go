// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"

	"cookbook/config"
	"cookbook/internal/domain/service"
)

const (
	// tokenByteLength is the entropy of a raw session token. 32 bytes gives
	// 256 bits, double the floor required for an unguessable bearer token.
	tokenByteLength = 32

	defaultSessionTTL = 24 * time.Hour
)

// sessionTokenService issues opaque random session tokens. The token itself
// carries no claims; validity lives entirely in the session store, so a
// revoked token dies the moment its row is deleted.
type sessionTokenService struct {
	sessionTTL time.Duration
}

// NewSessionTokenService is the constructor for sessionTokenService.
func NewSessionTokenService(cfg *config.Config) service.SessionTokenService {
	ttl := defaultSessionTTL
	if cfg.Auth != nil && cfg.Auth.SessionTTL > 0 {
		ttl = cfg.Auth.SessionTTL
	}

	return &sessionTokenService{sessionTTL: ttl}
}

// GenerateToken returns a base64url-encoded random token.
func (s *sessionTokenService) GenerateToken() (string, error) {
	raw := make([]byte, tokenByteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Wrap(err, "generate session token")
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a raw token.
// The digest, never the raw token, is what the session store persists.
func (s *sessionTokenService) HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))

	return hex.EncodeToString(digest[:])
}

// GetSessionDuration returns the configured session lifetime.
func (s *sessionTokenService) GetSessionDuration() time.Duration {
	return s.sessionTTL
}
