package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"cookbook/config"

	"github.com/stretchr/testify/assert"
)

func newTokenServiceForTest(ttl time.Duration) *sessionTokenService {
	cfg := &config.Config{
		Auth: &config.AuthConfig{SessionTTL: ttl},
	}

	return NewSessionTokenService(cfg).(*sessionTokenService)
}

func TestSessionTokenService_GenerateToken(t *testing.T) {
	svc := newTokenServiceForTest(time.Hour)

	token, err := svc.GenerateToken()
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Token must decode back to at least 128 bits of entropy.
	raw, err := base64.RawURLEncoding.DecodeString(token)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(raw), 16)
}

func TestSessionTokenService_GenerateToken_Unique(t *testing.T) {
	svc := newTokenServiceForTest(time.Hour)

	seen := make(map[string]struct{})
	for range 100 {
		token, err := svc.GenerateToken()
		assert.NoError(t, err)

		_, dup := seen[token]
		assert.False(t, dup, "token generated twice")
		seen[token] = struct{}{}
	}
}

func TestSessionTokenService_HashToken(t *testing.T) {
	svc := newTokenServiceForTest(time.Hour)

	token, err := svc.GenerateToken()
	assert.NoError(t, err)

	hash := svc.HashToken(token)
	assert.Len(t, hash, 64) // hex-encoded SHA-256
	assert.NotEqual(t, token, hash)

	// Hashing is deterministic; different input, different digest.
	assert.Equal(t, hash, svc.HashToken(token))
	assert.NotEqual(t, hash, svc.HashToken(token+"x"))
}

func TestSessionTokenService_GetSessionDuration(t *testing.T) {
	svc := newTokenServiceForTest(36 * time.Hour)
	assert.Equal(t, 36*time.Hour, svc.GetSessionDuration())

	// Zero config falls back to the 24h default.
	fallback := NewSessionTokenService(&config.Config{})
	assert.Equal(t, 24*time.Hour, fallback.GetSessionDuration())
}
