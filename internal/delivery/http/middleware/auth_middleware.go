package middleware

import (
	"strings"

	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Context keys set by the authentication middleware.
const (
	ContextKeyUserID       = "userID"
	ContextKeySessionToken = "sessionToken"
)

// AuthMiddleware resolves opaque bearer tokens against the session store.
// There are no claims to parse: the store is the single source of truth, so
// a revoked session is rejected on the very next request.
type AuthMiddleware struct {
	authz usecase.AuthorizationUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authz usecase.AuthorizationUsecase) *AuthMiddleware {
	return &AuthMiddleware{authz: authz}
}

// Authenticate rejects requests without a live session. The raw token stays
// on the context because owner-action checks downstream re-verify it; the
// middleware is a convenience gate, not the authorization boundary.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := BearerToken(c)
		if token == "" {
			return domainerrors.ErrInvalidSession.WrapMessage("missing bearer token")
		}

		session, err := m.authz.ResolveSession(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(ContextKeyUserID, session.UserID)
		c.Set(ContextKeySessionToken, token)

		return next(c)
	}
}

// BearerToken extracts the raw token from the Authorization header, or ""
// when the header is absent or not a bearer scheme.
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}

	return token
}

// SessionToken returns the raw session token stored by Authenticate.
func SessionToken(c echo.Context) string {
	if token, ok := c.Get(ContextKeySessionToken).(string); ok {
		return token
	}

	return ""
}

// UserID returns the authenticated user's ID stored by Authenticate.
func UserID(c echo.Context) int64 {
	if id, ok := c.Get(ContextKeyUserID).(int64); ok {
		return id
	}

	return 0
}
