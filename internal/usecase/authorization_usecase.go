// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
)

// Decision reasons returned when an owner action is denied.
const (
	DecisionReasonInvalidSession = "invalid_session"
	DecisionReasonNotOwner       = "not_owner"
)

// Decision is the outcome of an authorization check. It is a plain value
// rather than an error so that callers must inspect it explicitly before
// touching the protected resource.
type Decision struct {
	Allowed bool
	Reason  string
	UserID  int64
}

// Allow builds an allowing decision for the given authenticated user.
func Allow(userID int64) Decision {
	return Decision{Allowed: true, UserID: userID}
}

// Deny builds a denying decision with the given reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err maps a denying decision to the matching domain error. An allowing
// decision maps to nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	if d.Reason == DecisionReasonInvalidSession {
		return domainerrors.ErrInvalidSession
	}

	return domainerrors.ErrUnauthorized
}

// AuthorizationUsecase is the mandatory gate in front of every mutation of
// an owned resource. Handlers and sibling use cases never compare owner IDs
// themselves; they ask this guard.
type AuthorizationUsecase interface {
	// ResolveSession validates an opaque session token and returns the
	// session it identifies. Unknown, expired and revoked tokens are
	// indistinguishable: all yield ErrInvalidSession.
	ResolveSession(ctx context.Context, sessionToken string) (*entity.Session, error)

	// AuthorizeOwnerAction decides whether the session's user may mutate a
	// resource owned by resourceOwnerID. The error return is reserved for
	// store failures; a denied check is a Decision, not an error.
	AuthorizeOwnerAction(ctx context.Context, sessionToken string, resourceOwnerID int64) (Decision, error)

	// AuthorizeSelfAction decides whether the session's user may mutate
	// their own account. The resource owner is the session's user, so a
	// live session is the whole check; an allowing decision carries the
	// user's ID.
	AuthorizeSelfAction(ctx context.Context, sessionToken string) (Decision, error)
}
