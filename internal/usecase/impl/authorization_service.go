// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authorizationService implements the AuthorizationUsecase interface.
type authorizationService struct {
	sessionRepo  repository.SessionRepository
	tokenService service.SessionTokenService
	logger       *slog.Logger
}

// AuthorizationServiceParams holds dependencies for authorizationService, injected by Fx.
type AuthorizationServiceParams struct {
	fx.In

	SessionRepo  repository.SessionRepository
	TokenService service.SessionTokenService
	Logger       *slog.Logger
}

// NewAuthorizationService is the constructor for authorizationService.
func NewAuthorizationService(params AuthorizationServiceParams) usecase.AuthorizationUsecase {
	return &authorizationService{
		sessionRepo:  params.SessionRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authorizationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ResolveSession validates an opaque token against the session store.
// Unknown, expired and revoked tokens all collapse into ErrInvalidSession so
// a caller probing the API learns nothing about why a token stopped working.
func (srv *authorizationService) ResolveSession(ctx context.Context, sessionToken string) (*entity.Session, error) {
	if sessionToken == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidSession, "empty session token")
	}

	tokenHash := srv.tokenService.HashToken(sessionToken)

	session, err := srv.sessionRepo.FindSessionByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) || errors.Is(err, repository.ErrSessionExpired) {
			return nil, errors.Wrap(domainerrors.ErrInvalidSession, "session resolution failed")
		}

		return nil, errors.Wrap(err, "failed to resolve session")
	}

	return session, nil
}

// AuthorizeOwnerAction is the single gate for mutations of owned resources.
// The decision comes back as a value; only store failures surface as errors.
func (srv *authorizationService) AuthorizeOwnerAction(ctx context.Context, sessionToken string, resourceOwnerID int64) (usecase.Decision, error) {
	session, err := srv.ResolveSession(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidSession) {
			return usecase.Deny(usecase.DecisionReasonInvalidSession), nil
		}

		return usecase.Decision{}, errors.Wrap(err, "failed to authorize owner action")
	}

	if session.UserID != resourceOwnerID {
		srv.log(ctx).Warn("Owner action denied",
			slog.Int64("userID", session.UserID),
			slog.Int64("resourceOwnerID", resourceOwnerID))

		return usecase.Deny(usecase.DecisionReasonNotOwner), nil
	}

	return usecase.Allow(session.UserID), nil
}

// AuthorizeSelfAction gates mutations of the caller's own account. The
// resolved session names the owner, so the only way to be denied is to not
// hold a live session.
func (srv *authorizationService) AuthorizeSelfAction(ctx context.Context, sessionToken string) (usecase.Decision, error) {
	session, err := srv.ResolveSession(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidSession) {
			return usecase.Deny(usecase.DecisionReasonInvalidSession), nil
		}

		return usecase.Decision{}, errors.Wrap(err, "failed to authorize self action")
	}

	return usecase.Allow(session.UserID), nil
}
