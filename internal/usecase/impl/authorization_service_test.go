package impl

import (
	"context"
	"testing"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	mockRepo "cookbook/internal/mocks/repository"
	mockSvc "cookbook/internal/mocks/service"
	"cookbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authorizationServiceFixtures holds all test dependencies for authorization service tests.
type authorizationServiceFixtures struct {
	service      usecase.AuthorizationUsecase
	sessionRepo  *mockRepo.MockSessionRepository
	tokenService *mockSvc.MockSessionTokenService
}

func createTestAuthorizationService(t *testing.T) authorizationServiceFixtures {
	sessionRepo := mockRepo.NewMockSessionRepository(t)
	tokenService := mockSvc.NewMockSessionTokenService(t)

	service := NewAuthorizationService(AuthorizationServiceParams{
		SessionRepo:  sessionRepo,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return authorizationServiceFixtures{
		service:      service,
		sessionRepo:  sessionRepo,
		tokenService: tokenService,
	}
}

func validTestSession(userID int64) *entity.Session {
	return &entity.Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: "stored-hash",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now().Add(-time.Hour),
	}
}

func TestAuthorizationService_ResolveSession_Success(t *testing.T) {
	fx := createTestAuthorizationService(t)
	ctx := context.Background()

	session := validTestSession(42)
	fx.tokenService.On("HashToken", "raw-token").Return("stored-hash")
	fx.sessionRepo.On("FindSessionByHash", ctx, "stored-hash").Return(session, nil)

	resolved, err := fx.service.ResolveSession(ctx, "raw-token")

	require.NoError(t, err)
	assert.Equal(t, int64(42), resolved.UserID)
	assert.Equal(t, session.ID, resolved.ID)
}

func TestAuthorizationService_ResolveSession_EmptyToken(t *testing.T) {
	fx := createTestAuthorizationService(t)

	resolved, err := fx.service.ResolveSession(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSession)
}

// Unknown and expired sessions must be indistinguishable to the caller.
func TestAuthorizationService_ResolveSession_UnknownAndExpiredLookAlike(t *testing.T) {
	testCases := []struct {
		name      string
		storeErr  error
		tokenHash string
	}{
		{name: "unknown token", storeErr: repository.ErrSessionNotFound, tokenHash: "hash-unknown"},
		{name: "expired token", storeErr: repository.ErrSessionExpired, tokenHash: "hash-expired"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := createTestAuthorizationService(t)
			ctx := context.Background()

			fx.tokenService.On("HashToken", "some-token").Return(tc.tokenHash)
			fx.sessionRepo.On("FindSessionByHash", ctx, tc.tokenHash).Return(nil, tc.storeErr)

			resolved, err := fx.service.ResolveSession(ctx, "some-token")

			require.Error(t, err)
			assert.Nil(t, resolved)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidSession)
		})
	}
}

func TestAuthorizationService_ResolveSession_StoreFailure(t *testing.T) {
	fx := createTestAuthorizationService(t)
	ctx := context.Background()

	fx.tokenService.On("HashToken", "raw-token").Return("stored-hash")
	fx.sessionRepo.On("FindSessionByHash", ctx, "stored-hash").Return(nil, errors.New("connection reset"))

	resolved, err := fx.service.ResolveSession(ctx, "raw-token")

	require.Error(t, err)
	assert.Nil(t, resolved)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidSession)
}

func TestAuthorizationService_AuthorizeOwnerAction_Allow(t *testing.T) {
	fx := createTestAuthorizationService(t)
	ctx := context.Background()

	fx.tokenService.On("HashToken", "raw-token").Return("stored-hash")
	fx.sessionRepo.On("FindSessionByHash", ctx, "stored-hash").Return(validTestSession(42), nil)

	decision, err := fx.service.AuthorizeOwnerAction(ctx, "raw-token", 42)

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, int64(42), decision.UserID)
	assert.NoError(t, decision.Err())
}

func TestAuthorizationService_AuthorizeOwnerAction_DenyNotOwner(t *testing.T) {
	fx := createTestAuthorizationService(t)
	ctx := context.Background()

	fx.tokenService.On("HashToken", "raw-token").Return("stored-hash")
	fx.sessionRepo.On("FindSessionByHash", ctx, "stored-hash").Return(validTestSession(42), nil)

	decision, err := fx.service.AuthorizeOwnerAction(ctx, "raw-token", 7)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, usecase.DecisionReasonNotOwner, decision.Reason)
	assert.ErrorIs(t, decision.Err(), domainerrors.ErrUnauthorized)
}

func TestAuthorizationService_AuthorizeOwnerAction_DenyInvalidSession(t *testing.T) {
	fx := createTestAuthorizationService(t)
	ctx := context.Background()

	fx.tokenService.On("HashToken", "stale-token").Return("stale-hash")
	fx.sessionRepo.On("FindSessionByHash", ctx, "stale-hash").Return(nil, repository.ErrSessionNotFound)

	decision, err := fx.service.AuthorizeOwnerAction(ctx, "stale-token", 42)

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, usecase.DecisionReasonInvalidSession, decision.Reason)
	assert.ErrorIs(t, decision.Err(), domainerrors.ErrInvalidSession)
}

func TestAuthorizationService_AuthorizeOwnerAction_StoreFailure(t *testing.T) {
	fx := createTestAuthorizationService(t)
	ctx := context.Background()

	fx.tokenService.On("HashToken", "raw-token").Return("stored-hash")
	fx.sessionRepo.On("FindSessionByHash", ctx, "stored-hash").Return(nil, errors.New("connection reset"))

	decision, err := fx.service.AuthorizeOwnerAction(ctx, "raw-token", 42)

	require.Error(t, err)
	assert.False(t, decision.Allowed)
}

func TestAuthorizationService_AuthorizeSelfAction_Allow(t *testing.T) {
	fx := createTestAuthorizationService(t)
	ctx := context.Background()

	fx.tokenService.On("HashToken", "raw-token").Return("stored-hash")
	fx.sessionRepo.On("FindSessionByHash", ctx, "stored-hash").Return(validTestSession(42), nil)

	decision, err := fx.service.AuthorizeSelfAction(ctx, "raw-token")

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, int64(42), decision.UserID)
}

func TestAuthorizationService_AuthorizeSelfAction_DenyInvalidSession(t *testing.T) {
	fx := createTestAuthorizationService(t)
	ctx := context.Background()

	fx.tokenService.On("HashToken", "stale-token").Return("stale-hash")
	fx.sessionRepo.On("FindSessionByHash", ctx, "stale-hash").Return(nil, repository.ErrSessionExpired)

	decision, err := fx.service.AuthorizeSelfAction(ctx, "stale-token")

	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, usecase.DecisionReasonInvalidSession, decision.Reason)
	assert.ErrorIs(t, decision.Err(), domainerrors.ErrInvalidSession)
}
