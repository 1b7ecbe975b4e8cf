package impl

import (
	"context"
	"strings"
	"testing"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	mockRepo "cookbook/internal/mocks/repository"
	mockSvc "cookbook/internal/mocks/service"
	mockUC "cookbook/internal/mocks/usecase"
	"cookbook/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// profileServiceFixtures holds all test dependencies for profile service tests.
type profileServiceFixtures struct {
	service      usecase.ProfileUsecase
	userRepo     *mockRepo.MockUserRepository
	authz        *mockUC.MockAuthorizationUsecase
	imageStorage *mockSvc.MockImageStorage
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	authz := mockUC.NewMockAuthorizationUsecase(t)
	imageStorage := mockSvc.NewMockImageStorage(t)

	service := NewProfileService(ProfileServiceParams{
		UserRepo:     userRepo,
		Authz:        authz,
		ImageStorage: imageStorage,
		Config:       newTestConfig(0),
		Logger:       newDiscardLogger(),
	})

	return profileServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		authz:        authz,
		imageStorage: imageStorage,
	}
}

func TestProfileService_GetProfile_StripsCredentials(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.authz.On("ResolveSession", ctx, "raw-token").Return(validTestSession(1), nil)
	fx.userRepo.On("FindByID", ctx, int64(1)).Return(&entity.User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed-password",
	}, nil)

	user, err := fx.service.GetProfile(ctx, "raw-token")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)
}

func TestProfileService_GetProfile_InvalidSession(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.authz.On("ResolveSession", ctx, "stale-token").Return(nil, domainerrors.ErrInvalidSession)

	user, err := fx.service.GetProfile(ctx, "stale-token")

	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSession)
}

func TestProfileService_GetPublicProfile_NotFound(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByID", ctx, int64(99)).Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.GetPublicProfile(ctx, 99)

	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestProfileService_UpdateProfile_Success(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.authz.On("AuthorizeSelfAction", ctx, "raw-token").Return(usecase.Allow(1), nil)
	fx.userRepo.On("FindByID", ctx, int64(1)).Return(&entity.User{ID: 1, Username: "alice"}, nil)
	fx.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "alice-cooks"
	})).Return(nil)

	user, err := fx.service.UpdateProfile(ctx, &usecase.UpdateProfileInput{
		SessionToken: "raw-token",
		Username:     " alice-cooks ",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice-cooks", user.Username)
}

func TestProfileService_UpdateProfile_BlankUsername(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.authz.On("AuthorizeSelfAction", ctx, "raw-token").Return(usecase.Allow(1), nil)

	user, err := fx.service.UpdateProfile(ctx, &usecase.UpdateProfileInput{
		SessionToken: "raw-token",
		Username:     "   ",
	})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrMissingField)
}

// Profile mutations gate on the same guard as every other owned-resource
// mutation; a dead session is denied before any field is touched.
func TestProfileService_UpdateProfile_DeniedWithoutSession(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.authz.On("AuthorizeSelfAction", ctx, "stale-token").
		Return(usecase.Deny(usecase.DecisionReasonInvalidSession), nil)

	user, err := fx.service.UpdateProfile(ctx, &usecase.UpdateProfileInput{
		SessionToken: "stale-token",
		Username:     "alice-cooks",
	})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSession)
	fx.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileService_UpdateAvatar_Success(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.authz.On("AuthorizeSelfAction", ctx, "raw-token").Return(usecase.Allow(1), nil)
	fx.userRepo.On("FindByID", ctx, int64(1)).Return(&entity.User{ID: 1, Username: "alice"}, nil)
	fx.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.AvatarURL == "https://pics.example.com/alice.png"
	})).Return(nil)

	user, err := fx.service.UpdateAvatar(ctx, &usecase.UpdateAvatarInput{
		SessionToken: "raw-token",
		AvatarURL:    " https://pics.example.com/alice.png ",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://pics.example.com/alice.png", user.AvatarURL)
}

func TestProfileService_UpdateAvatar_DeniedWithoutSession(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.authz.On("AuthorizeSelfAction", ctx, "stale-token").
		Return(usecase.Deny(usecase.DecisionReasonInvalidSession), nil)

	user, err := fx.service.UpdateAvatar(ctx, &usecase.UpdateAvatarInput{
		SessionToken: "stale-token",
		AvatarURL:    "https://pics.example.com/alice.png",
	})

	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSession)
	fx.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProfileService_UploadAvatar_Success(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	body := strings.NewReader("fake image bytes")

	fx.authz.On("AuthorizeSelfAction", ctx, "raw-token").Return(usecase.Allow(1), nil)
	fx.userRepo.On("FindByID", ctx, int64(1)).Return(&entity.User{ID: 1, Username: "alice"}, nil)
	fx.imageStorage.On("Save", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "avatars/1/")
	}), "image/png", body).Return("https://cdn.example.com/avatars/1/new", nil)
	fx.userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.AvatarURL == "https://cdn.example.com/avatars/1/new"
	})).Return(nil)

	url, err := fx.service.UploadAvatar(ctx, &usecase.UploadAvatarInput{
		SessionToken: "raw-token",
		ContentType:  "image/png",
		Size:         1024,
		Body:         body,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/1/new", url)
}

// If recording the URL fails, the freshly stored object is unreachable and
// must be removed again.
func TestProfileService_UploadAvatar_CleansUpBlobOnFailure(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	body := strings.NewReader("fake image bytes")
	keyPrefix := func(key string) bool { return strings.HasPrefix(key, "avatars/1/") }

	fx.authz.On("AuthorizeSelfAction", ctx, "raw-token").Return(usecase.Allow(1), nil)
	fx.userRepo.On("FindByID", ctx, int64(1)).Return(&entity.User{ID: 1, Username: "alice"}, nil)
	fx.imageStorage.On("Save", ctx, mock.MatchedBy(keyPrefix), "image/png", body).
		Return("https://cdn.example.com/avatars/1/new", nil)
	fx.userRepo.On("Update", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.NewDatabaseExecuteError(assert.AnError, "boom"))
	fx.imageStorage.On("Delete", ctx, mock.MatchedBy(keyPrefix)).Return(nil)

	url, err := fx.service.UploadAvatar(ctx, &usecase.UploadAvatarInput{
		SessionToken: "raw-token",
		ContentType:  "image/png",
		Size:         1024,
		Body:         body,
	})

	require.Error(t, err)
	assert.Empty(t, url)
	fx.imageStorage.AssertCalled(t, "Delete", ctx, mock.MatchedBy(keyPrefix))
}

func TestProfileService_UploadAvatar_RejectsNonImage(t *testing.T) {
	fx := createTestProfileService(t)
	ctx := context.Background()

	fx.authz.On("AuthorizeSelfAction", ctx, "raw-token").Return(usecase.Allow(1), nil)

	url, err := fx.service.UploadAvatar(ctx, &usecase.UploadAvatarInput{
		SessionToken: "raw-token",
		ContentType:  "text/html",
		Size:         64,
		Body:         strings.NewReader("<html></html>"),
	})

	require.Error(t, err)
	assert.Empty(t, url)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	fx.imageStorage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
