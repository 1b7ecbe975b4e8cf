// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"cookbook/config"
	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	"cookbook/internal/usecase"
	"cookbook/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo      repository.UserRepository
	authz         usecase.AuthorizationUsecase
	imageStorage  service.ImageStorage
	maxUploadSize int64
	logger        *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Authz        usecase.AuthorizationUsecase
	ImageStorage service.ImageStorage
	Config       *config.Config
	Logger       *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	var maxUploadSize int64
	if params.Config != nil && params.Config.Storage != nil {
		maxUploadSize = params.Config.Storage.MaxUploadSize
	}

	return &profileService{
		userRepo:      params.UserRepo,
		authz:         params.Authz,
		imageStorage:  params.ImageStorage,
		maxUploadSize: maxUploadSize,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the caller's own account.
func (srv *profileService) GetProfile(ctx context.Context, sessionToken string) (*entity.User, error) {
	session, err := srv.authz.ResolveSession(ctx, sessionToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve session")
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user.Sanitized(), nil
}

// GetPublicProfile returns another user's public information.
func (srv *profileService) GetPublicProfile(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user.Sanitized(), nil
}

// UpdateProfile changes the caller's own display name. Like every mutation of
// an owned resource, it runs through the authorization guard first.
func (srv *profileService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.User, error) {
	decision, err := srv.authz.AuthorizeSelfAction(ctx, input.SessionToken)
	if err != nil {
		return nil, errors.Wrap(err, "profile update rejected")
	}
	if !decision.Allowed {
		return nil, errors.Wrap(decision.Err(), "profile update rejected")
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domainerrors.ErrMissingField.WrapMessage("username is required")
	}

	user, err := srv.userRepo.FindByID(ctx, decision.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile for update")
	}

	user.Username = username
	if err := srv.userRepo.Update(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to update profile", slog.Int64("userID", decision.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Debug("Profile updated", slog.Int64("userID", decision.UserID))

	return user.Sanitized(), nil
}

// UpdateAvatar records an externally hosted avatar URL on the caller's account.
func (srv *profileService) UpdateAvatar(ctx context.Context, input *usecase.UpdateAvatarInput) (*entity.User, error) {
	decision, err := srv.authz.AuthorizeSelfAction(ctx, input.SessionToken)
	if err != nil {
		return nil, errors.Wrap(err, "avatar update rejected")
	}
	if !decision.Allowed {
		return nil, errors.Wrap(decision.Err(), "avatar update rejected")
	}

	avatarURL := strings.TrimSpace(input.AvatarURL)
	if avatarURL == "" {
		return nil, domainerrors.ErrMissingField.WrapMessage("avatar URL is required")
	}

	user, err := srv.userRepo.FindByID(ctx, decision.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile for avatar update")
	}

	user.AvatarURL = avatarURL
	if err := srv.userRepo.Update(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to update avatar", slog.Int64("userID", decision.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update avatar")
	}

	return user.Sanitized(), nil
}

// UploadAvatar stores a new avatar image and records its public URL.
func (srv *profileService) UploadAvatar(ctx context.Context, input *usecase.UploadAvatarInput) (string, error) {
	decision, err := srv.authz.AuthorizeSelfAction(ctx, input.SessionToken)
	if err != nil {
		return "", errors.Wrap(err, "avatar upload rejected")
	}
	if !decision.Allowed {
		return "", errors.Wrap(decision.Err(), "avatar upload rejected")
	}

	if srv.maxUploadSize > 0 && input.Size > srv.maxUploadSize {
		return "", domainerrors.ErrValidationFailed.WrapMessage("image exceeds the maximum upload size of " + util.FormatBytes(srv.maxUploadSize))
	}
	if !strings.HasPrefix(input.ContentType, "image/") {
		return "", domainerrors.ErrValidationFailed.WrapMessage("uploaded file is not an image")
	}

	user, err := srv.userRepo.FindByID(ctx, decision.UserID)
	if err != nil {
		return "", errors.Wrap(err, "failed to load profile for avatar upload")
	}

	key := avatarImageKey(decision.UserID)
	url, err := srv.imageStorage.Save(ctx, key, input.ContentType, input.Body)
	if err != nil {
		srv.log(ctx).Error("Failed to store avatar", slog.Int64("userID", decision.UserID), slog.Any("error", err))

		return "", errors.Wrap(err, "failed to store avatar")
	}

	user.AvatarURL = url
	if err := srv.userRepo.Update(ctx, user); err != nil {
		// The row never learned the URL; remove the object so it does not
		// linger unreferenced.
		if delErr := srv.imageStorage.Delete(ctx, key); delErr != nil {
			srv.log(ctx).Warn("Failed to clean up unreferenced avatar", slog.String("key", key), slog.Any("error", delErr))
		}

		return "", errors.Wrap(err, "failed to record avatar URL")
	}

	srv.log(ctx).Debug("Avatar updated", slog.Int64("userID", decision.UserID))

	return url, nil
}

// avatarImageKey builds the object key an avatar is stored under. Each upload
// gets a fresh key so stale CDN caches never serve the old image.
func avatarImageKey(userID int64) string {
	return "avatars/" + strconv.FormatInt(userID, 10) + "/" + uuid.NewString()
}
