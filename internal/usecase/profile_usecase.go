// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"cookbook/internal/domain/entity"
)

// UpdateProfileInput defines the mutable fields of the caller's own profile.
type UpdateProfileInput struct {
	SessionToken string
	Username     string
}

// UpdateAvatarInput points the caller's avatar at an externally hosted image.
type UpdateAvatarInput struct {
	SessionToken string
	AvatarURL    string
}

// UploadAvatarInput carries an avatar image upload for the caller's account.
type UploadAvatarInput struct {
	SessionToken string
	ContentType  string
	Size         int64
	Body         io.Reader
}

// ProfileUsecase defines the interface for user profile operations.
// Every method operates on the account behind the session token; users
// cannot read or modify other accounts through this interface.
type ProfileUsecase interface {
	// GetProfile returns the caller's own account with credential
	// material stripped.
	GetProfile(ctx context.Context, sessionToken string) (*entity.User, error)

	// GetPublicProfile returns another user's public information.
	GetPublicProfile(ctx context.Context, userID int64) (*entity.User, error)

	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.User, error)

	// UpdateAvatar records an avatar URL on the caller's account.
	UpdateAvatar(ctx context.Context, input *UpdateAvatarInput) (*entity.User, error)

	// UploadAvatar stores the image and returns its public URL.
	UploadAvatar(ctx context.Context, input *UploadAvatarInput) (string, error)
}
