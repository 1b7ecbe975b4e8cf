package handler

import (
	"log/slog"
	"net/http"

	"cookbook/internal/delivery/http/middleware"
	"cookbook/internal/delivery/http/response"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for profile-related handlers.
type UserHandler struct {
	profileUC usecase.ProfileUsecase
	recipeUC  usecase.RecipeUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(profileUC usecase.ProfileUsecase, recipeUC usecase.RecipeUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		profileUC: profileUC,
		recipeUC:  recipeUC,
		logger:    logger,
	}
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required"`
}

type updateAvatarRequest struct {
	AvatarURL string `json:"avatarUrl" validate:"required,url"`
}

// GetProfile returns the caller's own account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.profileUC.GetProfile(c.Request().Context(), middleware.SessionToken(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user": toUserResponse(user),
	}, "Profile retrieved")
}

// UpdateProfile changes the caller's display name.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), &usecase.UpdateProfileInput{
		SessionToken: middleware.SessionToken(c),
		Username:     req.Username,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user": toUserResponse(user),
	}, "Profile updated")
}

// UpdateAvatar points the caller's avatar at an externally hosted image.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	var req updateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid avatar input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	user, err := h.profileUC.UpdateAvatar(c.Request().Context(), &usecase.UpdateAvatarInput{
		SessionToken: middleware.SessionToken(c),
		AvatarURL:    req.AvatarURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user": toUserResponse(user),
	}, "Avatar updated")
}

// UploadAvatar stores an uploaded avatar image for the caller.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Missing avatar file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded avatar")
	}
	defer file.Close()

	url, err := h.profileUC.UploadAvatar(c.Request().Context(), &usecase.UploadAvatarInput{
		SessionToken: middleware.SessionToken(c),
		ContentType:  fileHeader.Header.Get(echo.HeaderContentType),
		Size:         fileHeader.Size,
		Body:         file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"avatarUrl": url,
	}, "Avatar uploaded")
}

// GetPublicProfile returns another user's public information.
func (h *UserHandler) GetPublicProfile(c echo.Context) error {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	user, err := h.profileUC.GetPublicProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user": toPublicUserResponse(user),
	}, "User retrieved")
}

// ListUserRecipes returns all recipes published by a user.
func (h *UserHandler) ListUserRecipes(c echo.Context) error {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	recipes, err := h.recipeUC.ListUserRecipes(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"recipes": toRecipeResponses(recipes),
	}, "User recipes retrieved")
}
