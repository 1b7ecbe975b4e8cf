// Package handler contains the HTTP handlers for the application.
package handler

import (
	"strconv"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/usecase"
)

// Wire representations. Numeric IDs serialize as strings so JavaScript
// clients never hit float64 precision loss on large int64 values.

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type recipeResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipeId"`
	UserID    string    `json:"userId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Current   bool      `json:"current"`
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseID parses a path or query ID. Malformed IDs are a caller mistake and
// map to a 400, not a 404.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WrapMessage("malformed numeric id")
	}

	return id, nil
}

func toUserResponse(user *entity.User) *userResponse {
	return &userResponse{
		ID:        formatID(user.ID),
		Username:  user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

// toPublicUserResponse strips the email; other users never see it.
func toPublicUserResponse(user *entity.User) *userResponse {
	resp := toUserResponse(user)
	resp.Email = ""

	return resp
}

func toRecipeResponse(recipe *entity.Recipe) *recipeResponse {
	ingredients := recipe.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	steps := recipe.Steps
	if steps == nil {
		steps = []string{}
	}

	return &recipeResponse{
		ID:          formatID(recipe.ID),
		UserID:      formatID(recipe.UserID),
		Title:       recipe.Title,
		Description: recipe.Description,
		Category:    recipe.Category,
		ImageURL:    recipe.ImageURL,
		Ingredients: ingredients,
		Steps:       steps,
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
}

func toRecipeResponses(recipes []*entity.Recipe) []*recipeResponse {
	responses := make([]*recipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		responses = append(responses, toRecipeResponse(recipe))
	}

	return responses
}

func toCommentResponse(comment *entity.Comment) *commentResponse {
	return &commentResponse{
		ID:        formatID(comment.ID),
		RecipeID:  formatID(comment.RecipeID),
		UserID:    formatID(comment.UserID),
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

func toCommentResponses(comments []*entity.Comment) []*commentResponse {
	responses := make([]*commentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, toCommentResponse(comment))
	}

	return responses
}

func toSessionResponses(infos []*usecase.SessionInfo) []*sessionResponse {
	responses := make([]*sessionResponse, 0, len(infos))
	for _, info := range infos {
		responses = append(responses, &sessionResponse{
			ID:        info.ID.String(),
			CreatedAt: info.CreatedAt,
			ExpiresAt: info.ExpiresAt,
			Current:   info.Current,
		})
	}

	return responses
}
