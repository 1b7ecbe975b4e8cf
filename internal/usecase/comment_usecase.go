// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"cookbook/internal/domain/entity"
)

// CreateCommentInput defines the data required to comment on a recipe.
type CreateCommentInput struct {
	SessionToken string
	RecipeID     int64
	Body         string
}

// CommentUsecase defines the interface for comment-related business
// operations. Listing is public; deletion is restricted to the author.
type CommentUsecase interface {
	CreateComment(ctx context.Context, input *CreateCommentInput) (*entity.Comment, error)
	ListComments(ctx context.Context, recipeID int64) ([]*entity.Comment, error)
	DeleteComment(ctx context.Context, sessionToken string, commentID int64) error
}
