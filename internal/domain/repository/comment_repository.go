// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"cookbook/internal/domain/entity"
)

// ErrCommentNotFound is returned when a comment is not found.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository defines the standard operations for comment persistence.
type CommentRepository interface {
	// Create persists a new comment and fills in its generated ID.
	Create(ctx context.Context, comment *entity.Comment) error

	// FindByID retrieves a single comment by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)

	// FindByRecipeID retrieves all comments on a recipe, oldest first.
	FindByRecipeID(ctx context.Context, recipeID int64) ([]*entity.Comment, error)

	// Delete removes a comment by ID.
	Delete(ctx context.Context, id int64) error

	// DeleteByRecipeID removes every comment on a recipe. Zero rows is
	// success: a recipe without comments has nothing to clean up.
	DeleteByRecipeID(ctx context.Context, recipeID int64) error

	// GetOwnerID returns the comment author's user ID without loading the full row.
	GetOwnerID(ctx context.Context, id int64) (int64, error)
}
