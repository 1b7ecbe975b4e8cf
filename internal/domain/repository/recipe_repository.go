// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"cookbook/internal/domain/entity"
)

// ErrRecipeNotFound is returned when a recipe is not found.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeFilter narrows List queries. Zero values mean "no constraint".
type RecipeFilter struct {
	Category string
	Limit    int
	Offset   int
}

// RecipeRepository defines the standard operations for recipe persistence.
type RecipeRepository interface {
	// Create persists a new recipe and fills in its generated ID.
	Create(ctx context.Context, recipe *entity.Recipe) error

	// FindByID retrieves a single recipe by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Recipe, error)

	// List retrieves recipes newest first, optionally filtered by category.
	List(ctx context.Context, filter RecipeFilter) ([]*entity.Recipe, error)

	// FindByUserID retrieves all recipes owned by a user, newest first.
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Recipe, error)

	// Update modifies an existing recipe.
	Update(ctx context.Context, recipe *entity.Recipe) error

	// Delete removes a recipe by ID.
	Delete(ctx context.Context, id int64) error

	// GetOwnerID returns the owning user's ID without loading the full row.
	// This is the ownership source of truth for authorization checks.
	GetOwnerID(ctx context.Context, id int64) (int64, error)
}
