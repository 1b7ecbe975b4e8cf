// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"cookbook/internal/domain/entity"
)

// --- Input DTOs ---

// CreateRecipeInput defines the data required to publish a new recipe.
type CreateRecipeInput struct {
	SessionToken string
	Title        string
	Description  string
	Category     string
	Ingredients  []string
	Steps        []string
}

// UpdateRecipeInput defines the data required to modify an existing recipe.
// Only the recipe's owner may perform the update.
type UpdateRecipeInput struct {
	SessionToken string
	RecipeID     int64
	Title        string
	Description  string
	Category     string
	Ingredients  []string
	Steps        []string
}

// ListRecipesInput narrows the public recipe listing.
type ListRecipesInput struct {
	Category string
	Limit    int
	Offset   int
}

// UploadRecipeImageInput carries an image upload for a recipe the caller owns.
type UploadRecipeImageInput struct {
	SessionToken string
	RecipeID     int64
	ContentType  string
	Size         int64
	Body         io.Reader
}

// RecipeUsecase defines the interface for recipe-related business operations.
// Reads are public; every mutation passes through the owner-action guard.
type RecipeUsecase interface {
	CreateRecipe(ctx context.Context, input *CreateRecipeInput) (*entity.Recipe, error)
	GetRecipe(ctx context.Context, recipeID int64) (*entity.Recipe, error)
	ListRecipes(ctx context.Context, input *ListRecipesInput) ([]*entity.Recipe, error)
	ListUserRecipes(ctx context.Context, userID int64) ([]*entity.Recipe, error)
	UpdateRecipe(ctx context.Context, input *UpdateRecipeInput) (*entity.Recipe, error)
	DeleteRecipe(ctx context.Context, sessionToken string, recipeID int64) error

	// UploadRecipeImage stores the image and returns the recipe with its
	// public image URL recorded.
	UploadRecipeImage(ctx context.Context, input *UploadRecipeImageInput) (*entity.Recipe, error)

	// ShareQRCode returns a PNG QR code encoding the recipe's public share
	// URL. The recipe must exist; no session is required.
	ShareQRCode(ctx context.Context, recipeID int64) ([]byte, error)
}
