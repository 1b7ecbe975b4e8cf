// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// recipeRepository implements the domain.RecipeRepository interface using GORM.
type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository is the constructor for recipeRepository.
func NewRecipeRepository(db *gorm.DB) repository.RecipeRepository {
	return &recipeRepository{db: db}
}

// Create persists a new recipe and fills in its generated ID.
func (repo *recipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	recipeM := fromRecipeDomain(recipe)

	if err := repo.db.WithContext(ctx).Create(recipeM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required recipe information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create recipe")
	}

	recipe.ID = recipeM.ID
	recipe.CreatedAt = recipeM.CreatedAt
	recipe.UpdatedAt = recipeM.UpdatedAt

	return nil
}

// FindByID retrieves a single recipe by its unique ID.
func (repo *recipeRepository) FindByID(ctx context.Context, id int64) (*entity.Recipe, error) {
	var recipeM model.RecipeModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&recipeM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecipeNotFound
		}

		return nil, errors.Wrap(err, "failed to find recipe by id")
	}

	return toRecipeDomain(&recipeM), nil
}

// List retrieves recipes newest first, optionally filtered by category.
func (repo *recipeRepository) List(ctx context.Context, filter repository.RecipeFilter) ([]*entity.Recipe, error) {
	tx := repo.db.WithContext(ctx).Model(&model.RecipeModel{})

	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}

	var recipeMs []model.RecipeModel
	if err := tx.Order("created_at DESC").Find(&recipeMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recipes")
	}

	return toRecipeDomains(recipeMs), nil
}

// FindByUserID retrieves all recipes owned by a user, newest first.
func (repo *recipeRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Recipe, error) {
	var recipeMs []model.RecipeModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipeMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find recipes by user id")
	}

	return toRecipeDomains(recipeMs), nil
}

// Update modifies an existing recipe.
func (repo *recipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	recipeM := fromRecipeDomain(recipe)

	result := repo.db.WithContext(ctx).
		Model(&model.RecipeModel{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]any{
			"title":       recipeM.Title,
			"description": recipeM.Description,
			"category":    recipeM.Category,
			"image_url":   recipeM.ImageURL,
			"ingredients": recipeM.Ingredients,
			"steps":       recipeM.Steps,
		})

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update recipe")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRecipeNotFound
	}

	return nil
}

// Delete removes a recipe by ID.
func (repo *recipeRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RecipeModel{})

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete recipe")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRecipeNotFound
	}

	return nil
}

// GetOwnerID returns the owning user's ID without loading the full row.
func (repo *recipeRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := repo.db.WithContext(ctx).
		Model(&model.RecipeModel{}).
		Select("user_id").
		Where("id = ?", id).
		Take(&ownerID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, repository.ErrRecipeNotFound
		}

		return 0, errors.Wrap(err, "failed to get recipe owner")
	}

	return ownerID, nil
}

// toRecipeDomain maps a persistence model to a pure domain entity.
func toRecipeDomain(recipeM *model.RecipeModel) *entity.Recipe {
	return &entity.Recipe{
		ID:          recipeM.ID,
		UserID:      recipeM.UserID,
		Title:       recipeM.Title,
		Description: recipeM.Description,
		Category:    recipeM.Category,
		ImageURL:    recipeM.ImageURL,
		Ingredients: recipeM.Ingredients,
		Steps:       recipeM.Steps,
		CreatedAt:   recipeM.CreatedAt,
		UpdatedAt:   recipeM.UpdatedAt,
	}
}

func toRecipeDomains(recipeMs []model.RecipeModel) []*entity.Recipe {
	recipes := make([]*entity.Recipe, len(recipeMs))
	for i := range recipeMs {
		recipes[i] = toRecipeDomain(&recipeMs[i])
	}

	return recipes
}

// fromRecipeDomain maps a domain entity to a GORM persistence model.
func fromRecipeDomain(recipe *entity.Recipe) *model.RecipeModel {
	return &model.RecipeModel{
		ID:          recipe.ID,
		UserID:      recipe.UserID,
		Title:       recipe.Title,
		Description: recipe.Description,
		Category:    recipe.Category,
		ImageURL:    recipe.ImageURL,
		Ingredients: datatypes.NewJSONSlice(recipe.Ingredients),
		Steps:       datatypes.NewJSONSlice(recipe.Steps),
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
}
