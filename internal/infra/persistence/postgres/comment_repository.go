// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// commentRepository implements the domain.CommentRepository interface using GORM.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// Create persists a new comment and fills in its generated ID.
func (repo *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentM := fromCommentDomain(comment)

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrRecipeNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required comment information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	comment.ID = commentM.ID
	comment.CreatedAt = commentM.CreatedAt

	return nil
}

// FindByID retrieves a single comment by its unique ID.
func (repo *commentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	var commentM model.CommentModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&commentM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to find comment by id")
	}

	return toCommentDomain(&commentM), nil
}

// FindByRecipeID retrieves all comments on a recipe, oldest first.
func (repo *commentRepository) FindByRecipeID(ctx context.Context, recipeID int64) ([]*entity.Comment, error) {
	var commentMs []model.CommentModel
	err := repo.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at ASC").
		Find(&commentMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find comments by recipe id")
	}

	comments := make([]*entity.Comment, len(commentMs))
	for i := range commentMs {
		comments[i] = toCommentDomain(&commentMs[i])
	}

	return comments, nil
}

// Delete removes a comment by ID.
func (repo *commentRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CommentModel{})

	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete comment")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// DeleteByRecipeID removes every comment on a recipe. Recipe deletion calls
// this in the same transaction so the recipe row's foreign key never blocks it.
func (repo *commentRepository) DeleteByRecipeID(ctx context.Context, recipeID int64) error {
	err := repo.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&model.CommentModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete comments by recipe id")
	}

	return nil
}

// GetOwnerID returns the comment author's user ID without loading the full row.
func (repo *commentRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	var ownerID int64
	err := repo.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Select("user_id").
		Where("id = ?", id).
		Take(&ownerID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, repository.ErrCommentNotFound
		}

		return 0, errors.Wrap(err, "failed to get comment owner")
	}

	return ownerID, nil
}

// toCommentDomain maps a persistence model to a pure domain entity.
func toCommentDomain(commentM *model.CommentModel) *entity.Comment {
	return &entity.Comment{
		ID:        commentM.ID,
		RecipeID:  commentM.RecipeID,
		UserID:    commentM.UserID,
		Body:      commentM.Body,
		CreatedAt: commentM.CreatedAt,
	}
}

// fromCommentDomain maps a domain entity to a GORM persistence model.
func fromCommentDomain(comment *entity.Comment) *model.CommentModel {
	return &model.CommentModel{
		ID:        comment.ID,
		RecipeID:  comment.RecipeID,
		UserID:    comment.UserID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}
