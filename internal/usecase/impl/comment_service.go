// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// commentService implements the CommentUsecase interface.
type commentService struct {
	txManager   repository.TransactionManager
	commentRepo repository.CommentRepository
	recipeRepo  repository.RecipeRepository
	authz       usecase.AuthorizationUsecase
	logger      *slog.Logger
}

// CommentServiceParams holds dependencies for CommentService, injected by Fx.
type CommentServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CommentRepo repository.CommentRepository
	RecipeRepo  repository.RecipeRepository
	Authz       usecase.AuthorizationUsecase
	Logger      *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(params CommentServiceParams) usecase.CommentUsecase {
	return &commentService{
		txManager:   params.TxManager,
		commentRepo: params.CommentRepo,
		recipeRepo:  params.RecipeRepo,
		authz:       params.Authz,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *commentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateComment attaches a comment to a recipe on behalf of the session's user.
func (srv *commentService) CreateComment(ctx context.Context, input *usecase.CreateCommentInput) (*entity.Comment, error) {
	session, err := srv.authz.ResolveSession(ctx, input.SessionToken)
	if err != nil {
		return nil, errors.Wrap(err, "comment creation rejected")
	}

	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, domainerrors.ErrMissingField.WrapMessage("comment body is required")
	}

	newComment := &entity.Comment{
		RecipeID: input.RecipeID,
		UserID:   session.UserID,
		Body:     body,
	}

	// The recipe foreign key is the existence check; a vanished recipe
	// surfaces as ErrRecipeNotFound from the insert itself.
	if err := srv.commentRepo.Create(ctx, newComment); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRecipeNotFound, "comment creation failed")
		}
		srv.log(ctx).Error("Failed to create comment", slog.Int64("recipeID", input.RecipeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create comment")
	}

	srv.log(ctx).Debug("Comment created", slog.Int64("commentID", newComment.ID), slog.Int64("recipeID", input.RecipeID))

	return newComment, nil
}

// ListComments returns all comments on a recipe, oldest first. Reads are public.
func (srv *commentService) ListComments(ctx context.Context, recipeID int64) ([]*entity.Comment, error) {
	// Distinguish "recipe with no comments" from "no such recipe".
	if _, err := srv.recipeRepo.GetOwnerID(ctx, recipeID); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRecipeNotFound, "recipe lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find recipe")
	}

	comments, err := srv.commentRepo.FindByRecipeID(ctx, recipeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	return comments, nil
}

// DeleteComment removes a comment after the owner-action guard confirms the
// caller authored it.
func (srv *commentService) DeleteComment(ctx context.Context, sessionToken string, commentID int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		commentRepo := repoFactory.NewCommentRepository()

		authorID, err := commentRepo.GetOwnerID(ctx, commentID)
		if err != nil {
			if errors.Is(err, repository.ErrCommentNotFound) {
				return errors.Wrap(domainerrors.ErrCommentNotFound, "comment lookup failed")
			}

			return errors.Wrap(err, "failed to find comment")
		}

		decision, err := srv.authz.AuthorizeOwnerAction(ctx, sessionToken, authorID)
		if err != nil {
			return errors.Wrap(err, "failed to authorize comment deletion")
		}
		if !decision.Allowed {
			return decision.Err()
		}

		if err := commentRepo.Delete(ctx, commentID); err != nil {
			return errors.Wrap(err, "failed to delete comment")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Comment deletion failed", slog.Int64("commentID", commentID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute comment deletion transaction")
	}

	srv.log(ctx).Info("Comment deleted", slog.Int64("commentID", commentID))

	return nil
}
