// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"cookbook/config"
	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	"cookbook/internal/usecase"
	"cookbook/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultRecipeListLimit = 20
	maxRecipeListLimit     = 100
)

// recipeService implements the RecipeUsecase interface.
type recipeService struct {
	txManager     repository.TransactionManager
	recipeRepo    repository.RecipeRepository
	authz         usecase.AuthorizationUsecase
	publisher     service.EventPublisher
	imageStorage  service.ImageStorage
	qrcodeService service.QRCodeService
	maxUploadSize int64
	logger        *slog.Logger
}

// RecipeServiceParams holds dependencies for RecipeService, injected by Fx.
type RecipeServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	RecipeRepo    repository.RecipeRepository
	Authz         usecase.AuthorizationUsecase
	Publisher     service.EventPublisher
	ImageStorage  service.ImageStorage
	QRCodeService service.QRCodeService
	Config        *config.Config
	Logger        *slog.Logger
}

// NewRecipeService is the constructor for recipeService.
func NewRecipeService(params RecipeServiceParams) usecase.RecipeUsecase {
	var maxUploadSize int64
	if params.Config != nil && params.Config.Storage != nil {
		maxUploadSize = params.Config.Storage.MaxUploadSize
	}

	return &recipeService{
		txManager:     params.TxManager,
		recipeRepo:    params.RecipeRepo,
		authz:         params.Authz,
		publisher:     params.Publisher,
		imageStorage:  params.ImageStorage,
		qrcodeService: params.QRCodeService,
		maxUploadSize: maxUploadSize,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *recipeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func validateRecipeFields(title, category string) error {
	if strings.TrimSpace(title) == "" {
		return domainerrors.ErrMissingField.WrapMessage("recipe title is required")
	}
	if !entity.Category(category).IsValid() {
		return domainerrors.ErrValidationFailed.WrapMessage("unknown recipe category")
	}

	return nil
}

// CreateRecipe publishes a new recipe owned by the session's user.
func (srv *recipeService) CreateRecipe(ctx context.Context, input *usecase.CreateRecipeInput) (*entity.Recipe, error) {
	session, err := srv.authz.ResolveSession(ctx, input.SessionToken)
	if err != nil {
		return nil, errors.Wrap(err, "recipe creation rejected")
	}

	if err := validateRecipeFields(input.Title, input.Category); err != nil {
		return nil, err
	}

	newRecipe := &entity.Recipe{
		UserID:      session.UserID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Ingredients: input.Ingredients,
		Steps:       input.Steps,
	}

	if err := srv.recipeRepo.Create(ctx, newRecipe); err != nil {
		srv.log(ctx).Error("Failed to create recipe", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create recipe")
	}

	srv.publishRecipeEvent(ctx, service.RecipeEventCreated, newRecipe)
	srv.log(ctx).Debug("Recipe created", slog.Int64("recipeID", newRecipe.ID), slog.Int64("userID", session.UserID))

	return newRecipe, nil
}

// GetRecipe returns a single recipe. Reads are public.
func (srv *recipeService) GetRecipe(ctx context.Context, recipeID int64) (*entity.Recipe, error) {
	recipe, err := srv.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRecipeNotFound, "recipe lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find recipe")
	}

	return recipe, nil
}

// ListRecipes returns recipes newest first, optionally filtered by category.
func (srv *recipeService) ListRecipes(ctx context.Context, input *usecase.ListRecipesInput) ([]*entity.Recipe, error) {
	if input.Category != "" && !entity.Category(input.Category).IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown recipe category")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultRecipeListLimit
	}
	if limit > maxRecipeListLimit {
		limit = maxRecipeListLimit
	}

	recipes, err := srv.recipeRepo.List(ctx, repository.RecipeFilter{
		Category: input.Category,
		Limit:    limit,
		Offset:   max(input.Offset, 0),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recipes")
	}

	return recipes, nil
}

// ListUserRecipes returns all recipes published by a user, newest first.
func (srv *recipeService) ListUserRecipes(ctx context.Context, userID int64) ([]*entity.Recipe, error) {
	recipes, err := srv.recipeRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user recipes")
	}

	return recipes, nil
}

// UpdateRecipe modifies a recipe after the owner-action guard allows it.
func (srv *recipeService) UpdateRecipe(ctx context.Context, input *usecase.UpdateRecipeInput) (*entity.Recipe, error) {
	if err := validateRecipeFields(input.Title, input.Category); err != nil {
		return nil, err
	}

	var updated *entity.Recipe
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		recipeRepo := repoFactory.NewRecipeRepository()

		recipe, err := srv.authorizeRecipeMutation(ctx, recipeRepo, input.SessionToken, input.RecipeID)
		if err != nil {
			return err
		}

		recipe.Title = strings.TrimSpace(input.Title)
		recipe.Description = input.Description
		recipe.Category = input.Category
		recipe.Ingredients = input.Ingredients
		recipe.Steps = input.Steps

		if err := recipeRepo.Update(ctx, recipe); err != nil {
			return errors.Wrap(err, "failed to update recipe")
		}

		updated = recipe

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Recipe update failed", slog.Int64("recipeID", input.RecipeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute recipe update transaction")
	}

	return updated, nil
}

// DeleteRecipe removes a recipe after the owner-action guard allows it.
// The guard runs here exactly as it does for updates; deletion is not a
// side door around ownership.
func (srv *recipeService) DeleteRecipe(ctx context.Context, sessionToken string, recipeID int64) error {
	var deleted *entity.Recipe
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		recipeRepo := repoFactory.NewRecipeRepository()

		recipe, err := srv.authorizeRecipeMutation(ctx, recipeRepo, sessionToken, recipeID)
		if err != nil {
			return err
		}

		// The comments table holds a foreign key to the recipe row, so the
		// comments have to go first, in the same transaction.
		if err := repoFactory.NewCommentRepository().DeleteByRecipeID(ctx, recipeID); err != nil {
			return errors.Wrap(err, "failed to delete recipe comments")
		}

		if err := recipeRepo.Delete(ctx, recipeID); err != nil {
			return errors.Wrap(err, "failed to delete recipe")
		}

		deleted = recipe

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Recipe deletion failed", slog.Int64("recipeID", recipeID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute recipe deletion transaction")
	}

	if deleted.ImageURL != "" {
		// Best effort: the recipe row is already gone.
		if err := srv.imageStorage.Delete(ctx, imageKeyFromURL(deleted.ImageURL)); err != nil {
			srv.log(ctx).Warn("Failed to delete recipe image", slog.Int64("recipeID", recipeID), slog.Any("error", err))
		}
	}

	srv.publishRecipeEvent(ctx, service.RecipeEventDeleted, deleted)
	srv.log(ctx).Info("Recipe deleted", slog.Int64("recipeID", recipeID))

	return nil
}

// authorizeRecipeMutation loads the recipe and runs the owner-action guard.
// Every recipe mutation funnels through here.
func (srv *recipeService) authorizeRecipeMutation(ctx context.Context, recipeRepo repository.RecipeRepository, sessionToken string, recipeID int64) (*entity.Recipe, error) {
	recipe, err := recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRecipeNotFound, "recipe lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find recipe")
	}

	decision, err := srv.authz.AuthorizeOwnerAction(ctx, sessionToken, recipe.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to authorize recipe mutation")
	}
	if !decision.Allowed {
		return nil, decision.Err()
	}

	return recipe, nil
}

// UploadRecipeImage stores an image for a recipe the caller owns and records
// its public URL on the recipe.
func (srv *recipeService) UploadRecipeImage(ctx context.Context, input *usecase.UploadRecipeImageInput) (*entity.Recipe, error) {
	if srv.maxUploadSize > 0 && input.Size > srv.maxUploadSize {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("image exceeds the maximum upload size of " + util.FormatBytes(srv.maxUploadSize))
	}
	if !strings.HasPrefix(input.ContentType, "image/") {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("uploaded file is not an image")
	}

	var updated *entity.Recipe
	var savedKey string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		recipeRepo := repoFactory.NewRecipeRepository()

		recipe, err := srv.authorizeRecipeMutation(ctx, recipeRepo, input.SessionToken, input.RecipeID)
		if err != nil {
			return err
		}

		key := recipeImageKey(recipe.ID)
		url, err := srv.imageStorage.Save(ctx, key, input.ContentType, input.Body)
		if err != nil {
			return errors.Wrap(err, "failed to store recipe image")
		}
		savedKey = key

		recipe.ImageURL = url
		if err := recipeRepo.Update(ctx, recipe); err != nil {
			return errors.Wrap(err, "failed to record recipe image URL")
		}

		updated = recipe

		return nil
	})
	if err != nil {
		if savedKey != "" {
			// The rollback dropped the URL, so the stored object is
			// unreachable. Best effort: a leftover only wastes space.
			if delErr := srv.imageStorage.Delete(ctx, savedKey); delErr != nil {
				srv.log(ctx).Warn("Failed to clean up unreferenced recipe image", slog.String("key", savedKey), slog.Any("error", delErr))
			}
		}
		srv.log(ctx).Warn("Recipe image upload failed", slog.Int64("recipeID", input.RecipeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute recipe image transaction")
	}

	return updated, nil
}

// ShareQRCode renders a QR code pointing at the recipe's public page.
func (srv *recipeService) ShareQRCode(ctx context.Context, recipeID int64) ([]byte, error) {
	// Confirm the recipe exists before handing out a share code for it.
	if _, err := srv.recipeRepo.GetOwnerID(ctx, recipeID); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRecipeNotFound, "recipe lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find recipe")
	}

	png, err := srv.qrcodeService.GenerateRecipeShareQR(recipeID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate share QR code", slog.Int64("recipeID", recipeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate share QR code")
	}

	return png, nil
}

// publishRecipeEvent emits a lifecycle event for downstream consumers.
// Publishing failures are logged, never surfaced: the write already happened.
func (srv *recipeService) publishRecipeEvent(ctx context.Context, eventType string, recipe *entity.Recipe) {
	event := &service.RecipeEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		EventType: eventType,
		RecipeID:  strconv.FormatInt(recipe.ID, 10),
		UserID:    strconv.FormatInt(recipe.UserID, 10),
		Title:     recipe.Title,
		Category:  recipe.Category,
	}

	if err := srv.publisher.PublishRecipeEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish recipe event",
			slog.String("eventType", eventType),
			slog.Int64("recipeID", recipe.ID),
			slog.Any("error", err))
	}
}

// recipeImageKey builds the object key a recipe's image is stored under.
// Re-uploads get a fresh key so stale CDN caches never serve the old image.
func recipeImageKey(recipeID int64) string {
	return "recipes/" + strconv.FormatInt(recipeID, 10) + "/" + uuid.NewString()
}

// imageKeyFromURL recovers the object key from a stored public URL.
func imageKeyFromURL(imageURL string) string {
	const marker = "/recipes/"
	if idx := strings.Index(imageURL, marker); idx >= 0 {
		return imageURL[idx+1:]
	}

	return imageURL
}
