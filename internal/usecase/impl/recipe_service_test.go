package impl

import (
	"context"
	"strings"
	"testing"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	mockRepo "cookbook/internal/mocks/repository"
	mockSvc "cookbook/internal/mocks/service"
	mockUC "cookbook/internal/mocks/usecase"
	"cookbook/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recipeServiceFixtures holds all test dependencies for recipe service tests.
type recipeServiceFixtures struct {
	service       usecase.RecipeUsecase
	txManager     *mockRepo.MockTransactionManager
	recipeRepo    *mockRepo.MockRecipeRepository
	authz         *mockUC.MockAuthorizationUsecase
	publisher     *mockSvc.MockEventPublisher
	imageStorage  *mockSvc.MockImageStorage
	qrcodeService *mockSvc.MockQRCodeService
}

func createTestRecipeService(t *testing.T) recipeServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	recipeRepo := mockRepo.NewMockRecipeRepository(t)
	authz := mockUC.NewMockAuthorizationUsecase(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	imageStorage := mockSvc.NewMockImageStorage(t)
	qrcodeService := mockSvc.NewMockQRCodeService(t)

	service := NewRecipeService(RecipeServiceParams{
		TxManager:     txManager,
		RecipeRepo:    recipeRepo,
		Authz:         authz,
		Publisher:     publisher,
		ImageStorage:  imageStorage,
		QRCodeService: qrcodeService,
		Config:        newTestConfig(0),
		Logger:        newDiscardLogger(),
	})

	return recipeServiceFixtures{
		service:       service,
		txManager:     txManager,
		recipeRepo:    recipeRepo,
		authz:         authz,
		publisher:     publisher,
		imageStorage:  imageStorage,
		qrcodeService: qrcodeService,
	}
}

func TestRecipeService_CreateRecipe_Success(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	fx.authz.On("ResolveSession", ctx, "raw-token").Return(validTestSession(1), nil)
	fx.recipeRepo.On("Create", ctx, mock.AnythingOfType("*entity.Recipe")).
		Run(func(args mock.Arguments) {
			recipe := args.Get(1).(*entity.Recipe)
			recipe.ID = 10
		}).
		Return(nil)
	fx.publisher.On("PublishRecipeEvent", ctx, mock.MatchedBy(func(event *service.RecipeEvent) bool {
		return event.EventType == service.RecipeEventCreated && event.RecipeID == "10"
	})).Return(nil)

	recipe, err := fx.service.CreateRecipe(ctx, &usecase.CreateRecipeInput{
		SessionToken: "raw-token",
		Title:        "  Shakshuka ",
		Category:     "breakfast",
		Ingredients:  []string{"eggs", "tomatoes"},
		Steps:        []string{"simmer", "crack eggs"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), recipe.ID)
	assert.Equal(t, int64(1), recipe.UserID)
	assert.Equal(t, "Shakshuka", recipe.Title)
}

func TestRecipeService_CreateRecipe_InvalidSession(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	fx.authz.On("ResolveSession", ctx, "stale-token").Return(nil, domainerrors.ErrInvalidSession)

	recipe, err := fx.service.CreateRecipe(ctx, &usecase.CreateRecipeInput{
		SessionToken: "stale-token",
		Title:        "Shakshuka",
		Category:     "breakfast",
	})

	require.Error(t, err)
	assert.Nil(t, recipe)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSession)
	fx.recipeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecipeService_CreateRecipe_ValidationFailures(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		category string
		wantErr  error
	}{
		{name: "blank title", title: "   ", category: "breakfast", wantErr: domainerrors.ErrMissingField},
		{name: "unknown category", title: "Shakshuka", category: "midnight-snack", wantErr: domainerrors.ErrValidationFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := createTestRecipeService(t)
			ctx := context.Background()

			fx.authz.On("ResolveSession", ctx, "raw-token").Return(validTestSession(1), nil)

			recipe, err := fx.service.CreateRecipe(ctx, &usecase.CreateRecipeInput{
				SessionToken: "raw-token",
				Title:        tc.title,
				Category:     tc.category,
			})

			require.Error(t, err)
			assert.Nil(t, recipe)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRecipeService_GetRecipe_NotFound(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	fx.recipeRepo.On("FindByID", ctx, int64(99)).Return(nil, repository.ErrRecipeNotFound)

	recipe, err := fx.service.GetRecipe(ctx, 99)

	require.Error(t, err)
	assert.Nil(t, recipe)
	assert.ErrorIs(t, err, domainerrors.ErrRecipeNotFound)
}

func TestRecipeService_ListRecipes_ClampsLimit(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	fx.recipeRepo.On("List", ctx, repository.RecipeFilter{Category: "dinner", Limit: maxRecipeListLimit}).
		Return([]*entity.Recipe{}, nil)

	_, err := fx.service.ListRecipes(ctx, &usecase.ListRecipesInput{Category: "dinner", Limit: 10000})

	require.NoError(t, err)
}

func TestRecipeService_ListRecipes_UnknownCategory(t *testing.T) {
	fx := createTestRecipeService(t)

	recipes, err := fx.service.ListRecipes(context.Background(), &usecase.ListRecipesInput{Category: "midnight-snack"})

	require.Error(t, err)
	assert.Nil(t, recipes)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func runRecipeTx(fx recipeServiceFixtures, ctx context.Context, txRecipeRepo *mockRepo.MockRecipeRepository, factory *mockRepo.MockRepositoryFactory) {
	factory.On("NewRecipeRepository").Return(txRecipeRepo)
	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestRecipeService_UpdateRecipe_Success(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	stored := &entity.Recipe{ID: 10, UserID: 1, Title: "Old", Category: "dinner"}

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	runRecipeTx(fx, ctx, txRecipeRepo, mockRepo.NewMockRepositoryFactory(t))

	txRecipeRepo.On("FindByID", ctx, int64(10)).Return(stored, nil)
	fx.authz.On("AuthorizeOwnerAction", ctx, "raw-token", int64(1)).Return(usecase.Allow(1), nil)
	txRecipeRepo.On("Update", ctx, mock.MatchedBy(func(r *entity.Recipe) bool {
		return r.Title == "New title" && r.Category == "dessert"
	})).Return(nil)

	updated, err := fx.service.UpdateRecipe(ctx, &usecase.UpdateRecipeInput{
		SessionToken: "raw-token",
		RecipeID:     10,
		Title:        "New title",
		Category:     "dessert",
	})

	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
}

func TestRecipeService_UpdateRecipe_DeniedForNonOwner(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	stored := &entity.Recipe{ID: 10, UserID: 2, Title: "Old", Category: "dinner"}

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	runRecipeTx(fx, ctx, txRecipeRepo, mockRepo.NewMockRepositoryFactory(t))

	txRecipeRepo.On("FindByID", ctx, int64(10)).Return(stored, nil)
	fx.authz.On("AuthorizeOwnerAction", ctx, "raw-token", int64(2)).
		Return(usecase.Deny(usecase.DecisionReasonNotOwner), nil)

	updated, err := fx.service.UpdateRecipe(ctx, &usecase.UpdateRecipeInput{
		SessionToken: "raw-token",
		RecipeID:     10,
		Title:        "Hijacked",
		Category:     "dinner",
	})

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	txRecipeRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecipeService_DeleteRecipe_Success(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	stored := &entity.Recipe{ID: 10, UserID: 1, Title: "Shakshuka", Category: "breakfast", ImageURL: "https://cdn.example.com/recipes/10/abc"}

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	txCommentRepo := mockRepo.NewMockCommentRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.On("NewCommentRepository").Return(txCommentRepo)
	runRecipeTx(fx, ctx, txRecipeRepo, factory)

	txRecipeRepo.On("FindByID", ctx, int64(10)).Return(stored, nil)
	fx.authz.On("AuthorizeOwnerAction", ctx, "raw-token", int64(1)).Return(usecase.Allow(1), nil)
	txCommentRepo.On("DeleteByRecipeID", ctx, int64(10)).Return(nil)
	txRecipeRepo.On("Delete", ctx, int64(10)).Return(nil)
	fx.imageStorage.On("Delete", ctx, "recipes/10/abc").Return(nil)
	fx.publisher.On("PublishRecipeEvent", ctx, mock.MatchedBy(func(event *service.RecipeEvent) bool {
		return event.EventType == service.RecipeEventDeleted && event.RecipeID == "10"
	})).Return(nil)

	require.NoError(t, fx.service.DeleteRecipe(ctx, "raw-token", 10))
}

// A commented recipe must still be deletable by its owner: the comments go
// first, inside the same transaction, so the comments' recipe reference
// never blocks the recipe row.
func TestRecipeService_DeleteRecipe_RemovesCommentsFirst(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	stored := &entity.Recipe{ID: 10, UserID: 1, Title: "Shakshuka", Category: "breakfast"}

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	txCommentRepo := mockRepo.NewMockCommentRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.On("NewCommentRepository").Return(txCommentRepo)
	runRecipeTx(fx, ctx, txRecipeRepo, factory)

	txRecipeRepo.On("FindByID", ctx, int64(10)).Return(stored, nil)
	fx.authz.On("AuthorizeOwnerAction", ctx, "raw-token", int64(1)).Return(usecase.Allow(1), nil)
	txCommentRepo.On("DeleteByRecipeID", ctx, int64(10)).Return(domainerrors.NewDatabaseExecuteError(assert.AnError, "boom"))

	err := fx.service.DeleteRecipe(ctx, "raw-token", 10)

	require.Error(t, err)
	txRecipeRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishRecipeEvent", mock.Anything, mock.Anything)
}

// Deletion goes through the exact same guard as updates. A valid session for
// the wrong user must not be able to delete someone else's recipe.
func TestRecipeService_DeleteRecipe_DeniedForNonOwner(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	stored := &entity.Recipe{ID: 10, UserID: 2, Title: "Shakshuka", Category: "breakfast"}

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	runRecipeTx(fx, ctx, txRecipeRepo, mockRepo.NewMockRepositoryFactory(t))

	txRecipeRepo.On("FindByID", ctx, int64(10)).Return(stored, nil)
	fx.authz.On("AuthorizeOwnerAction", ctx, "raw-token", int64(2)).
		Return(usecase.Deny(usecase.DecisionReasonNotOwner), nil)

	err := fx.service.DeleteRecipe(ctx, "raw-token", 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	txRecipeRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishRecipeEvent", mock.Anything, mock.Anything)
}

func TestRecipeService_DeleteRecipe_InvalidSession(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	stored := &entity.Recipe{ID: 10, UserID: 2, Title: "Shakshuka", Category: "breakfast"}

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	runRecipeTx(fx, ctx, txRecipeRepo, mockRepo.NewMockRepositoryFactory(t))

	txRecipeRepo.On("FindByID", ctx, int64(10)).Return(stored, nil)
	fx.authz.On("AuthorizeOwnerAction", ctx, "stale-token", int64(2)).
		Return(usecase.Deny(usecase.DecisionReasonInvalidSession), nil)

	err := fx.service.DeleteRecipe(ctx, "stale-token", 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSession)
	txRecipeRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRecipeService_UploadRecipeImage_Success(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	stored := &entity.Recipe{ID: 10, UserID: 1, Title: "Shakshuka", Category: "breakfast"}
	body := strings.NewReader("fake image bytes")

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	runRecipeTx(fx, ctx, txRecipeRepo, mockRepo.NewMockRepositoryFactory(t))

	txRecipeRepo.On("FindByID", ctx, int64(10)).Return(stored, nil)
	fx.authz.On("AuthorizeOwnerAction", ctx, "raw-token", int64(1)).Return(usecase.Allow(1), nil)
	fx.imageStorage.On("Save", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "recipes/10/")
	}), "image/jpeg", body).Return("https://cdn.example.com/recipes/10/new", nil)
	txRecipeRepo.On("Update", ctx, mock.MatchedBy(func(r *entity.Recipe) bool {
		return r.ImageURL == "https://cdn.example.com/recipes/10/new"
	})).Return(nil)

	updated, err := fx.service.UploadRecipeImage(ctx, &usecase.UploadRecipeImageInput{
		SessionToken: "raw-token",
		RecipeID:     10,
		ContentType:  "image/jpeg",
		Size:         1024,
		Body:         body,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/recipes/10/new", updated.ImageURL)
}

// When the transaction rolls back after the object was written, the recipe
// row never references the URL, so the stored object must be removed again.
func TestRecipeService_UploadRecipeImage_CleansUpBlobOnRollback(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	stored := &entity.Recipe{ID: 10, UserID: 1, Title: "Shakshuka", Category: "breakfast"}
	body := strings.NewReader("fake image bytes")

	txRecipeRepo := mockRepo.NewMockRecipeRepository(t)
	runRecipeTx(fx, ctx, txRecipeRepo, mockRepo.NewMockRepositoryFactory(t))

	keyPrefix := func(key string) bool { return strings.HasPrefix(key, "recipes/10/") }

	txRecipeRepo.On("FindByID", ctx, int64(10)).Return(stored, nil)
	fx.authz.On("AuthorizeOwnerAction", ctx, "raw-token", int64(1)).Return(usecase.Allow(1), nil)
	fx.imageStorage.On("Save", ctx, mock.MatchedBy(keyPrefix), "image/jpeg", body).
		Return("https://cdn.example.com/recipes/10/new", nil)
	txRecipeRepo.On("Update", ctx, mock.AnythingOfType("*entity.Recipe")).
		Return(domainerrors.NewDatabaseExecuteError(assert.AnError, "boom"))
	fx.imageStorage.On("Delete", ctx, mock.MatchedBy(keyPrefix)).Return(nil)

	updated, err := fx.service.UploadRecipeImage(ctx, &usecase.UploadRecipeImageInput{
		SessionToken: "raw-token",
		RecipeID:     10,
		ContentType:  "image/jpeg",
		Size:         1024,
		Body:         body,
	})

	require.Error(t, err)
	assert.Nil(t, updated)
	fx.imageStorage.AssertCalled(t, "Delete", ctx, mock.MatchedBy(keyPrefix))
}

func TestRecipeService_UploadRecipeImage_Rejections(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		size        int64
	}{
		{name: "oversized upload", contentType: "image/jpeg", size: 2 << 20},
		{name: "non-image content type", contentType: "application/zip", size: 1024},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := createTestRecipeService(t)

			updated, err := fx.service.UploadRecipeImage(context.Background(), &usecase.UploadRecipeImageInput{
				SessionToken: "raw-token",
				RecipeID:     10,
				ContentType:  tc.contentType,
				Size:         tc.size,
				Body:         strings.NewReader("payload"),
			})

			require.Error(t, err)
			assert.Nil(t, updated)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestRecipeService_ShareQRCode_Success(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	fx.recipeRepo.On("GetOwnerID", ctx, int64(10)).Return(int64(1), nil)
	fx.qrcodeService.On("GenerateRecipeShareQR", int64(10)).Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := fx.service.ShareQRCode(ctx, 10)

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestRecipeService_ShareQRCode_RecipeNotFound(t *testing.T) {
	fx := createTestRecipeService(t)
	ctx := context.Background()

	fx.recipeRepo.On("GetOwnerID", ctx, int64(99)).Return(int64(0), repository.ErrRecipeNotFound)

	png, err := fx.service.ShareQRCode(ctx, 99)

	require.Error(t, err)
	assert.Nil(t, png)
	assert.ErrorIs(t, err, domainerrors.ErrRecipeNotFound)
	fx.qrcodeService.AssertNotCalled(t, "GenerateRecipeShareQR", mock.Anything)
}
