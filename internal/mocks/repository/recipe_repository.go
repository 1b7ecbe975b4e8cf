package repository

import (
	"context"

	"cookbook/internal/domain/entity"
	"cookbook/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockRecipeRepository mocks repository.RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock
}

var _ repository.RecipeRepository = (*MockRecipeRepository)(nil)

// NewMockRecipeRepository creates a new mock bound to the test's lifecycle.
func NewMockRecipeRepository(t mockConstructorTestingT) *MockRecipeRepository {
	m := &MockRecipeRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	args := m.Called(ctx, recipe)

	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id int64) (*entity.Recipe, error) {
	args := m.Called(ctx, id)
	if recipe, ok := args.Get(0).(*entity.Recipe); ok {
		return recipe, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRecipeRepository) List(ctx context.Context, filter repository.RecipeFilter) ([]*entity.Recipe, error) {
	args := m.Called(ctx, filter)
	if recipes, ok := args.Get(0).([]*entity.Recipe); ok {
		return recipes, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRecipeRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Recipe, error) {
	args := m.Called(ctx, userID)
	if recipes, ok := args.Get(0).([]*entity.Recipe); ok {
		return recipes, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	args := m.Called(ctx, recipe)

	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockRecipeRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(int64), args.Error(1)
}
