package repository

import (
	"context"

	"cookbook/internal/domain/entity"
	"cookbook/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockCommentRepository mocks repository.CommentRepository.
type MockCommentRepository struct {
	mock.Mock
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

// NewMockCommentRepository creates a new mock bound to the test's lifecycle.
func NewMockCommentRepository(t mockConstructorTestingT) *MockCommentRepository {
	m := &MockCommentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	args := m.Called(ctx, comment)

	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	args := m.Called(ctx, id)
	if comment, ok := args.Get(0).(*entity.Comment); ok {
		return comment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCommentRepository) FindByRecipeID(ctx context.Context, recipeID int64) ([]*entity.Comment, error) {
	args := m.Called(ctx, recipeID)
	if comments, ok := args.Get(0).([]*entity.Comment); ok {
		return comments, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockCommentRepository) DeleteByRecipeID(ctx context.Context, recipeID int64) error {
	args := m.Called(ctx, recipeID)

	return args.Error(0)
}

func (m *MockCommentRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(int64), args.Error(1)
}
