// Package repository contains hand-written testify mocks for the
// persistence-layer interfaces, used by the use case tests.
package repository

import (
	"context"

	"cookbook/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockTransactionManager mocks repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

var _ repository.TransactionManager = (*MockTransactionManager)(nil)

// NewMockTransactionManager creates a new mock bound to the test's lifecycle.
func NewMockTransactionManager(t mockConstructorTestingT) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Execute either runs a caller-supplied stand-in for the real transaction
// (pass a func(ctx, fn) error to Return) or returns the canned error.
func (m *MockTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if execFn, ok := args.Get(0).(func(context.Context, func(repository.RepositoryFactory) error) error); ok {
		return execFn(ctx, fn)
	}

	return args.Error(0)
}

// MockRepositoryFactory mocks repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

var _ repository.RepositoryFactory = (*MockRepositoryFactory)(nil)

// NewMockRepositoryFactory creates a new mock bound to the test's lifecycle.
func NewMockRepositoryFactory(t mockConstructorTestingT) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) NewUserRepository() repository.UserRepository {
	args := m.Called()

	return args.Get(0).(repository.UserRepository)
}

func (m *MockRepositoryFactory) NewSessionRepository() repository.SessionRepository {
	args := m.Called()

	return args.Get(0).(repository.SessionRepository)
}

func (m *MockRepositoryFactory) NewRecipeRepository() repository.RecipeRepository {
	args := m.Called()

	return args.Get(0).(repository.RecipeRepository)
}

func (m *MockRepositoryFactory) NewCommentRepository() repository.CommentRepository {
	args := m.Called()

	return args.Get(0).(repository.CommentRepository)
}
