package repository

import (
	"context"

	"cookbook/internal/domain/entity"
	"cookbook/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository mocks repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

var _ repository.SessionRepository = (*MockSessionRepository)(nil)

// NewMockSessionRepository creates a new mock bound to the test's lifecycle.
func NewMockSessionRepository(t mockConstructorTestingT) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)

	return args.Error(0)
}

func (m *MockSessionRepository) FindSessionByHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	args := m.Called(ctx, tokenHash)
	if session, ok := args.Get(0).(*entity.Session); ok {
		return session, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSessionRepository) FindSessionsByUserID(ctx context.Context, userID int64) ([]*entity.Session, error) {
	args := m.Called(ctx, userID)
	if sessions, ok := args.Get(0).([]*entity.Session); ok {
		return sessions, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockSessionRepository) DeleteSessionByHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)

	return args.Error(0)
}

func (m *MockSessionRepository) DeleteSessionsByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpiredSessions(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockSessionRepository) CountActiveSessionsByUserID(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)

	return args.Int(0), args.Error(1)
}
