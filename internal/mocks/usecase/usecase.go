// Package usecase contains hand-written testify mocks for the use case
// interfaces, used by sibling use case and handler tests.
package usecase

import (
	"context"

	"cookbook/internal/domain/entity"
	"cookbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAuthorizationUsecase mocks usecase.AuthorizationUsecase.
type MockAuthorizationUsecase struct {
	mock.Mock
}

var _ usecase.AuthorizationUsecase = (*MockAuthorizationUsecase)(nil)

// NewMockAuthorizationUsecase creates a new mock bound to the test's lifecycle.
func NewMockAuthorizationUsecase(t mockConstructorTestingT) *MockAuthorizationUsecase {
	m := &MockAuthorizationUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthorizationUsecase) ResolveSession(ctx context.Context, sessionToken string) (*entity.Session, error) {
	args := m.Called(ctx, sessionToken)
	if session, ok := args.Get(0).(*entity.Session); ok {
		return session, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthorizationUsecase) AuthorizeOwnerAction(ctx context.Context, sessionToken string, resourceOwnerID int64) (usecase.Decision, error) {
	args := m.Called(ctx, sessionToken, resourceOwnerID)

	return args.Get(0).(usecase.Decision), args.Error(1)
}

func (m *MockAuthorizationUsecase) AuthorizeSelfAction(ctx context.Context, sessionToken string) (usecase.Decision, error) {
	args := m.Called(ctx, sessionToken)

	return args.Get(0).(usecase.Decision), args.Error(1)
}

// MockAuthUsecase mocks usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

var _ usecase.AuthUsecase = (*MockAuthUsecase)(nil)

// NewMockAuthUsecase creates a new mock bound to the test's lifecycle.
func NewMockAuthUsecase(t mockConstructorTestingT) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthUsecase) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.SignupOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if output, ok := args.Get(0).(*usecase.LoginOutput); ok {
		return output, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, sessionToken string) error {
	args := m.Called(ctx, sessionToken)

	return args.Error(0)
}

func (m *MockAuthUsecase) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAuthUsecase) GetActiveSessions(ctx context.Context, sessionToken string) ([]*usecase.SessionInfo, error) {
	args := m.Called(ctx, sessionToken)
	if infos, ok := args.Get(0).([]*usecase.SessionInfo); ok {
		return infos, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) RevokeSession(ctx context.Context, sessionToken string, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionToken, sessionID)

	return args.Error(0)
}

func (m *MockAuthUsecase) LogoutAllDevices(ctx context.Context, sessionToken string) error {
	args := m.Called(ctx, sessionToken)

	return args.Error(0)
}
