// Package service contains hand-written testify mocks for the domain
// service interfaces, used by the use case tests.
package service

import (
	"context"
	"io"
	"time"

	"cookbook/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

var _ service.PasswordHasher = (*MockPasswordHasher)(nil)

// NewMockPasswordHasher creates a new mock bound to the test's lifecycle.
func NewMockPasswordHasher(t mockConstructorTestingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

func (m *MockPasswordHasher) ValidatePasswordStrength(password string) error {
	args := m.Called(password)

	return args.Error(0)
}

// MockSessionTokenService mocks service.SessionTokenService.
type MockSessionTokenService struct {
	mock.Mock
}

var _ service.SessionTokenService = (*MockSessionTokenService)(nil)

// NewMockSessionTokenService creates a new mock bound to the test's lifecycle.
func NewMockSessionTokenService(t mockConstructorTestingT) *MockSessionTokenService {
	m := &MockSessionTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionTokenService) GenerateToken() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

func (m *MockSessionTokenService) HashToken(token string) string {
	args := m.Called(token)

	return args.String(0)
}

func (m *MockSessionTokenService) GetSessionDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// MockEventPublisher mocks service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

var _ service.EventPublisher = (*MockEventPublisher)(nil)

// NewMockEventPublisher creates a new mock bound to the test's lifecycle.
func NewMockEventPublisher(t mockConstructorTestingT) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishRecipeEvent(ctx context.Context, event *service.RecipeEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockImageStorage mocks service.ImageStorage.
type MockImageStorage struct {
	mock.Mock
}

var _ service.ImageStorage = (*MockImageStorage)(nil)

// NewMockImageStorage creates a new mock bound to the test's lifecycle.
func NewMockImageStorage(t mockConstructorTestingT) *MockImageStorage {
	m := &MockImageStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockImageStorage) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)

	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

// MockQRCodeService mocks service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

var _ service.QRCodeService = (*MockQRCodeService)(nil)

// NewMockQRCodeService creates a new mock bound to the test's lifecycle.
func NewMockQRCodeService(t mockConstructorTestingT) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateRecipeShareQR(recipeID int64) ([]byte, error) {
	args := m.Called(recipeID)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockQRCodeService) RecipeShareURL(recipeID int64) string {
	args := m.Called(recipeID)

	return args.String(0)
}
