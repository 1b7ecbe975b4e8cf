package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cookbook/internal/delivery/http/validator"
	"cookbook/internal/domain/entity"
	mockusecase "cookbook/internal/mocks/usecase"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup(t *testing.T) {
	uc := mockusecase.NewMockAuthUsecase(t)
	h := NewAuthHandler(uc, newDiscardTestLogger())

	uc.On("Signup", mock.Anything, &usecase.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Str0ng!pass",
	}).Return(&usecase.SignupOutput{
		User: &entity.User{
			ID:        9007199254740993, // beyond JS safe-integer range
			Username:  "alice",
			Email:     "alice@example.com",
			CreatedAt: time.Now(),
		},
	}, nil)

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"alice@example.com","password":"Str0ng!pass"}`)

	require.NoError(t, h.Signup(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	responseBody := rec.Body.String()
	// IDs travel as strings so large values survive JSON round-trips.
	assert.Contains(t, responseBody, `"id":"9007199254740993"`)
	assert.Contains(t, responseBody, `"username":"alice"`)
	assert.NotContains(t, responseBody, "password")
}

// Malformed bodies never reach the use case: the struct tags reject them at
// the handler with a 400.
func TestAuthHandler_Signup_RejectsInvalidBody(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"username":"alice","password":"Str0ng!pass"}`},
		{name: "malformed email", body: `{"username":"alice","email":"not-an-email","password":"Str0ng!pass"}`},
		{name: "missing password", body: `{"username":"alice","email":"alice@example.com"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := mockusecase.NewMockAuthUsecase(t)
			h := NewAuthHandler(uc, newDiscardTestLogger())

			c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/signup", tc.body)

			require.NoError(t, h.Signup(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
			uc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	uc := mockusecase.NewMockAuthUsecase(t)
	h := NewAuthHandler(uc, newDiscardTestLogger())

	uc.On("Login", mock.Anything, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "Str0ng!pass",
	}).Return(&usecase.LoginOutput{
		SessionToken: "opaque-session-token",
		User: &entity.User{
			ID:       1,
			Username: "alice",
			Email:    "alice@example.com",
		},
	}, nil)

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"Str0ng!pass"}`)

	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sessionToken":"opaque-session-token"`)
}

func TestAuthHandler_Logout_NoContent(t *testing.T) {
	uc := mockusecase.NewMockAuthUsecase(t)
	h := NewAuthHandler(uc, newDiscardTestLogger())

	uc.On("Logout", mock.Anything, "dead-token").Return(nil)

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/logout", "")
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer dead-token")

	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
