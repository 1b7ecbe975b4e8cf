// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"cookbook/config"
	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/domain/service"
	"cookbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	sessionRepo       repository.SessionRepository
	hasher            service.PasswordHasher
	tokenService      service.SessionTokenService
	authz             usecase.AuthorizationUsecase
	maxActiveSessions int
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.SessionTokenService
	Authz        usecase.AuthorizationUsecase
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	maxActiveSessions := 0
	if params.Config != nil && params.Config.Auth != nil {
		maxActiveSessions = params.Config.Auth.MaxActiveSessions
	}

	return &authService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		sessionRepo:       params.SessionRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		authz:             params.Authz,
		maxActiveSessions: maxActiveSessions,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup orchestrates the complete account registration process.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	username := strings.TrimSpace(input.Username)
	email := entity.NormalizeEmail(input.Email)

	if username == "" || email == "" || input.Password == "" {
		return nil, domainerrors.ErrMissingField.WrapMessage("username, email and password are required")
	}

	srv.log(ctx).Info("Starting signup", slog.String("email", email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during signup", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "password does not meet security requirements")
	}

	// Hash outside any transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	newUser := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	// No pre-flight existence check: the unique index on email is the single
	// duplicate detector, so two racing signups cannot both win.
	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Signup rejected for duplicate email", slog.String("email", email))

			return nil, errors.Wrap(domainerrors.ErrDuplicateIdentity, "signup failed")
		}

		return nil, errors.Wrap(err, "failed to create user during signup")
	}

	srv.log(ctx).Debug("Signup completed", slog.Int64("userID", newUser.ID))

	return &usecase.SignupOutput{User: newUser.Sanitized()}, nil
}

// Login orchestrates the credential check and session issuance.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrMissingField.WrapMessage("email and password are required")
	}

	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Unknown email and wrong password produce the same error so
			// responses never confirm whether an account exists.
			srv.log(ctx).Warn("Login failed", slog.String("email", email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	// Check password outside transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	// Generate the opaque token outside the transaction.
	sessionToken, err := srv.tokenService.GenerateToken()
	if err != nil {
		srv.log(ctx).Error("Failed to generate session token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	if err := srv.persistLoginSession(ctx, user.ID, sessionToken); err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create session during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Int64("userID", user.ID))

	return &usecase.LoginOutput{
		SessionToken: sessionToken,
		User:         user.Sanitized(),
	}, nil
}

func (srv *authService) persistLoginSession(ctx context.Context, userID int64, sessionToken string) error {
	if srv.maxActiveSessions > 0 {
		// When session limit is enabled, keep lock/count/insert in one short transaction.
		if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return srv.storeSession(ctx, repoFactory, userID, sessionToken)
		}); err != nil {
			return errors.Wrap(err, "failed to execute login session transaction")
		}

		return nil
	}

	// No session limit: direct insert avoids unnecessary transaction overhead.
	return srv.storeSessionWithRepo(ctx, srv.sessionRepo, userID, sessionToken)
}

func (srv *authService) storeSession(ctx context.Context, repoFactory repository.RepositoryFactory, userID int64, sessionToken string) error {
	sessionRepo := repoFactory.NewSessionRepository()
	userRepo := repoFactory.NewUserRepository()

	if srv.maxActiveSessions > 0 {
		if err := userRepo.AcquireSessionMutex(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to lock user row for session limit check")
		}

		activeSessions, err := sessionRepo.CountActiveSessionsByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count active sessions")
		}
		if activeSessions >= srv.maxActiveSessions {
			return errors.Wrap(
				domainerrors.ErrSessionLimitExceeded,
				"active session limit exceeded",
			)
		}
	}

	return srv.storeSessionWithRepo(ctx, sessionRepo, userID, sessionToken)
}

func (srv *authService) storeSessionWithRepo(ctx context.Context, sessionRepo repository.SessionRepository, userID int64, sessionToken string) error {
	// Only the hash of the token is persisted.
	tokenHash := srv.tokenService.HashToken(sessionToken)

	newSession := &entity.Session{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(srv.tokenService.GetSessionDuration()),
	}

	if err := sessionRepo.CreateSession(ctx, newSession); err != nil {
		return errors.Wrap(err, "failed to store session")
	}

	return nil
}

// Logout invalidates a session by deleting its server-side record.
// An unknown or already-revoked token is not an error; logout is idempotent.
func (srv *authService) Logout(ctx context.Context, sessionToken string) error {
	srv.log(ctx).Info("Attempting to log out")

	tokenHash := srv.tokenService.HashToken(sessionToken)

	// Single operation - use direct repository instance
	if err := srv.sessionRepo.DeleteSessionByHash(ctx, tokenHash); err != nil {
		srv.log(ctx).Error("Failed to delete session", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete session")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// ChangePassword verifies the current password, replaces the hash and revokes
// every session of the account so stolen tokens die with the old password.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	session, err := srv.authz.ResolveSession(ctx, input.SessionToken)
	if err != nil {
		return errors.Wrap(err, "change password rejected")
	}

	if input.CurrentPassword == "" || input.NewPassword == "" {
		return domainerrors.ErrMissingField.WrapMessage("current and new password are required")
	}

	srv.log(ctx).Info("Attempting to change password", slog.Int64("userID", session.UserID))

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return errors.Wrap(err, "failed to load user for password change")
	}

	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		srv.log(ctx).Warn("Password change rejected", slog.Int64("userID", session.UserID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.Wrap(err, "new password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	// Update the hash and revoke all sessions atomically.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user.PasswordHash = hashedPassword
		if err := repoFactory.NewUserRepository().Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update password hash")
		}

		if err := repoFactory.NewSessionRepository().DeleteSessionsByUserID(ctx, session.UserID); err != nil {
			return errors.Wrap(err, "failed to revoke sessions after password change")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute password change transaction", slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password change transaction")
	}

	srv.log(ctx).Info("Password changed, all sessions revoked", slog.Int64("userID", session.UserID))

	return nil
}

// GetActiveSessions retrieves all live sessions of the caller's account.
func (srv *authService) GetActiveSessions(ctx context.Context, sessionToken string) ([]*usecase.SessionInfo, error) {
	session, err := srv.authz.ResolveSession(ctx, sessionToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve session")
	}

	srv.log(ctx).Debug("Getting active sessions", slog.Int64("userID", session.UserID))

	sessions, err := srv.sessionRepo.FindSessionsByUserID(ctx, session.UserID)
	if err != nil {
		srv.log(ctx).Error("Failed to get active sessions", slog.Any("error", err), slog.Int64("userID", session.UserID))

		return nil, errors.Wrap(err, "failed to get active sessions")
	}

	infos := make([]*usecase.SessionInfo, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, &usecase.SessionInfo{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
			ExpiresAt: s.ExpiresAt,
			Current:   s.ID == session.ID,
		})
	}

	return infos, nil
}

// RevokeSession ends one of the caller's sessions by ID, e.g. a login on a
// lost device. The session must belong to the caller's account.
func (srv *authService) RevokeSession(ctx context.Context, sessionToken string, sessionID uuid.UUID) error {
	session, err := srv.authz.ResolveSession(ctx, sessionToken)
	if err != nil {
		return errors.Wrap(err, "failed to resolve session")
	}

	srv.log(ctx).Info("Attempting to revoke session", slog.Int64("userID", session.UserID), slog.String("sessionID", sessionID.String()))

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.NewSessionRepository()

		// Verify the session belongs to the caller before deleting.
		owned, err := sessionRepo.FindSessionsByUserID(ctx, session.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to list sessions for revocation")
		}

		for _, s := range owned {
			if s.ID == sessionID {
				return sessionRepo.DeleteSession(ctx, sessionID)
			}
		}

		return errors.Wrap(domainerrors.ErrNotFound, "session does not belong to this account")
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to revoke session", slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke session")
	}

	return nil
}

// LogoutAllDevices invalidates all sessions of the caller's account.
func (srv *authService) LogoutAllDevices(ctx context.Context, sessionToken string) error {
	session, err := srv.authz.ResolveSession(ctx, sessionToken)
	if err != nil {
		return errors.Wrap(err, "failed to resolve session")
	}

	srv.log(ctx).Info("Attempting to log out from all devices", slog.Int64("userID", session.UserID))

	// Single operation - use direct repository instance
	if err := srv.sessionRepo.DeleteSessionsByUserID(ctx, session.UserID); err != nil {
		srv.log(ctx).Error("Failed to delete all sessions", slog.Any("error", err), slog.Int64("userID", session.UserID))

		return errors.Wrap(err, "failed to delete all sessions")
	}
	srv.log(ctx).Info("Successfully logged out from all devices", slog.Int64("userID", session.UserID))

	return nil
}
