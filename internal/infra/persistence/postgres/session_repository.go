// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// CreateSession persists a new session record.
func (repo *sessionRepository) CreateSession(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrInvalidSession.WrapMessage("session token hash already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid user reference")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	// Update the entity with generated values
	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindSessionByHash retrieves a session record by its securely stored token hash.
// An expired record is deleted on sight so the hash behaves exactly like an
// unknown one from then on.
func (repo *sessionRepository) FindSessionByHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	session := toSessionDomain(&sessionM)

	if session.IsExpired(time.Now()) {
		// Lazy cleanup. A failed delete is harmless; DeleteExpiredSessions
		// sweeps leftovers.
		repo.db.WithContext(ctx).
			Where("id = ?", sessionM.ID).
			Delete(&model.SessionModel{})

		return nil, repository.ErrSessionExpired
	}

	return session, nil
}

// FindSessionsByUserID retrieves all active sessions for a user, oldest first.
func (repo *sessionRepository) FindSessionsByUserID(ctx context.Context, userID int64) ([]*entity.Session, error) {
	var sessionMs []model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at ASC").
		Find(&sessionMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find sessions by user id")
	}

	sessions := make([]*entity.Session, len(sessionMs))
	for i := range sessionMs {
		sessions[i] = toSessionDomain(&sessionMs[i])
	}

	return sessions, nil
}

// DeleteSession removes a session by its ID, ending that session.
func (repo *sessionRepository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.SessionModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session")
	}

	return nil
}

// DeleteSessionByHash removes a session by its token hash.
// Zero rows affected is success: revocation is idempotent.
func (repo *sessionRepository) DeleteSessionByHash(ctx context.Context, tokenHash string) error {
	err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&model.SessionModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete session by hash")
	}

	return nil
}

// DeleteSessionsByUserID removes all sessions for a specific user.
func (repo *sessionRepository) DeleteSessionsByUserID(ctx context.Context, userID int64) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.SessionModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete sessions by user id")
	}

	return nil
}

// DeleteExpiredSessions removes all expired sessions from the database.
func (repo *sessionRepository) DeleteExpiredSessions(ctx context.Context) error {
	err := repo.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&model.SessionModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete expired sessions")
	}

	return nil
}

// CountActiveSessionsByUserID returns the number of active (non-expired) sessions for a user.
func (repo *sessionRepository) CountActiveSessionsByUserID(ctx context.Context, userID int64) (int, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Count(&count).Error

	if err != nil {
		return 0, errors.Wrap(err, "failed to count active sessions")
	}

	return int(count), nil
}

// toSessionDomain maps a persistence model to a pure domain entity.
func toSessionDomain(sessionM *model.SessionModel) *entity.Session {
	return &entity.Session{
		ID:        sessionM.ID,
		UserID:    sessionM.UserID,
		TokenHash: sessionM.TokenHash,
		ExpiresAt: sessionM.ExpiresAt,
		CreatedAt: sessionM.CreatedAt,
	}
}

// fromSessionDomain maps a domain entity to a GORM persistence model.
func fromSessionDomain(session *entity.Session) *model.SessionModel {
	return &model.SessionModel{
		ID:        session.ID,
		UserID:    session.UserID,
		TokenHash: session.TokenHash,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
}
