package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
)

// SessionRepository persists the audit row backing each live session.
// Authorization itself runs against the session store; these rows
// survive restarts for inspection.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).
		Where("session_token = ?", token).
		Delete(&model.Session{}).Error
	if err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}
