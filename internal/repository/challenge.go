package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
)

// OTPRepository stores short-lived phone verification codes. Issuing a
// new code for a phone deletes any earlier codes first, so at most one
// pending code exists per phone.
type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Replace(ctx context.Context, record *model.OTPVerification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone = ?", record.Phone).Delete(&model.OTPVerification{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (r *OTPRepository) GetByPhoneAndCode(ctx context.Context, phone, code string) (*model.OTPVerification, error) {
	var record model.OTPVerification
	err := r.db.WithContext(ctx).
		Where("phone = ? AND otp = ?", phone, code).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidChallenge
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return &record, nil
}

// GetVerified finds a code that already passed verification. Phone
// login requires this second lookup before a session is created.
func (r *OTPRepository) GetVerified(ctx context.Context, phone, code string) (*model.OTPVerification, error) {
	var record model.OTPVerification
	err := r.db.WithContext(ctx).
		Where("phone = ? AND otp = ? AND verified = ?", phone, code, true).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidChallenge
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return &record, nil
}

func (r *OTPRepository) MarkVerified(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&model.OTPVerification{}).
		Where("id = ?", id).
		Update("verified", true).Error
	if err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (r *OTPRepository) DeleteByPhone(ctx context.Context, phone string) error {
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Delete(&model.OTPVerification{}).Error
	if err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

// EmailTokenRepository stores email verification tokens with the same
// replace-on-issue behavior as OTP codes.
type EmailTokenRepository struct {
	db *gorm.DB
}

func NewEmailTokenRepository(db *gorm.DB) *EmailTokenRepository {
	return &EmailTokenRepository{db: db}
}

func (r *EmailTokenRepository) Replace(ctx context.Context, record *model.EmailVerification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", record.Email).Delete(&model.EmailVerification{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}

func (r *EmailTokenRepository) GetByEmailAndToken(ctx context.Context, email, token string) (*model.EmailVerification, error) {
	var record model.EmailVerification
	err := r.db.WithContext(ctx).
		Where("email = ? AND token = ?", email, token).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidChallenge
		}
		return nil, apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return &record, nil
}

func (r *EmailTokenRepository) MarkVerified(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&model.EmailVerification{}).
		Where("id = ?", id).
		Update("verified", true).Error
	if err != nil {
		return apperrors.WrapError(apperrors.ErrStorage, err)
	}
	return nil
}
