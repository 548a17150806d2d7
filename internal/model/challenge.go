package model

import (
	"time"
)

// OTPVerification is a short-lived phone challenge. Issuing a new code
// for a phone number deletes any previous row for that number.
type OTPVerification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Phone     string    `gorm:"column:phone;not null;index" json:"phone"`
	OTP       string    `gorm:"column:otp;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
	Verified  bool      `gorm:"column:verified;default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func (OTPVerification) TableName() string {
	return "otp_verification"
}

// Expired reports whether the challenge is past its expiry at the given
// instant. Expiry is re-evaluated both at verification and at login.
func (o *OTPVerification) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// EmailVerification is the email-token counterpart of OTPVerification,
// with a 24-hour lifetime.
type EmailVerification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"column:email;not null;index" json:"email"`
	Token     string    `gorm:"column:token;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
	Verified  bool      `gorm:"column:verified;default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func (EmailVerification) TableName() string {
	return "email_verification"
}

func (e *EmailVerification) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
