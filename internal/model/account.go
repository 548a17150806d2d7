package model

import (
	"time"
)

// Admin is the provisioned administrator account. Created once at seed
// time, mutated on password change, never deleted.
type Admin struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"column:username;unique;not null" json:"username"`
	Password      string    `gorm:"column:password;not null" json:"-"`
	Email         string    `gorm:"column:email;unique" json:"email"`
	Phone         string    `gorm:"column:phone" json:"phone,omitempty"`
	EmailVerified bool      `gorm:"column:email_verified;default:true" json:"email_verified"`
	PhoneVerified bool      `gorm:"column:phone_verified;default:false" json:"phone_verified"`
	AuthProvider  string    `gorm:"column:auth_provider;default:email" json:"auth_provider"`
	Role          string    `gorm:"column:role;default:admin" json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Admin) TableName() string {
	return "admin"
}

// User is an end-user identity created on first successful
// login/registration per provider. A phone-provider user may lack an
// email; a password user always carries a hash.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UID           string    `gorm:"column:uid;unique;not null" json:"uid"`
	Email         *string   `gorm:"column:email;unique" json:"email,omitempty"`
	EmailVerified bool      `gorm:"column:email_verified;default:false" json:"email_verified"`
	Phone         string    `gorm:"column:phone" json:"phone,omitempty"`
	PhoneVerified bool      `gorm:"column:phone_verified;default:false" json:"phone_verified"`
	DisplayName   string    `gorm:"column:display_name" json:"display_name,omitempty"`
	PhotoURL      string    `gorm:"column:photo_url" json:"photo_url,omitempty"`
	AuthProvider  string    `gorm:"column:auth_provider;default:email" json:"auth_provider"`
	ProviderID    string    `gorm:"column:provider_id" json:"-"`
	PasswordHash  string    `gorm:"column:password_hash" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	LastLogin     time.Time `gorm:"column:last_login" json:"last_login"`
}

// EmailOrPhone returns the best available principal name for logging
// and session display.
func (u *User) EmailOrPhone() string {
	if u.Email != nil && *u.Email != "" {
		return *u.Email
	}
	return u.Phone
}
