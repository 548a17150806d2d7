package model

import (
	"time"
)

// Session is the persisted record of an issued session token. The row
// is advisory: the access-control gate consults the server-side cookie
// context, not this table.
type Session struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionToken string    `gorm:"column:session_token;unique;not null" json:"-"`
	UserID       uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	ExpiresAt    time.Time `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}
