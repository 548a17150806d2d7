package sessionstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Data is the server-side context bound to an opaque session cookie.
// It is the authority the access-control gate consults; the persisted
// Session row is audit material.
type Data struct {
	UserID       uint   `json:"user_id"`
	Principal    string `json:"principal"`
	Role         string `json:"role"`
	AuthProvider string `json:"auth_provider"`
	SessionToken string `json:"session_token,omitempty"`
}

// Store keeps cookie-keyed session contexts with a TTL.
type Store interface {
	Set(ctx context.Context, sid string, data Data, ttl time.Duration) error
	Get(ctx context.Context, sid string) (Data, error)
	Delete(ctx context.Context, sid string) error
}
