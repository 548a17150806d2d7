package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/campusdesk/student-api/internal/model"
	"github.com/campusdesk/student-api/pkg/logger"
	"github.com/campusdesk/student-api/pkg/sessionstore"
)

type sessionRows interface {
	Create(ctx context.Context, session *model.Session) error
	DeleteByToken(ctx context.Context, token string) error
}

// SessionService issues and revokes sessions. The session store is the
// authority for access control; the database row is an audit copy that
// survives restarts.
type SessionService struct {
	store sessionstore.Store
	rows  sessionRows
	ttl   time.Duration
}

func NewSessionService(store sessionstore.Store, rows sessionRows, ttl time.Duration) *SessionService {
	return &SessionService{store: store, rows: rows, ttl: ttl}
}

// Create mints a new session for the principal and returns the cookie
// value plus the persisted session token. The token is independent of
// the cookie value and is echoed to the client in login responses.
func (s *SessionService) Create(ctx context.Context, data sessionstore.Data) (string, string, error) {
	sid, err := randomHex(32)
	if err != nil {
		return "", "", err
	}
	token, err := randomHex(32)
	if err != nil {
		return "", "", err
	}
	data.SessionToken = token

	if err := s.rows.Create(ctx, &model.Session{
		SessionToken: token,
		UserID:       data.UserID,
		ExpiresAt:    time.Now().Add(s.ttl),
	}); err != nil {
		return "", "", err
	}

	if err := s.store.Set(ctx, sid, data, s.ttl); err != nil {
		return "", "", err
	}

	logger.InfoWithContext(ctx, "Session created").
		Uint("user_id", data.UserID).
		String("role", data.Role).
		String("provider", data.AuthProvider).
		Log()
	return sid, token, nil
}

// Resolve returns the session bound to the cookie value, or
// sessionstore.ErrNotFound when the session is missing or expired.
func (s *SessionService) Resolve(ctx context.Context, sid string) (*sessionstore.Data, error) {
	data, err := s.store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// Destroy removes the session from the store and deletes its audit
// row. Destroying an unknown session is not an error.
func (s *SessionService) Destroy(ctx context.Context, sid string) error {
	data, err := s.store.Get(ctx, sid)
	if err == nil && data.SessionToken != "" {
		if err := s.rows.DeleteByToken(ctx, data.SessionToken); err != nil {
			logger.WarnWithContext(ctx, "Failed to delete session row").Err(err).Log()
		}
	}
	return s.store.Delete(ctx, sid)
}

func randomHex(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
