package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/xlzd/gotp"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusdesk/student-api/internal/constants"
	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
	"github.com/campusdesk/student-api/pkg/logger"
	"github.com/campusdesk/student-api/pkg/sessionstore"
)

type adminStore interface {
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*model.Admin, error)
	GetByID(ctx context.Context, id uint) (*model.Admin, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type userStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	MarkPhoneVerified(ctx context.Context, id uint) error
	MarkEmailVerified(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type otpStore interface {
	Replace(ctx context.Context, record *model.OTPVerification) error
	GetByPhoneAndCode(ctx context.Context, phone, code string) (*model.OTPVerification, error)
	GetVerified(ctx context.Context, phone, code string) (*model.OTPVerification, error)
	MarkVerified(ctx context.Context, id uint) error
	DeleteByPhone(ctx context.Context, phone string) error
}

type emailTokenStore interface {
	Replace(ctx context.Context, record *model.EmailVerification) error
	GetByEmailAndToken(ctx context.Context, email, token string) (*model.EmailVerification, error)
	MarkVerified(ctx context.Context, id uint) error
}

type sessionIssuer interface {
	Create(ctx context.Context, data sessionstore.Data) (string, string, error)
	Destroy(ctx context.Context, sid string) error
}

type activityRecorder interface {
	Record(ctx context.Context, action, description string, metadata map[string]any)
}

type notifySender interface {
	SendOTP(phone, code string, expiryMinutes int)
	SendVerificationEmail(email, displayName, link string, expiryHours int)
}

// AuthService orchestrates every login provider: password, phone OTP,
// email token and simulated federated sign-in. All providers converge
// on the same session shape.
type AuthService struct {
	admins      adminStore
	users       userStore
	otps        otpStore
	emailTokens emailTokenStore
	sessions    sessionIssuer
	activity    activityRecorder
	notifier    notifySender
}

func NewAuthService(
	admins adminStore,
	users userStore,
	otps otpStore,
	emailTokens emailTokenStore,
	sessions sessionIssuer,
	activity activityRecorder,
	notifier notifySender,
) *AuthService {
	return &AuthService{
		admins:      admins,
		users:       users,
		otps:        otps,
		emailTokens: emailTokens,
		sessions:    sessions,
		activity:    activity,
		notifier:    notifier,
	}
}

// Login authenticates against the admin table first, then the user
// table. A matching admin username with a wrong password fails without
// falling through to users.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, string, error) {
	admin, err := s.admins.GetByUsernameOrEmail(ctx, req.Username)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)) != nil {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return s.openAdminSession(ctx, admin)
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, "", err
	}

	user, err := s.users.GetByEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if user.PasswordHash == "" {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	return s.openUserSession(ctx, user, constants.ProviderEmail)
}

// Register creates a password user without opening a session. The
// caller verifies the email and logs in separately.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	email := req.Email
	user := &model.User{
		UID:          newUID(constants.ProviderEmail),
		Email:        &email,
		DisplayName:  req.DisplayName,
		AuthProvider: constants.ProviderEmail,
		PasswordHash: string(hash),
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, constants.ActionRegister,
		fmt.Sprintf("New account registered: %s", req.Email),
		map[string]any{"email": req.Email})

	return &dto.RegisterResponse{
		Success: true,
		Message: "Account created, please verify your email",
		UserID:  user.ID,
		UID:     user.UID,
	}, nil
}

// SendOTP issues a fresh code for the phone, superseding any earlier
// code. The code is returned to the caller because delivery is
// simulated.
func (s *AuthService) SendOTP(ctx context.Context, phone string) (string, error) {
	code := gotp.NewDefaultTOTP(gotp.RandomSecret(16)).Now()

	record := &model.OTPVerification{
		Phone:     phone,
		OTP:       code,
		ExpiresAt: time.Now().Add(constants.OTPExpiryMinutes * time.Minute),
	}
	if err := s.otps.Replace(ctx, record); err != nil {
		return "", err
	}

	s.notifier.SendOTP(phone, code, constants.OTPExpiryMinutes)
	s.activity.Record(ctx, constants.ActionOTPSent,
		fmt.Sprintf("OTP sent to %s", phone),
		map[string]any{"phone": phone})
	return code, nil
}

// VerifyOTP checks the code and marks it verified. The row is kept so
// the subsequent phone login can consume it.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) error {
	record, err := s.otps.GetByPhoneAndCode(ctx, phone, code)
	if err != nil {
		return err
	}
	if record.Expired(time.Now()) {
		return apperrors.ErrInvalidChallenge
	}
	if err := s.otps.MarkVerified(ctx, record.ID); err != nil {
		return err
	}

	s.activity.Record(ctx, constants.ActionOTPVerified,
		fmt.Sprintf("OTP verified for %s", phone),
		map[string]any{"phone": phone})
	return nil
}

// PhoneLogin requires a previously verified, still unexpired code. It
// creates the user account on first login and consumes the code.
func (s *AuthService) PhoneLogin(ctx context.Context, phone, code string) (*dto.LoginResponse, string, error) {
	record, err := s.otps.GetVerified(ctx, phone, code)
	if err != nil {
		return nil, "", err
	}
	if record.Expired(time.Now()) {
		return nil, "", apperrors.ErrInvalidChallenge
	}

	user, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		user = &model.User{
			UID:           newUID(constants.ProviderPhone),
			Phone:         phone,
			PhoneVerified: true,
			DisplayName:   "Phone User",
			AuthProvider:  constants.ProviderPhone,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", err
		}
	} else if err != nil {
		return nil, "", err
	} else if !user.PhoneVerified {
		if err := s.users.MarkPhoneVerified(ctx, user.ID); err != nil {
			return nil, "", err
		}
		user.PhoneVerified = true
	}

	if err := s.otps.DeleteByPhone(ctx, phone); err != nil {
		logger.WarnWithContext(ctx, "Failed to consume OTP").Err(err).Log()
	}

	return s.openUserSession(ctx, user, constants.ProviderPhone)
}

// SendEmailVerification issues a fresh token for the address. Like the
// OTP path, the verification link is returned because delivery is
// simulated.
func (s *AuthService) SendEmailVerification(ctx context.Context, email string) (string, error) {
	token, err := randomHex(32)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	record := &model.EmailVerification{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(constants.EmailTokenExpiryHours * time.Hour),
	}
	if err := s.emailTokens.Replace(ctx, record); err != nil {
		return "", err
	}

	displayName := ""
	if user, err := s.users.GetByEmail(ctx, email); err == nil {
		displayName = user.DisplayName
	}
	link := fmt.Sprintf("/api/auth/verify-email?email=%s&token=%s", url.QueryEscape(email), token)
	s.notifier.SendVerificationEmail(email, displayName, link, constants.EmailTokenExpiryHours)

	s.activity.Record(ctx, constants.ActionEmailSent,
		fmt.Sprintf("Verification email sent to %s", email),
		map[string]any{"email": email})
	return link, nil
}

// VerifyEmail validates the token and flags the user's email as
// verified. Verifying an already verified token succeeds again.
func (s *AuthService) VerifyEmail(ctx context.Context, email, token string) error {
	record, err := s.emailTokens.GetByEmailAndToken(ctx, email, token)
	if err != nil {
		return err
	}
	if record.Verified {
		return nil
	}
	if record.Expired(time.Now()) {
		return apperrors.ErrInvalidChallenge
	}
	if err := s.emailTokens.MarkVerified(ctx, record.ID); err != nil {
		return err
	}
	if err := s.users.MarkEmailVerified(ctx, email); err != nil {
		logger.WarnWithContext(ctx, "Failed to flag user email verified").Err(err).Log()
	}

	s.activity.Record(ctx, constants.ActionEmailVerified,
		fmt.Sprintf("Email verified: %s", email),
		map[string]any{"email": email})
	return nil
}

// FederatedLogin simulates Google/Facebook sign-in. When an ID token is
// supplied its claims are read without signature verification; the
// request profile fields act as a fallback.
func (s *AuthService) FederatedLogin(ctx context.Context, provider string, req dto.FederatedLoginRequest) (*dto.LoginResponse, string, error) {
	profile := federatedProfile(provider, req)

	user, err := s.users.GetByEmail(ctx, profile.email)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		email := profile.email
		user = &model.User{
			UID:           newUID(provider),
			Email:         &email,
			EmailVerified: true,
			DisplayName:   profile.displayName,
			PhotoURL:      profile.photoURL,
			AuthProvider:  provider,
			ProviderID:    profile.subject,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", err
		}
	} else if err != nil {
		return nil, "", err
	}

	return s.openUserSession(ctx, user, provider)
}

// Logout destroys the session. Logging out with an unknown session is
// still a success.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if err := s.sessions.Destroy(ctx, sid); err != nil && !errors.Is(err, sessionstore.ErrNotFound) {
		return err
	}
	s.activity.Record(ctx, constants.ActionLogout, "User logged out", nil)
	return nil
}

// ChangePassword verifies the current password of the authenticated
// principal before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, principal *sessionstore.Data, req dto.ChangePasswordRequest) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if principal.Role == constants.RoleAdmin {
		admin, err := s.admins.GetByID(ctx, principal.UserID)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.CurrentPassword)) != nil {
			return apperrors.ErrPasswordMismatch
		}
		if err := s.admins.UpdatePassword(ctx, admin.ID, string(hash)); err != nil {
			return err
		}
	} else {
		user, err := s.users.GetByID(ctx, principal.UserID)
		if err != nil {
			return err
		}
		if user.PasswordHash == "" {
			return apperrors.ErrPasswordMismatch
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
			return apperrors.ErrPasswordMismatch
		}
		if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return err
		}
	}

	s.activity.Record(ctx, constants.ActionPasswordChange,
		fmt.Sprintf("Password changed for %s", principal.Principal), nil)
	return nil
}

func (s *AuthService) openAdminSession(ctx context.Context, admin *model.Admin) (*dto.LoginResponse, string, error) {
	sid, token, err := s.sessions.Create(ctx, sessionstore.Data{
		UserID:       admin.ID,
		Principal:    admin.Username,
		Role:         admin.Role,
		AuthProvider: constants.ProviderEmail,
	})
	if err != nil {
		return nil, "", err
	}

	s.activity.Record(ctx, constants.ActionLogin,
		fmt.Sprintf("Admin logged in: %s", admin.Username),
		map[string]any{"role": admin.Role})

	return &dto.LoginResponse{
		Success: true,
		Message: "Login successful",
		User: dto.SessionUser{
			ID:       admin.ID,
			Username: admin.Username,
			Email:    admin.Email,
			Role:     admin.Role,
			Provider: constants.ProviderEmail,
		},
		SessionToken: token,
	}, sid, nil
}

func (s *AuthService) openUserSession(ctx context.Context, user *model.User, provider string) (*dto.LoginResponse, string, error) {
	sid, token, err := s.sessions.Create(ctx, sessionstore.Data{
		UserID:       user.ID,
		Principal:    user.EmailOrPhone(),
		Role:         constants.RoleUser,
		AuthProvider: provider,
	})
	if err != nil {
		return nil, "", err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		logger.WarnWithContext(ctx, "Failed to update last login").Err(err).Log()
	}

	s.activity.Record(ctx, constants.ActionLogin,
		fmt.Sprintf("User logged in: %s", user.EmailOrPhone()),
		map[string]any{"provider": provider})

	resp := &dto.LoginResponse{
		Success:      true,
		Message:      "Login successful",
		User:         sessionUserFromModel(user, provider),
		SessionToken: token,
	}
	return resp, sid, nil
}

func sessionUserFromModel(user *model.User, provider string) dto.SessionUser {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return dto.SessionUser{
		ID:          user.ID,
		UID:         user.UID,
		Email:       email,
		Phone:       user.Phone,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Role:        constants.RoleUser,
		Provider:    provider,
	}
}

type federatedClaims struct {
	email       string
	displayName string
	photoURL    string
	subject     string
}

func federatedProfile(provider string, req dto.FederatedLoginRequest) federatedClaims {
	profile := federatedClaims{
		email:       req.Email,
		displayName: req.DisplayName,
		photoURL:    req.PhotoURL,
	}

	if req.IDToken != "" {
		token, _, err := jwt.NewParser().ParseUnverified(req.IDToken, jwt.MapClaims{})
		if err == nil {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if v, ok := claims["email"].(string); ok && v != "" {
					profile.email = v
				}
				if v, ok := claims["name"].(string); ok && v != "" {
					profile.displayName = v
				}
				if v, ok := claims["picture"].(string); ok && v != "" {
					profile.photoURL = v
				}
				if v, ok := claims["sub"].(string); ok {
					profile.subject = v
				}
			}
		}
	}

	if profile.email == "" {
		short := strings.Split(uuid.NewString(), "-")[0]
		profile.email = fmt.Sprintf("%s_user_%s@example.com", provider, short)
	}
	if profile.displayName == "" && provider != "" {
		profile.displayName = fmt.Sprintf("%s%s User", strings.ToUpper(provider[:1]), provider[1:])
	}
	return profile
}

// newUID generates an account uid carrying the provider's prefix.
func newUID(provider string) string {
	prefix := "user"
	switch provider {
	case constants.ProviderPhone:
		prefix = "phone"
	case constants.ProviderGoogle:
		prefix = "google"
	case constants.ProviderFacebook:
		prefix = "fb"
	}
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}
