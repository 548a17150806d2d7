package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusdesk/student-api/internal/constants"
	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/model"
	"github.com/campusdesk/student-api/pkg/sessionstore"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse verification link %q: %v", link, err)
	}
	token := parsed.Query().Get("token")
	if token == "" {
		t.Fatalf("verification link %q carries no token", link)
	}
	return token
}

func newTestAuthService(t *testing.T, admins *fakeAdminStore, users *fakeUserStore) (*AuthService, *fakeOTPStore, *fakeEmailTokenStore, *fakeActivity, *fakeNotifier) {
	t.Helper()
	otps := newFakeOTPStore()
	emailTokens := newFakeEmailTokenStore()
	activity := &fakeActivity{}
	notifier := &fakeNotifier{}
	sessions, _, _ := newTestSessionService()
	svc := NewAuthService(admins, users, otps, emailTokens, sessions, activity, notifier)
	return svc, otps, emailTokens, activity, notifier
}

func TestLoginAdminFirst(t *testing.T) {
	admins := newFakeAdminStore(&model.Admin{
		ID:       1,
		Username: "admin",
		Password: mustHash(t, "admin123"),
		Email:    "admin@school.edu",
		Role:     constants.RoleAdmin,
	})
	users := newFakeUserStore()
	svc, _, _, activity, _ := newTestAuthService(t, admins, users)

	resp, sid, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if sid == "" {
		t.Fatal("expected session id")
	}
	if resp.User.Role != constants.RoleAdmin {
		t.Fatalf("role = %q, want admin", resp.User.Role)
	}
	if resp.SessionToken == "" || resp.SessionToken == sid {
		t.Fatalf("session token = %q, want a value distinct from the cookie id", resp.SessionToken)
	}
	if got := activity.actions(); len(got) == 0 || got[len(got)-1] != constants.ActionLogin {
		t.Fatalf("expected LOGIN activity, got %v", got)
	}
}

func TestLoginAdminWrongPasswordDoesNotFallThrough(t *testing.T) {
	// A user with the admin's username as email must not be reachable
	// when the admin password check fails.
	email := "admin"
	admins := newFakeAdminStore(&model.Admin{
		ID:       1,
		Username: "admin",
		Password: mustHash(t, "admin123"),
		Role:     constants.RoleAdmin,
	})
	users := newFakeUserStore(&model.User{
		UID:          "user_x",
		Email:        &email,
		PasswordHash: mustHash(t, "other"),
	})
	svc, _, _, _, _ := newTestAuthService(t, admins, users)

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "other"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want invalid credentials", err)
	}
}

func TestLoginUserByEmail(t *testing.T) {
	email := "user@school.edu"
	users := newFakeUserStore(&model.User{
		UID:          "user_y",
		Email:        &email,
		DisplayName:  "Demo User",
		AuthProvider: constants.ProviderEmail,
		PasswordHash: mustHash(t, "user123"),
	})
	svc, _, _, _, _ := newTestAuthService(t, newFakeAdminStore(), users)

	resp, _, err := svc.Login(context.Background(), dto.LoginRequest{Username: email, Password: "user123"})
	if err != nil {
		t.Fatalf("user login: %v", err)
	}
	if resp.User.Email != email || resp.User.Role != constants.RoleUser {
		t.Fatalf("unexpected session user %+v", resp.User)
	}

	stored, err := users.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.LastLogin.IsZero() {
		t.Fatal("expected last login to be updated")
	}
}

func TestLoginFederatedUserHasNoPassword(t *testing.T) {
	email := "social@school.edu"
	users := newFakeUserStore(&model.User{
		UID:          "user_z",
		Email:        &email,
		AuthProvider: constants.ProviderGoogle,
	})
	svc, _, _, _, _ := newTestAuthService(t, newFakeAdminStore(), users)

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{Username: email, Password: "anything"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want invalid credentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	email := "taken@school.edu"
	users := newFakeUserStore(&model.User{UID: "user_a", Email: &email})
	svc, _, _, _, _ := newTestAuthService(t, newFakeAdminStore(), users)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:       email,
		Password:    "secret1",
		DisplayName: "Dup",
	})
	if !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Fatalf("err = %v, want email taken", err)
	}
}

func TestRegisterCreatesAccountWithoutSession(t *testing.T) {
	users := newFakeUserStore()
	svc, _, _, activity, _ := newTestAuthService(t, newFakeAdminStore(), users)

	resp, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:       "new@school.edu",
		Password:    "secret1",
		DisplayName: "New User",
		Phone:       "+919876543210",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.UID == "" || resp.UserID == 0 {
		t.Fatalf("resp = %+v, want generated uid and id", resp)
	}

	created, err := users.GetByEmail(context.Background(), "new@school.edu")
	if err != nil {
		t.Fatalf("lookup created user: %v", err)
	}
	if created.Phone != "+919876543210" {
		t.Fatalf("phone = %q, want stored phone", created.Phone)
	}

	actions := activity.actions()
	if len(actions) != 1 || actions[0] != constants.ActionRegister {
		t.Fatalf("activity actions = %v, want register only", actions)
	}
}

func TestSendOTPSupersedesPreviousCode(t *testing.T) {
	svc, otps, _, _, notifier := newTestAuthService(t, newFakeAdminStore(), newFakeUserStore())
	ctx := context.Background()

	first, err := svc.SendOTP(ctx, "+919876543210")
	if err != nil {
		t.Fatalf("first send: %v", err)
	}
	second, err := svc.SendOTP(ctx, "+919876543210")
	if err != nil {
		t.Fatalf("second send: %v", err)
	}
	if len(notifier.otps) != 2 {
		t.Fatalf("notifier deliveries = %d, want 2", len(notifier.otps))
	}

	if first != second {
		if err := svc.VerifyOTP(ctx, "+919876543210", first); !errors.Is(err, apperrors.ErrInvalidChallenge) {
			t.Fatalf("stale code verify err = %v, want invalid challenge", err)
		}
	}
	if err := svc.VerifyOTP(ctx, "+919876543210", second); err != nil {
		t.Fatalf("fresh code verify: %v", err)
	}

	record, err := otps.GetVerified(ctx, "+919876543210", second)
	if err != nil {
		t.Fatalf("expected verified record: %v", err)
	}
	if !record.Verified {
		t.Fatal("record not flagged verified")
	}
}

func TestVerifyOTPExpired(t *testing.T) {
	svc, otps, _, _, _ := newTestAuthService(t, newFakeAdminStore(), newFakeUserStore())
	ctx := context.Background()

	code, err := svc.SendOTP(ctx, "+911111111111")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	otps.expire("+911111111111")

	if err := svc.VerifyOTP(ctx, "+911111111111", code); !errors.Is(err, apperrors.ErrInvalidChallenge) {
		t.Fatalf("err = %v, want invalid challenge", err)
	}
}

func TestPhoneLoginRequiresVerifiedCode(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t, newFakeAdminStore(), newFakeUserStore())
	ctx := context.Background()

	code, err := svc.SendOTP(ctx, "+912222222222")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	// Login before verification must fail.
	if _, _, err := svc.PhoneLogin(ctx, "+912222222222", code); !errors.Is(err, apperrors.ErrInvalidChallenge) {
		t.Fatalf("unverified login err = %v, want invalid challenge", err)
	}

	if err := svc.VerifyOTP(ctx, "+912222222222", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	resp, sid, err := svc.PhoneLogin(ctx, "+912222222222", code)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sid == "" {
		t.Fatal("expected session id")
	}
	if resp.User.Phone != "+912222222222" || resp.User.Provider != constants.ProviderPhone {
		t.Fatalf("unexpected session user %+v", resp.User)
	}

	// The code is consumed on login.
	if _, _, err := svc.PhoneLogin(ctx, "+912222222222", code); !errors.Is(err, apperrors.ErrInvalidChallenge) {
		t.Fatalf("replayed login err = %v, want invalid challenge", err)
	}
}

func TestPhoneLoginRejectsCodeExpiredAfterVerification(t *testing.T) {
	svc, otps, _, _, _ := newTestAuthService(t, newFakeAdminStore(), newFakeUserStore())
	ctx := context.Background()

	code, err := svc.SendOTP(ctx, "+913333333333")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.VerifyOTP(ctx, "+913333333333", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	otps.expire("+913333333333")

	if _, _, err := svc.PhoneLogin(ctx, "+913333333333", code); !errors.Is(err, apperrors.ErrInvalidChallenge) {
		t.Fatalf("err = %v, want invalid challenge", err)
	}
}

func TestPhoneLoginCreatesUserOnFirstLogin(t *testing.T) {
	users := newFakeUserStore()
	svc, _, _, _, _ := newTestAuthService(t, newFakeAdminStore(), users)
	ctx := context.Background()

	code, _ := svc.SendOTP(ctx, "+914444444444")
	if err := svc.VerifyOTP(ctx, "+914444444444", code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	resp, _, err := svc.PhoneLogin(ctx, "+914444444444", code)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.SessionToken == "" {
		t.Fatal("expected session token in login response")
	}

	user, err := users.GetByPhone(ctx, "+914444444444")
	if err != nil {
		t.Fatalf("expected auto-created user: %v", err)
	}
	if !user.PhoneVerified || user.AuthProvider != constants.ProviderPhone {
		t.Fatalf("unexpected user %+v", user)
	}
	if !strings.HasPrefix(user.UID, "phone_") {
		t.Fatalf("uid = %q, want phone_ prefix", user.UID)
	}
}

func TestVerifyEmailIsIdempotent(t *testing.T) {
	email := "verify@school.edu"
	users := newFakeUserStore(&model.User{UID: "user_v", Email: &email})
	svc, _, _, _, notifier := newTestAuthService(t, newFakeAdminStore(), users)
	ctx := context.Background()

	link, err := svc.SendEmailVerification(ctx, email)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(notifier.emails) != 1 {
		t.Fatalf("notifier deliveries = %d, want 1", len(notifier.emails))
	}
	token := tokenFromLink(t, link)

	if err := svc.VerifyEmail(ctx, email, token); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if err := svc.VerifyEmail(ctx, email, token); err != nil {
		t.Fatalf("second verify should succeed: %v", err)
	}

	user, _ := users.GetByEmail(ctx, email)
	if !user.EmailVerified {
		t.Fatal("user email not flagged verified")
	}
}

func TestVerifyEmailWrongToken(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t, newFakeAdminStore(), newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.SendEmailVerification(ctx, "t@school.edu"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.VerifyEmail(ctx, "t@school.edu", "bogus"); !errors.Is(err, apperrors.ErrInvalidChallenge) {
		t.Fatalf("err = %v, want invalid challenge", err)
	}
}

func TestFederatedLoginReadsTokenClaims(t *testing.T) {
	users := newFakeUserStore()
	svc, _, _, _, _ := newTestAuthService(t, newFakeAdminStore(), users)

	idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     "google-oauth2|12345",
		"email":   "claims@gmail.com",
		"name":    "Claims User",
		"picture": "https://example.com/p.png",
	}).SignedString([]byte("unverified"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	resp, sid, err := svc.FederatedLogin(context.Background(), constants.ProviderGoogle, dto.FederatedLoginRequest{IDToken: idToken})
	if err != nil {
		t.Fatalf("federated login: %v", err)
	}
	if sid == "" {
		t.Fatal("expected session id")
	}
	if resp.User.Email != "claims@gmail.com" || resp.User.DisplayName != "Claims User" {
		t.Fatalf("unexpected session user %+v", resp.User)
	}

	user, err := users.GetByEmail(context.Background(), "claims@gmail.com")
	if err != nil {
		t.Fatalf("expected provisioned user: %v", err)
	}
	if user.AuthProvider != constants.ProviderGoogle || !user.EmailVerified {
		t.Fatalf("unexpected user %+v", user)
	}
	if !strings.HasPrefix(user.UID, "google_") {
		t.Fatalf("uid = %q, want google_ prefix", user.UID)
	}
	if resp.SessionToken == "" {
		t.Fatal("expected session token in login response")
	}
}

func TestFederatedLoginGeneratesDemoProfile(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t, newFakeAdminStore(), newFakeUserStore())

	resp, _, err := svc.FederatedLogin(context.Background(), constants.ProviderFacebook, dto.FederatedLoginRequest{})
	if err != nil {
		t.Fatalf("federated login: %v", err)
	}
	if resp.User.Email == "" {
		t.Fatal("expected generated demo email")
	}
	if resp.User.Provider != constants.ProviderFacebook {
		t.Fatalf("provider = %q", resp.User.Provider)
	}
	if !strings.HasPrefix(resp.User.UID, "fb_") {
		t.Fatalf("uid = %q, want fb_ prefix", resp.User.UID)
	}
}

func TestFederatedLoginReusesExistingAccount(t *testing.T) {
	email := "repeat@gmail.com"
	users := newFakeUserStore(&model.User{
		UID:          "user_r",
		Email:        &email,
		AuthProvider: constants.ProviderGoogle,
	})
	svc, _, _, _, _ := newTestAuthService(t, newFakeAdminStore(), users)

	resp, _, err := svc.FederatedLogin(context.Background(), constants.ProviderGoogle, dto.FederatedLoginRequest{Email: email})
	if err != nil {
		t.Fatalf("federated login: %v", err)
	}
	if resp.User.UID != "user_r" {
		t.Fatalf("expected existing account, got %+v", resp.User)
	}
}

func TestChangePasswordAdmin(t *testing.T) {
	admins := newFakeAdminStore(&model.Admin{
		ID:       1,
		Username: "admin",
		Password: mustHash(t, "admin123"),
		Role:     constants.RoleAdmin,
	})
	svc, _, _, _, _ := newTestAuthService(t, admins, newFakeUserStore())
	ctx := context.Background()

	principal := &sessionstore.Data{UserID: 1, Principal: "admin", Role: constants.RoleAdmin}
	err := svc.ChangePassword(ctx, principal, dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpass123",
	})
	if !errors.Is(err, apperrors.ErrPasswordMismatch) {
		t.Fatalf("err = %v, want password mismatch", err)
	}

	err = svc.ChangePassword(ctx, principal, dto.ChangePasswordRequest{
		CurrentPassword: "admin123",
		NewPassword:     "newpass123",
	})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}

	admin, _ := admins.GetByID(ctx, 1)
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("newpass123")) != nil {
		t.Fatal("new password not stored")
	}
}

func TestLogoutUnknownSessionSucceeds(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t, newFakeAdminStore(), newFakeUserStore())
	if err := svc.Logout(context.Background(), "missing-session"); err != nil {
		t.Fatalf("logout: %v", err)
	}
}
