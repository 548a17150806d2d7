package dto

// LoginRequest carries credentials for username/password login.
// The username field also accepts an email address for regular users.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest creates a new password-based user account. No
// session is opened; the caller verifies the email and logs in
// separately.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required"`
	Phone       string `json:"phone"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
	UID     string `json:"uid"`
}

type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required,min=10"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

// PhoneLoginRequest finalizes a phone login after the OTP was verified.
type PhoneLoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

type SendEmailVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// FederatedLoginRequest carries the simulated payload of a federated
// sign-in. IDToken is parsed without signature verification; the
// remaining fields act as a fallback profile when no token is supplied.
type FederatedLoginRequest struct {
	IDToken     string `json:"idToken"`
	AccessToken string `json:"accessToken"`
	Email       string `json:"email" binding:"omitempty,email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoUrl"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// SessionUser is the authenticated-principal shape returned by login
// and status endpoints.
type SessionUser struct {
	ID          uint   `json:"id"`
	UID         string `json:"uid,omitempty"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	Role        string `json:"role"`
	Provider    string `json:"provider"`
}

// LoginResponse is the shared success shape of every session-opening
// flow. SessionToken mirrors the persisted session row.
type LoginResponse struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message"`
	User         SessionUser `json:"user"`
	SessionToken string      `json:"sessionToken"`
}

type AuthStatusResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
}

// OTPSentResponse echoes the generated code so the flow stays usable
// without a real SMS gateway.
type OTPSentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Demo    bool   `json:"demo"`
	OTP     string `json:"otp"`
}

// EmailTokenResponse echoes the verification link for the same reason.
type EmailTokenResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	Demo             bool   `json:"demo"`
	VerificationLink string `json:"verificationLink"`
}
