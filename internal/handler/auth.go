package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/student-api/internal/constants"
	"github.com/campusdesk/student-api/internal/dto"
	apperrors "github.com/campusdesk/student-api/internal/errors"
	"github.com/campusdesk/student-api/internal/middleware"
	"github.com/campusdesk/student-api/internal/service"
	ctxutil "github.com/campusdesk/student-api/pkg/context"
	"github.com/campusdesk/student-api/pkg/logger"
	"github.com/campusdesk/student-api/pkg/validation"
)

type AuthHandler struct {
	authService  *service.AuthService
	sessions     *service.SessionService
	cookieName   string
	cookieTTL    time.Duration
	cookieSecure bool
}

func NewAuthHandler(authService *service.AuthService, sessions *service.SessionService, cookieName string, cookieTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		cookieName:   cookieName,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sid string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, sid, int(h.cookieTTL.Seconds()), "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	resp, sid, err := h.authService.Login(ctx, req)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed").
			String("username", req.Username).
			Err(err).
			Log()
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	h.setSessionCookie(c, sid)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	resp, err := h.authService.Register(ctx, req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "Logout")

	sid, err := c.Cookie(h.cookieName)
	if err == nil && sid != "" {
		if err := h.authService.Logout(ctx, sid); err != nil {
			logger.WarnWithContext(ctx, "Logout cleanup failed").Err(err).Log()
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logged out"))
}

// Status reports the caller's authentication state. Anonymous callers
// get 200 with authenticated=false rather than a 401.
func (h *AuthHandler) Status(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "Status")

	sid, err := c.Cookie(h.cookieName)
	if err != nil || sid == "" {
		c.JSON(http.StatusOK, dto.AuthStatusResponse{Authenticated: false})
		return
	}

	data, err := h.sessions.Resolve(ctx, sid)
	if err != nil {
		c.JSON(http.StatusOK, dto.AuthStatusResponse{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, dto.AuthStatusResponse{
		Authenticated: true,
		User: &dto.SessionUser{
			ID:       data.UserID,
			Username: data.Principal,
			Role:     data.Role,
			Provider: data.AuthProvider,
		},
	})
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "SendOTP")

	var req dto.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	code, err := h.authService.SendOTP(ctx, req.Phone)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.OTPSentResponse{
		Success: true,
		Message: "OTP sent",
		Demo:    true,
		OTP:     code,
	})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "VerifyOTP")

	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	if err := h.authService.VerifyOTP(ctx, req.Phone, req.OTP); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("OTP verified"))
}

func (h *AuthHandler) PhoneLogin(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "PhoneLogin")

	var req dto.PhoneLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	resp, sid, err := h.authService.PhoneLogin(ctx, req.Phone, req.OTP)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	h.setSessionCookie(c, sid)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) SendEmailVerification(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "SendEmailVerification")

	var req dto.SendEmailVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	link, err := h.authService.SendEmailVerification(ctx, req.Email)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.EmailTokenResponse{
		Success:          true,
		Message:          "Verification email sent",
		Demo:             true,
		VerificationLink: link,
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "VerifyEmail")

	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	if err := h.authService.VerifyEmail(ctx, req.Email, req.Token); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Email verified"))
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	h.federatedLogin(c, constants.ProviderGoogle)
}

func (h *AuthHandler) FacebookLogin(c *gin.Context) {
	h.federatedLogin(c, constants.ProviderFacebook)
}

func (h *AuthHandler) federatedLogin(c *gin.Context, provider string) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "FederatedLogin")

	var req dto.FederatedLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	resp, sid, err := h.authService.FederatedLogin(ctx, provider, req)
	if err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	h.setSessionCookie(c, sid)
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "auth", "ChangePassword")

	principal, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized"))
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(validation.BindingError(err)))
		return
	}

	if err := h.authService.ChangePassword(ctx, principal, req); err != nil {
		c.JSON(apperrors.ToHTTPStatus(err), constants.BuildErrorResponse(apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Password changed"))
}
