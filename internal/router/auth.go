package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/student-api/internal/middleware"
)

func (r *Router) authRoutes(api *gin.RouterGroup, requireSession gin.HandlerFunc) {
	auth := api.Group("/auth")
	{
		// Credential endpoints carry a tighter rate limit.
		auth.Use(middleware.RateLimit(30, time.Minute))

		auth.POST("/login", r.authHandler.Login)
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/logout", r.authHandler.Logout)
		auth.GET("/status", r.authHandler.Status)

		auth.POST("/send-otp", r.authHandler.SendOTP)
		auth.POST("/verify-otp", r.authHandler.VerifyOTP)
		auth.POST("/login-phone", r.authHandler.PhoneLogin)

		auth.POST("/send-email-verification", r.authHandler.SendEmailVerification)
		auth.POST("/verify-email", r.authHandler.VerifyEmail)

		auth.POST("/google", r.authHandler.GoogleLogin)
		auth.POST("/facebook", r.authHandler.FacebookLogin)

		protected := auth.Group("")
		protected.Use(requireSession)
		{
			protected.POST("/change-password", r.authHandler.ChangePassword)
		}
	}
}
