package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusdesk/student-api/internal/constants"
	ctxutil "github.com/campusdesk/student-api/pkg/context"
	"github.com/campusdesk/student-api/pkg/logger"
	"github.com/campusdesk/student-api/pkg/sessionstore"
)

type sessionResolver interface {
	Resolve(ctx context.Context, sid string) (*sessionstore.Data, error)
}

// SessionAuth gates protected routes on a valid session cookie. Every
// failure mode maps to the same 401 body so callers cannot distinguish
// a missing session from an expired one.
func SessionAuth(sessions sessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			unauthorized(c)
			return
		}

		data, err := sessions.Resolve(c.Request.Context(), sid)
		if err != nil {
			logger.DebugWithContext(c.Request.Context(), "Session rejected").
				Err(err).
				Log()
			unauthorized(c)
			return
		}

		ctx := ctxutil.WithUserID(c.Request.Context(), data.UserID)
		ctx = ctxutil.WithValue(ctx, constants.CtxKeyPrincipal, data.Principal)
		c.Request = c.Request.WithContext(ctx)

		c.Set(constants.GinKeySession, data)
		c.Set(constants.GinKeyUserID, data.UserID)

		c.Next()
	}
}

// SessionFromContext returns the principal attached by SessionAuth.
func SessionFromContext(c *gin.Context) (*sessionstore.Data, bool) {
	v, ok := c.Get(constants.GinKeySession)
	if !ok {
		return nil, false
	}
	data, ok := v.(*sessionstore.Data)
	return data, ok
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized"))
}
