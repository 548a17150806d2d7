package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	ctxutil "github.com/campusdesk/student-api/pkg/context"
	"github.com/campusdesk/student-api/pkg/logger"
)

// ContextMiddleware seeds the request context with request metadata and
// a per-request timeout.
func ContextMiddleware(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		function := c.Request.URL.Path
		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, module, function)

		ctx, cancel := ctxutil.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		logger.DebugWithContext(ctx, "Request completed").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			Int("status_code", c.Writer.Status()).
			Duration(ctxutil.GetDuration(ctx)).
			Log()
	}
}
