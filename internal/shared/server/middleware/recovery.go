package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"internship-navigator/internal/shared/server/respond"
	"internship-navigator/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 with the standard error
// envelope, logging the stack with the request ID.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("request.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"panic":      rec,
				"stack":      string(debug.Stack()),
			})
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
			c.Abort()
		}()
		c.Next()
	}
}
