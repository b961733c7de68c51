package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-navigator/internal/shared/telemetry"
)

// ErrorBody is the error object every failed request returns.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse is the envelope: {"error":{...}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error aborts the request with the standard envelope. Server-side failures
// (5xx) are logged with request context; client errors are not.
func Error(c *gin.Context, status int, code, message string, details any) {
	if status >= http.StatusInternalServerError {
		fields := map[string]any{
			"status":     status,
			"code":       code,
			"message":    message,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("requestId"),
		}
		if userID := c.GetString("userId"); userID != "" {
			fields["user_id"] = userID
		}
		telemetry.Error("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}
