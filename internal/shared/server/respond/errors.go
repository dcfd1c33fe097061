package respond

import (
	"errors"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/telemetry"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

type staged interface {
	StageName() string
}

// Error logs err and aborts the request with {"error": err.Error()}.
func Error(c *gin.Context, status int, err error) {
	fields := map[string]any{
		"status":     status,
		"error":      err.Error(),
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	var s staged
	if errors.As(err, &s) {
		fields["stage"] = s.StageName()
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
}

// Message is Error for callers that only have a message.
func Message(c *gin.Context, status int, message string) {
	Error(c, status, errors.New(message))
}
