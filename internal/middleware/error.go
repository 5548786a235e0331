package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewErrorResponse builds an envelope, attaching err only when details are
// exposed.
func NewErrorResponse(message string, err error, exposeDetails bool) ErrorResponse {
	resp := ErrorResponse{Message: message}
	if err != nil && exposeDetails {
		resp.Error = err.Error()
	}
	return resp
}

// Recovery turns a panic into a 500 envelope.
func Recovery(logger *zap.Logger, exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Panic recovered",
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.Any("error", rec),
					zap.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					NewErrorResponse("Something went wrong!", fmt.Errorf("%v", rec), exposeDetails))
			}
		}()
		c.Next()
	}
}
