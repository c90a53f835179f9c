package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"jokeapi/src/app/http/response"
	"jokeapi/src/infra/logger"
)

// Recovery turns a panic into a 500 INTERNAL_ERROR and logs it with the stack.
// Install it first so it wraps every other middleware.
//
// Usage:
//
//	router.Use(middleware.Recovery(log))
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)

				logger.WithRequestID(log, requestID).Error("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"stack", string(debug.Stack()),
				)

				// Internal details stay in the log.
				response.InternalError(c, requestID)
			}
		}()

		c.Next()
	}
}
