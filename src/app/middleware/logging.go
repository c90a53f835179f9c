package middleware

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const redacted = "[redacted]"

// Logging emits one line per request with the request and response bodies.
// Bodies of the paths in redact are replaced, since they carry passwords or keys.
func Logging(log *slog.Logger, redact ...string) gin.HandlerFunc {
	hidden := make(map[string]bool, len(redact))
	for _, p := range redact {
		hidden[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		secret := hidden[path]

		var reqBodyBytes []byte
		if c.Request.Body != nil && !secret {
			reqBodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBodyBytes))
		}

		rec := &responseCapture{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		api := c.Request.Method + " " + path
		if query != "" && !secret {
			api = api + "?" + query
		}

		reqBody, respBody := string(reqBodyBytes), rec.body.String()
		if secret {
			reqBody, respBody = redacted, redacted
		}

		status := c.Writer.Status()
		logLine := fmt.Sprintf("%s | %s | %d | %s | %s | %s | request: %s | response: %s |",
			start.Format(time.RFC3339Nano),
			levelString(status),
			status,
			time.Since(start),
			GetRequestID(c),
			api,
			reqBody,
			respBody,
		)

		switch {
		case status >= 500:
			log.Error(logLine)
		case status >= 400:
			log.Warn(logLine)
		default:
			log.Info(logLine)
		}
	}
}

// responseCapture captures response body while delegating to original writer.
type responseCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *responseCapture) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

func levelString(status int) string {
	switch {
	case status >= 500:
		return "ERROR"
	case status >= 400:
		return "WARN"
	default:
		return "INFO"
	}
}
