package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"jokeapi/src/app/http/response"
)

// APIKeyHeader carries the caller's API key.
const APIKeyHeader = "API-Key"

// Authorizer is satisfied by usecase.AccessGate.
type Authorizer interface {
	Authorize(ctx context.Context, presentedKey string) error
}

// APIKeyAuth rejects requests whose API-Key header is not an issued key.
// Every rejection gets the same 403 body so callers cannot tell a missing
// key from an unknown one.
func APIKeyAuth(gate Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Authorize(c.Request.Context(), c.GetHeader(APIKeyHeader)); err != nil {
			response.FromDomainError(c, err, GetRequestID(c))
			return
		}
		c.Next()
	}
}
