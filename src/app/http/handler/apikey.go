package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jokeapi/src/app/http/dto"
	"jokeapi/src/app/http/response"
	"jokeapi/src/app/middleware"
	"jokeapi/src/core/usecase"
)

// APIKeyHandler issues API keys.
type APIKeyHandler struct {
	keyService *usecase.KeyService
}

func NewAPIKeyHandler(keyService *usecase.KeyService) *APIKeyHandler {
	return &APIKeyHandler{keyService: keyService}
}

// Issue creates a new key. The key is only ever shown in this response.
// POST /apikeys
func (h *APIKeyHandler) Issue(c *gin.Context) {
	key, err := h.keyService.IssueKey(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, dto.APIKeyResponse{APIKey: string(key)})
}
