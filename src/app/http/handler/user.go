package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"jokeapi/src/app/http/dto"
	"jokeapi/src/app/http/response"
	"jokeapi/src/app/middleware"
	"jokeapi/src/core/usecase"
)

// APIKeyViewPath is where a successful registration redirects to.
const APIKeyViewPath = "/get-api-key"

// UserHandler handles registration and its two HTML views.
type UserHandler struct {
	userService *usecase.UserService
}

func NewUserHandler(userService *usecase.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterPage renders the registration form.
// GET /register
func (h *UserHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

// Register creates a user and redirects to the page showing the new key.
// POST /register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	key, err := h.userService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	c.Redirect(http.StatusFound, APIKeyViewPath+"?"+url.Values{"apiKey": {string(key)}}.Encode())
}

// APIKeyPage shows the key passed in the query string.
// GET /get-api-key
func (h *UserHandler) APIKeyPage(c *gin.Context) {
	key := c.Query("apiKey")
	if key == "" {
		response.BadRequest(c, "apiKey query parameter is required", middleware.GetRequestID(c))
		return
	}
	c.HTML(http.StatusOK, "get-api-key.html", gin.H{"APIKey": key})
}
