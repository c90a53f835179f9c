package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jokeapi/src/app/http/dto"
	"jokeapi/src/app/http/response"
	"jokeapi/src/app/middleware"
	"jokeapi/src/core/usecase"
)

// JokeHandler serves the /jokes routes. Every route sits behind APIKeyAuth.
type JokeHandler struct {
	jokeService *usecase.JokeService
}

func NewJokeHandler(jokeService *usecase.JokeService) *JokeHandler {
	return &JokeHandler{jokeService: jokeService}
}

// Random returns one joke picked at random.
// GET /jokes/random
func (h *JokeHandler) Random(c *gin.Context) {
	joke, err := h.jokeService.Random(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, dto.RandomJokeResponse{Joke: *joke})
}

// Get returns a joke by ID.
// GET /jokes/:id
func (h *JokeHandler) Get(c *gin.Context) {
	id, ok := parseJokeID(c)
	if !ok {
		return
	}
	joke, err := h.jokeService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, joke)
}

// List returns every joke.
// GET /jokes
func (h *JokeHandler) List(c *gin.Context) {
	jokes, err := h.jokeService.List(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, jokes)
}

// ByGenre returns the jokes of one genre.
// GET /jokes/genre/:genre
func (h *JokeHandler) ByGenre(c *gin.Context) {
	jokes, err := h.jokeService.ByGenre(c.Request.Context(), c.Param("genre"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, jokes)
}

// Add stores a new joke.
// POST /jokes/add
func (h *JokeHandler) Add(c *gin.Context) {
	var req dto.AddJokeRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	joke, err := h.jokeService.Add(c.Request.Context(), req.Question, req.Answer, req.Genre)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusCreated, dto.JokeAddedResponse{
		Message: "joke added successfully",
		ID:      joke.ID,
	})
}

// Edit changes the provided fields of a joke.
// PUT /jokes/edit/:id
func (h *JokeHandler) Edit(c *gin.Context) {
	id, ok := parseJokeID(c)
	if !ok {
		return
	}
	var req dto.EditJokeRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	joke, err := h.jokeService.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, dto.JokeEditedResponse{
		Message: "joke edited successfully",
		Joke:    *joke,
	})
}

// Delete removes a joke.
// DELETE /jokes/delete/:id
func (h *JokeHandler) Delete(c *gin.Context) {
	id, ok := parseJokeID(c)
	if !ok {
		return
	}
	if err := h.jokeService.Remove(c.Request.Context(), id); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, response.Message{Message: "joke deleted successfully"})
}

// parseJokeID reads the :id param. A non-numeric ID cannot match any joke,
// so it is answered like an unknown one.
func parseJokeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(c, "joke not found", middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}

// bindOptionalJSON decodes the body into dst. An empty body leaves dst zeroed
// so the usecase reports which fields are missing.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "invalid JSON payload", middleware.GetRequestID(c))
		return false
	}
	return true
}
