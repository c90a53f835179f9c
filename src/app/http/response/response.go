// Package response defines consistent HTTP response structures.
// Error responses always use the Error envelope; success bodies are written
// by the handlers in the shape each endpoint documents.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jokeapi/src/core/domain"
)

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Field is the field that caused the error (for validation errors)
	Field string `json:"field,omitempty"`

	// RequestID is the request ID for debugging
	RequestID string `json:"request_id,omitempty"`
}

// Message is the body of mutations that report what they did.
type Message struct {
	Message string `json:"message"`
}

func abort(c *gin.Context, status int, detail ErrorDetail) {
	c.AbortWithStatusJSON(status, Error{Error: detail})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string, requestID string) {
	abort(c, http.StatusBadRequest, ErrorDetail{
		Code:      "BAD_REQUEST",
		Message:   message,
		RequestID: requestID,
	})
}

// ValidationError sends a 400 response for validation failures.
func ValidationError(c *gin.Context, field, message, requestID string) {
	abort(c, http.StatusBadRequest, ErrorDetail{
		Code:      "VALIDATION_ERROR",
		Message:   message,
		Field:     field,
		RequestID: requestID,
	})
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message, requestID string) {
	abort(c, http.StatusNotFound, ErrorDetail{
		Code:      "NOT_FOUND",
		Message:   message,
		RequestID: requestID,
	})
}

// NoJokes sends a 404 response for a pick from an empty collection.
func NoJokes(c *gin.Context, message, requestID string) {
	abort(c, http.StatusNotFound, ErrorDetail{
		Code:      "NO_JOKES",
		Message:   message,
		RequestID: requestID,
	})
}

// Conflict sends a 409 response.
func Conflict(c *gin.Context, message, requestID string) {
	abort(c, http.StatusConflict, ErrorDetail{
		Code:      "CONFLICT",
		Message:   message,
		RequestID: requestID,
	})
}

// Forbidden sends a 403 response.
func Forbidden(c *gin.Context, message, requestID string) {
	abort(c, http.StatusForbidden, ErrorDetail{
		Code:      "FORBIDDEN",
		Message:   message,
		RequestID: requestID,
	})
}

// TooManyRequests sends a 429 response.
func TooManyRequests(c *gin.Context, message, requestID string) {
	abort(c, http.StatusTooManyRequests, ErrorDetail{
		Code:      "RATE_LIMITED",
		Message:   message,
		RequestID: requestID,
	})
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, requestID string) {
	abort(c, http.StatusInternalServerError, ErrorDetail{
		Code:      "INTERNAL_ERROR",
		Message:   "An unexpected error occurred",
		RequestID: requestID,
	})
}

// FromDomainError converts a domain error to an appropriate HTTP response.
// This centralizes error handling and ensures consistent error responses.
func FromDomainError(c *gin.Context, err error, requestID string) {
	var domainErr *domain.DomainError
	hasDetail := errors.As(err, &domainErr)

	switch {
	case domain.IsNotFound(err):
		NotFound(c, messageOf(err, domainErr), requestID)
	case domain.IsEmptyCollection(err):
		NoJokes(c, messageOf(err, domainErr), requestID)
	case domain.IsValidationError(err):
		if hasDetail {
			ValidationError(c, domainErr.Field, domainErr.Message, requestID)
		} else {
			BadRequest(c, err.Error(), requestID)
		}
	case domain.IsConflict(err):
		Conflict(c, messageOf(err, domainErr), requestID)
	case domain.IsForbidden(err):
		Forbidden(c, messageOf(err, domainErr), requestID)
	default:
		_ = c.Error(err)
		InternalError(c, requestID)
	}
}

// messageOf prefers the bare domain message over the wrapped error string.
func messageOf(err error, domainErr *domain.DomainError) string {
	if domainErr != nil && domainErr.Message != "" {
		return domainErr.Message
	}
	return err.Error()
}
