package usecase

import (
	"context"

	"jokeapi/src/core/domain"
)

// KeyValidator is the part of KeyService the gate needs.
type KeyValidator interface {
	IsValid(ctx context.Context, candidate string) bool
}

// AccessGate decides whether a presented API key may reach the joke operations.
type AccessGate struct {
	keys KeyValidator
}

func NewAccessGate(keys KeyValidator) *AccessGate {
	return &AccessGate{keys: keys}
}

// Authorize returns nil for an issued key. Missing, malformed and unknown keys
// all produce the same forbidden error.
func (g *AccessGate) Authorize(ctx context.Context, presentedKey string) error {
	if !g.keys.IsValid(ctx, presentedKey) {
		return domain.NewForbiddenError(domain.MsgInvalidAPIKey)
	}
	return nil
}
