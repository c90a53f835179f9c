package ports

import (
	"context"

	"jokeapi/src/core/domain"
)

// ExternalService is the base interface for components reporting their health.
type ExternalService interface {
	// Health checks if the service is usable.
	Health(ctx context.Context) error
}

// PasswordHasher turns a cleartext password into a salted one-way digest.
type PasswordHasher interface {
	Hash(password string) (hash, salt []byte, err error)
}

// KeyGenerator produces fresh API key material.
type KeyGenerator interface {
	NewKey() (domain.APIKey, error)
}
