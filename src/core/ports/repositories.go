// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/memory. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"jokeapi/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is usable.
	Health(ctx context.Context) error
}

// JokeRepository stores the ordered joke collection.
type JokeRepository interface {
	Repository

	// List returns a copy of every joke in insertion order.
	List(ctx context.Context) ([]domain.Joke, error)

	// Get returns the joke with the given ID or a not found error.
	Get(ctx context.Context, id int64) (*domain.Joke, error)

	// ByGenre returns the jokes whose genre equals genre exactly.
	// An empty result is not an error at this layer.
	ByGenre(ctx context.Context, genre string) ([]domain.Joke, error)

	// Add assigns a fresh ID to joke, appends it and returns the stored copy.
	Add(ctx context.Context, joke domain.Joke) (*domain.Joke, error)

	// Update applies patch to the joke with the given ID.
	Update(ctx context.Context, id int64, patch domain.JokePatch) (*domain.Joke, error)

	// Remove deletes the joke with the given ID.
	Remove(ctx context.Context, id int64) error

	// Count returns the number of stored jokes.
	Count(ctx context.Context) (int, error)
}

// KeyRepository holds the set of valid API keys.
type KeyRepository interface {
	Repository

	Add(ctx context.Context, key domain.APIKey) error
	Contains(ctx context.Context, key domain.APIKey) (bool, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository records registered users. Usernames are not unique.
type UserRepository interface {
	Repository

	Create(ctx context.Context, user domain.User) error
	Count(ctx context.Context) (int, error)
}
