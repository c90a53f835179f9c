package memory

import (
	"context"
	"sync"

	"jokeapi/src/core/domain"
	"jokeapi/src/core/ports"
)

var _ ports.KeyRepository = (*KeyRepository)(nil)

// KeyRepository is the set of issued API keys. Keys are never removed.
type KeyRepository struct {
	mu   sync.RWMutex
	keys map[domain.APIKey]struct{}
}

// NewKeyRepository constructs an empty key set.
func NewKeyRepository() *KeyRepository {
	return &KeyRepository{keys: make(map[domain.APIKey]struct{})}
}

func (r *KeyRepository) Health(ctx context.Context) error {
	return ctx.Err()
}

func (r *KeyRepository) Add(_ context.Context, key domain.APIKey) error {
	if key == "" {
		return domain.NewValidationError("apiKey", "api key cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.keys[key]; ok {
		return domain.NewConflictError("api key already issued")
	}
	r.keys[key] = struct{}{}
	return nil
}

func (r *KeyRepository) Contains(_ context.Context, key domain.APIKey) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.keys[key]
	return ok, nil
}

func (r *KeyRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys), nil
}
