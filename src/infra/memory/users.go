package memory

import (
	"context"
	"slices"
	"sync"

	"jokeapi/src/core/domain"
	"jokeapi/src/core/ports"
)

var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository appends registered users. Duplicate usernames are accepted.
type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewUserRepository constructs an empty user list.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Health(ctx context.Context) error {
	return ctx.Err()
}

func (r *UserRepository) Create(_ context.Context, user domain.User) error {
	user.PasswordHash = slices.Clone(user.PasswordHash)
	user.Salt = slices.Clone(user.Salt)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	return nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

// ByUsername returns every user registered under username, oldest first.
func (r *UserRepository) ByUsername(_ context.Context, username string) []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.User
	for _, u := range r.users {
		if u.Username == username {
			out = append(out, u)
		}
	}
	return out
}
