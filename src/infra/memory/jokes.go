package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"jokeapi/src/core/domain"
	"jokeapi/src/core/ports"
)

var _ ports.JokeRepository = (*JokeRepository)(nil)

// JokeRepository keeps jokes in insertion order.
type JokeRepository struct {
	mu     sync.RWMutex
	jokes  []domain.Joke
	lastID int64
	log    *slog.Logger
}

// NewJokeRepository constructs an empty joke repository.
func NewJokeRepository(log *slog.Logger) *JokeRepository {
	return &JokeRepository{log: log}
}

func (r *JokeRepository) Health(ctx context.Context) error {
	return ctx.Err()
}

func (r *JokeRepository) List(_ context.Context) ([]domain.Joke, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.jokes), nil
}

func (r *JokeRepository) Get(_ context.Context, id int64) (*domain.Joke, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.NewNotFoundError("joke not found")
	}
	j := r.jokes[i]
	return &j, nil
}

func (r *JokeRepository) ByGenre(_ context.Context, genre string) ([]domain.Joke, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Joke
	for _, j := range r.jokes {
		if j.Genre == genre {
			out = append(out, j)
		}
	}
	return out, nil
}

// Add ignores any ID on joke. IDs come from a counter that only grows,
// so an ID freed by Remove is never handed out again.
func (r *JokeRepository) Add(_ context.Context, joke domain.Joke) (*domain.Joke, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	joke.ID = r.lastID
	r.jokes = append(r.jokes, joke)
	return &joke, nil
}

func (r *JokeRepository) Update(_ context.Context, id int64, patch domain.JokePatch) (*domain.Joke, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.NewNotFoundError("joke not found")
	}
	patch.Apply(&r.jokes[i])
	j := r.jokes[i]
	return &j, nil
}

func (r *JokeRepository) Remove(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.NewNotFoundError("joke not found")
	}
	r.jokes = slices.Delete(r.jokes, i, i+1)
	return nil
}

func (r *JokeRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jokes), nil
}

// Seed appends jokes through Add so they receive regular IDs.
func (r *JokeRepository) Seed(ctx context.Context, jokes []domain.Joke) error {
	for _, j := range jokes {
		if _, err := r.Add(ctx, j); err != nil {
			return err
		}
	}
	r.log.Info("joke collection seeded", "count", len(jokes))
	return nil
}

// indexOf must be called with the lock held.
func (r *JokeRepository) indexOf(id int64) int {
	return slices.IndexFunc(r.jokes, func(j domain.Joke) bool { return j.ID == id })
}
