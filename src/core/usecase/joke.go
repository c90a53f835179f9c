package usecase

import (
	"context"
	"log/slog"
	"math/rand"

	"jokeapi/src/core/domain"
	"jokeapi/src/core/ports"
)

// JokeService implements the joke collection operations on top of a repository.
// Callers are expected to have passed the AccessGate already.
type JokeService struct {
	repo ports.JokeRepository
	log  *slog.Logger
	pick func(n int) int
}

func NewJokeService(repo ports.JokeRepository, log *slog.Logger) *JokeService {
	return &JokeService{
		repo: repo,
		log:  log,
		pick: rand.Intn,
	}
}

func (s *JokeService) List(ctx context.Context) ([]domain.Joke, error) {
	jokes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if jokes == nil {
		jokes = []domain.Joke{}
	}
	return jokes, nil
}

func (s *JokeService) Get(ctx context.Context, id int64) (*domain.Joke, error) {
	return s.repo.Get(ctx, id)
}

// Random returns a uniformly chosen joke, or an empty collection error.
func (s *JokeService) Random(ctx context.Context) (*domain.Joke, error) {
	jokes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(jokes) == 0 {
		return nil, domain.NewEmptyCollectionError("no jokes available")
	}
	j := jokes[s.pick(len(jokes))]
	return &j, nil
}

// ByGenre matches genre exactly, case included. No match is a not found error.
func (s *JokeService) ByGenre(ctx context.Context, genre string) ([]domain.Joke, error) {
	jokes, err := s.repo.ByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	if len(jokes) == 0 {
		return nil, domain.NewNotFoundError("no jokes found for this genre")
	}
	return jokes, nil
}

func (s *JokeService) Add(ctx context.Context, question, answer, genre string) (*domain.Joke, error) {
	joke, err := domain.NewJoke(question, answer, genre)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.Add(ctx, *joke)
	if err != nil {
		return nil, err
	}
	s.log.Info("joke added", "id", stored.ID, "genre", stored.Genre)
	return stored, nil
}

// Update applies the non-empty fields of patch. An unknown id is reported
// before an empty patch.
func (s *JokeService) Update(ctx context.Context, id int64, patch domain.JokePatch) (*domain.Joke, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, domain.NewValidationError("", "nothing to edit, provide at least question, answer or genre")
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info("joke updated", "id", id)
	return updated, nil
}

func (s *JokeService) Remove(ctx context.Context, id int64) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.log.Info("joke removed", "id", id)
	return nil
}
