package usecase

import (
	"context"
	"log/slog"

	"jokeapi/src/core/domain"
	"jokeapi/src/core/ports"
)

// KeyService issues API keys and answers membership queries.
type KeyService struct {
	repo ports.KeyRepository
	gen  ports.KeyGenerator
	log  *slog.Logger
}

func NewKeyService(repo ports.KeyRepository, gen ports.KeyGenerator, log *slog.Logger) *KeyService {
	return &KeyService{repo: repo, gen: gen, log: log}
}

// IssueKey generates a fresh key and adds it to the valid set.
func (s *KeyService) IssueKey(ctx context.Context) (domain.APIKey, error) {
	key, err := s.gen.NewKey()
	if err != nil {
		return "", domain.NewInternalError("could not generate api key", err)
	}
	if err := s.repo.Add(ctx, key); err != nil {
		return "", err
	}
	s.log.Info("api key issued", "key_prefix", key.Prefix())
	return key, nil
}

// IsValid reports whether candidate was issued by this service.
// Lookup failures count as invalid.
func (s *KeyService) IsValid(ctx context.Context, candidate string) bool {
	if candidate == "" {
		return false
	}
	ok, err := s.repo.Contains(ctx, domain.APIKey(candidate))
	if err != nil {
		s.log.Error("api key lookup failed", "error", err)
		return false
	}
	return ok
}
