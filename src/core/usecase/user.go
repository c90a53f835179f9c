package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"jokeapi/src/core/domain"
	"jokeapi/src/core/ports"
)

// KeyIssuer is the part of KeyService registration needs.
type KeyIssuer interface {
	IssueKey(ctx context.Context) (domain.APIKey, error)
}

// UserService registers users and hands each one a fresh API key.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	keys   KeyIssuer
	log    *slog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, keys KeyIssuer, log *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		keys:   keys,
		log:    log,
		now:    time.Now,
	}
}

// Register stores the user with a salted password digest and returns a new key.
// Blank or whitespace-only credentials are rejected, as for joke fields.
// Usernames are not checked for uniqueness. A failed registration leaves no
// user and no key behind.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.APIKey, error) {
	if strings.TrimSpace(username) == "" {
		return "", domain.NewValidationError("username", "username and password are required")
	}
	if strings.TrimSpace(password) == "" {
		return "", domain.NewValidationError("password", "username and password are required")
	}

	hash, salt, err := s.hasher.Hash(password)
	if err != nil {
		return "", domain.NewInternalError("could not hash password", err)
	}

	// Issue the key first: if it fails, no user has been recorded yet.
	key, err := s.keys.IssueKey(ctx)
	if err != nil {
		return "", err
	}

	user := domain.User{
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}

	s.log.Info("user registered", "username", username, "key_prefix", key.Prefix())
	return key, nil
}
