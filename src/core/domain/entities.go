package domain

import (
	"strings"
	"time"
)

// Joke is a single joke record served by the API.
type Joke struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Genre    string `json:"genre"`
}

// NewJoke validates the required fields and returns a joke without an ID.
// The ID is assigned by the repository when the joke is stored.
func NewJoke(question, answer, genre string) (*Joke, error) {
	switch {
	case isBlank(question):
		return nil, NewValidationError("question", "a joke must have a question, an answer and a genre")
	case isBlank(answer):
		return nil, NewValidationError("answer", "a joke must have a question, an answer and a genre")
	case isBlank(genre):
		return nil, NewValidationError("genre", "a joke must have a question, an answer and a genre")
	}
	return &Joke{
		Question: question,
		Answer:   answer,
		Genre:    genre,
	}, nil
}

// JokePatch carries a partial update. Nil or blank fields are left untouched.
type JokePatch struct {
	Question *string
	Answer   *string
	Genre    *string
}

// IsEmpty reports whether the patch has no field that would change a joke.
func (p JokePatch) IsEmpty() bool {
	return !present(p.Question) && !present(p.Answer) && !present(p.Genre)
}

// Apply overwrites the fields of j that are set in the patch.
func (p JokePatch) Apply(j *Joke) {
	if present(p.Question) {
		j.Question = *p.Question
	}
	if present(p.Answer) {
		j.Answer = *p.Answer
	}
	if present(p.Genre) {
		j.Genre = *p.Genre
	}
}

// APIKey is an opaque bearer token. Possession is the only thing it proves.
type APIKey string

// Prefix returns the first 8 characters, safe to put in logs.
func (k APIKey) Prefix() string {
	if len(k) <= 8 {
		return string(k)
	}
	return string(k[:8])
}

// User is a registered account. The password is kept only as a salted digest.
type User struct {
	Username     string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}

func present(s *string) bool {
	return s != nil && !isBlank(*s)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
