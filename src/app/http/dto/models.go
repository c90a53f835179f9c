package dto

import "jokeapi/src/core/domain"

// AddJokeRequest is the payload for POST /jokes/add.
// Presence is checked by the domain so missing fields produce a field-level error.
type AddJokeRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Genre    string `json:"genre"`
}

// EditJokeRequest is the payload for PUT /jokes/edit/:id. Every field is optional.
type EditJokeRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Genre    *string `json:"genre"`
}

// ToPatch converts the request into a domain patch.
func (r EditJokeRequest) ToPatch() domain.JokePatch {
	return domain.JokePatch{
		Question: r.Question,
		Answer:   r.Answer,
		Genre:    r.Genre,
	}
}

// RegisterRequest is accepted as JSON or as an HTML form post.
type RegisterRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// APIKeyResponse is returned by POST /apikeys.
type APIKeyResponse struct {
	APIKey string `json:"apiKey"`
}

// RandomJokeResponse wraps the joke returned by GET /jokes/random.
type RandomJokeResponse struct {
	Joke domain.Joke `json:"joke"`
}

// JokeAddedResponse is returned by POST /jokes/add.
type JokeAddedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// JokeEditedResponse is returned by PUT /jokes/edit/:id.
type JokeEditedResponse struct {
	Message string      `json:"message"`
	Joke    domain.Joke `json:"joke"`
}
