package domain

// APIKeyBytes is the number of random bytes behind an API key (hex encoded to 32 chars).
const APIKeyBytes = 16

// MsgInvalidAPIKey is the single message used for every rejected key,
// whether it was missing, malformed or unknown.
const MsgInvalidAPIKey = "invalid or missing API key"

// SampleJokes seeds the collection when seeding is enabled.
func SampleJokes() []Joke {
	return []Joke{
		{
			Question: "Why didn't the skeleton fight anyone?",
			Answer:   "It didn't have the stomach for it!",
			Genre:    "funny",
		},
	}
}
