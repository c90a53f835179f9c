// Package crypto implements password digests and API key generation.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"

	"jokeapi/src/core/domain"
)

// Argon2id parameters (tuned for server-side hashing).
const (
	argonTime    uint32 = 3         // iterations
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// HashPassword returns the Argon2id digest of password using the provided salt.
func HashPassword(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword verifies password against expected Argon2id hash and salt.
// There is no login flow, so only tests use it to check stored digests.
func VerifyPassword(password, salt, expected []byte) bool {
	got := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

// Argon2Hasher salts and hashes passwords for the user registry.
type Argon2Hasher struct{}

// Hash draws a fresh salt and returns the digest together with it.
func (Argon2Hasher) Hash(password string) ([]byte, []byte, error) {
	salt, err := RandBytes(saltLen)
	if err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	return HashPassword([]byte(password), salt), salt, nil
}

// HexKeyGenerator produces hex encoded random API keys.
type HexKeyGenerator struct{}

// NewKey returns domain.APIKeyBytes random bytes as lowercase hex.
func (HexKeyGenerator) NewKey() (domain.APIKey, error) {
	b, err := RandBytes(domain.APIKeyBytes)
	if err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return domain.APIKey(hex.EncodeToString(b)), nil
}
