// Package domain contains the core domain model for the application.
//
// This package defines:
//   - Entities: Joke and User
//   - Value Objects: APIKey and JokePatch
//   - Domain Errors: business rule violations mapped to HTTP by the response package
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (storage, HTTP, etc.)
//   - Entities validate their own invariants (see NewJoke)
//
// Example:
//
//	joke, err := domain.NewJoke("Q", "A", "puns")
//	if err != nil {
//	    // err is a *DomainError wrapping ErrInvalidInput
//	}
package domain
