// Package dto contains Data Transfer Objects for HTTP requests and responses.
//
// DTOs are separate from domain entities to:
//   - Control what data is exposed in the API
//   - Handle JSON and form deserialization
//   - Keep wire names (e.g. "apiKey") out of the domain
//
// Naming convention:
//   - Request types: <Action><Resource>Request (e.g., AddJokeRequest)
//   - Response types: <Resource>Response (e.g., APIKeyResponse)
package dto
