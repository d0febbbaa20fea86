// Package client is the single HTTP entry point to the SkillShare REST API.
//
// # Overview
//
// Client dispatches every request the resource services make:
//  1. It attaches "Authorization: Bearer <token>" taken from the session
//     unless the request is public (login, registration, password reset).
//  2. It maps response statuses onto a small error taxonomy (see APIError).
//  3. On 401 for an authenticated request it invalidates the session it read
//     the token from and redirects to login. Concurrent 401s for the same
//     session redirect once.
//  4. Requests marked Retry are re-attempted on connectivity failures with
//     exponential backoff, until the attempt budget runs out or the context
//     is cancelled.
//  5. A token-bucket limiter spaces out outbound requests.
//
// # Error Handling
//
// Failures are *APIError values that unwrap to one of the sentinels
// ErrAuthentication, ErrPermissionDenied, ErrNotFound, ErrValidation,
// ErrConflict, ErrConnectivity or ErrServer. Match them with errors.Is.
//
// # Local storage
//
// InitDatabase opens the client's SQLite file and applies the embedded goose
// migrations.
package client
