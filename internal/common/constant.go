// Package common contains shared constants, sentinel errors and small
// helpers used by both the SkillShare client and the reference server.
package common

const (
	// AuthorizationHeaderName carries "Bearer <token>" on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the access token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName carries a per-request UUID for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// ObjectIDSize is the number of random bytes in an object id (24 hex chars).
	ObjectIDSize = 12
)
