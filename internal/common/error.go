package common

import (
	"errors"
	"fmt"
)

// Callers should use errors.Is to match these values.
var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")

	// Auth errors (invalid or malformed token, bad credentials).
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Invalidf returns an error wrapping ErrValidation with a formatted detail.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
