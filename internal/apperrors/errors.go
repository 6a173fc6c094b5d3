// Package apperrors defines the sentinel errors services return so
// handlers can map them to HTTP status codes at the boundary.
package apperrors

import "errors"

var (
	// ErrValidation covers missing or malformed input.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the entity exists but is owned by someone else.
	ErrForbidden = errors.New("forbidden")

	// ErrNotConfigured means a dependent integration has no credentials.
	ErrNotConfigured = errors.New("integration not configured")
)
