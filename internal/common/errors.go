// Package common defines shared constants and sentinel errors used across
// Oracle components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Directory errors, surfaced synchronously to the immediate caller.
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoActiveSession    = errors.New("no active session")

	// Document-store errors.
	ErrSessionExists    = errors.New("study session already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
)
