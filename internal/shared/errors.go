package shared

import "errors"

var (
	// ErrNotFound indicates the record does not exist or is soft-deleted.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
