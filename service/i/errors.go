package i

import "errors"

// Errors shared between the services and their storage implementations.
var (
	ErrNotFound = errors.New("not found")
	ErrLocked   = errors.New("resource is locked")
)
