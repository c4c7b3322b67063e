package types

import "errors"

var (
	// ErrNotFound is returned when the document doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the resource conflicts (e.g. update of old revision)
	ErrConflict = errors.New("conflict")

	// ErrBadRequest is returned on invalid input
	ErrBadRequest = errors.New("bad request")

	// ErrNotAuthorized is returned when access to a resource is denied
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInternal (for unahandled exceptions)
	ErrInternal = errors.New("internal error")
)
