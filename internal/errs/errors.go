// Package errs contains sentinel errors shared across services so handlers
// can map failures to HTTP statuses without string matching.
package errs

import "errors"

var (
	// ErrNotFound covers both a missing row and a row owned by another
	// user. Handlers must not distinguish the two cases.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique constraint violation (duplicate email).
	ErrConflict = errors.New("already exists")

	// ErrUnauthorized indicates bad credentials or an invalid, expired or
	// already used token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadRequest indicates a validation failure at the boundary.
	ErrBadRequest = errors.New("bad request")

	// ErrUnsupportedMedia indicates a file outside the image allow-list.
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrServiceUnavailable indicates an unreachable downstream service.
	ErrServiceUnavailable = errors.New("service unavailable")
)
