// internal/services/errors.go
package services

import "errors"

// Service error taxonomy. Handlers map these to HTTP statuses with
// errors.Is; services wrap them with fmt.Errorf("%w: ...") to carry
// operation context without leaking internals to the caller.
var (
	// ErrForbidden: the caller is not an administrator.
	ErrForbidden = errors.New("forbidden: admins only")

	// ErrInvalidInput: a required field is missing, an enum value is not a
	// member of its set, or no image payloads were supplied where required.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound: the id does not resolve to an existing record.
	ErrNotFound = errors.New("not found")

	// ErrUpstream: the image store or the repository failed.
	ErrUpstream = errors.New("upstream failure")
)
