package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when an event, invitation list, notification,
	// or user record does not exist. It is surfaced verbatim to the caller
	// and never retried internally.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller is not allowed to perform the
	// operation (e.g. a non-organizer running the lottery).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when the request is invalid (e.g. a rating
	// outside the 1-5 range).
	ErrInvalidInput = errors.New("invalid input")
)
