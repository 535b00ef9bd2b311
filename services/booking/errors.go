package booking

import "errors"

var (
	// ErrSessionNotFound is returned when a session id does not resolve,
	// either because it never existed or its TTL expired.
	ErrSessionNotFound = errors.New("booking session not found or expired")
	// ErrSessionOwner is returned when a session is accessed by a user
	// other than the one who opened it.
	ErrSessionOwner = errors.New("session belongs to a different user")
	// ErrNoRangeSelected is returned when confirmation is attempted
	// before a range is committed.
	ErrNoRangeSelected = errors.New("no time range selected")
)
