package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrFlightNotFound     = errors.New("flight not found")
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrPersistenceWarning accompanies a ticket that was committed to the
	// ledger but could not be written to the persistence log.
	ErrPersistenceWarning = errors.New("ticket issued but not persisted")
	ErrDuplicateRequest   = errors.New("duplicate booking request")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
)
