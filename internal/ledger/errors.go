package ledger

import "errors"

var (
	// ErrNotFound is returned when an operation names a party that does not exist.
	ErrNotFound = errors.New("party not found")

	// ErrInvalidInput is returned for empty names, non-positive amounts and self-loans.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateParty is returned by AddParty when the name is already taken.
	ErrDuplicateParty = errors.New("party already exists")

	// ErrInconsistent is returned by Check and Restore when a snapshot breaks a ledger invariant.
	ErrInconsistent = errors.New("inconsistent ledger state")
)
