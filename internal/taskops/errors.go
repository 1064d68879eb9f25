package taskops

import "errors"

// Sentinel errors for the mutation paths. Callers match them with
// errors.Is.
var (
	// ErrNotFound is returned when an id-addressed read, update or
	// complete finds no matching record. Delete deliberately does NOT
	// return this: absence of a delete target is treated as success
	// (idempotent absence), while a silently no-op'd update or
	// complete would hide a caller error.
	ErrNotFound = errors.New("task not found")

	// ErrMalformedDate is returned when a caller-supplied date string
	// fails parsing. Write paths reject malformed dates before any
	// remote call is attempted.
	ErrMalformedDate = errors.New("malformed date")
)
