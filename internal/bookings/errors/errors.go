package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrDuplicate is raised by the unique (email, preferred_date) index
	// when two submissions race past the conflict probe.
	ErrDuplicate = errors.New("booking already exists for this email and date")
)
