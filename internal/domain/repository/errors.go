package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches the lookup or mutation.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("record already exists")
)
