package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateRecord is returned when a unique constraint is violated.
	ErrDuplicateRecord = errors.New("record already exists")
)
