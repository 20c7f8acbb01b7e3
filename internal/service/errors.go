package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when an email and password pair does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when registering an email that is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrForbidden is returned when the actor may not touch the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidReference is returned when a payload references a missing entity.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrEmailUnavailable is returned when outbound email is not configured.
	ErrEmailUnavailable = errors.New("email delivery is not configured")
	// ErrInvalidToken is returned for unknown, expired or revoked tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrValidation is returned when input fails a business rule.
	ErrValidation = errors.New("validation error")
)

// ReferenceError names the missing entity behind an ErrInvalidReference.
type ReferenceError struct {
	Entity string
	ID     uuid.UUID
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrInvalidReference }

// validationError wraps ErrValidation with a user-facing message.
type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return ErrValidation }

func invalid(format string, args ...any) error {
	return &validationError{msg: fmt.Sprintf(format, args...)}
}
