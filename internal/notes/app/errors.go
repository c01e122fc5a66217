// Package app содержит бизнес-логику сервиса заметок.
package app

import (
	"errors"
	"fmt"
)

// Ошибки уровня бизнес-логики. HTTP слой выбирает статус по ним.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrMissingTarget       = errors.New("target does not exist")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrUserIDMismatch      = errors.New("user id does not match the route")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUnauthorized        = errors.New("unauthorized access")
	ErrMissingIdentity     = errors.New("user not found in token")
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")
)

// ValidationError описывает первое нарушенное правило входных данных.
type ValidationError struct {
	Field  string
	Reason string
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
