package service

import (
	"errors"
	"fmt"

	"mini_crm/internal/repository"
)

// Domain errors for auth flows.
var (
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrEmailTaken         = errors.New("Email already registered")
)

// ErrNotFound is returned when an id is absent or owned by someone else.
// The two cases are deliberately indistinguishable.
var ErrNotFound = repository.ErrNotFound

// ValidationError reports bad or missing input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
