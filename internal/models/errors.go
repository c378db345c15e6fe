package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested journal (or entry) does not exist.
	ErrNotFound = errors.New("journal not found")
	// ErrConflict means a journal with the same share key already exists.
	ErrConflict = errors.New("share key already exists")
	// ErrForbidden means a non-creator tried to change journal permissions.
	ErrForbidden = errors.New("only the journal creator can change permissions")
)

// ValidationError marks malformed client input; the API layer maps it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
