package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the forum domain. Handlers map each of these to
// exactly one HTTP status; services never return transport codes.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so a caller cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already taken")

	ErrAuthorNotFound = errors.New("author not found")
	ErrTopicNotFound  = errors.New("topic not found")

	// ErrForbidden means the caller is authenticated but is not the
	// topic's author.
	ErrForbidden = errors.New("not the topic author")

	// ErrConflict means a concurrent writer won the race; the caller may
	// retry against fresh state.
	ErrConflict = errors.New("concurrent modification")
)

// ValidationError reports a single malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a field-level validation error.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
