package models

import "errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrUserNotFound = errors.New("user not found")
)

// ValidationError carries a reason that is safe to show to the client.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
