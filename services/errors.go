package services

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both "the resource does not exist" and "the caller may
// not see it". The two cases are deliberately indistinguishable so the API
// never leaks whether a resource exists.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected input field. The whole operation fails
// before any write when validation fails; there is no partial success.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
