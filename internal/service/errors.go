package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStars is returned when a submitted rating is outside [1,5].
	ErrInvalidStars = errors.New("service: stars must be an integer between 1 and 5")
	// ErrEmailTaken is returned when signing up with an already-registered email.
	ErrEmailTaken = errors.New("service: email already registered")
	// ErrInvalidCredentials is returned when sign-in fails.
	ErrInvalidCredentials = errors.New("service: invalid credentials")
	// ErrForbidden is returned when the caller may not act on the entity.
	ErrForbidden = errors.New("service: forbidden")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
