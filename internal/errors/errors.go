package errors

import (
	"errors"
	"fmt"
)

// Common error types for the storefront auth service
var (
	// Configuration errors
	ErrMissingConfiguration = errors.New("missing configuration")

	// Login transaction errors
	ErrNoCode       = errors.New("no authorization code")
	ErrInvalidState = errors.New("invalid state")
	ErrNoVerifier   = errors.New("no code verifier")

	// Session errors
	ErrNoSession        = errors.New("no session")
	ErrIncompleteTokens = errors.New("token set is missing access or refresh token")

	// Token errors
	ErrInvalidIDToken = errors.New("invalid id token")

	// Cookie errors
	ErrCookieTampered = errors.New("cookie value could not be opened")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
