package errors

import (
	"errors"
	"fmt"
)

// Common error types for the authorization server client
var (
	// Request errors
	ErrMissingURL       = errors.New("missing request url")
	ErrMissingValidator = errors.New("missing response validator")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrUnsupportedBody  = errors.New("unsupported request body")

	// Response errors
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrInvalidJSON      = errors.New("response body is not valid json")

	// Token errors
	ErrNoSubject = errors.New("token has no subject")

	// Discovery errors
	ErrDiscovery = errors.New("discovery failed")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
