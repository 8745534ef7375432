package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaValidation is matched by every error Decode returns.
var ErrSchemaValidation = errors.New("schema validation failed")

// FieldError describes one field that did not conform.
type FieldError struct {
	Field    string
	Expected Kind
	// Got is the JSON kind found, "null", or empty when the field is missing.
	Got string
	// Reason is set when the failure happened while projecting onto the Go type.
	Reason string
}

func (e FieldError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	case e.Got == "":
		return fmt.Sprintf("%s: required %s is missing", e.Field, e.Expected)
	default:
		return fmt.Sprintf("%s: expected %s, got %s", e.Field, e.Expected, e.Got)
	}
}

// ValidationError collects every FieldError found in a single Decode call.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("%s: %s", ErrSchemaValidation, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

func invalid(errs ...FieldError) error {
	return &ValidationError{Errors: errs}
}
