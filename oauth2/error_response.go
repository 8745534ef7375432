package oauth2

import (
	"fmt"

	"github.com/jrsteele09/go-auth-server-client/internal/errors"
)

// Error codes from RFC 6749 section 5.2.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidClient  = "invalid_client"
	ErrorCodeInvalidGrant   = "invalid_grant"
	ErrorCodeInvalidScope   = "invalid_scope"
)

const invalidRequestDescription = "bad request for authorization server"

// ErrorResponse is the OAuth2 error body. It doubles as the error value returned
// to callers of the authserver package.
type ErrorResponse struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *ErrorResponse) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// NewInvalidRequest returns the error reported for every failed authorization server call.
func NewInvalidRequest() *ErrorResponse {
	return &ErrorResponse{
		Code:        ErrorCodeInvalidRequest,
		Description: invalidRequestDescription,
	}
}

// IsErrorResponse reports whether err is, or wraps, an *ErrorResponse.
func IsErrorResponse(err error) bool {
	var er *ErrorResponse
	return errors.As(err, &er)
}
