package oauth2

import (
	"time"

	"github.com/jrsteele09/go-auth-server-client/schema"
)

// TokenIntrospection is the RFC 7662 introspection response.
// If Active is false the other fields are usually absent.
type TokenIntrospection struct {
	Active    bool     `json:"active"`               // Is the token valid
	Scope     *string  `json:"scope,omitempty"`      // Space separated scopes
	ClientID  *string  `json:"client_id,omitempty"`  // Client that requested the token
	Username  *string  `json:"username,omitempty"`   // Human readable resource owner
	TokenType *string  `json:"token_type,omitempty"` // Type of the token
	Exp       *int64   `json:"exp,omitempty"`        // Expiration
	Iat       *int64   `json:"iat,omitempty"`        // Issued at time
	Sub       *string  `json:"sub,omitempty"`        // Users unique ID
	Iss       *string  `json:"iss,omitempty"`        // Issuer of the token
	Jti       *string  `json:"jti,omitempty"`        // Token identifier
	Roles     []string `json:"roles,omitempty"`      // Roles assigned to the User
	Tenant    *string  `json:"tenant,omitempty"`     // Tenant
}

// TokenIntrospectionValidator validates an introspection endpoint response body.
var TokenIntrospectionValidator = schema.Intersection[TokenIntrospection](
	schema.Required(schema.Props{
		"active": schema.Boolean,
	}),
	schema.Partial(schema.Props{
		"scope":      schema.String,
		"client_id":  schema.String,
		"username":   schema.String,
		"token_type": schema.String,
		"exp":        schema.Number,
		"iat":        schema.Number,
		"sub":        schema.String,
		"iss":        schema.String,
		"jti":        schema.String,
		"roles":      schema.Array,
		"tenant":     schema.String,
	}),
)

// ExpiresAt returns the exp claim as a time, or the zero time when absent.
func (t TokenIntrospection) ExpiresAt() time.Time {
	if t.Exp == nil {
		return time.Time{}
	}
	return time.Unix(*t.Exp, 0)
}
