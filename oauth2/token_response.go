package oauth2

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-auth-server-client/internal/errors"
	"github.com/jrsteele09/go-auth-server-client/internal/utils"
	"github.com/jrsteele09/go-auth-server-client/schema"
	xoauth2 "golang.org/x/oauth2"
)

// ErrNoSubject is returned by Subject when neither the principal nor the access token names one.
var ErrNoSubject = errors.ErrNoSubject

// AccessTokenResponse is the body an authorization server returns from its token endpoint.
type AccessTokenResponse struct {
	// AccessToken is the token used to access protected resources.
	// Usage: Include in Authorization header: "Bearer <access_token>"
	AccessToken string `json:"access_token"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 3600
	ExpiresIn int `json:"expires_in"`

	// Scope is the space-separated list of scopes granted.
	// Note: May be less than requested if some scopes were denied
	Scope string `json:"scope"`

	// TokenType indicates how to use the access token, typically "Bearer".
	TokenType string `json:"token_type"`

	// Principal identifies who the token was issued to. Not every server sends it.
	Principal *string `json:"principal,omitempty"`

	// RefreshToken is an opaque token used to obtain new access tokens.
	// Only present: when the grant issues one
	RefreshToken *string `json:"refresh_token,omitempty"`
}

// AccessTokenResponseValidator validates a token endpoint response body.
var AccessTokenResponseValidator = schema.Intersection[AccessTokenResponse](
	schema.Required(schema.Props{
		"access_token": schema.String,
		"expires_in":   schema.Number,
		"scope":        schema.String,
		"token_type":   schema.String,
	}),
	schema.Partial(schema.Props{
		"principal":     schema.String,
		"refresh_token": schema.String,
	}),
)

// Token converts the response into an x/oauth2 token, with Expiry measured from now.
// Scope and principal are available through Token.Extra.
func (r AccessTokenResponse) Token() *xoauth2.Token {
	return r.TokenAt(time.Now())
}

// TokenAt is Token with an explicit issue time.
func (r AccessTokenResponse) TokenAt(issued time.Time) *xoauth2.Token {
	tok := &xoauth2.Token{
		AccessToken:  r.AccessToken,
		TokenType:    r.TokenType,
		RefreshToken: utils.Value(r.RefreshToken),
		ExpiresIn:    int64(r.ExpiresIn),
	}
	if r.ExpiresIn > 0 {
		tok.Expiry = issued.Add(time.Duration(r.ExpiresIn) * time.Second)
	}

	extra := map[string]any{ParamScope: r.Scope}
	if r.Principal != nil {
		extra[ParamPrincipal] = *r.Principal
	}
	return tok.WithExtra(extra)
}

// Scopes splits Scope on whitespace.
func (r AccessTokenResponse) Scopes() []string {
	return strings.Fields(r.Scope)
}

// Subject returns the principal when the server sent one. Otherwise it reads the
// "sub" claim of a JWT access token. The token signature is NOT verified, so the
// result must not be used for authorization decisions.
func (r AccessTokenResponse) Subject() (string, error) {
	if p := strings.TrimSpace(utils.Value(r.Principal)); p != "" {
		return p, nil
	}

	claims := jwtlib.MapClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(r.AccessToken, claims); err != nil {
		return "", errors.Wrapf(ErrNoSubject, "access token is not a jwt")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrNoSubject
	}
	return sub, nil
}
