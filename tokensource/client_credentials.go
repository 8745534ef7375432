// Package tokensource provides golang.org/x/oauth2 token sources backed by authserver requests.
package tokensource

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/go-auth-server-client/authserver"
	"github.com/jrsteele09/go-auth-server-client/oauth2"
	xoauth2 "golang.org/x/oauth2"
)

// DefaultFallbackLifetime is the lifetime given to tokens whose response has no
// positive expires_in.
const DefaultFallbackLifetime = time.Minute

// ClientCredentials fetches tokens with the client_credentials grant. Client
// credentials are sent in the form body (client_secret_post).
type ClientCredentials struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string

	// Client defaults to authserver.DefaultClient.
	Client *authserver.Client
	// Retries defaults to authserver.DefaultRetries.
	Retries *int
	// Now defaults to time.Now and stamps token expiry.
	Now func() time.Time
	// FallbackLifetime defaults to DefaultFallbackLifetime.
	FallbackLifetime time.Duration
}

// TokenSource binds c to ctx so it can be used wherever an xoauth2.TokenSource is expected.
func (c *ClientCredentials) TokenSource(ctx context.Context) xoauth2.TokenSource {
	return &source{ctx: ctx, config: c}
}

// ReuseTokenSource caches the token until it expires. A token issued without
// expires_in is cached for FallbackLifetime only.
func (c *ClientCredentials) ReuseTokenSource(ctx context.Context) xoauth2.TokenSource {
	return xoauth2.ReuseTokenSource(nil, c.TokenSource(ctx))
}

// Token requests a new token. Failures are the uniform *oauth2.ErrorResponse.
func (c *ClientCredentials) Token(ctx context.Context) (*xoauth2.Token, error) {
	form := url.Values{}
	form.Set(oauth2.ParamGrantType, string(oauth2.ClientCredentialsGrant))
	form.Set(oauth2.ParamClientID, c.ClientID)
	form.Set(oauth2.ParamClientSecret, c.ClientSecret)
	if len(c.Scopes) > 0 {
		form.Set(oauth2.ParamScope, strings.Join(c.Scopes, " "))
	}

	resp, err := authserver.Do(ctx, c.Client, authserver.Options[oauth2.AccessTokenResponse]{
		URL:       c.TokenURL,
		Method:    authserver.MethodPost,
		Body:      form,
		Retries:   c.Retries,
		Validator: oauth2.AccessTokenResponseValidator,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	issued := now()
	tok := resp.TokenAt(issued)
	if tok.Expiry.IsZero() {
		lifetime := c.FallbackLifetime
		if lifetime <= 0 {
			lifetime = DefaultFallbackLifetime
		}
		tok.Expiry = issued.Add(lifetime)
	}
	return tok, nil
}

type source struct {
	ctx    context.Context
	config *ClientCredentials
}

func (s *source) Token() (*xoauth2.Token, error) {
	return s.config.Token(s.ctx)
}
