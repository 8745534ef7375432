// Package discovery finds authorization server endpoints through OpenID Connect discovery.
package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-auth-server-client/internal/errors"
)

// ErrDiscovery wraps every error returned by this package.
var ErrDiscovery = errors.ErrDiscovery

// Endpoints are the URLs published in an issuer's discovery document.
type Endpoints struct {
	Issuer        string
	Authorization string
	Token         string
	UserInfo      string
	Revocation    string
	Introspection string
}

// Discover fetches {issuer}/.well-known/openid-configuration. The document's issuer
// must match issuer exactly.
func Discover(ctx context.Context, issuer string) (*Endpoints, error) {
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		return nil, fmt.Errorf("%w: issuer is required", ErrDiscovery)
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscovery, err)
	}

	var extra struct {
		Revocation    string `json:"revocation_endpoint"`
		Introspection string `json:"introspection_endpoint"`
	}
	if err := provider.Claims(&extra); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscovery, err)
	}

	endpoint := provider.Endpoint()
	return &Endpoints{
		Issuer:        issuer,
		Authorization: endpoint.AuthURL,
		Token:         endpoint.TokenURL,
		UserInfo:      provider.UserInfoEndpoint(),
		Revocation:    extra.Revocation,
		Introspection: extra.Introspection,
	}, nil
}

// TokenEndpoint returns the token_endpoint advertised by issuer.
func TokenEndpoint(ctx context.Context, issuer string) (string, error) {
	endpoints, err := Discover(ctx, issuer)
	if err != nil {
		return "", err
	}
	if endpoints.Token == "" {
		return "", fmt.Errorf("%w: %s has no token_endpoint", ErrDiscovery, issuer)
	}
	return endpoints.Token, nil
}
