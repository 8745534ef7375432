package discovery_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-auth-server-client/discovery"
	"github.com/stretchr/testify/require"
)

// newIssuer serves a discovery document. Fields in doc override the defaults.
func newIssuer(t *testing.T, doc map[string]any) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/openid-configuration" {
			http.NotFound(w, r)
			return
		}
		resp := map[string]any{
			"issuer":                 server.URL,
			"authorization_endpoint": server.URL + "/oauth2/authorize",
			"token_endpoint":         server.URL + "/oauth2/token",
			"userinfo_endpoint":      server.URL + "/userinfo",
			"jwks_uri":               server.URL + "/.well-known/jwks.json",
			"revocation_endpoint":    server.URL + "/oauth2/revoke",
			"introspection_endpoint": server.URL + "/oauth2/introspect",
		}
		for k, v := range doc {
			resp[k] = v
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDiscover(t *testing.T) {
	issuer := newIssuer(t, nil)

	endpoints, err := discovery.Discover(context.Background(), issuer.URL)
	require.NoError(t, err)
	require.Equal(t, &discovery.Endpoints{
		Issuer:        issuer.URL,
		Authorization: issuer.URL + "/oauth2/authorize",
		Token:         issuer.URL + "/oauth2/token",
		UserInfo:      issuer.URL + "/userinfo",
		Revocation:    issuer.URL + "/oauth2/revoke",
		Introspection: issuer.URL + "/oauth2/introspect",
	}, endpoints)
}

func TestTokenEndpoint(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		issuer := newIssuer(t, nil)
		tokenURL, err := discovery.TokenEndpoint(context.Background(), issuer.URL)
		require.NoError(t, err)
		require.Equal(t, issuer.URL+"/oauth2/token", tokenURL)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		issuer := newIssuer(t, map[string]any{"issuer": "https://elsewhere.example.com"})
		_, err := discovery.TokenEndpoint(context.Background(), issuer.URL)
		require.ErrorIs(t, err, discovery.ErrDiscovery)
	})

	t.Run("no token endpoint", func(t *testing.T) {
		issuer := newIssuer(t, map[string]any{"token_endpoint": ""})
		_, err := discovery.TokenEndpoint(context.Background(), issuer.URL)
		require.ErrorIs(t, err, discovery.ErrDiscovery)
		require.Contains(t, err.Error(), "no token_endpoint")
	})

	t.Run("empty issuer", func(t *testing.T) {
		_, err := discovery.TokenEndpoint(context.Background(), " ")
		require.ErrorIs(t, err, discovery.ErrDiscovery)
	})
}
