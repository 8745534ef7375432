// Package authserver sends requests to an OAuth2 authorization server and decodes
// the JSON reply through a schema.Validator.
//
// Every failure, whether the server was unreachable, retries ran out, the status
// was not 2xx or the body did not match the validator, is reported as the same
// *oauth2.ErrorResponse with code invalid_request. Callers never see transport or
// validation errors directly.
package authserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/jrsteele09/go-auth-server-client/internal/errors"
	"github.com/jrsteele09/go-auth-server-client/oauth2"
	"github.com/rs/zerolog"
)

const (
	headerAccept      = "Accept"
	headerContentType = "Content-Type"
	headerRequestID   = "X-Request-ID"

	maxResponseBytes = 1 << 20
)

// Request sends opts with the default Client.
func Request[T any](ctx context.Context, opts Options[T]) (T, error) {
	return Do(ctx, DefaultClient(), opts)
}

// Do sends opts with c and returns the validated response body. On failure it
// returns the zero T and oauth2.NewInvalidRequest().
func Do[T any](ctx context.Context, c *Client, opts Options[T]) (T, error) {
	var zero T
	if c == nil {
		c = DefaultClient()
	}

	requestID := uuid.NewString()
	logger := c.logger.With().Str("request_id", requestID).Logger()

	p, err := opts.resolve()
	if err != nil {
		logger.Debug().Err(err).Msg("invalid authorization server request")
		return zero, oauth2.NewInvalidRequest()
	}

	raw, err := c.send(ctx, p, requestID, logger)
	if err != nil {
		logger.Debug().Err(err).Str("url", p.url).Msg("authorization server request failed")
		return zero, oauth2.NewInvalidRequest()
	}

	value, err := opts.Validator.Decode(raw)
	if err != nil {
		logger.Debug().Err(err).Str("url", p.url).Msg("authorization server response rejected")
		return zero, oauth2.NewInvalidRequest()
	}
	return value, nil
}

// send performs the HTTP exchange and returns the decoded JSON body.
func (c *Client) send(ctx context.Context, p plan, requestID string, logger zerolog.Logger) (any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target, err := withQuery(p.url, p.query)
	if err != nil {
		return nil, errors.Wrapf(err, "build url")
	}

	body, err := encodeBody(p.body, p.contentType)
	if err != nil {
		return nil, errors.Wrapf(err, "encode body")
	}

	var rawBody interface{}
	if body != nil {
		rawBody = body
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, string(p.method), target, rawBody)
	if err != nil {
		return nil, errors.Wrapf(err, "new request")
	}
	req.Header.Set(headerContentType, p.contentType)
	req.Header.Set(headerAccept, ContentTypeJSON)
	req.Header.Set(headerRequestID, requestID)

	resp, err := c.retrying(p.retries, logger).Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", p.method, p.url)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "read response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", errors.ErrUnexpectedStatus, resp.StatusCode)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidJSON, "%v", err)
	}
	return raw, nil
}
