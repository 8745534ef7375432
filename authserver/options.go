package authserver

import (
	"github.com/jrsteele09/go-auth-server-client/internal/errors"
	"github.com/jrsteele09/go-auth-server-client/internal/utils"
	"github.com/jrsteele09/go-auth-server-client/schema"
)

// Method is the HTTP method used for an authorization server call.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

const (
	DefaultMethod      = MethodGet
	DefaultRetries     = 3
	DefaultContentType = ContentTypeForm

	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJSON = "application/json"
)

// Options describe a single authorization server call whose response decodes to T.
type Options[T any] struct {
	// Body is encoded according to ContentType. Form bodies accept url.Values,
	// map[string]string, map[string][]string, map[string]any or a struct with `url` tags.
	// JSON bodies accept anything encoding/json can marshal. []byte, string and
	// io.Reader are sent as is for any content type.
	Body any

	// Method defaults to GET.
	Method Method

	// Query accepts the same shapes as a form Body and is merged into URL's query string.
	Query any

	// Retries is the number of additional attempts after a failed one. Nil means
	// DefaultRetries and negative values count as zero.
	Retries *int

	// ContentType defaults to application/x-www-form-urlencoded.
	ContentType string

	// URL is the full, absolute endpoint URL. Required.
	URL string

	// Validator checks and decodes the JSON response body. Required.
	Validator schema.Validator[T]
}

// plan is the untyped part of Options once defaults are applied.
type plan struct {
	method      Method
	url         string
	query       any
	body        any
	contentType string
	retries     int
}

func (o Options[T]) resolve() (plan, error) {
	if o.URL == "" {
		return plan{}, errors.ErrMissingURL
	}
	if o.Validator == nil {
		return plan{}, errors.ErrMissingValidator
	}

	method := o.Method
	if method == "" {
		method = DefaultMethod
	}
	if !method.valid() {
		return plan{}, errors.Wrapf(errors.ErrInvalidMethod, "%q", method)
	}

	contentType := o.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	return plan{
		method:      method,
		url:         o.URL,
		query:       o.Query,
		body:        o.Body,
		contentType: contentType,
		retries:     max(utils.ValueOr(o.Retries, DefaultRetries), 0),
	}, nil
}

func (m Method) valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return true
	}
	return false
}
