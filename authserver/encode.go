package authserver

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/jrsteele09/go-auth-server-client/internal/errors"
)

// encodeValues flattens the supported key-value shapes into url.Values.
func encodeValues(v any) (url.Values, error) {
	switch t := v.(type) {
	case nil:
		return url.Values{}, nil
	case url.Values:
		return t, nil
	case map[string][]string:
		return url.Values(t), nil
	case map[string]string:
		values := make(url.Values, len(t))
		for k, s := range t {
			values.Set(k, s)
		}
		return values, nil
	case map[string]any:
		values := make(url.Values, len(t))
		for k, item := range t {
			switch list := item.(type) {
			case nil:
				continue
			case []string:
				values[k] = append(values[k], list...)
			case []any:
				for _, s := range list {
					values.Add(k, fmt.Sprint(s))
				}
			default:
				values.Add(k, fmt.Sprint(item))
			}
		}
		return values, nil
	}

	values, err := query.Values(v)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnsupportedBody, "cannot encode %T as key-value pairs: %v", v, err)
	}
	return values, nil
}

// encodeBody serializes body for contentType. A nil result means no request body.
func encodeBody(body any, contentType string) ([]byte, error) {
	switch raw := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return raw, nil
	case string:
		return []byte(raw), nil
	case io.Reader:
		return io.ReadAll(raw)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	mediaType = strings.ToLower(mediaType)

	switch {
	case mediaType == ContentTypeForm:
		values, err := encodeValues(body)
		if err != nil {
			return nil, err
		}
		return []byte(values.Encode()), nil
	case mediaType == ContentTypeJSON || strings.HasSuffix(mediaType, "+json"):
		return json.Marshal(body)
	}
	return nil, errors.Wrapf(errors.ErrUnsupportedBody, "cannot encode %T as %s", body, contentType)
}

// withQuery merges extra into the query string of rawURL, which must be absolute.
func withQuery(rawURL string, extra any) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("url %q is not absolute", rawURL)
	}

	values, err := encodeValues(extra)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return u.String(), nil
	}

	q := u.Query()
	for k, vs := range values {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
