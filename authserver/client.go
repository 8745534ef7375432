package authserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jrsteele09/go-auth-server-client/internal/config"
	"github.com/rs/zerolog"
)

// Client holds the transport settings used by Do. It is never modified after
// NewClient returns, so one Client may serve any number of concurrent calls.
type Client struct {
	httpClient   *http.Client
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	timeout      time.Duration
	logger       zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithLogger sets the logger that receives request, retry and failure events.
// Clients are silent by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets the underlying client each attempt is sent with.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRetryWait bounds the exponential backoff between attempts.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.retryWaitMin = minWait
		c.retryWaitMax = maxWait
	}
}

// WithTimeout bounds a whole call, including every retry. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient builds a Client from cfg. A nil cfg reads the environment.
func NewClient(cfg config.ClientConfig, opts ...Option) *Client {
	if cfg == nil {
		cfg = config.New()
	}
	c := &Client{
		// pooled transport from go-cleanhttp, as retryablehttp uses by default
		httpClient:   retryablehttp.NewClient().HTTPClient,
		retryWaitMin: cfg.GetRetryWaitMin(),
		retryWaitMax: cfg.GetRetryWaitMax(),
		timeout:      cfg.GetTimeout(),
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retryWaitMax < c.retryWaitMin {
		c.retryWaitMax = c.retryWaitMin
	}
	return c
}

var defaultClient = sync.OnceValue(func() *Client {
	return NewClient(config.New())
})

// DefaultClient returns the Client used by Request.
func DefaultClient() *Client {
	return defaultClient()
}

// retrying returns a retryablehttp client for one call.
func (c *Client) retrying(retries int, logger zerolog.Logger) *retryablehttp.Client {
	rc := &retryablehttp.Client{
		HTTPClient:   c.httpClient,
		RetryWaitMin: c.retryWaitMin,
		RetryWaitMax: c.retryWaitMax,
		RetryMax:     retries,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
	}
	if logger.GetLevel() != zerolog.Disabled {
		rc.Logger = leveledLogger{logger}
		rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			logger.Debug().Str("method", req.Method).Str("url", req.URL.Redacted()).Int("attempt", attempt+1).Msg("sending authorization server request")
		}
	}
	return rc
}
