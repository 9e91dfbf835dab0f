// Package placeholder is a client for the JSONPlaceholder REST resources
// (posts, comments, users, albums, photos, todos). Every call returns an
// Outcome; transport failures are reported inside it, never as errors.
package placeholder

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/placeholder-client/pkg/httpclient"
)

// Client issues requests against a JSONPlaceholder-compatible API.
type Client struct {
	mu        sync.RWMutex
	cfg       Config
	transport httpclient.Client
	log       Logger
}

// Option customizes a Client.
type Option func(*options)

type options struct {
	cfg       Config
	transport httpclient.Client
	log       Logger
}

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.cfg.BaseURL = baseURL }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.cfg.Timeout = timeout }
}

// WithTransport replaces the HTTP transport, mostly for tests.
func WithTransport(transport httpclient.Client) Option {
	return func(o *options) { o.transport = transport }
}

// WithLogger attaches a logger for per-call diagnostics.
func WithLogger(log Logger) Option {
	return func(o *options) { o.log = log }
}

// New builds a client for the public endpoint unless options say otherwise.
func New(opts ...Option) *Client {
	o := &options{cfg: DefaultConfig()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	cfg := o.cfg.normalize()
	transport := o.transport
	if transport == nil {
		transport = httpclient.NewRestyClient(cfg.Timeout)
	}

	return &Client{
		cfg:       cfg,
		transport: transport,
		log:       ensureLogger(o.log),
	}
}

// Config returns a copy of the current configuration.
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Clone()
}

// SetAuthToken makes subsequent requests carry a bearer token.
func (c *Client) SetAuthToken(token string) Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = c.cfg.WithAuthToken(token)
	return c.cfg.Clone()
}

// ClearAuth drops the bearer token, if any.
func (c *Client) ClearAuth() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = c.cfg.WithoutAuth()
	return c.cfg.Clone()
}

// Do issues one request against path (relative to the base URL) and
// normalizes the result. query may be nil; body may be nil, a Payload, a
// RawBody or any JSON-serializable value.
func (c *Client) Do(ctx context.Context, method, path string, query map[string]string, body any) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.RLock()
	cfg := c.cfg
	headers := cfg.headerMap()
	c.mu.RUnlock()

	if raw, ok := body.(RawBody); ok {
		body = []byte(raw)
	}

	reqCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.transport.Do(reqCtx, httpclient.Request{
		Method:  method,
		URL:     cfg.BaseURL + "/" + strings.TrimLeft(path, "/"),
		Query:   query,
		Headers: headers,
		Body:    body,
	})
	out := normalize(resultOf(resp, err))

	c.logOutcome(method, path, out, time.Since(start))
	return out
}

// logOutcome maps status classes to log levels.
func (c *Client) logOutcome(method, path string, out Outcome, elapsed time.Duration) {
	fields := map[string]any{
		"method":      method,
		"path":        path,
		"status_code": out.StatusCode,
		"elapsed_ms":  elapsed.Milliseconds(),
	}
	switch {
	case out.Failed():
		fields["error"] = out.Error
		c.log.ErrorObj("placeholder request failed", "placeholder_request", fields)
	case out.StatusCode >= http.StatusInternalServerError:
		c.log.ErrorObj("placeholder request completed", "placeholder_request", fields)
	case out.StatusCode >= http.StatusMultipleChoices:
		c.log.WarnObj("placeholder request completed", "placeholder_request", fields)
	default:
		c.log.DebugObj("placeholder request completed", "placeholder_request", fields)
	}
}
