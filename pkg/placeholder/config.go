package placeholder

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public JSONPlaceholder endpoint.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	// DefaultTimeout bounds every request unless overridden.
	DefaultTimeout = 10 * time.Second

	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	mimeJSON            = "application/json"
)

// Config is the client's connection settings. Values are copied on every
// mutation so a Config returned to a caller never changes underneath them.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Headers http.Header
}

// DefaultConfig returns the public endpoint with JSON headers and a 10s timeout.
func DefaultConfig() Config {
	h := http.Header{}
	h.Set(headerContentType, mimeJSON)
	h.Set(headerAccept, mimeJSON)
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		Headers: h,
	}
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := c
	if c.Headers != nil {
		out.Headers = c.Headers.Clone()
	} else {
		out.Headers = http.Header{}
	}
	return out
}

// WithAuthToken returns a copy carrying "Authorization: Bearer <token>".
func (c Config) WithAuthToken(token string) Config {
	out := c.Clone()
	out.Headers.Set(headerAuthorization, "Bearer "+token)
	return out
}

// WithoutAuth returns a copy with the Authorization header removed.
func (c Config) WithoutAuth() Config {
	out := c.Clone()
	out.Headers.Del(headerAuthorization)
	return out
}

// AuthToken returns the configured bearer token, or "".
func (c Config) AuthToken() string {
	return strings.TrimPrefix(c.Headers.Get(headerAuthorization), "Bearer ")
}

// HasAuth reports whether an Authorization header is configured.
func (c Config) HasAuth() bool {
	return c.Headers.Get(headerAuthorization) != ""
}

// normalize fills zero fields with defaults.
func (c Config) normalize() Config {
	out := c.Clone()
	out.BaseURL = strings.TrimRight(strings.TrimSpace(out.BaseURL), "/")
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	return out
}

// headerMap flattens the header set to the first value per key.
func (c Config) headerMap() map[string]string {
	out := make(map[string]string, len(c.Headers))
	for k, vals := range c.Headers {
		if len(vals) == 0 {
			continue
		}
		out[k] = vals[0]
	}
	return out
}
