package httpclient

import (
	"context"
	"net/http"
)

// Request describes a single HTTP call issued through a Client.
type Request struct {
	Method  string
	URL     string
	Query   map[string]string
	Headers map[string]string
	// Body is serialized as JSON unless it is a []byte or string, which are sent verbatim.
	Body any
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
	// URL is the final request URL after query encoding and redirects.
	URL() string
	IsSuccess() bool
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}
