package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client for outbound HTTP: the AI provider
// adapter and the operator console both build on it. Embedding exposes
// the full resty API while leaving room for shared behavior later.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client with its own configuration
// and connection pool.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
