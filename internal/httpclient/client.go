package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cyp0633/libwebdav/dav"
	"github.com/cyp0633/libwebdav/internal/xml"
)

// Depth is the value of the Depth request header
type Depth string

const (
	DepthZero     Depth = "0"
	DepthOne      Depth = "1"
	DepthInfinity Depth = "infinity"
)

// HttpClientWrapper wraps http.Client with WebDAV-specific functionality
type HttpClientWrapper interface {
	DoPROPFIND(ctx context.Context, url string, depth Depth, props ...dav.QName) ([]xml.Response, error)
	// Resolve returns the absolute form of a possibly relative URL
	Resolve(url string) (*url.URL, error)
}

type httpClientWrapper struct {
	client  *http.Client
	baseURL url.URL
	logger  *slog.Logger
}

// resolveURL resolves a URL string against the base URL
func (c *httpClientWrapper) resolveURL(urlStr string) (*url.URL, error) {
	ref, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL %q: %w", urlStr, err)
	}
	return c.baseURL.ResolveReference(ref), nil
}

func (c *httpClientWrapper) Resolve(urlStr string) (*url.URL, error) {
	return c.resolveURL(urlStr)
}

// NewHttpClientWrapper creates a new client wrapper with logging
func NewHttpClientWrapper(client *http.Client, baseURL url.URL, logger *slog.Logger) (HttpClientWrapper, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &httpClientWrapper{client: client, baseURL: baseURL, logger: logger}, nil
}
