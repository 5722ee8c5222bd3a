package davclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/cyp0633/libwebdav/dav"
	"github.com/cyp0633/libwebdav/internal/httpclient"
	"github.com/cyp0633/libwebdav/internal/xml"
	"github.com/cyp0633/libwebdav/internal/xml/props"
)

const defaultConcurrency = 4

var (
	// ErrInvalidURL is returned for empty or unusable URLs
	ErrInvalidURL = errors.New("invalid URL")
	// ErrNoResource is returned when a PROPFIND succeeded but described
	// nothing usable
	ErrNoResource = errors.New("server returned no usable resource")
)

// DAVClient interface defines the WebDAV client operations
type DAVClient interface {
	// List returns the members of a collection, excluding the collection itself
	List(ctx context.Context, url string) ([]*dav.Resource, error)
	// Stat returns the resource at url
	Stat(ctx context.Context, url string) (*dav.Resource, error)
	// Props fetches the named properties of the resource at url
	Props(ctx context.Context, url string, names ...dav.QName) (*dav.Resource, error)
	// Walk visits url and everything below it
	Walk(ctx context.Context, url string, fn WalkFunc) error
}

// Config holds configuration for New
type Config struct {
	Client *http.Client
	// Username and Password enable basic auth when Username is set
	Username string
	Password string
	Logger   *slog.Logger
	// Concurrency bounds the parallel listings issued by Walk
	Concurrency int
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Client:      http.DefaultClient,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Concurrency: defaultConcurrency,
	}
}

type davClient struct {
	httpClient  httpclient.HttpClientWrapper
	logger      *slog.Logger
	concurrency int
}

// New creates a client for the server at baseURL. Relative URLs passed to
// the client's methods are resolved against baseURL. A nil cfg means
// DefaultConfig().
func New(baseURL string, cfg *Config) (DAVClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if baseURL == "" {
		return nil, ErrInvalidURL
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.Username != "" {
		// Copy so the caller's client keeps its own transport
		withAuth := *client
		withAuth.Transport = httpclient.NewBasicAuthTransport(cfg.Username, cfg.Password, client.Transport, logger)
		client = &withAuth
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	wrapper, err := httpclient.NewHttpClientWrapper(client, *base, logger)
	if err != nil {
		return nil, err
	}
	return NewDAVClient(wrapper, logger, concurrency), nil
}

// NewDAVClient creates a client on top of an existing wrapper
func NewDAVClient(httpClient httpclient.HttpClientWrapper, logger *slog.Logger, concurrency int) DAVClient {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &davClient{
		httpClient:  httpClient,
		logger:      logger,
		concurrency: concurrency,
	}
}

func (c *davClient) List(ctx context.Context, urlStr string) ([]*dav.Resource, error) {
	if urlStr == "" {
		return nil, ErrInvalidURL
	}
	self, err := c.httpClient.Resolve(urlStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	responses, err := c.httpClient.DoPROPFIND(ctx, urlStr, httpclient.DepthOne)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", urlStr, err)
	}

	resources := c.toResources(responses)
	children := make([]*dav.Resource, 0, len(resources))
	for _, r := range resources {
		if samePath(r, self) {
			continue
		}
		children = append(children, r)
	}
	c.logger.Debug("listed collection", "url", urlStr, "children", len(children))
	return children, nil
}

func (c *davClient) Stat(ctx context.Context, urlStr string) (*dav.Resource, error) {
	return c.Props(ctx, urlStr)
}

func (c *davClient) Props(ctx context.Context, urlStr string, names ...dav.QName) (*dav.Resource, error) {
	if urlStr == "" {
		return nil, ErrInvalidURL
	}
	responses, err := c.httpClient.DoPROPFIND(ctx, urlStr, httpclient.DepthZero, names...)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", urlStr, err)
	}
	resources := c.toResources(responses)
	if len(resources) == 0 {
		return nil, fmt.Errorf("stat %s: %w", urlStr, ErrNoResource)
	}
	return resources[0], nil
}

// toResources turns multistatus entries into resources. Entries that failed
// on the server or carry a malformed href are logged and skipped.
func (c *davClient) toResources(responses []xml.Response) []*dav.Resource {
	resources := make([]*dav.Resource, 0, len(responses))
	for _, resp := range responses {
		if resp.Status != "" {
			if code := xml.ParseStatusCode(resp.Status); code < 200 || code >= 300 {
				c.logger.Debug("skipping failed response", "href", resp.Href, "status", resp.Status)
				continue
			}
		}

		opts, err := props.Decode(resp)
		if err != nil {
			// Undecodable values are left absent
			c.logger.Debug("ignored undecodable properties", "href", resp.Href, "error", err)
		}

		r, err := dav.NewResource(resp.Href, opts)
		if err != nil {
			c.logger.Warn("skipping resource", "href", resp.Href, "error", err)
			continue
		}
		resources = append(resources, r)
	}
	return resources
}

// samePath reports whether r is the resource addressed by u. Raw paths are
// compared first; the decoded comparison covers servers that re-encode.
func samePath(r *dav.Resource, u *url.URL) bool {
	trim := func(s string) string { return strings.TrimSuffix(s, "/") }
	return trim(r.RawPath()) == trim(u.EscapedPath()) || trim(r.Path()) == trim(u.Path)
}
