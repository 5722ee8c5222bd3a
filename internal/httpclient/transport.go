package httpclient

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the id used to correlate request and response logs
const RequestIDHeader = "X-Request-Id"

// BasicAuthTransport implements http.RoundTripper and adds Basic Auth
// authentication to outgoing requests.
type BasicAuthTransport struct {
	Username  string
	Password  string
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// NewBasicAuthTransport creates a new BasicAuthTransport with the given
// credentials and optional underlying transport. If transport is nil,
// http.DefaultTransport will be used.
func NewBasicAuthTransport(username, password string, transport http.RoundTripper, logger *slog.Logger) *BasicAuthTransport {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &BasicAuthTransport{
		Username:  username,
		Password:  password,
		Transport: transport,
		Logger:    logger,
	}
}

// RoundTrip implements the http.RoundTripper interface. It adds Basic Auth
// credentials and a request id to a clone of the request and delegates to
// the underlying transport.
func (t *BasicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Username == "" {
		return nil, errors.New("basic auth username cannot be empty")
	}
	if t.Transport == nil {
		return nil, errors.New("transport cannot be nil")
	}

	// RoundTrippers must not modify the caller's request
	req = req.Clone(req.Context())
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req.Header.Set(RequestIDHeader, id)
	}
	logger := t.Logger.With("request_id", id)

	reqBody := ""
	if req.Body != nil && req.Body != http.NoBody {
		bodyBytes, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
		reqBody = string(bodyBytes)
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes)) // Reset the body
	}

	logger.Debug("outgoing request",
		"method", req.Method,
		"url", req.URL.String(),
		"depth", req.Header.Get("Depth"),
		"body", reqBody)

	req.SetBasicAuth(t.Username, t.Password)
	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		logger.Debug("request failed", "error", err)
		return nil, err
	}

	respBody := ""
	if resp.Body != nil {
		bodyBytes, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		respBody = string(bodyBytes)
		resp.Body = io.NopCloser(bytes.NewReader(bodyBytes)) // Reset the body
	}

	logger.Debug("incoming response",
		"status", resp.Status,
		"headers", resp.Header,
		"body", respBody)

	return resp, nil
}
