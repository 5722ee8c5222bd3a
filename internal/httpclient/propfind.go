package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cyp0633/libwebdav/dav"
	"github.com/cyp0633/libwebdav/internal/xml"
)

// DoPROPFIND performs a PROPFIND request. A completed response with any
// status other than 207 yields a *dav.ProtocolError; failures to reach the
// server or to read the body are returned as they are.
func (w *httpClientWrapper) DoPROPFIND(ctx context.Context, urlStr string, depth Depth, props ...dav.QName) ([]xml.Response, error) {
	w.logger.Debug("starting PROPFIND request",
		"url", urlStr,
		"depth", depth,
		"properties", props)

	body, err := xml.BuildPropfind(props...).WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to build PROPFIND body: %w", err)
	}

	resolvedURL, err := w.resolveURL(urlStr)
	if err != nil {
		w.logger.Debug("failed to resolve URL", "url", urlStr, "error", err)
		return nil, err
	}
	w.logger.Debug("resolved URL", "url", resolvedURL.String())

	req, err := http.NewRequestWithContext(ctx, "PROPFIND", resolvedURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Depth", string(depth))
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMultiStatus {
		w.logger.Debug("unexpected response status",
			"status_code", resp.StatusCode,
			"status", resp.Status)
		return nil, dav.NewProtocolError(
			fmt.Sprintf("PROPFIND %s failed", resolvedURL),
			resp.StatusCode,
			ReasonPhrase(resp))
	}

	w.logger.Debug("received multistatus response")

	ms, err := xml.ReadMultistatus(resp.Body)
	if err != nil {
		w.logger.Debug("failed to parse XML response", "error", err)
		return nil, fmt.Errorf("failed to parse PROPFIND response from %s: %w", resolvedURL, err)
	}

	w.logger.Debug("PROPFIND request complete", "response_count", len(ms.Responses))
	return ms.Responses, nil
}

// ReasonPhrase returns the reason phrase of resp's status line, or "" if
// the server did not send one.
func ReasonPhrase(resp *http.Response) string {
	phrase := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	return strings.TrimSpace(phrase)
}
