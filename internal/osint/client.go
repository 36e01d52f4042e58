package osint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody caps how much of an error response we keep for messages.
const maxErrorBody = 512

// Client is the shared HTTP machinery behind every provider wrapper.
//
// Design decision: We use one Client shared by all providers rather
// than a client per provider because:
//  1. Timeout and User-Agent policy should be consistent
//  2. Connection pooling is shared across providers in a pipeline run
//  3. Tests swap a single transport instead of seven
type Client struct {
	// http performs the actual requests.
	http *http.Client

	// userAgent is sent on every request. Some providers (Reddit in
	// particular) reject the Go default.
	userAgent string

	// maxBodySize limits how many response bytes are read.
	maxBodySize int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response size to read.
func WithMaxBodySize(size int64) ClientOption {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// NewClient creates a provider client with sane defaults: a 30 second
// timeout and a 5MB response cap.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		userAgent:   "osintkit/1.0 (+https://github.com/glitchsec/osintkit)",
		maxBodySize: 5 * 1024 * 1024, // 5MB
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// getJSON performs a GET against rawURL and decodes the JSON response
// into out. Extra headers are applied on top of the defaults.
func (c *Client) getJSON(ctx context.Context, provider, rawURL string, header http.Header, out any) error {
	return c.doJSON(ctx, provider, http.MethodGet, rawURL, header, nil, out)
}

// postJSON performs a POST with a JSON-encoded payload and decodes the
// JSON response into out.
func (c *Client) postJSON(ctx context.Context, provider, rawURL string, header http.Header, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("osint: %s: failed to encode request: %w", provider, err)
	}
	return c.doJSON(ctx, provider, http.MethodPost, rawURL, header, body, out)
}

func (c *Client) doJSON(ctx context.Context, provider, method, rawURL string, header http.Header, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("osint: %s: failed to create request: %w", provider, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("osint: %s: request failed: %w", provider, redactURLError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return fmt.Errorf("osint: %s: failed to read response: %w", provider, err)
	}

	if err := statusToError(provider, resp.StatusCode, data); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("osint: %s: failed to decode response: %w", provider, err)
	}
	return nil
}

// redactURLError rewrites the URL inside a url.Error so query values
// never surface in error output. Shodan and Hunter carry the API key
// as a query parameter, and transport errors embed the full request
// URL in their message, which would leak the key past the logger's
// redaction.
func redactURLError(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil || u.RawQuery == "" {
		return err
	}
	q := u.Query()
	for k := range q {
		q.Set(k, "redacted")
	}
	u.RawQuery = q.Encode()
	return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
}

// statusToError maps a provider's HTTP status to the package's error
// taxonomy. 2xx is success; 404 means the target is unknown; 401/403
// mean key trouble; 429 means quota.
func statusToError(provider string, status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return fmt.Errorf("%w (%s)", ErrNotFound, provider)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w (%s, status %d)", ErrUnauthorized, provider, status)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w (%s)", ErrRateLimited, provider)
	default:
		return &StatusError{
			Provider:   provider,
			StatusCode: status,
			Body:       truncateBody(body),
		}
	}
}

// truncateBody trims an error body to a single printable line.
func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
