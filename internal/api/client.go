// Package api is the REST client for the dashboard backend. The transport
// layer (do) reproduces the front-end fetch wrapper contract exactly: JSON
// content type, bearer token injection when a session exists, cookies
// always sent, no retries, and non-2xx statuses are not transport errors.
// The typed per-resource methods layered on top check status and decode
// the body's error/message field into *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token attached to requests. A source
// returning session.ErrNoSession (or any error) simply leaves the request
// unauthenticated; the server is responsible for rejecting it.
type TokenSource interface {
	Token() (*oauth2.Token, error)
}

// Client talks to the dashboard API.
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource installs the bearer token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client. An empty baseURL means endpoints are used as-is,
// which is the dev-time reverse-proxy mode; a non-empty baseURL produces
// absolute URLs for cross-origin deployments.
func New(baseURL string, opts ...Option) *Client {
	// Cookie jar so cross-origin session cookies always travel.
	jar, _ := cookiejar.New(nil)

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// resolve joins an endpoint path with the configured base URL.
func (c *Client) resolve(endpoint string) string {
	if c.baseURL == "" {
		return endpoint
	}
	return c.baseURL + endpoint
}

// do issues one request. body, when non-nil, is JSON-encoded. The returned
// response is the caller's to close; non-2xx statuses do NOT produce an
// error here, and there is no retry. Only network-level failure errors.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(endpoint), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	slog.Debug("api request", "method", method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		slog.Debug("api error status", "method", method, "url", req.URL.String(), "status", resp.StatusCode)
	}

	return resp, nil
}

// authorize attaches the bearer token when one is available. No token, or
// a source error, means the request goes out unauthenticated.
func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	tok, err := c.tokens.Token()
	if err != nil || tok == nil || tok.AccessToken == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
}

// doJSON issues a request and decodes a 2xx response body into out (which
// may be nil). Non-2xx responses become *Error.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	resp, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// download issues a GET and hands back the raw body for 2xx responses.
// Used for binary payloads like invoice PDFs.
func (c *Client) download(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		return nil, decodeError(resp)
	}

	return resp.Body, nil
}

// upload posts a multipart form with one file field plus extra values.
func (c *Client) upload(ctx context.Context, endpoint, field, filename string, content io.Reader, extra map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to read upload content: %w", err)
	}
	for k, v := range extra {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write form field: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(endpoint), &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.authorize(req)

	slog.Debug("api upload", "url", req.URL.String(), "field", field, "filename", filename)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// query builds an endpoint with query parameters, skipping empty values.
func query(endpoint string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}
