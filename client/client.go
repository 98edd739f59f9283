// Package client implements the REST client for the dompet backend: verb
// helpers over a configured base URL, bearer-token attachment, and the 401
// interception that drives the global session teardown.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/rakadenta/dompet"
)

const defaultTimeout = 30 * time.Second

// Client issues authenticated requests against the backend. Every outgoing
// request carries the stored bearer token when one is present; an absent
// token simply produces an unauthenticated request and the server decides.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	store   dompet.TokenStore
	logger  dompet.Logger

	mu           sync.RWMutex
	unauthorized func()
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithClientLogger overrides the logger.
func WithClientLogger(logger dompet.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for baseURL, reading bearer tokens from store.
func New(baseURL string, store dompet.TokenStore, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "invalid base URL")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.New("base URL must be absolute", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	c := &Client{
		baseURL: parsed,
		http:    &http.Client{Timeout: defaultTimeout},
		store:   store,
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetUnauthorizedHandler registers the callback invoked once per 401
// response. The slot holds a single handler: calling it again overwrites the
// previous registration, last registration wins. The credential endpoints
// (login, register, password reset) are exempt: a 401 there is a form error
// and leaves any live session alone.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unauthorized = fn
}

// RequestOption tweaks a single request.
type RequestOption func(*requestConfig)

type requestConfig struct {
	query      url.Values
	header     http.Header
	noAuthHook bool
}

// WithQuery adds a query parameter to the request.
func WithQuery(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.query.Add(key, value)
	}
}

// WithHeader sets a per-call header, overriding any default.
func WithHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		rc.header.Set(key, value)
	}
}

// withoutUnauthorizedHook marks requests whose 401 means bad credentials,
// not a dead session. The credential endpoints use it so a failed login
// attempt never tears down a live session.
func withoutUnauthorizedHook() RequestOption {
	return func(rc *requestConfig) {
		rc.noAuthHook = true
	}
}

// Get issues a GET and decodes the JSON response into out when out is non-nil.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, opts)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, payload, out any, opts ...RequestOption) error {
	body, err := c.do(ctx, http.MethodPost, path, payload, opts)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, payload, out any, opts ...RequestOption) error {
	body, err := c.do(ctx, http.MethodPut, path, payload, opts)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	body, err := c.do(ctx, http.MethodDelete, path, nil, opts)
	if err != nil {
		return err
	}
	return decode(body, out)
}

// Download issues a GET and streams the raw response body into w. Used for
// the export sub-resources where the payload is not JSON.
func (c *Client) Download(ctx context.Context, path string, w io.Writer, opts ...RequestOption) error {
	resp, err := c.roundTrip(ctx, http.MethodGet, path, nil, opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return c.errorFromResponse(resp, body)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "download interrupted").
			WithTextCode(TextCodeNetworkError)
	}
	return nil
}

// do performs the request and returns the raw response body for successful
// statuses. HTTP errors and transport failures come back as rich errors; the
// 401 side effect has already run by the time the caller sees the error.
func (c *Client) do(ctx context.Context, method, path string, payload any, opts []RequestOption) ([]byte, error) {
	resp, err := c.roundTrip(ctx, method, path, payload, opts)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "unable to read response body").
			WithTextCode(TextCodeNetworkError)
	}

	if resp.StatusCode >= 400 {
		return nil, c.errorFromResponse(resp, body)
	}
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload any, opts []RequestOption) (*http.Response, error) {
	rc := &requestConfig{
		query:  url.Values{},
		header: http.Header{},
	}
	for _, opt := range opts {
		opt(rc)
	}

	target := c.baseURL.JoinPath(strings.TrimPrefix(path, "/"))
	if len(rc.query) > 0 {
		target.RawQuery = rc.query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "unable to encode request body")
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "unable to build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.store.Get(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, values := range rc.header {
		req.Header[key] = values
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "request failed").
			WithTextCode(TextCodeNetworkError)
	}

	if resp.StatusCode == http.StatusUnauthorized && !rc.noAuthHook {
		c.fireUnauthorized(method, path)
	}
	return resp, nil
}

// fireUnauthorized invokes the registered handler exactly once for this
// failing response, before the error reaches the caller. The caller's own
// error handling still runs afterwards; the handler never swallows anything.
func (c *Client) fireUnauthorized(method, path string) {
	c.mu.RLock()
	fn := c.unauthorized
	c.mu.RUnlock()

	if fn == nil {
		return
	}
	c.logger.Debug("%s %s returned 401, notifying session", method, path)
	fn()
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "unable to decode response body")
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
