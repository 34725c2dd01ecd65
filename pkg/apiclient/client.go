// Package apiclient is the single configured HTTP client every ChefStock
// data-access module goes through.
package apiclient

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

	"github.com/google/uuid"
	"github.com/yuditriaji/chefstock/pkg/credential"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const RequestIDHeader = "X-Request-ID"

type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	tokens  oauth2.TokenSource
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTimeout sets a per-request timeout. Zero leaves requests unbounded.
// It applies to a copy of the HTTP client, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New builds a client rooted at baseURL. tokens is read before every
// non-anonymous request; it may be nil for a client that never authenticates.
func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		tokens:  tokens,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// Request describes one call. Path is relative to the base URL and may carry
// a query string.
type Request struct {
	Method    string
	Path      string
	Body      interface{}
	Anonymous bool
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, nil)
}

// URL resolves path against the base URL.
func (c *Client) URL(path string) (string, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// Do performs req and decodes a JSON response into out (skipped when out is
// nil or the body is empty).
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	target, err := c.URL(req.Path)
	if err != nil {
		return err
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, reqID)

	if !req.Anonymous && c.tokens != nil {
		tok, err := c.tokens.Token()
		switch {
		case err == nil:
			tok.SetAuthHeader(httpReq)
		case errors.Is(err, credential.ErrNoCredential):
			// logged out: send without a credential and let the server decide
		default:
			return fmt.Errorf("read credential: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", req.Method), zap.String("url", target),
			zap.String("request_id", reqID), zap.Error(err))
		return &NetworkError{Method: req.Method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Method: req.Method, URL: target, Err: err}
	}

	c.log.Debug("request",
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode >= 400 {
		return &HTTPStatusError{Method: req.Method, URL: target, Status: resp.StatusCode, Body: raw}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ParseError{Method: req.Method, URL: target, Body: raw, Err: err}
	}
	return nil
}
