package visionhub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Client is a minimal HTTP client for the VisionHub backend. It owns the
// base URL, JSON encoding/decoding and bearer-token attachment; callers
// supply the resource path starting with /api.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	observer   func(method string, status int, elapsed time.Duration)
	debug      bool
}

// StatusError is returned for any non-2xx response. It carries the HTTP
// status text, which is all the console surfaces to the operator.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return e.Status
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests, custom timeouts).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver installs a hook called after every request with the method,
// response status (0 on transport failure) and elapsed time.
func WithObserver(fn func(method string, status int, elapsed time.Duration)) Option {
	return func(c *Client) { c.observer = fn }
}

// NewClient constructs a client for the given backend base URL with sane
// defaults.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		debug:      os.Getenv("ENV") == "development",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of the client that attaches the given bearer
// token to every request. The zero token sends no Authorization header.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// DoJSON performs one request against the backend. A non-nil body is sent
// as JSON; a non-nil result receives the decoded JSON response. Non-2xx
// responses return a *StatusError without decoding the body.
func (c *Client) DoJSON(ctx context.Context, method, path string, body, result any) error {
	start := time.Now()
	status, err := c.doJSON(ctx, method, path, body, result)
	if c.observer != nil {
		c.observer(method, status, time.Since(start))
	}
	return err
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, result any) (int, error) {
	var reader io.Reader
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if c.debug {
		ev := log.Debug().Str("method", method).Str("path", path)
		if payload != nil {
			ev = ev.RawJSON("request", payload)
		}
		ev.Msg("[VISIONHUB] Outgoing request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("path", path).
			Int("status_code", resp.StatusCode).
			Msg("[VISIONHUB] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		status := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
		if status == "" {
			status = http.StatusText(resp.StatusCode)
		}
		return resp.StatusCode, &StatusError{Code: resp.StatusCode, Status: status}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
