// Package anki is a thin client for the AnkiConnect HTTP automation API.
//
// Every operation is a single JSON-RPC-style POST carrying
// {action, version, params}. The client performs no retries; a call
// either succeeds, fails with a typed error (ConnectionError,
// TimeoutError, UpstreamError), or returns the transport error as-is.
package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultURL is AnkiConnect's default listen address.
	DefaultURL = "http://localhost:8765"

	// DefaultTimeout bounds each call. Large deck operations in Anki
	// can block its UI thread for a long time, hence the generous bound.
	DefaultTimeout = 120 * time.Second

	apiVersion = 6
)

// Client talks to a locally running AnkiConnect instance. The
// underlying HTTP client is created on first use and reused for the
// lifetime of the process.
type Client struct {
	url     string
	timeout time.Duration

	mu   sync.Mutex
	http *http.Client
}

// NewClient creates a client for the given endpoint. Empty url or a
// non-positive timeout fall back to the defaults.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{url: url, timeout: timeout}
}

// URL returns the configured AnkiConnect endpoint.
func (c *Client) URL() string { return c.url }

// httpClient returns the shared HTTP client, creating it on first use.
func (c *Client) httpClient() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c.http
}

type envelope struct {
	Action  string         `json:"action"`
	Version int            `json:"version"`
	Params  map[string]any `json:"params"`
}

type reply struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// Invoke sends one AnkiConnect action and returns the raw result
// field. A nil params map is sent as an empty object.
func (c *Client) Invoke(ctx context.Context, action string, params map[string]any) (json.RawMessage, error) {
	if params == nil {
		params = map[string]any{}
	}

	body, err := json.Marshal(envelope{Action: action, Version: apiVersion, Params: params})
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", action, err)
	}

	slog.Debug("invoking AnkiConnect", "action", action)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, c.classifyTransportError(action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Action:  action,
			Message: fmt.Sprintf("unexpected HTTP status %s", resp.Status),
		}
	}

	var out reply
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", action, err)
	}

	if out.Error != nil && *out.Error != "" {
		slog.Error("AnkiConnect returned an error", "action", action, "error", *out.Error)
		return nil, &UpstreamError{Action: action, Message: *out.Error}
	}

	return out.Result, nil
}

// classifyTransportError maps transport failures onto the typed error
// taxonomy. Anything unrecognized is logged and returned unchanged.
func (c *Client) classifyTransportError(action string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		slog.Error("AnkiConnect call timed out", "action", action, "timeout", c.timeout)
		return &TimeoutError{Action: action, Timeout: c.timeout}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &ConnectionError{URL: c.url, Err: err}
	}

	slog.Error("AnkiConnect transport error", "action", action, "error", err)
	return err
}

// Version returns the AnkiConnect API version. Doubles as the health
// check behind the ping tool.
func (c *Client) Version(ctx context.Context) (int, error) {
	raw, err := c.Invoke(ctx, "version", nil)
	if err != nil {
		return 0, err
	}
	var version int
	if err := json.Unmarshal(raw, &version); err != nil {
		return 0, fmt.Errorf("decode version result: %w", err)
	}
	return version, nil
}
