// Package backend is the JSON API client for the campus booking backend.
// The backend owns all durable state; this client only issues the request
// cycles the dashboard needs and normalizes the backend's failure signals.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/campusdesk/booking-dashboard/internal/version"
)

type ConnectionStatus string

const (
	StatusUnknown      ConnectionStatus = "unknown"
	StatusConnected    ConnectionStatus = "connected"
	StatusDisconnected ConnectionStatus = "disconnected"
)

var (
	// ErrUnauthorized signals the backend rejected the session; the caller
	// should send the user back through login.
	ErrUnauthorized = errors.New("backend session is not authorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is a backend-signaled business failure: a non-2xx status or a
// success:false envelope. The backend names its reason field "message" on
// some endpoints and "error" on others; both land in Reason here.
type APIError struct {
	Status int
	Reason string
}

func (e *APIError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("backend request failed (status %d)", e.Status)
	}
	return e.Reason
}

// IsUnreachable reports whether err is a transport-level failure (the
// request never reached the backend or never returned), as opposed to a
// backend-signaled one.
func IsUnreachable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	return !errors.As(err, &apiErr) && !errors.Is(err, ErrUnauthorized) && !errors.Is(err, ErrNotFound)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
	log     *slog.Logger

	mu     sync.RWMutex
	token  string
	status ConnectionStatus
}

type Options struct {
	BaseURL      string
	SessionToken string
	Timeout      time.Duration
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

func New(opts Options) *Client {
	httpc := opts.HTTPClient
	if httpc == nil {
		httpc = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: opts.BaseURL,
		httpc:   httpc,
		timeout: timeout,
		log:     logger,
		token:   opts.SessionToken,
		status:  StatusUnknown,
	}
}

func (c *Client) SetSessionToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Status() ConnectionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *Client) setStatus(status ConnectionStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

func (c *Client) sessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// envelope is the backend's mutation response shape. Success is a pointer
// so list endpoints, which have no envelope, are not mistaken for failures.
type envelope struct {
	Success *bool  `json:"success,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (e envelope) reason() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do issues one request under the configured timeout and returns the raw
// body for 2xx responses. No retries: every failure is terminal for this
// attempt.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "booking-dashboard/"+version.Version)
	if token := c.sessionToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.setStatus(StatusDisconnected)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.setStatus(StatusConnected)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return nil, &APIError{Status: resp.StatusCode, Reason: env.reason()}
	}
	return raw, nil
}

// get decodes a 2xx response body into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}

// postAs posts body and decodes a 2xx response into out.
func (c *Client) postAs(ctx context.Context, path string, body, out any) error {
	raw, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("POST %s: decode response: %w", path, err)
	}
	return nil
}

// send issues a mutation and enforces the success flag in the envelope.
func (c *Client) send(ctx context.Context, method, path string, body any) (envelope, error) {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return envelope{}, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	if env.Success != nil && !*env.Success {
		return envelope{}, &APIError{Status: http.StatusOK, Reason: env.reason()}
	}
	return env, nil
}
