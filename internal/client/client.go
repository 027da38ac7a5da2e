// Package client is a typed Go client for the mini_crm HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mini_crm/internal/logger"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	// Detail carries the "error" field of validation failures.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	log     *logger.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

func WithTokenStore(s TokenStore) Option { return func(c *Client) { c.store = s } }

func WithLogger(l *logger.Logger) Option { return func(c *Client) { c.log = l } }

// New returns a client for baseURL ("http://localhost:8080"). Without
// WithTokenStore the session lives in memory.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		store:   NewMemoryStore(),
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store exposes the session store in use.
func (c *Client) Store() TokenStore { return c.store }

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	session, err := c.store.Load()
	if err != nil {
		return err
	}
	if session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	c.log.Debugw("api request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	return c.parseResponse(resp, out)
}

func (c *Client) parseResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.log.Debugw("api response", "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(data, &body) == nil && body.Message != "" {
			apiErr.Message, apiErr.Detail = body.Message, body.Error
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			if err := c.store.Clear(); err != nil {
				c.log.Warnw("failed to clear session", "err", err)
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
