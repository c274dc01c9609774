// Package client is a typed Go client for the slate REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Client wraps HTTP interaction with the slate REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	// streams are long lived and must not inherit the request timeout
	streamClient *http.Client
}

// New constructs a client from the provided configuration.
func New(cfg *Config) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		httpClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		streamClient: &http.Client{},
	}
}

// Error is returned for any response with a 4xx or 5xx status.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("request failed: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func (c *Client) resolve(path string, query url.Values) string {
	raw := strings.TrimSuffix(c.baseURL.String(), "/") + path
	if encoded := query.Encode(); encoded != "" {
		return raw + "?" + encoded
	}
	return raw
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, v any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if v == nil {
		return nil
	}

	switch out := v.(type) {
	case *[]byte:
		*out, err = io.ReadAll(resp.Body)
		return err
	default:
		return json.NewDecoder(resp.Body).Decode(v)
	}
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}

type healthResponse struct {
	Status string `json:"status"`
}

// Ping verifies the API health endpoint responds with a healthy status.
func (c *Client) Ping(ctx context.Context) error {
	var payload healthResponse
	if err := c.do(ctx, http.MethodGet, c.resolve("/health", nil), nil, &payload); err != nil {
		return errors.Wrap(err, "health check failed")
	}
	if strings.ToLower(strings.TrimSpace(payload.Status)) != "healthy" {
		return errors.Errorf("health check failed: status=%q", payload.Status)
	}
	return nil
}
