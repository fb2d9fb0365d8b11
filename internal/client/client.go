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
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Credentials is a per-request capability. It is attached explicitly to
// each outgoing call; the shared HTTP client carries no ambient auth
// state.
type Credentials struct {
	Token string
}

func (c Credentials) apply(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

// RemoteError is a failure reported by the catalog or order service.
// Checkout callers seeing one must leave the cart intact and allow
// resubmission.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote service returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the storefront backend API. One instance is shared by
// all handlers; per-request state travels in arguments only.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Client) do(ctx context.Context, creds Credentials, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	creds.apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return remoteError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response failed: %w", err)
		}
	}
	return nil
}

func remoteError(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(data, &payload); err != nil || payload.Message == "" {
		payload.Message = http.StatusText(resp.StatusCode)
	}
	return &RemoteError{StatusCode: resp.StatusCode, Message: payload.Message}
}
