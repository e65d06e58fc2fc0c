package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// DefaultBaseURL is used when STOREFRONT_API_BASE_URL is not set.
const DefaultBaseURL = "https://shopzeo.in"

// TokenSource supplies the bearer token for authenticated calls. An empty
// string means the call goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// APIError carries the server's message for a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is a thin JSON transport over the storefront API. It attaches the
// bearer token when the token source holds one and surfaces server error
// messages as *APIError.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// NewClient builds a client for the given base URL. An empty baseURL falls
// back to STOREFRONT_API_BASE_URL, then DefaultBaseURL.
func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("STOREFRONT_API_BASE_URL")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{baseURL: baseURL, http: &http.Client{}, tokens: tokens}
}

// CallOptions tune a single request. The zero value is a GET with no body.
type CallOptions struct {
	Method string
	Body   any
}

// Call performs one request and returns the raw response payload. A 204
// resolves to a nil payload. Non-2xx responses become an *APIError carrying
// the server's `message` field, or a generic fallback when the body is not
// parseable. There are no retries; cancel via ctx.
func (c *Client) Call(ctx context.Context, path string, opts *CallOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &CallOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, payload)
	}
	return payload, nil
}

func unmarshal(payload json.RawMessage, out any) error {
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, out)
}

func apiError(status int, payload []byte) *APIError {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Message != "" {
		return &APIError{StatusCode: status, Message: body.Message}
	}
	return &APIError{StatusCode: status, Message: fmt.Sprintf("request failed with status %d", status)}
}
