package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ticketry/deskauth/middleware"
)

const (
	loginPath      = "/auth/login/"
	oauthLoginPath = "/auth/oauth/login/"
	mePath         = "/users/me/"

	// Error payloads are tiny; anything bigger is not ours to buffer.
	maxErrorBody = 1 << 20
)

// APIError is a non-2xx response from the platform. Detail carries the
// server's "detail" message when the body had one.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Unauthorized reports whether the platform rejected the credential.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// Client talks to the platform's authentication exchange endpoints. The
// http.Client it is given is expected to carry the credential middleware
// as its transport; Client itself holds no credential state.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client rooted at baseURL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type exchangeResponse struct {
	Access string          `json:"access"`
	User   json.RawMessage `json:"user"`
}

// Login performs the password login exchange. On success it returns the
// bearer token and the serialized identity exactly as the server sent it.
func (c *Client) Login(ctx context.Context, credentials any) (string, json.RawMessage, error) {
	return c.exchange(ctx, loginPath, credentials)
}

// OAuthLogin performs the OAuth login exchange. Same contract as Login.
func (c *Client) OAuthLogin(ctx context.Context, payload any) (string, json.RawMessage, error) {
	return c.exchange(ctx, oauthLoginPath, payload)
}

// Me fetches the identity of the current bearer credential.
func (c *Client) Me(ctx context.Context) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, mePath, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) exchange(ctx context.Context, path string, body any) (string, json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", nil, fmt.Errorf("api: encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}

	data, err := c.do(req)
	if err != nil {
		return "", nil, err
	}

	var out exchangeResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", nil, fmt.Errorf("api: decode response: %w", err)
	}
	return out.Access, out.User, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	// Each exchange is one logical request for the expiry middleware.
	ctx = middleware.WithRetryMark(ctx)
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFrom(resp.StatusCode, data)
	}
	return data, nil
}

func errorFrom(status int, data []byte) *APIError {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(data, &body)
	return &APIError{Status: status, Detail: body.Detail}
}
