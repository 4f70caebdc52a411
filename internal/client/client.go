// ABOUTME: HTTP client for the marketplace composite API
// ABOUTME: Attaches the session bearer token per call and maps failures to RequestError

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is used when no API URL is configured
const DefaultBaseURL = "https://composite-microservice-471529071641.us-east1.run.app"

// LoginPath starts the federated login on the backend
const LoginPath = "/auth/google"

// Generic failure messages, shown when the backend gives nothing better
const (
	msgFetchUsers    = "Failed to fetch users"
	msgFetchSeller   = "Failed to fetch seller profile"
	msgFetchProfile  = "Failed to fetch profile"
	msgCreateUser    = "Failed to create user"
	msgCreateProduct = "Failed to create product"
	msgCreateReview  = "Failed to create review"
	msgUpdateUser    = "Failed to update profile"
)

// TokenSource yields the current bearer token, or "" when logged out.
// It is consulted on every request.
type TokenSource interface {
	Token() string
}

// Client is the API client for the marketplace backend
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New creates a new API client. tokens may be nil for anonymous use.
// A zero timeout leaves requests bounded only by ctx and the transport.
func New(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend root this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LoginURL returns the identity-provider entry point on the backend
func (c *Client) LoginURL() string {
	return c.baseURL + LoginPath
}

// GetUsers calls GET /api/users
func (c *Client) GetUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users, statusOnly(msgFetchUsers)); err != nil {
		return nil, err
	}
	return users, nil
}

// GetSellerProfile calls GET /api/sellers/{id}/profile.
// A missing seller and an unreachable backend fail the same way.
func (c *Client) GetSellerProfile(ctx context.Context, sellerID string) (*SellerProfile, error) {
	var profile SellerProfile
	path := "/api/sellers/" + url.PathEscape(sellerID) + "/profile"
	if err := c.do(ctx, http.MethodGet, path, nil, &profile, statusOnly(msgFetchSeller)); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile calls GET /api/profile for the logged-in user
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &user, statusOnly(msgFetchProfile)); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser calls POST /api/users
func (c *Client) CreateUser(ctx context.Context, input *CreateUserInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/users", input, &user, jsonMessage(msgCreateUser)); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateProduct calls POST /api/products. Error bodies from this endpoint
// are not guaranteed to be JSON, so plain text is surfaced too.
func (c *Client) CreateProduct(ctx context.Context, input *CreateProductInput) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodPost, "/api/products", input, &product, jsonMessageOrText(msgCreateProduct)); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateReview calls POST /api/reviews
func (c *Client) CreateReview(ctx context.Context, input *CreateReviewInput) (*Review, error) {
	var review Review
	if err := c.do(ctx, http.MethodPost, "/api/reviews", input, &review, jsonMessage(msgCreateReview)); err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateUser calls PUT /api/users/{id}
func (c *Client) UpdateUser(ctx context.Context, userID string, input *UpdateUserInput) (*User, error) {
	var user User
	path := "/api/users/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodPut, path, input, &user, jsonMessage(msgUpdateUser)); err != nil {
		return nil, err
	}
	return &user, nil
}

// errorDecoder turns a non-2xx response body into the user-facing message
type errorDecoder func(body []byte) string

// statusOnly ignores the body entirely
func statusOnly(fallback string) errorDecoder {
	return func([]byte) string {
		return fallback
	}
}

// jsonMessage surfaces the body's "message" field, else fallback
func jsonMessage(fallback string) errorDecoder {
	return func(body []byte) string {
		var errResp struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
			return fallback
		}
		return errResp.Message
	}
}

// jsonMessageOrText degrades from the JSON "message" field to the raw
// body text, then to fallback
func jsonMessageOrText(fallback string) errorDecoder {
	return func(body []byte) string {
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err != nil {
			if text := strings.TrimSpace(string(body)); text != "" {
				return text
			}
			return fallback
		}
		if obj, ok := parsed.(map[string]interface{}); ok {
			if msg, ok := obj["message"].(string); ok && msg != "" {
				return msg
			}
		}
		return fallback
	}
}

// headers builds the per-call header set from the current session token
func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			h.Set("Authorization", "Bearer "+token)
		}
	}
	return h
}

// do performs one request and decodes a 2xx body into out
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}, decodeErr errorDecoder) error {
	fallback := decodeErr(nil)

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return newRequestError(fallback, fmt.Errorf("failed to marshal input: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return newRequestError(fallback, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header = c.headers()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cause := c.handleRequestError(ctx, err)
		slog.Debug("Request failed", "method", method, "path", path, "error", cause)
		return newRequestError(fallback, cause)
	}
	defer resp.Body.Close()

	slog.Debug("Request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			data = nil
		}
		return newRequestError(decodeErr(data), fmt.Errorf("backend returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newRequestError(fallback, fmt.Errorf("invalid response from backend: %w", err))
	}
	return nil
}

// handleRequestError converts context errors to readable causes
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}
