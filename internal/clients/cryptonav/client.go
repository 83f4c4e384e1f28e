// Package cryptonav provides a typed client for the CryptoNav backend REST API.
package cryptonav

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/cryptonav/cryptonav/internal/common"
)

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements typed access to the CryptoNav API. Methods that operate on
// protected resources take the bearer token explicitly; the client itself holds
// no session state.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *common.Logger
	limiter        *rate.Limiter
	onUnauthorized func()
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUnauthorizedHook registers a callback invoked whenever the API rejects a
// request with 401. The session store hooks this to force sign-out so an
// expired token is handled in one place instead of per page.
func WithUnauthorizedHook(fn func()) ClientOption {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// NewClient creates a new CryptoNav API client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetUnauthorizedHook replaces the 401 callback. Used during wiring, where the
// session store is constructed after the client it depends on.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("CryptoNav API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// IsUnauthorized reports whether the error is a 401 rejection.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// errorBody is the FastAPI-style error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// do performs a rate-limited request. token may be empty for the public auth
// endpoints. result, when non-nil, receives the decoded response body.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("method", method).Str("path", path).Msg("CryptoNav API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		msg := string(raw)
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Detail != "" {
			msg = eb.Detail
		}
		// Only a rejected bearer token means the session is dead. A 401 from
		// the public login endpoint is just bad credentials and must not
		// trigger forced sign-out.
		if resp.StatusCode == http.StatusUnauthorized && token != "" && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Endpoint:   path,
		}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path, token string, query url.Values, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, token, query, nil, result)
}

func (c *Client) post(ctx context.Context, path, token string, query url.Values, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, token, query, body, result)
}

func (c *Client) put(ctx context.Context, path, token string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, token, nil, body, result)
}

func (c *Client) delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, token, nil, nil, nil)
}
