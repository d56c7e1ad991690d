package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/boardsync/internal/shared"
	"golang.org/x/time/rate"
)

const (
	userAgent       = "boardsync/0.1"
	maxErrorBodyLen = 4096
)

// ProviderError wraps a taxonomy sentinel with the provider name, HTTP status and the API error message.
//
// StatusCode is 0 when no response was received.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v: %s", e.Provider, e.Err, e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: HTTP %d: %v: %s", e.Provider, e.StatusCode, e.Err, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// classifyStatus maps a non-2xx HTTP status code to a sentinel error.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return shared.ErrMalformedRequest
	case http.StatusUnauthorized:
		return shared.ErrUnauthenticated
	case http.StatusForbidden:
		return shared.ErrForbidden
	case http.StatusNotFound:
		return shared.ErrResourceNotFound
	default:
		return shared.ErrProviderError
	}
}

// Client performs bearer-authenticated JSON requests against one provider API.
//
// Every request waits on the provider's limiter first. Failed requests are never retried.
type Client struct {
	provider   string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a client for provider rooted at baseURL.
func NewClient(provider, baseURL string, httpClient *http.Client, limits shared.LimitsConfig, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{
		provider:   provider,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    newLimiter(limits),
		logger:     logger.With("provider", provider),
	}
}

func newLimiter(limits shared.LimitsConfig) *rate.Limiter {
	if limits.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := limits.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(limits.RequestsPerSecond), burst)
}

// Provider returns the provider name used in errors and logs.
func (c *Client) Provider() string {
	return c.provider
}

// Do sends method path with token as the bearer credential.
//
// A non-nil body is encoded as JSON. A non-nil result is decoded from a 2xx response body.
func (c *Client) Do(ctx context.Context, method, path, token string, body, result any) error {
	if token == "" {
		return &shared.MissingCredentialError{Provider: c.provider}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: rate limiter: %w", c.provider, err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request body: %v", shared.ErrInvalidArgument, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrInvalidArgument, err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: request canceled: %w", c.provider, ctx.Err())
		}
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return &ProviderError{Provider: c.provider, Message: err.Error(), Err: shared.ErrProviderUnreachable}
	}
	defer resp.Body.Close()

	c.logger.Debug("response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
			Err:        classifyStatus(resp.StatusCode),
		}
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &ProviderError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Message:    err.Error(),
			Err:        shared.ErrMalformedResponse,
		}
	}
	return nil
}

// errorMessage extracts a human readable message from an error response body.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBodyLen))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(data))
}
