package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wonny/carteira/pkg/config"
	"github.com/wonny/carteira/pkg/logger"
)

// DefaultTimeout bounds every request when the config does not say otherwise.
const DefaultTimeout = 10 * time.Second

// Client is an HTTP client wrapper with a fixed timeout, default headers and logging
// ⭐ SSOT: every outgoing HTTP request goes through this client
//
// Requests are never retried; a failed call is reported once and the caller
// decides what "no data" means.
type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
	headers    http.Header
}

// New creates a new HTTP client from config
// ⭐ SSOT: http.Client instances are only created here
func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.Investidor10.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	headers := http.Header{}
	if cfg.Investidor10.UserAgent != "" {
		headers.Set("User-Agent", cfg.Investidor10.UserAgent)
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
		headers:    headers,
	}
}

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Get performs a GET request with the default headers
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders performs a GET request; extra headers override the defaults
func (c *Client) GetWithHeaders(ctx context.Context, url string, extra http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for k, vs := range extra {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	return c.do(req)
}

// GetBody performs a GET request and returns the body of a 200 response.
// Any other status is returned as *StatusError.
func (c *Client) GetBody(ctx context.Context, url string, extra http.Header) ([]byte, error) {
	resp, err := c.GetWithHeaders(ctx, url, extra)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// do executes the request with logging
func (c *Client) do(req *http.Request) (*http.Response, error) {
	startTime := time.Now()
	url := req.URL.String()

	c.logger.WithFields(map[string]interface{}{
		"method": req.Method,
		"url":    url,
	}).Debug("HTTP request started")

	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"method":   req.Method,
			"url":      url,
			"duration": duration,
			"error":    err.Error(),
		}).Debug("HTTP request failed")
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"method":      req.Method,
		"url":         url,
		"status_code": resp.StatusCode,
		"duration":    duration,
	}).Debug("HTTP request completed")

	return resp, nil
}

// StatusError reports a non-200 response
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}
