package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chinmay1088/emptier/errs"
)

// Logger is the logging surface the client writes to.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}

// Options configures a Client. Zero values fall back to the package defaults.
type Options struct {
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	Retry         RetryConfig
	HTTPClient    *http.Client
	Logger        Logger
}

// Client makes rate-limited, retried GET requests against JSON APIs.
type Client struct {
	httpClient *http.Client
	limiter    *RateLimiter
	retry      RetryConfig
	logger     Logger
}

// NewClient creates a new API client
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = DefaultRatePerSecond
	}
	if opts.Burst <= 0 {
		opts.Burst = DefaultBurst
	}
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = DefaultRetryConfig()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}

	return &Client{
		httpClient: opts.HTTPClient,
		limiter:    NewRateLimiter(opts.RatePerSecond, opts.Burst),
		retry:      opts.Retry,
		logger:     opts.Logger,
	}
}

// getJSON fetches endpoint with query and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", endpoint, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	_, err = Retry(ctx, c.retry, func() (struct{}, error) {
		if err := c.limiter.Wait(ctx, u.Host); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, c.fetch(ctx, u, out)
	})
	return err
}

func (c *Client) fetch(ctx context.Context, u *url.URL, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("GET %s", redact(u))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return WrapRetryable(err)
		}
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return WrapRetryable(fmt.Errorf("failed to read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		details := map[string]string{"host": u.Host}
		if wait := ParseRetryAfter(resp.Header.Get("Retry-After")); wait > 0 {
			details["retry_after"] = wait.String()
		}
		return errs.WithDetails(ErrRateLimited, details)
	case resp.StatusCode >= http.StatusInternalServerError:
		return WrapRetryable(fmt.Errorf("request failed with status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// StatusError is returned for non-retryable HTTP status codes.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Code, e.Body)
}

// redact hides credentials passed as query parameters.
func redact(u *url.URL) string {
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
	}
	c := *u
	c.RawQuery = q.Encode()
	return c.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
