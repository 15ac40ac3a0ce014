// Package omdb provides a client for the Open Movie Database API.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultBaseURL  = "https://www.omdbapi.com"
	defaultTimeout  = 10 * time.Second
	defaultAttempts = 3
	defaultDelay    = 250 * time.Millisecond
)

var (
	// ErrMissingAPIKey is returned before any request when no key is configured.
	ErrMissingAPIKey = errors.New("omdb api key not configured")

	// ErrNoResults is returned when a search reports Response "False".
	ErrNoResults = errors.New("no results")

	// ErrNotFound is returned when a title lookup reports Response "False".
	ErrNotFound = errors.New("title not found")

	// ErrUnauthorized is returned when OMDb rejects the API key.
	ErrUnauthorized = errors.New("omdb rejected api key")
)

// Client is an OMDb API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetry sets how many attempts are made for transient failures and the
// initial backoff delay. attempts of 1 disables retries.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		c.delay = delay
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a new OMDb client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		attempts: defaultAttempts,
		delay:    defaultDelay,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// SearchPage fetches one page of search results. year may be empty.
func (c *Client) SearchPage(ctx context.Context, query, year string, page int) (*SearchPage, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))
	if year != "" {
		params.Set("y", year)
	}

	var result SearchPage
	if err := c.get(ctx, params, &result); err != nil {
		return nil, fmt.Errorf("search %q page %d: %w", query, page, err)
	}
	if result.Response != "True" {
		return nil, fmt.Errorf("%w: %s", ErrNoResults, result.Error)
	}
	return &result, nil
}

// Title fetches the full detail record for an IMDb id.
func (c *Client) Title(ctx context.Context, imdbID string) (*Title, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var result Title
	if err := c.get(ctx, params, &result); err != nil {
		return nil, fmt.Errorf("title %s: %w", imdbID, err)
	}
	if result.Response != "True" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, imdbID)
	}
	return &result, nil
}

// get performs a GET with the API key attached, retrying transient failures.
func (c *Client) get(ctx context.Context, params url.Values, dest any) error {
	if !c.Configured() {
		return ErrMissingAPIKey
	}
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "/?" + params.Encode()

	return retry.Do(
		func() error {
			return c.do(ctx, reqURL, dest)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.Debug("retrying omdb request", "attempt", n+1, "error", err)
		}),
	)
}

func (c *Client) do(ctx context.Context, reqURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return retry.Unrecoverable(ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("OMDb API error: %s", resp.Status)
	case resp.StatusCode != http.StatusOK:
		return retry.Unrecoverable(fmt.Errorf("OMDb API error: %s", resp.Status))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return retry.Unrecoverable(fmt.Errorf("decode response: %w", err))
	}
	return nil
}
