package bookfeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// DefaultURL is the public mock API serving the book catalog.
const DefaultURL = "https://6781684b85151f714b0aa5db.mockapi.io/api/v1/books"

const maxBodyBytes = 10 << 20

type Client struct {
	httpClient *http.Client
	userAgent  string
	url        string
	limiter    *rate.Limiter
	maxRetries int
}

type Options struct {
	URL        string
	UserAgent  string
	Timeout    time.Duration
	RPS        int
	MaxRetries int
}

func NewClient(opts Options) *Client {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RPS <= 0 {
		opts.RPS = 5
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent:  opts.UserAgent,
		url:        opts.URL,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(opts.RPS)), 1),
		maxRetries: opts.MaxRetries,
	}
}

// URL returns the endpoint the client reads books from.
func (c *Client) URL() string {
	return c.url
}

// ListBooks downloads the catalog and converts every entry into an Item.
// Any failure is reported as "failed to fetch books: <cause>".
func (c *Client) ListBooks(ctx context.Context) ([]Item, error) {
	body, err := c.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch books: %w", err)
	}
	items, err := ParseItems(body)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch books: %w", err)
	}
	return items, nil
}

// Ping checks that the feed answers with a success status.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			log.Warn().Err(lastErr).Int("attempt", i).Dur("backoff", backoff).Msg("retrying book feed request")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, retry, err := c.do(ctx)
		if err == nil {
			return body, nil
		}
		if !retry {
			return nil, err
		}
		lastErr = err
	}
	if c.maxRetries == 0 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, false, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, false, fmt.Errorf("read body: %w", err)
	}
	return body, false, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// StatusError reports a non-success HTTP status from the feed.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}
