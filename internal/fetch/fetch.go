// Package fetch retrieves event files over HTTP. Parsed documents are
// cached by URL so repeated checks of the same remote file do not
// re-download it.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/eventcheck/internal/loader"
)

// DefaultCacheMaxItems bounds the parsed-document cache.
const DefaultCacheMaxItems = 32

// Client fetches and parses remote event files.
type Client struct {
	httpClient *http.Client
	maxItems   int
	cache      *lru.Cache[string, any]
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithCacheSize sets the maximum number of parsed documents kept.
func WithCacheSize(n int) Option {
	return func(c *Client) {
		c.maxItems = n
	}
}

// New creates a new event file fetcher.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{},
		maxItems:   DefaultCacheMaxItems,
	}
	for _, opt := range opts {
		opt(c)
	}
	cache, err := lru.New[string, any](c.maxItems)
	if err != nil {
		return nil, err
	}
	c.cache = cache
	return c, nil
}

// Fetch downloads the event file at url and parses it into the
// validator's value form. Cached documents are returned as-is; the
// validator never mutates its input, so sharing is safe.
func (c *Client) Fetch(ctx context.Context, url string) (any, error) {
	if doc, ok := c.cache.Get(url); ok {
		slog.Debug("event file cache hit", "url", url)
		return doc, nil
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	doc, err := loader.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}

	slog.Debug("event file fetched",
		"url", url,
		"bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds())

	c.cache.Add(url, doc)
	return doc, nil
}
