// Package fetch provides the HTTP transport used to retrieve piston-meta
// documents. Parsing never performs I/O itself; document fetch helpers
// take their bytes from a Fetcher.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Fetcher resolves a URL to raw document bytes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// TransportError reports a failed retrieval: a network-level failure or a
// non-OK response. Problems with document content are never transport
// errors.
type TransportError struct {
	URL        string
	StatusCode int // zero when the request produced no response
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client is a Fetcher backed by a retrying HTTP client.
type Client struct {
	httpClient *http.Client
	log        zerolog.Logger
}

type settings struct {
	timeout  time.Duration
	retryMax int
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*settings)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithRetryMax sets the number of retries for transient failures.
func WithRetryMax(n int) Option {
	return func(s *settings) { s.retryMax = n }
}

// WithLogger enables debug logging of fetches. The default logger discards
// everything.
func WithLogger(log zerolog.Logger) Option {
	return func(s *settings) { s.log = log }
}

// NewClient creates a fetch client with sensible defaults: three retries
// with bounded backoff and a 30 second request timeout.
func NewClient(opts ...Option) *Client {
	s := settings{
		timeout:  30 * time.Second,
		retryMax: 3,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = s.retryMax
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil // Silence default logging
	retryClient.HTTPClient.Timeout = s.timeout

	return &Client{
		httpClient: retryClient.StandardClient(),
		log:        s.log,
	}
}

// Fetch retrieves url and returns the response body.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	c.log.Debug().
		Str("url", url).
		Str("size", humanize.Bytes(uint64(len(body)))).
		Msg("fetched document")

	return body, nil
}
