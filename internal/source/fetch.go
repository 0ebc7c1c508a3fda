package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultHTTPTimeout bounds a single HTTP fetch.
const DefaultHTTPTimeout = 30 * time.Second

// maxDocumentSize caps the body read from a URL source.
const maxDocumentSize = 64 << 20

// Fetcher retrieves the bytes of a remote data source.
type Fetcher interface {
	// Fetch reads the document behind a URL or file source.
	Fetch(ctx context.Context, src DataSource) ([]byte, error)
}

// FetcherOption configures a DefaultFetcher.
type FetcherOption func(*DefaultFetcher)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *DefaultFetcher) {
		f.client = c
	}
}

// WithHTTPTimeout sets the timeout of the default HTTP client.
func WithHTTPTimeout(d time.Duration) FetcherOption {
	return func(f *DefaultFetcher) {
		f.client = &http.Client{Timeout: d}
	}
}

// DefaultFetcher reads URL sources over HTTP and file sources from disk.
type DefaultFetcher struct {
	client *http.Client
}

// NewFetcher creates a DefaultFetcher.
func NewFetcher(opts ...FetcherOption) *DefaultFetcher {
	f := &DefaultFetcher{client: &http.Client{Timeout: DefaultHTTPTimeout}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch reads the document behind src.
func (f *DefaultFetcher) Fetch(ctx context.Context, src DataSource) ([]byte, error) {
	switch src.Kind() {
	case KindURL:
		return f.fetchURL(ctx, src.Location())
	case KindFile:
		data, err := os.ReadFile(src.Location())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src.Location(), err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %s source cannot be fetched", ErrInvalidSource, src.Kind())
	}
}

func (f *DefaultFetcher) fetchURL(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", u, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %s", u, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", u, err)
	}
	return data, nil
}
