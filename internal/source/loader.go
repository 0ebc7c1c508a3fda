package source

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/npratt/pollygraph/internal/graph"
)

// DefaultCacheSize is the number of decoded documents kept by a Loader.
const DefaultCacheSize = 32

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCacheSize sets the number of cached documents. Zero disables caching.
func WithCacheSize(n int) LoaderOption {
	return func(l *Loader) {
		l.cacheSize = n
	}
}

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader turns data sources into raw documents. Remote documents are cached
// by location, and concurrent fetches of one location share a single request.
// Cached documents are shared between callers and must be treated as
// read-only.
type Loader struct {
	fetcher   Fetcher
	cacheSize int
	cache     *lru.Cache[string, graph.RawGraph]
	group     singleflight.Group
	logger    *slog.Logger
}

// NewLoader creates a Loader over fetcher.
func NewLoader(fetcher Fetcher, opts ...LoaderOption) (*Loader, error) {
	l := &Loader{
		fetcher:   fetcher,
		cacheSize: DefaultCacheSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.cacheSize > 0 {
		cache, err := lru.New[string, graph.RawGraph](l.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create document cache: %w", err)
		}
		l.cache = cache
	}
	return l, nil
}

// Load returns the raw document of src. Inline sources are decoded directly;
// a malformed inline JSON text fails with ErrInvalidSource. Remote failures
// wrap ErrFetch.
func (l *Loader) Load(ctx context.Context, src DataSource) (graph.RawGraph, error) {
	if !src.Valid() {
		return graph.RawGraph{}, ErrInvalidSource
	}

	switch src.Kind() {
	case KindObject:
		return *src.raw, nil
	case KindJSONText:
		raw, err := Decode([]byte(src.Location()), FormatJSON)
		if err != nil {
			return graph.RawGraph{}, fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}
		return raw, nil
	}

	key := src.Location()
	if l.cache != nil {
		if raw, ok := l.cache.Get(key); ok {
			l.logger.Debug("document cache hit", "location", key)
			return raw, nil
		}
	}

	v, err, shared := l.group.Do(key, func() (any, error) {
		return l.fetch(ctx, src)
	})
	if err != nil {
		return graph.RawGraph{}, err
	}
	if shared {
		l.logger.Debug("shared in-flight fetch", "location", key)
	}
	return v.(graph.RawGraph), nil
}

func (l *Loader) fetch(ctx context.Context, src DataSource) (graph.RawGraph, error) {
	key := src.Location()
	l.logger.Debug("fetching document", "location", key, "kind", src.Kind().String())

	data, err := l.fetcher.Fetch(ctx, src)
	if err != nil {
		return graph.RawGraph{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	raw, err := Decode(data, FormatOf(key))
	if err != nil {
		return graph.RawGraph{}, fmt.Errorf("%w: %s: %w", ErrFetch, key, err)
	}

	if l.cache != nil {
		l.cache.Add(key, raw)
	}
	return raw, nil
}

// Invalidate drops the cached document of src so the next Load refetches it.
func (l *Loader) Invalidate(src DataSource) {
	if l.cache == nil || !src.Remote() {
		return
	}
	l.cache.Remove(src.Location())
}

// Purge drops every cached document.
func (l *Loader) Purge() {
	if l.cache != nil {
		l.cache.Purge()
	}
}
