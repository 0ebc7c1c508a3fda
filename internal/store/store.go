// Package store holds the current graph level and answers the navigation
// queries of the focus controller. Remote sources load asynchronously; the
// latest request always wins.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/npratt/pollygraph/internal/graph"
	"github.com/npratt/pollygraph/internal/source"
)

// DefaultLoadTimeout bounds one asynchronous load.
const DefaultLoadTimeout = time.Minute

// SamePathPolicy decides what loading the already current path does.
type SamePathPolicy string

const (
	// SamePathRenotify keeps the current level and only re-notifies focus.
	SamePathRenotify SamePathPolicy = "renotify"
	// SamePathRefetch always loads the source again.
	SamePathRefetch SamePathPolicy = "refetch"
)

// Cause says why the current level changed.
type Cause int

const (
	CauseLoad Cause = iota
	CauseRenotify
	CauseInner
	CauseOuter
)

func (c Cause) String() string {
	switch c {
	case CauseLoad:
		return "load"
	case CauseRenotify:
		return "renotify"
	case CauseInner:
		return "inner"
	case CauseOuter:
		return "outer"
	default:
		return "unknown"
	}
}

// DataChange describes a new current level.
type DataChange struct {
	Graph *graph.Graph
	// Path is the addressable path of the level's data source.
	Path string
	// FocusID is the element to focus, empty for the level's first node.
	FocusID    string
	FromRouter bool
	Cause      Cause
}

// Listener is notified of level changes and load progress.
type Listener interface {
	OnDataChange(change DataChange)
	OnLoadStart(path string)
	OnLoadError(path string, err error)
}

// Dispatcher runs the completion of an asynchronous load. The TUI passes a
// function that hands the callback to its event loop.
type Dispatcher func(func())

// DocumentLoader turns a data source into a raw document.
type DocumentLoader interface {
	Load(ctx context.Context, src source.DataSource) (graph.RawGraph, error)
	Invalidate(src source.DataSource)
}

// LoadOptions qualify a SetDataFromSource call.
type LoadOptions struct {
	// FocusID is the element to focus once the level is current.
	FocusID string
	// FromRouter marks loads replayed from route history.
	FromRouter bool
	// Reload bypasses the document cache and the same-path policy.
	Reload bool
}

// Option configures a Store.
type Option func(*Store)

// WithDispatcher sets where asynchronous completions run. The default runs
// them on the loading goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(s *Store) {
		if d != nil {
			s.dispatch = d
		}
	}
}

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSamePathPolicy sets the same-path policy.
func WithSamePathPolicy(p SamePathPolicy) Option {
	return func(s *Store) {
		s.samePath = p
	}
}

// WithLoadTimeout bounds each asynchronous load.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.loadTimeout = d
	}
}

// Store owns the current graph level.
type Store struct {
	loader      DocumentLoader
	dispatch    Dispatcher
	logger      *slog.Logger
	samePath    SamePathPolicy
	loadTimeout time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup

	mu       sync.RWMutex
	listener Listener
	current  *graph.Graph
	token    uint64
	// sources maps the top level of every loaded document to its source.
	// Levels reached through inner pointers inherit the nearest entry.
	sources map[*graph.Graph]source.DataSource
	// owners maps levels loaded from an inner source to the node of the
	// outer level they were opened from.
	owners  map[*graph.Graph]string
	loading string
}

// New creates a Store that loads documents with loader.
func New(loader DocumentLoader, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		loader:      loader,
		dispatch:    func(fn func()) { fn() },
		logger:      slog.Default(),
		samePath:    SamePathRenotify,
		loadTimeout: DefaultLoadTimeout,
		ctx:         ctx,
		cancel:      cancel,
		sources:     make(map[*graph.Graph]source.DataSource),
		owners:      make(map[*graph.Graph]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetListener registers the receiver of change notifications.
func (s *Store) SetListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

// Close cancels in-flight loads and waits for their goroutines.
func (s *Store) Close() {
	s.cancel()
	s.pending.Wait()
}

// Wait blocks until every asynchronous load started so far has completed.
func (s *Store) Wait() {
	s.pending.Wait()
}

// ParseAndLoad parses the string form of a data source and loads it.
func (s *Store) ParseAndLoad(raw string, opts LoadOptions) error {
	src, err := source.Parse(raw)
	if err != nil {
		return err
	}
	return s.SetDataFromSource(src, opts)
}

// SetDataFromSource makes the document behind src the current level. Inline
// sources are built synchronously and their validation errors returned.
// Remote sources load on a goroutine; the result is applied through the
// dispatcher unless a later request superseded it, and failures are
// reported to the listener while the current level stays in place.
func (s *Store) SetDataFromSource(src source.DataSource, opts LoadOptions) error {
	if !src.Valid() {
		return source.ErrInvalidSource
	}

	if s.renotify(src, opts) {
		return nil
	}

	if !src.Remote() {
		raw, err := s.loader.Load(s.ctx, src)
		if err != nil {
			return err
		}
		g, err := graph.Build(raw, nil)
		if err != nil {
			return err
		}
		s.apply(s.nextToken(), g, src, "", opts, CauseLoad)
		return nil
	}

	s.loadAsync(src, nil, "", opts)
	return nil
}

// renotify applies the same-path policy. It reports whether the call was
// answered without loading.
func (s *Store) renotify(src source.DataSource, opts LoadOptions) bool {
	if opts.Reload || s.samePath != SamePathRenotify || src.Path() == "" {
		return false
	}

	s.mu.Lock()
	if s.current == nil || s.pathLocked(s.current) != src.Path() {
		s.mu.Unlock()
		return false
	}
	s.token++
	s.loading = ""
	change := DataChange{
		Graph:      s.current,
		Path:       src.Path(),
		FocusID:    opts.FocusID,
		FromRouter: opts.FromRouter,
		Cause:      CauseRenotify,
	}
	l := s.listener
	s.mu.Unlock()

	s.logger.Debug("same path, re-notifying focus", "path", src.Path(), "focus", opts.FocusID)
	if l != nil {
		l.OnDataChange(change)
	}
	return true
}

func (s *Store) nextToken() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	return s.token
}

// loadAsync fetches src on a goroutine. outer is the level the loaded one
// hangs under, nil for a new root, and owner the node of outer it opens.
func (s *Store) loadAsync(src source.DataSource, outer *graph.Graph, owner string, opts LoadOptions) {
	if opts.Reload {
		s.loader.Invalidate(src)
	}

	s.mu.Lock()
	s.token++
	token := s.token
	s.loading = src.Path()
	l := s.listener
	s.mu.Unlock()

	s.logger.Info("loading data source", "path", src.Path(), "token", token)
	if l != nil {
		l.OnLoadStart(src.Path())
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(s.ctx, s.loadTimeout)
		defer cancel()

		g, err := s.build(ctx, src, outer)
		s.dispatch(func() {
			if err != nil {
				s.fail(token, src, err)
				return
			}
			cause := CauseLoad
			if outer != nil {
				cause = CauseInner
			}
			s.apply(token, g, src, owner, opts, cause)
		})
	}()
}

func (s *Store) build(ctx context.Context, src source.DataSource, outer *graph.Graph) (*graph.Graph, error) {
	raw, err := s.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	g, err := graph.Build(raw, outer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Path(), err)
	}
	return g, nil
}

// apply makes g current if token is still the latest request. owner is the
// outer node g was opened from, empty for a new root.
func (s *Store) apply(token uint64, g *graph.Graph, src source.DataSource, owner string, opts LoadOptions, cause Cause) {
	s.mu.Lock()
	if token != s.token {
		s.mu.Unlock()
		s.logger.Debug("discarding stale load", "path", src.Path(), "token", token)
		return
	}
	if g.Outer() == nil {
		clear(s.sources)
		clear(s.owners)
	}
	s.sources[g] = src
	if owner != "" {
		s.owners[g] = owner
	}
	s.current = g
	s.loading = ""
	l := s.listener
	s.mu.Unlock()

	s.logger.Info("graph level loaded",
		"path", src.Path(),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"depth", g.Depth(),
		"cause", cause.String())

	if l != nil {
		l.OnDataChange(DataChange{
			Graph:      g,
			Path:       src.Path(),
			FocusID:    opts.FocusID,
			FromRouter: opts.FromRouter,
			Cause:      cause,
		})
	}
}

// fail reports a load error unless a later request superseded it.
func (s *Store) fail(token uint64, src source.DataSource, err error) {
	s.mu.Lock()
	stale := token != s.token
	if !stale {
		s.loading = ""
	}
	l := s.listener
	s.mu.Unlock()

	if errors.Is(err, context.Canceled) {
		s.logger.Debug("load cancelled", "path", src.Path())
		return
	}
	s.logger.Error("failed to load data source", "path", src.Path(), "error", err, "stale", stale)
	if !stale && l != nil {
		l.OnLoadError(src.Path(), err)
	}
}

// SetDataFromInnerData drills into the inner level of nodeID. Nothing happens
// when the node is unknown or has no inner level. An inner data source is
// resolved against the current source and loaded asynchronously.
func (s *Store) SetDataFromInnerData(nodeID string) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil
	}
	n, ok := s.current.Node(nodeID)
	if !ok || !n.HasInner() {
		s.mu.Unlock()
		s.logger.Debug("no inner level", "node", nodeID)
		return nil
	}

	if n.Inner != nil {
		s.token++
		s.loading = ""
		s.current = n.Inner
		path := s.pathLocked(n.Inner)
		l := s.listener
		s.mu.Unlock()

		s.logger.Debug("drilled in", "node", nodeID, "depth", n.Inner.Depth())
		if l != nil {
			l.OnDataChange(DataChange{Graph: n.Inner, Path: path, Cause: CauseInner})
		}
		return nil
	}

	outer := s.current
	base := s.sourceLocked(outer)
	s.mu.Unlock()

	src, err := source.Resolve(base, n.InnerSource)
	if err != nil {
		return fmt.Errorf("node %q inner source: %w", nodeID, err)
	}
	if !src.Remote() {
		raw, err := s.loader.Load(s.ctx, src)
		if err != nil {
			return fmt.Errorf("node %q inner source: %w", nodeID, err)
		}
		g, err := graph.Build(raw, outer)
		if err != nil {
			return fmt.Errorf("node %q inner source: %w", nodeID, err)
		}
		s.apply(s.nextToken(), g, src, nodeID, LoadOptions{}, CauseInner)
		return nil
	}
	s.loadAsync(src, outer, nodeID, LoadOptions{})
	return nil
}

// SetDataFromOuterData drills out to the outer level, focusing the node that
// owns the level being left. Nothing happens at the root.
func (s *Store) SetDataFromOuterData() {
	s.mu.Lock()
	if s.current == nil || s.current.Outer() == nil {
		s.mu.Unlock()
		return
	}
	left := s.current
	outer := left.Outer()
	s.token++
	s.loading = ""
	s.current = outer
	focus := ""
	if owner, ok := s.ownerLocked(left); ok {
		focus = owner.ID
	}
	delete(s.sources, left)
	delete(s.owners, left)
	path := s.pathLocked(outer)
	l := s.listener
	s.mu.Unlock()

	s.logger.Debug("drilled out", "depth", outer.Depth(), "focus", focus)
	if l != nil {
		l.OnDataChange(DataChange{Graph: outer, Path: path, FocusID: focus, Cause: CauseOuter})
	}
}

// Reload refetches the source of the current document, bypassing the cache.
func (s *Store) Reload() error {
	s.mu.RLock()
	var src source.DataSource
	if s.current != nil {
		src = s.sourceLocked(s.current.Root())
	}
	s.mu.RUnlock()

	if !src.Remote() {
		return nil
	}
	return s.SetDataFromSource(src, LoadOptions{Reload: true})
}

// Current returns the current level, nil before the first load.
func (s *Store) Current() *graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Path returns the addressable path of the current level.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.pathLocked(s.current)
}

// Loading returns the path of the in-flight load, empty when idle.
func (s *Store) Loading() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Depth returns how deep the current level is nested.
func (s *Store) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return 0
	}
	return s.current.Depth()
}

// Breadcrumb returns the labels leading from the root to the current level:
// the root's path, then the label of each owning node.
func (s *Store) Breadcrumb() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}

	var crumbs []string
	for g := s.current; g != nil; g = g.Outer() {
		if owner, ok := g.OwnerOf(); ok {
			crumbs = append(crumbs, owner.Label)
			continue
		}
		root := s.pathLocked(g)
		if root == "" {
			root = "root"
		}
		crumbs = append(crumbs, root)
	}
	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	return crumbs
}

// ownerLocked returns the node of g's outer level that g was opened from,
// whether g is inlined in that node or was loaded from its inner source.
// Must be called with mu held.
func (s *Store) ownerLocked(g *graph.Graph) (graph.Node, bool) {
	if owner, ok := g.OwnerOf(); ok {
		return owner, true
	}
	id, ok := s.owners[g]
	if !ok || g.Outer() == nil {
		return graph.Node{}, false
	}
	return g.Outer().Node(id)
}

// sourceLocked returns the source of the nearest loaded level at or above g.
// Must be called with mu held.
func (s *Store) sourceLocked(g *graph.Graph) source.DataSource {
	for l := g; l != nil; l = l.Outer() {
		if src, ok := s.sources[l]; ok {
			return src
		}
	}
	return source.DataSource{}
}

// pathLocked returns the addressable path of g. Must be called with mu held.
func (s *Store) pathLocked(g *graph.Graph) string {
	return s.sourceLocked(g).Path()
}
