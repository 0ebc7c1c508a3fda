// Package router keeps the route history of a pollygraph session: the data
// source path plus the focused element of every visited level.
package router

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/npratt/pollygraph/internal/source"
)

// Route is one history entry.
type Route struct {
	Path      string
	ElementID string
}

// String returns the addressable reference of the route.
func (r Route) String() string {
	return source.Ref{Path: r.Path, ElementID: r.ElementID}.String()
}

// Option configures a Router.
type Option func(*Router)

// WithRoots maps the UI root prefix onto the data-source root prefix.
func WithRoots(uiRoot, dataRoot string) Option {
	return func(r *Router) {
		r.uiRoot = uiRoot
		r.dataRoot = dataRoot
	}
}

// WithLogger sets the router's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Router is an in-memory route history. Recording the path already on top
// replaces the entry, any other path pushes a new one.
type Router struct {
	mu       sync.Mutex
	stack    []Route
	uiRoot   string
	dataRoot string
	logger   *slog.Logger
}

// New creates an empty Router.
func New(opts ...Option) *Router {
	r := &Router{logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record stores the current route.
func (r *Router) Record(path, elementID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	route := Route{Path: path, ElementID: elementID}
	if n := len(r.stack); n > 0 && r.stack[n-1].Path == path {
		r.stack[n-1] = route
		r.logger.Debug("route replaced", "route", route.String())
		return
	}
	r.stack = append(r.stack, route)
	r.logger.Debug("route pushed", "route", route.String(), "depth", len(r.stack))
}

// Current returns the route on top of the history.
func (r *Router) Current() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) == 0 {
		return Route{}, false
	}
	return r.stack[len(r.stack)-1], true
}

// Back drops the current route and returns the previous one. The first
// route is never dropped.
func (r *Router) Back() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) < 2 {
		return Route{}, false
	}
	r.stack = r.stack[:len(r.stack)-1]
	return r.stack[len(r.stack)-1], true
}

// Len returns the number of routes in the history.
func (r *Router) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}

// Resolve maps a UI path onto a data-source path by swapping the UI root
// prefix for the data root. Paths outside the UI root are returned as is.
func (r *Router) Resolve(uiPath string) string {
	if r.uiRoot == "" || !strings.HasPrefix(uiPath, r.uiRoot) {
		return uiPath
	}
	return r.dataRoot + strings.TrimPrefix(uiPath, r.uiRoot)
}

// Display maps a data-source path back onto the UI root.
func (r *Router) Display(path string) string {
	if r.uiRoot == "" || r.dataRoot == "" || !strings.HasPrefix(path, r.dataRoot) {
		return path
	}
	return r.uiRoot + strings.TrimPrefix(path, r.dataRoot)
}
