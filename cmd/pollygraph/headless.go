package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/npratt/pollygraph/internal/graph"
	"github.com/npratt/pollygraph/internal/source"
	"github.com/npratt/pollygraph/internal/store"
)

// errNoGraph is returned when a command finishes loading without a level.
var errNoGraph = errors.New("no graph loaded")

// loadErrors records the first asynchronous load failure. Loads outside the
// TUI dispatch on their own goroutines, so it is guarded.
type loadErrors struct {
	mu  sync.Mutex
	err error
}

func (l *loadErrors) OnDataChange(store.DataChange) {}

func (l *loadErrors) OnLoadStart(string) {}

func (l *loadErrors) OnLoadError(path string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err == nil {
		l.err = fmt.Errorf("load %s: %w", path, err)
	}
}

func (l *loadErrors) take() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.err
	l.err = nil
	return err
}

// splitRef separates a "path#id" argument into its path and element id.
// Inline JSON is returned untouched.
func splitRef(raw string) (string, string) {
	if strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return raw, ""
	}
	ref := source.ParseRef(raw)
	return ref.Path, ref.ElementID
}

// loadLevel loads raw, waits for it, and then drills through the inner levels
// of the given node ids in order.
func loadLevel(s *store.Store, raw string, inner []string) (*graph.Graph, error) {
	l := &loadErrors{}
	s.SetListener(l)

	if err := s.ParseAndLoad(raw, store.LoadOptions{}); err != nil {
		return nil, err
	}
	s.Wait()
	if err := l.take(); err != nil {
		return nil, err
	}

	for _, id := range inner {
		before := s.Current()
		if err := s.SetDataFromInnerData(id); err != nil {
			return nil, err
		}
		s.Wait()
		if err := l.take(); err != nil {
			return nil, err
		}
		if s.Current() == before {
			return nil, fmt.Errorf("node %q has no inner level", id)
		}
	}

	g := s.Current()
	if g == nil {
		return nil, errNoGraph
	}
	return g, nil
}

// loadFromArgs resolves the source argument through the router and loads the
// level selected by --inner.
func (a *app) loadFromArgs(cmd *cobra.Command, raw string) (*store.Store, *graph.Graph, error) {
	r := a.newRouter(cmd, a.logger)
	path, _ := splitRef(raw)
	path = r.Resolve(path)

	s, err := a.newStore(a.logger)
	if err != nil {
		return nil, nil, err
	}
	inner, _ := cmd.Flags().GetStringArray(FlagInner)
	g, err := loadLevel(s, path, inner)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return s, g, nil
}
