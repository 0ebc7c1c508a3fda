// Package testutil provides test infrastructure for unit and integration testing.
// It includes mocks, fixtures, and helpers that other packages use for testing.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/npratt/pollygraph/internal/source"
)

// MockFetcher returns canned documents keyed by source location.
// It records all calls for later assertion.
type MockFetcher struct {
	mu        sync.Mutex
	Responses map[string][]byte
	Errors    map[string]error
	// Gates hold a fetch of the location until the channel is closed or
	// receives, so tests can order concurrent loads.
	Gates map[string]chan struct{}
	Calls []string
}

// NewMockFetcher creates a MockFetcher with initialized maps.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Responses: make(map[string][]byte),
		Errors:    make(map[string]error),
		Gates:     make(map[string]chan struct{}),
	}
}

// Fetch records the call, waits on the location's gate if any, and returns
// the canned response.
func (m *MockFetcher) Fetch(ctx context.Context, src source.DataSource) ([]byte, error) {
	key := src.Location()

	m.mu.Lock()
	m.Calls = append(m.Calls, key)
	gate := m.Gates[key]
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.Errors[key]; ok {
		return nil, err
	}
	if resp, ok := m.Responses[key]; ok {
		return resp, nil
	}
	return nil, fmt.Errorf("unexpected fetch: %s", key)
}

// SetResponse configures a canned document for a location.
func (m *MockFetcher) SetResponse(location, doc string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[location] = []byte(doc)
	delete(m.Errors, location)
}

// SetError configures an error for a location.
func (m *MockFetcher) SetError(location string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[location] = err
}

// Gate installs a gate for a location and returns it.
func (m *MockFetcher) Gate(location string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	gate := make(chan struct{})
	m.Gates[location] = gate
	return gate
}

// GetCalls returns a copy of all recorded calls.
func (m *MockFetcher) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.Calls))
	copy(result, m.Calls)
	return result
}

// Reset clears all recorded calls.
func (m *MockFetcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
}
