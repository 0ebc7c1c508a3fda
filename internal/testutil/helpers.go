package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/npratt/pollygraph/internal/graph"
)

// WriteFile writes content to a file in the given directory.
// It creates parent directories as needed and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ReadFile reads a file and returns its contents.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// FileExists checks if a file exists.
func FileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

// MustRaw decodes a JSON graph document.
func MustRaw(t *testing.T, doc string) graph.RawGraph {
	t.Helper()
	var raw graph.RawGraph
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return raw
}

// MustBuild decodes, normalizes and decomposes a JSON graph document.
func MustBuild(t *testing.T, doc string) *graph.Graph {
	t.Helper()
	g, err := graph.Build(MustRaw(t, doc), nil)
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}
	return g
}

// AssertFetched verifies that a location was fetched.
func AssertFetched(t *testing.T, mock *MockFetcher, location string) {
	t.Helper()
	calls := mock.GetCalls()
	if !slices.Contains(calls, location) {
		t.Errorf("expected fetch of %s not found in %v", location, calls)
	}
}

// AssertFetchCount verifies the number of times a location was fetched.
func AssertFetchCount(t *testing.T, mock *MockFetcher, location string, expected int) {
	t.Helper()
	count := 0
	calls := mock.GetCalls()
	for _, call := range calls {
		if call == location {
			count++
		}
	}
	if count != expected {
		t.Errorf("expected %d fetches of %s, got %d (calls: %v)", expected, location, count, calls)
	}
}
