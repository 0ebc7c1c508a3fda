package store

import (
	"testing"

	"github.com/npratt/pollygraph/internal/testutil"
)

func TestStore_Search_SingleLabelMatch(t *testing.T) {
	s := loadedStore(t, testutil.PathGraphJSON)

	results := s.Search("charl", "./g.json", 3, false)
	if len(results.NodeLabels) != 1 {
		t.Fatalf("NodeLabels = %v, want one match", results.NodeLabels)
	}
	if results.NodeLabels[0].Ref != "./g.json#C" {
		t.Errorf("Ref = %q, want ./g.json#C", results.NodeLabels[0].Ref)
	}
	if results.NodeLabels[0].Excerpt != "Charlie" {
		t.Errorf("Excerpt = %q, want Charlie", results.NodeLabels[0].Excerpt)
	}
	if len(results.EdgeLabels) != 1 || results.EdgeLabels[0].Ref != "./g.json#B - C" {
		t.Errorf("EdgeLabels = %v, want the bravo to charlie edge", results.EdgeLabels)
	}
	if results.Len() != 2 || len(results.All()) != 2 {
		t.Errorf("Len = %d, want 2", results.Len())
	}
}

func TestStore_Search(t *testing.T) {
	s := loadedStore(t, testutil.SearchGraphJSON)

	tests := []struct {
		name          string
		query         string
		context       int
		caseSensitive bool
		field         func(SearchResults) []SearchResult
		want          []SearchResult
	}{
		{
			name:    "case insensitive multi-byte label",
			query:   "zürich",
			context: 4,
			field:   func(r SearchResults) []SearchResult { return r.NodeLabels },
			want:    []SearchResult{{Ref: "#n1", Excerpt: "Zürich Hau"}},
		},
		{
			name:    "upper case query folds",
			query:   "ZÜRICH",
			context: 0,
			field:   func(r SearchResults) []SearchResult { return r.NodeInfos },
			want:    []SearchResult{{Ref: "#n1", Excerpt: "ZÜRICH"}},
		},
		{
			name:          "case sensitive miss",
			query:         "zürich",
			caseSensitive: true,
			field:         func(r SearchResults) []SearchResult { return r.NodeLabels },
			want:          nil,
		},
		{
			name:    "excerpt pads both sides",
			query:   "via",
			context: 5,
			field:   func(r SearchResults) []SearchResult { return r.EdgeInfos },
			want:    []SearchResult{{Ref: "#n1 - n2", Excerpt: "line via Olte"}},
		},
		{
			name:    "upper case query on edge label",
			query:   "WEST",
			context: 2,
			field:   func(r SearchResults) []SearchResult { return r.EdgeLabels },
			want:    []SearchResult{{Ref: "#n2 - n3", Excerpt: "west l"}},
		},
		{
			name:  "empty query",
			query: "",
			field: func(r SearchResults) []SearchResult { return r.All() },
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := s.Search(tt.query, "", tt.context, tt.caseSensitive)
			got := tt.field(results)
			if len(got) != len(tt.want) {
				t.Fatalf("results = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("result[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStore_Search_ExcerptKeepsWhitespace(t *testing.T) {
	s := loadedStore(t, `{"nodes": [{"id": "k", "label": "ab  key  cd"}], "edges": []}`)

	tests := []struct {
		context int
		want    string
	}{
		{0, "key"},
		{2, "  key  "},
		{3, "b  key  c"},
		{20, "ab  key  cd"},
	}
	for _, tt := range tests {
		results := s.Search("key", "", tt.context, false)
		if len(results.NodeLabels) != 1 {
			t.Fatalf("context %d: NodeLabels = %v, want one match", tt.context, results.NodeLabels)
		}
		if got := results.NodeLabels[0].Excerpt; got != tt.want {
			t.Errorf("context %d: Excerpt = %q, want %q", tt.context, got, tt.want)
		}
	}
}
