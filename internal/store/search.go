package store

import (
	"slices"
	"unicode"

	"github.com/npratt/pollygraph/internal/source"
)

// SearchResult is one match: the addressable reference of the element and an
// excerpt of the matched text with surrounding context.
type SearchResult struct {
	Ref     string `json:"ref"`
	Excerpt string `json:"excerpt"`
}

// SearchResults groups matches by the field they were found in.
type SearchResults struct {
	NodeLabels []SearchResult `json:"nodeLabels"`
	NodeInfos  []SearchResult `json:"nodeInfos"`
	EdgeLabels []SearchResult `json:"edgeLabels"`
	EdgeInfos  []SearchResult `json:"edgeInfos"`
}

// Len returns the total number of matches.
func (r SearchResults) Len() int {
	return len(r.NodeLabels) + len(r.NodeInfos) + len(r.EdgeLabels) + len(r.EdgeInfos)
}

// All returns every match, node labels first.
func (r SearchResults) All() []SearchResult {
	all := make([]SearchResult, 0, r.Len())
	all = append(all, r.NodeLabels...)
	all = append(all, r.NodeInfos...)
	all = append(all, r.EdgeLabels...)
	all = append(all, r.EdgeInfos...)
	return all
}

// Search matches query against the labels and infos of the current level.
// References are built from pathLabel and the element id; excerpts keep
// contextLength runes on each side of the match. An empty query matches
// nothing.
func (s *Store) Search(query, pathLabel string, contextLength int, caseSensitive bool) SearchResults {
	var results SearchResults
	g := s.Current()
	if g == nil || query == "" {
		return results
	}
	if contextLength < 0 {
		contextLength = 0
	}

	m := newMatcher(query, contextLength, caseSensitive)
	for _, n := range g.Nodes() {
		ref := source.FormatRef(pathLabel, n.ID)
		if ex, ok := m.excerpt(n.Label); ok {
			results.NodeLabels = append(results.NodeLabels, SearchResult{Ref: ref, Excerpt: ex})
		}
		if ex, ok := m.excerpt(n.Info); ok {
			results.NodeInfos = append(results.NodeInfos, SearchResult{Ref: ref, Excerpt: ex})
		}
	}
	for _, e := range g.Edges() {
		ref := source.FormatRef(pathLabel, e.ID)
		if ex, ok := m.excerpt(e.Label); ok {
			results.EdgeLabels = append(results.EdgeLabels, SearchResult{Ref: ref, Excerpt: ex})
		}
		if ex, ok := m.excerpt(e.Info); ok {
			results.EdgeInfos = append(results.EdgeInfos, SearchResult{Ref: ref, Excerpt: ex})
		}
	}
	return results
}

// matcher finds a query in text by rune, so excerpt bounds never split a
// multi-byte character and folded offsets line up with the original text.
type matcher struct {
	query         []rune
	context       int
	caseSensitive bool
}

func newMatcher(query string, contextLength int, caseSensitive bool) *matcher {
	m := &matcher{context: contextLength, caseSensitive: caseSensitive}
	m.query = m.fold([]rune(query))
	return m
}

func (m *matcher) fold(runes []rune) []rune {
	if m.caseSensitive {
		return runes
	}
	folded := make([]rune, len(runes))
	for i, r := range runes {
		folded[i] = unicode.ToLower(r)
	}
	return folded
}

func (m *matcher) excerpt(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	runes := []rune(text)
	idx := indexRunes(m.fold(runes), m.query)
	if idx < 0 {
		return "", false
	}
	start := max(0, idx-m.context)
	end := min(len(runes), idx+len(m.query)+m.context)
	return string(runes[start:end]), true
}

func indexRunes(haystack, needle []rune) int {
	n := len(needle)
	for i := 0; i+n <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+n], needle) {
			return i
		}
	}
	return -1
}
