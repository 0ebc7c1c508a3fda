package graph

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func mustParse(t *testing.T, doc string) RawGraph {
	t.Helper()
	var raw RawGraph
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return raw
}

func TestEdgeID(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"A", "B", "A - B"},
		{"B", "A", "A - B"},
		{"node-2", "node-10", "node-10 - node-2"},
		{"x", "x", "x - x"},
	}
	for _, tt := range tests {
		if got := EdgeID(tt.a, tt.b); got != tt.want {
			t.Errorf("EdgeID(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalizeSize(t *testing.T) {
	tests := []struct {
		name        string
		v, min, max float64
		want        float64
	}{
		{"lower bound", 2, 2, 6, 0},
		{"upper bound", 6, 2, 6, 1},
		{"midpoint", 4, 2, 6, 0.5},
		{"degenerate range", 3, 3, 3, DefaultSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSize(tt.v, tt.min, tt.max); got != tt.want {
				t.Errorf("NormalizeSize(%v, %v, %v) = %v, want %v", tt.v, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestNormalize_Defaults(t *testing.T) {
	raw := mustParse(t, `{
		"nodes": [{"id": "A"}, {"id": "B", "label": "Bee", "group": 3, "info": "second"}],
		"links": [{"source": "B", "target": "A"}]
	}`)

	g, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	a, ok := g.Node("A")
	if !ok {
		t.Fatal("node A missing")
	}
	if a.Label != "A" {
		t.Errorf("A.Label = %q, want A", a.Label)
	}
	if a.Type != 0 || a.Level != 0 || a.Info != "" {
		t.Errorf("A defaults = %+v", a)
	}
	if a.Size != DefaultSize {
		t.Errorf("A.Size = %v, want %v", a.Size, DefaultSize)
	}

	b, _ := g.Node("B")
	if b.Label != "Bee" || b.Type != 3 || b.Info != "second" {
		t.Errorf("B = %+v", b)
	}

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("len(edges) = %d, want 1", len(edges))
	}
	e := edges[0]
	if e.ID != "A - B" {
		t.Errorf("edge ID = %q, want %q", e.ID, "A - B")
	}
	if e.Label != e.ID {
		t.Errorf("edge Label = %q, want %q", e.Label, e.ID)
	}
	if e.Size != DefaultSize {
		t.Errorf("edge Size = %v, want %v", e.Size, DefaultSize)
	}
	if e.Source != "B" || e.Target != "A" {
		t.Errorf("edge endpoints = %s/%s, want B/A", e.Source, e.Target)
	}
}

func TestNormalize_SizesNormalizedPerLevel(t *testing.T) {
	raw := mustParse(t, `{
		"nodes": [{"id": "A", "size": 10}, {"id": "B", "size": 20}, {"id": "C", "size": 15}],
		"edges": []
	}`)
	g, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	want := map[string]float64{"A": 0, "B": 1, "C": 0.5}
	for id, size := range want {
		n, _ := g.Node(id)
		if n.Size != size {
			t.Errorf("%s.Size = %v, want %v", id, n.Size, size)
		}
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawGraph
		wantErr error
	}{
		{"missing nodes", RawGraph{Edges: []RawEdge{}}, ErrValidation},
		{"missing edges", RawGraph{Nodes: []RawNode{{ID: "A"}}}, ErrValidation},
		{"empty graph", RawGraph{Nodes: []RawNode{}, Edges: []RawEdge{}}, ErrEmptyGraph},
		{"node without id", RawGraph{Nodes: []RawNode{{Label: "x"}}, Edges: []RawEdge{}}, ErrValidation},
		{"edge without target", RawGraph{Nodes: []RawNode{{ID: "A"}}, Edges: []RawEdge{{Source: "A"}}}, ErrValidation},
		{"duplicate node id", RawGraph{Nodes: []RawNode{{ID: "A"}, {ID: "A"}}, Edges: []RawEdge{}}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Normalize error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalize_ValidationMessageNamesField(t *testing.T) {
	_, err := Normalize(RawGraph{Nodes: []RawNode{{ID: "A"}, {}}, Edges: []RawEdge{}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "nodes[1].id is required") {
		t.Errorf("error = %q, want it to name nodes[1].id", err)
	}
}

func TestUnmarshal_NonArrayNodes(t *testing.T) {
	var raw RawGraph
	err := json.Unmarshal([]byte(`{"nodes": {"id": "A"}, "edges": []}`), &raw)
	if err == nil || !strings.Contains(err.Error(), "nodes must be an array") {
		t.Errorf("Unmarshal error = %v, want nodes must be an array", err)
	}
}

func TestNormalize_DropsDanglingAndCollapsesMultiEdges(t *testing.T) {
	raw := mustParse(t, `{
		"nodes": [{"id": "A"}, {"id": "B"}],
		"edges": [
			{"source": "A", "target": "B", "label": "first"},
			{"source": "B", "target": "A", "label": "second"},
			{"source": "A", "target": "B", "id": "explicit"},
			{"source": "A", "target": "Z"}
		]
	}`)
	g, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	e, _ := g.Edge("A - B")
	if e.Label != "first" {
		t.Errorf("collapsed edge label = %q, want first", e.Label)
	}
	if !g.HasEdge("explicit") {
		t.Error("edge with explicit id should be kept")
	}
}

func TestNormalize_NestedInner(t *testing.T) {
	raw := mustParse(t, `{
		"nodes": [
			{"id": "outer", "inner": {"nodes": [{"id": "x"}, {"id": "y"}], "edges": [{"source": "x", "target": "y"}]}},
			{"id": "remote", "inner": "./remote.json"}
		],
		"edges": [{"source": "outer", "target": "remote"}]
	}`)
	g, err := Build(raw, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	n, _ := g.Node("outer")
	if n.Inner == nil {
		t.Fatal("outer.Inner is nil")
	}
	if n.Inner.Outer() != g {
		t.Error("inner level does not point back at its containing level")
	}
	if n.Inner.Depth() != 1 {
		t.Errorf("inner Depth = %d, want 1", n.Inner.Depth())
	}
	owner, ok := n.Inner.OwnerOf()
	if !ok || owner.ID != "outer" {
		t.Errorf("OwnerOf = %q, %v; want outer", owner.ID, ok)
	}

	r, _ := g.Node("remote")
	if r.Inner != nil || r.InnerSource != "./remote.json" {
		t.Errorf("remote = %+v, want lazy inner source", r)
	}
	if !r.HasInner() {
		t.Error("remote.HasInner() = false")
	}
}

func TestNormalize_InvalidNestedInner(t *testing.T) {
	raw := mustParse(t, `{
		"nodes": [{"id": "A", "inner": {"nodes": [], "edges": []}}],
		"edges": []
	}`)
	_, err := Build(raw, nil)
	if !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("Build error = %v, want ErrEmptyGraph", err)
	}
}

func TestNormalize_DoesNotMutateRaw(t *testing.T) {
	raw := mustParse(t, `{"nodes": [{"id": "A", "size": 4}, {"id": "B", "size": 8}], "edges": [{"source": "A", "target": "B"}]}`)
	before := mustParse(t, `{"nodes": [{"id": "A", "size": 4}, {"id": "B", "size": 8}], "edges": [{"source": "A", "target": "B"}]}`)
	if _, err := Normalize(raw); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !reflect.DeepEqual(raw, before) {
		t.Error("Normalize modified its input")
	}
}

func TestRaw_RoundTripsThroughJSON(t *testing.T) {
	raw := mustParse(t, `{
		"nodes": [{"id": "A", "info": "**bold**"}, {"id": "B", "inner": "https://example.com/b.json"}],
		"edges": [{"source": "A", "target": "B", "size": 2}]
	}`)
	g, err := Build(raw, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	data, err := json.Marshal(g.Raw())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	again, err := Build(mustParse(t, string(data)), nil)
	if err != nil {
		t.Fatalf("Build of marshalled level failed: %v", err)
	}
	if !reflect.DeepEqual(g.Raw(), again.Raw()) {
		t.Errorf("round trip changed the level:\n got %s", data)
	}
}
