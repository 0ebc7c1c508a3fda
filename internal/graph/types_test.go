package graph

import "testing"

func TestGraph_EdgesOfKeepsInsertionOrder(t *testing.T) {
	g := buildFixture(t, `{
		"nodes": [{"id": "hub"}, {"id": "a"}, {"id": "b"}, {"id": "c"}],
		"edges": [
			{"source": "hub", "target": "b"},
			{"source": "a", "target": "hub"},
			{"source": "c", "target": "hub"},
			{"source": "a", "target": "b"}
		]
	}`)

	ring := g.EdgesOf("hub")
	want := []string{"b - hub", "a - hub", "c - hub"}
	if len(ring) != len(want) {
		t.Fatalf("len(ring) = %d, want %d", len(ring), len(want))
	}
	for i, e := range ring {
		if e.ID != want[i] {
			t.Errorf("ring[%d] = %q, want %q", i, e.ID, want[i])
		}
	}

	if got := g.EdgesOf("missing"); got != nil {
		t.Errorf("EdgesOf(missing) = %v, want nil", got)
	}
}

func TestGraph_AccessorsReturnCopies(t *testing.T) {
	g := buildFixture(t, `{"nodes": [{"id": "A"}, {"id": "B"}], "edges": [{"source": "A", "target": "B"}]}`)

	nodes := g.Nodes()
	nodes[0].Label = "changed"
	edges := g.Edges()
	edges[0].Label = "changed"

	if n, _ := g.Node("A"); n.Label != "A" {
		t.Errorf("node label = %q, want A", n.Label)
	}
	if e, _ := g.Edge("A - B"); e.Label != "A - B" {
		t.Errorf("edge label = %q, want A - B", e.Label)
	}
}

func TestGraph_Lookups(t *testing.T) {
	g := buildFixture(t, `{"nodes": [{"id": "A"}, {"id": "B"}], "edges": [{"source": "A", "target": "B"}]}`)

	if !g.HasNode("A") || g.HasNode("Z") {
		t.Error("HasNode mismatch")
	}
	if !g.HasEdge("A - B") || g.HasEdge("B - A") {
		t.Error("HasEdge mismatch")
	}
	if _, ok := g.Node("Z"); ok {
		t.Error("Node(Z) should not be found")
	}
	if _, ok := g.OwnerOf(); ok {
		t.Error("root level has no owner")
	}
	if g.FirstNodeID() != "A" {
		t.Errorf("FirstNodeID = %q, want A", g.FirstNodeID())
	}
	e, _ := g.Edge("A - B")
	if !e.Touches("A") || !e.Touches("B") || e.Touches("C") {
		t.Error("Touches mismatch")
	}
}
