package graph

import (
	"testing"
)

func buildFixture(t *testing.T, doc string) *Graph {
	t.Helper()
	g, err := Build(mustParse(t, doc), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func nodeIDs(nodes []Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func TestDecompose_ConnectedGraphUnchanged(t *testing.T) {
	g, err := Normalize(mustParse(t, `{
		"nodes": [{"id": "A"}, {"id": "B"}, {"id": "C"}],
		"edges": [{"source": "A", "target": "B"}, {"source": "B", "target": "C"}]
	}`))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	top := Decompose(g)
	if top != g {
		t.Fatal("connected graph should be returned unchanged")
	}
	if top.HasNode("Cluster_0") {
		t.Error("unexpected synthetic cluster node")
	}
}

func TestDecompose_SingleNode(t *testing.T) {
	g := buildFixture(t, `{"nodes": [{"id": "only"}], "edges": []}`)
	if got := nodeIDs(g.Nodes()); len(got) != 1 || got[0] != "only" {
		t.Errorf("nodes = %v, want [only]", got)
	}
}

func TestDecompose_TwoDisjointPairs(t *testing.T) {
	g := buildFixture(t, `{
		"nodes": [{"id": "A"}, {"id": "B"}, {"id": "C"}, {"id": "D"}],
		"edges": [{"source": "A", "target": "B"}, {"source": "C", "target": "D"}]
	}`)

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 || !g.HasEdge("Cluster_0 - Cluster_1") {
		t.Fatalf("edges = %+v, want a single Cluster_0 - Cluster_1 edge", g.Edges())
	}
	mesh, _ := g.Edge("Cluster_0 - Cluster_1")
	if mesh.Size != 1 {
		t.Errorf("mesh edge Size = %v, want 1", mesh.Size)
	}

	tests := []struct {
		id        string
		label     string
		members   []string
		innerEdge string
	}{
		{"Cluster_0", "Cluster 0, 2 nodes, from A to B", []string{"A", "B"}, "A - B"},
		{"Cluster_1", "Cluster 1, 2 nodes, from C to D", []string{"C", "D"}, "C - D"},
	}
	for i, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n, ok := g.Node(tt.id)
			if !ok {
				t.Fatalf("node %s missing", tt.id)
			}
			if n.Label != tt.label {
				t.Errorf("Label = %q, want %q", n.Label, tt.label)
			}
			if n.Type != i {
				t.Errorf("Type = %d, want %d", n.Type, i)
			}
			if n.Level != 1 {
				t.Errorf("Level = %d, want 1", n.Level)
			}
			if n.Size != DefaultSize {
				t.Errorf("Size = %v, want %v", n.Size, DefaultSize)
			}
			if n.Inner == nil {
				t.Fatal("Inner is nil")
			}
			if n.Inner.Outer() != g {
				t.Error("inner level does not point back at the top level")
			}
			got := nodeIDs(n.Inner.Nodes())
			if len(got) != len(tt.members) || got[0] != tt.members[0] || got[1] != tt.members[1] {
				t.Errorf("inner nodes = %v, want %v", got, tt.members)
			}
			if n.Inner.EdgeCount() != 1 || !n.Inner.HasEdge(tt.innerEdge) {
				t.Errorf("inner edges = %+v, want %s", n.Inner.Edges(), tt.innerEdge)
			}
		})
	}
}

func TestDecompose_AllSingletons(t *testing.T) {
	g := buildFixture(t, `{"nodes": [{"id": "C"}, {"id": "A"}, {"id": "B"}], "edges": []}`)

	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3 (full mesh)", g.EdgeCount())
	}
	if g.Outer() != nil {
		t.Error("unitary level should be the top level")
	}
	n, _ := g.Node("Unitary_Cluster_0")
	if n.Label != "Unitary_Cluster 0, 1 nodes, from C to C" {
		t.Errorf("Label = %q", n.Label)
	}
	if n.Inner == nil || n.Inner.FirstNodeID() != "C" {
		t.Errorf("Unitary_Cluster_0 should own node C")
	}
}

func TestDecompose_PairAndSingletons(t *testing.T) {
	g := buildFixture(t, `{
		"nodes": [{"id": "X"}, {"id": "A"}, {"id": "B"}, {"id": "Y"}],
		"edges": [{"source": "A", "target": "B"}]
	}`)

	if got := nodeIDs(g.Nodes()); len(got) != 2 || got[0] != "Cluster_0" || got[1] != "Cluster_1" {
		t.Fatalf("top nodes = %v, want [Cluster_0 Cluster_1]", got)
	}

	pair, _ := g.Node("Cluster_0")
	if pair.Inner.FirstNodeID() != "A" {
		t.Errorf("Cluster_0 inner first node = %q, want A", pair.Inner.FirstNodeID())
	}

	unitary, _ := g.Node("Cluster_1")
	if got := nodeIDs(unitary.Inner.Nodes()); len(got) != 2 || got[0] != "Unitary_Cluster_0" || got[1] != "Unitary_Cluster_1" {
		t.Fatalf("Cluster_1 inner nodes = %v", got)
	}
	if !unitary.Inner.HasEdge("Unitary_Cluster_0 - Unitary_Cluster_1") {
		t.Error("unitary clusters should stay linked inside Cluster_1")
	}

	leaf, _ := unitary.Inner.Node("Unitary_Cluster_0")
	if leaf.Inner.FirstNodeID() != "X" {
		t.Errorf("Unitary_Cluster_0 owns %q, want X", leaf.Inner.FirstNodeID())
	}
	if leaf.Inner.Outer() != unitary.Inner {
		t.Error("leaf level should point back at the unitary level")
	}
	if leaf.Inner.Depth() != 2 {
		t.Errorf("leaf Depth = %d, want 2", leaf.Inner.Depth())
	}
	if leaf.Inner.Root() != g {
		t.Error("Root() should reach the top level")
	}
}

func TestDecompose_LargestClusterFirst(t *testing.T) {
	g := buildFixture(t, `{
		"nodes": [{"id": "P"}, {"id": "Q"}, {"id": "R"}, {"id": "S"}, {"id": "T"}],
		"edges": [{"source": "P", "target": "Q"}, {"source": "R", "target": "S"}, {"source": "S", "target": "T"}]
	}`)

	big, _ := g.Node("Cluster_0")
	small, _ := g.Node("Cluster_1")
	if big.Inner.NodeCount() != 3 {
		t.Errorf("Cluster_0 has %d nodes, want 3", big.Inner.NodeCount())
	}
	if big.Size != 1 || small.Size != 0 {
		t.Errorf("sizes = %v/%v, want 1/0", big.Size, small.Size)
	}
}

func TestComponents_Partition(t *testing.T) {
	g, err := Normalize(mustParse(t, `{
		"nodes": [{"id": "A"}, {"id": "B"}, {"id": "C"}, {"id": "D"}, {"id": "E"}],
		"edges": [{"source": "D", "target": "A"}, {"source": "C", "target": "C"}]
	}`))
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	got := Components(g)
	want := [][]string{{"A", "D"}, {"B"}, {"C"}, {"E"}}
	if len(got) != len(want) {
		t.Fatalf("len(Components) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		ids := nodeIDs(got[i])
		if len(ids) != len(want[i]) {
			t.Errorf("component %d = %v, want %v", i, ids, want[i])
			continue
		}
		for j := range ids {
			if ids[j] != want[i][j] {
				t.Errorf("component %d = %v, want %v", i, ids, want[i])
			}
		}
	}
}
