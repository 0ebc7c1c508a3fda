package graph

import (
	"fmt"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

// rawGraphGen draws small graphs with optional labels and sizes.
func rawGraphGen() *rapid.Generator[RawGraph] {
	return rapid.Custom(func(t *rapid.T) RawGraph {
		n := rapid.IntRange(1, 12).Draw(t, "nodes")
		raw := RawGraph{Nodes: make([]RawNode, n), Edges: []RawEdge{}}
		for i := range raw.Nodes {
			rn := RawNode{ID: fmt.Sprintf("n%d", i)}
			if rapid.Bool().Draw(t, "hasLabel") {
				rn.Label = rapid.SampledFrom([]string{"alpha", "beta", "gamma", "delta"}).Draw(t, "label")
			}
			if rapid.Bool().Draw(t, "hasSize") {
				rn.Size = ptr(rapid.Float64Range(0, 100).Draw(t, "size"))
			}
			raw.Nodes[i] = rn
		}
		m := rapid.IntRange(0, 2*n).Draw(t, "edges")
		for range m {
			s := rapid.IntRange(0, n-1).Draw(t, "source")
			d := rapid.IntRange(0, n-1).Draw(t, "target")
			raw.Edges = append(raw.Edges, RawEdge{
				Source: fmt.Sprintf("n%d", s),
				Target: fmt.Sprintf("n%d", d),
			})
		}
		return raw
	})
}

func TestProperty_EdgeIDSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.String().Draw(t, "a")
		b := rapid.String().Draw(t, "b")
		if EdgeID(a, b) != EdgeID(b, a) {
			t.Fatalf("EdgeID(%q, %q) != EdgeID(%q, %q)", a, b, b, a)
		}
	})
}

func TestProperty_NormalizeSizeBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.Float64Range(-1e6, 1e6), 1, 20).Draw(t, "values")
		nodes := make([]Node, len(values))
		for i, v := range values {
			nodes[i] = Node{Size: v}
		}
		normalizeNodeSizes(nodes)

		allEqual := true
		for _, v := range values[1:] {
			if v != values[0] {
				allEqual = false
			}
		}
		for _, n := range nodes {
			if n.Size < 0 || n.Size > 1 {
				t.Fatalf("size %v out of [0, 1]", n.Size)
			}
			if allEqual && n.Size != DefaultSize {
				t.Fatalf("size %v, want %v for equal inputs", n.Size, DefaultSize)
			}
		}
	})
}

func TestProperty_ComponentsPartitionNodes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g, err := Normalize(rawGraphGen().Draw(t, "raw"))
		if err != nil {
			t.Fatalf("Normalize failed: %v", err)
		}
		seen := make(map[string]int)
		for _, c := range Components(g) {
			for _, n := range c {
				seen[n.ID]++
			}
		}
		if len(seen) != g.NodeCount() {
			t.Fatalf("components cover %d nodes, want %d", len(seen), g.NodeCount())
		}
		for id, count := range seen {
			if count != 1 {
				t.Fatalf("node %s appears in %d components", id, count)
			}
		}
	})
}

func TestProperty_BuildIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g, err := Build(rawGraphGen().Draw(t, "raw"), nil)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		again, err := Build(g.Raw(), nil)
		if err != nil {
			t.Fatalf("Build of normalized level failed: %v", err)
		}
		if !reflect.DeepEqual(g.Raw(), again.Raw()) {
			t.Fatalf("normalizing twice changed the level")
		}
	})
}

func TestProperty_LevelSizesBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g, err := Build(rawGraphGen().Draw(t, "raw"), nil)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		var walk func(level *Graph)
		walk = func(level *Graph) {
			for _, n := range level.Nodes() {
				if n.Size < 0 || n.Size > 1 {
					t.Fatalf("node %s size %v out of [0, 1]", n.ID, n.Size)
				}
				if n.Inner != nil {
					if n.Inner.Outer() != level {
						t.Fatalf("inner level of %s does not point back", n.ID)
					}
					walk(n.Inner)
				}
			}
		}
		walk(g)
	})
}
