// Package graph holds the nested node/edge data model navigated by pollygraph:
// normalization of raw input, connected-component clustering into levels, and
// read-only lookups over a single level.
package graph

import "slices"

// DefaultSize is the size given to nodes and edges that do not declare one,
// and the normalized size of every element of a level whose sizes are all equal.
const DefaultSize = 0.5

// Node is a vertex of one graph level.
type Node struct {
	ID    string
	Label string
	Type  int     // Category used for colouring (raw "type" or "group")
	Size  float64 // Normalized to [0, 1] within its level
	Level int     // Depth in the cluster hierarchy
	Info  string  // Rich description, may be empty

	// Inner is the nested level owned by this node, if any.
	Inner *Graph
	// InnerSource is a data source to load on drill-in when the raw node
	// referenced its inner graph by URL, path or JSON text.
	InnerSource string
}

// HasInner reports whether the node can be drilled into.
func (n Node) HasInner() bool {
	return n.Inner != nil || n.InnerSource != ""
}

// Edge is an undirected link between two nodes of the same level.
type Edge struct {
	ID     string
	Source string
	Target string
	Label  string
	Size   float64
	Info   string
}

// Touches reports whether nodeID is one of the edge endpoints.
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Graph is one level of the hierarchy. It is immutable once built: accessors
// return copies and lookups go through indexes computed at construction.
type Graph struct {
	nodes []Node
	edges []Edge
	outer *Graph

	nodeIndex map[string]int
	edgeIndex map[string]int
	incident  map[string][]int // node ID -> edge positions, in insertion order
}

// newLevel builds a level and its indexes. The slices are owned by the level,
// and every inner level of its nodes is re-parented under it.
func newLevel(nodes []Node, edges []Edge, outer *Graph) *Graph {
	g := &Graph{
		nodes:     nodes,
		edges:     edges,
		outer:     outer,
		nodeIndex: make(map[string]int, len(nodes)),
		edgeIndex: make(map[string]int, len(edges)),
		incident:  make(map[string][]int, len(nodes)),
	}
	for i, n := range nodes {
		g.nodeIndex[n.ID] = i
		if n.Inner != nil {
			n.Inner.outer = g
		}
	}
	for i, e := range edges {
		if _, ok := g.edgeIndex[e.ID]; !ok {
			g.edgeIndex[e.ID] = i
		}
		g.incident[e.Source] = append(g.incident[e.Source], i)
		if e.Target != e.Source {
			g.incident[e.Target] = append(g.incident[e.Target], i)
		}
	}
	return g
}

// Outer returns the parent level, or nil at the root.
func (g *Graph) Outer() *Graph {
	return g.outer
}

// Nodes returns a copy of the level's nodes in insertion order.
func (g *Graph) Nodes() []Node {
	return slices.Clone(g.nodes)
}

// Edges returns a copy of the level's edges in insertion order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// NodeCount returns the number of nodes in the level.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the level.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// FirstNodeID returns the id of the level's designated default node.
func (g *Graph) FirstNodeID() string {
	if len(g.nodes) == 0 {
		return ""
	}
	return g.nodes[0].ID
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Edge looks up an edge by id.
func (g *Graph) Edge(id string) (Edge, bool) {
	i, ok := g.edgeIndex[id]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// HasNode reports whether id names a node of this level.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIndex[id]
	return ok
}

// HasEdge reports whether id names an edge of this level.
func (g *Graph) HasEdge(id string) bool {
	_, ok := g.edgeIndex[id]
	return ok
}

// EdgesOf returns the ring of edges touching nodeID, in insertion order.
func (g *Graph) EdgesOf(nodeID string) []Edge {
	positions := g.incident[nodeID]
	if len(positions) == 0 {
		return nil
	}
	result := make([]Edge, len(positions))
	for i, p := range positions {
		result[i] = g.edges[p]
	}
	return result
}

// Depth returns how many outer levels sit above this one.
func (g *Graph) Depth() int {
	depth := 0
	for o := g.outer; o != nil; o = o.outer {
		depth++
	}
	return depth
}

// Root walks the outer pointers up to the top level.
func (g *Graph) Root() *Graph {
	root := g
	for root.outer != nil {
		root = root.outer
	}
	return root
}

// OwnerOf returns the node of the outer level whose inner graph is g.
func (g *Graph) OwnerOf() (Node, bool) {
	if g.outer == nil {
		return Node{}, false
	}
	for _, n := range g.outer.nodes {
		if n.Inner == g {
			return n, true
		}
	}
	return Node{}, false
}
