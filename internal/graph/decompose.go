package graph

import (
	"cmp"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Prefixes of synthetic cluster node ids and labels.
const (
	ClusterPrefix        = "Cluster"
	UnitaryClusterPrefix = "Unitary_Cluster"
)

// clusterLevel is the level field given to synthetic cluster nodes.
const clusterLevel = 1

// Decompose partitions g into connected components and returns the top
// navigable level. A connected g is returned unchanged. Otherwise every
// singleton component is wrapped in a unitary cluster, and the components
// with two or more nodes plus the set of unitary clusters become the nodes of
// a new top level, linked pairwise. Each cluster node owns its component as
// inner level.
//
// Decompose takes ownership of g: inner levels of its nodes are re-parented
// under the clusters that now contain them.
func Decompose(g *Graph) *Graph {
	components := Components(g)
	if len(components) <= 1 {
		return g
	}

	var unitary, nonUnitary [][]Node
	for _, c := range components {
		if len(c) == 1 {
			unitary = append(unitary, c)
		} else {
			nonUnitary = append(nonUnitary, c)
		}
	}

	if len(nonUnitary) == 0 {
		return clusteredLevel(UnitaryClusterPrefix, unitary, g.edges)
	}

	clusters := nonUnitary
	edges := g.edges
	if len(unitary) > 0 {
		unitaryLevel := clusteredLevel(UnitaryClusterPrefix, unitary, g.edges)
		clusters = append(clusters, unitaryLevel.Nodes())
		edges = append(slices.Clone(g.edges), unitaryLevel.edges...)
	}
	return clusteredLevel(ClusterPrefix, clusters, edges)
}

// Components returns the connected components of g. Members keep their input
// order and components are ordered by the input position of their first node.
func Components(g *Graph) [][]Node {
	ug := simple.NewUndirectedGraph()
	for i := range g.nodes {
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.edges {
		s, t := g.nodeIndex[e.Source], g.nodeIndex[e.Target]
		if s == t {
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(s), T: simple.Node(t)})
	}

	raw := topo.ConnectedComponents(ug)
	positions := make([][]int, 0, len(raw))
	for _, c := range raw {
		idx := make([]int, len(c))
		for i, n := range c {
			idx[i] = int(n.ID())
		}
		slices.Sort(idx)
		positions = append(positions, idx)
	}
	slices.SortFunc(positions, func(a, b []int) int {
		return cmp.Compare(a[0], b[0])
	})

	components := make([][]Node, len(positions))
	for i, idx := range positions {
		members := make([]Node, len(idx))
		for j, p := range idx {
			members[j] = g.nodes[p]
		}
		components[i] = members
	}
	return components
}

// clusteredLevel builds a level with one node per cluster. Clusters are
// ordered by size, largest first, and their members by label. Edges with
// both endpoints in a cluster become the edges of its inner level.
func clusteredLevel(prefix string, clusters [][]Node, edges []Edge) *Graph {
	sorted := make([][]Node, len(clusters))
	for i, c := range clusters {
		members := slices.Clone(c)
		slices.SortStableFunc(members, func(a, b Node) int {
			return cmp.Compare(a.Label, b.Label)
		})
		sorted[i] = members
	}
	slices.SortStableFunc(sorted, func(a, b []Node) int {
		return cmp.Compare(len(b), len(a))
	})

	nodes := make([]Node, 0, len(sorted))
	var meshEdges []Edge
	for i, members := range sorted {
		n := Node{
			ID:    fmt.Sprintf("%s_%d", prefix, i),
			Label: fmt.Sprintf("%s %d, %d nodes, from %s to %s", prefix, i, len(members), members[0].Label, members[len(members)-1].Label),
			Type:  i,
			Size:  float64(len(members)),
			Level: clusterLevel,
			Inner: innerLevel(members, edges),
		}
		for _, prev := range nodes {
			id := EdgeID(n.ID, prev.ID)
			meshEdges = append(meshEdges, Edge{
				ID:     id,
				Source: n.ID,
				Target: prev.ID,
				Label:  id,
				Size:   1,
			})
		}
		nodes = append(nodes, n)
	}
	normalizeNodeSizes(nodes)
	return newLevel(nodes, meshEdges, nil)
}

// innerLevel restricts edges to members and builds the level of one cluster.
// Sizes are normalized again over the cluster's own nodes.
func innerLevel(members []Node, edges []Edge) *Graph {
	in := make(map[string]struct{}, len(members))
	for _, m := range members {
		in[m.ID] = struct{}{}
	}
	var inner []Edge
	for _, e := range edges {
		_, okSource := in[e.Source]
		_, okTarget := in[e.Target]
		if okSource && okTarget {
			inner = append(inner, e)
		}
	}
	nodes := slices.Clone(members)
	normalizeNodeSizes(nodes)
	return newLevel(nodes, inner, nil)
}
