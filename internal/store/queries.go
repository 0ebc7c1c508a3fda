package store

import (
	"slices"

	"github.com/npratt/pollygraph/internal/graph"
)

// GetFirstNonVisitedEdgeID returns the first edge touching nodeID that is not
// in history, else the first touching edge, else "".
func (s *Store) GetFirstNonVisitedEdgeID(nodeID string, history []string) string {
	g := s.Current()
	if g == nil {
		return ""
	}
	ring := g.EdgesOf(nodeID)
	if len(ring) == 0 {
		return ""
	}
	for _, e := range ring {
		if !slices.Contains(history, e.ID) {
			return e.ID
		}
	}
	return ring[0].ID
}

// GetNodeIDOnOtherSide returns the endpoint of edgeID that is not nodeID. An
// empty nodeID yields the edge source; an unknown edge yields "".
func (s *Store) GetNodeIDOnOtherSide(nodeID, edgeID string) string {
	g := s.Current()
	if g == nil {
		return ""
	}
	e, ok := g.Edge(edgeID)
	if !ok {
		return ""
	}
	if nodeID == "" || e.Source != nodeID {
		return e.Source
	}
	return e.Target
}

// GetNextEdgeID steps through the ring of edges touching nodeID, starting at
// edgeID and wrapping in both directions. When edgeID is not in the ring, a
// forward step lands on the first edge and a backward step on the last.
func (s *Store) GetNextEdgeID(nodeID, edgeID string, step int) string {
	g := s.Current()
	if g == nil {
		return ""
	}
	ring := g.EdgesOf(nodeID)
	n := len(ring)
	if n == 0 {
		return ""
	}

	idx := slices.IndexFunc(ring, func(e graph.Edge) bool { return e.ID == edgeID })
	if idx < 0 {
		if step < 0 {
			return ring[n-1].ID
		}
		return ring[0].ID
	}
	return ring[((idx+step)%n+n)%n].ID
}

// GetInfo returns the info of a node or edge, falling back to the node label
// or the edge id. Unknown ids yield "".
func (s *Store) GetInfo(elementID string) string {
	g := s.Current()
	if g == nil {
		return ""
	}
	if n, ok := g.Node(elementID); ok {
		if n.Info != "" {
			return n.Info
		}
		return n.Label
	}
	if e, ok := g.Edge(elementID); ok {
		if e.Info != "" {
			return e.Info
		}
		return e.ID
	}
	return ""
}
