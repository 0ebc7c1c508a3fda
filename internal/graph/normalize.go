package graph

import "fmt"

// Normalize builds a level from a raw document: it validates the document,
// fills node and edge defaults, assigns canonical edge ids and min-max
// normalizes node sizes. Nested inner documents are built recursively with
// Build. The raw document is not modified.
//
// Edges with an endpoint that is not a node of the document are dropped, and
// edges whose id is already taken collapse into the first one.
func Normalize(raw RawGraph) (*Graph, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	if len(raw.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	nodes := make([]Node, 0, len(raw.Nodes))
	seen := make(map[string]struct{}, len(raw.Nodes))
	for _, rn := range raw.Nodes {
		if _, dup := seen[rn.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrValidation, rn.ID)
		}
		seen[rn.ID] = struct{}{}

		n, err := normalizeNode(rn)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	normalizeNodeSizes(nodes)

	edges := make([]Edge, 0, len(raw.Edges))
	ids := make(map[string]struct{}, len(raw.Edges))
	for _, re := range raw.Edges {
		_, okSource := seen[re.Source]
		_, okTarget := seen[re.Target]
		if !okSource || !okTarget {
			continue
		}
		e := normalizeEdge(re)
		if _, dup := ids[e.ID]; dup {
			continue
		}
		ids[e.ID] = struct{}{}
		edges = append(edges, e)
	}

	return newLevel(nodes, edges, nil), nil
}

// Build normalizes and decomposes a raw document into a navigable top level
// whose outer pointer is set to outer.
func Build(raw RawGraph, outer *Graph) (*Graph, error) {
	g, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	top := Decompose(g)
	top.outer = outer
	return top, nil
}

func normalizeNode(rn RawNode) (Node, error) {
	n := Node{
		ID:          rn.ID,
		Label:       rn.Label,
		Size:        DefaultSize,
		Info:        rn.Info,
		InnerSource: rn.InnerSource,
	}
	if n.Label == "" {
		n.Label = n.ID
	}
	switch {
	case rn.Type != nil:
		n.Type = *rn.Type
	case rn.Group != nil:
		n.Type = *rn.Group
	}
	if rn.Size != nil {
		n.Size = *rn.Size
	}
	if rn.Level != nil {
		n.Level = *rn.Level
	}
	if rn.Inner != nil {
		inner, err := Build(*rn.Inner, nil)
		if err != nil {
			return Node{}, fmt.Errorf("node %q inner: %w", rn.ID, err)
		}
		n.Inner = inner
		n.InnerSource = ""
	}
	return n, nil
}

func normalizeEdge(re RawEdge) Edge {
	e := Edge{
		ID:     re.ID,
		Source: re.Source,
		Target: re.Target,
		Label:  re.Label,
		Size:   DefaultSize,
		Info:   re.Info,
	}
	if e.ID == "" {
		e.ID = EdgeID(e.Source, e.Target)
	}
	if e.Label == "" {
		e.Label = e.ID
	}
	if re.Size != nil {
		e.Size = *re.Size
	}
	return e
}
