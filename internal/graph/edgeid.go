package graph

// EdgeSeparator joins the two endpoint ids of a canonical edge id.
const EdgeSeparator = " - "

// EdgeID returns the canonical id of the undirected edge between a and b.
// The endpoints are ordered lexicographically, so EdgeID(a, b) == EdgeID(b, a).
func EdgeID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + EdgeSeparator + b
}

// NormalizeSize maps size from [min, max] onto [0, 1]. A degenerate range
// yields DefaultSize.
func NormalizeSize(size, min, max float64) float64 {
	if max == min {
		return DefaultSize
	}
	v := (size - min) / (max - min)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// normalizeNodeSizes rescales node sizes in place over their own range.
func normalizeNodeSizes(nodes []Node) {
	if len(nodes) == 0 {
		return
	}
	lo, hi := nodes[0].Size, nodes[0].Size
	for _, n := range nodes[1:] {
		lo = min(lo, n.Size)
		hi = max(hi, n.Size)
	}
	for i := range nodes {
		nodes[i].Size = NormalizeSize(nodes[i].Size, lo, hi)
	}
}
