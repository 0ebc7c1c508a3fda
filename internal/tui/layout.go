package tui

import "github.com/npratt/pollygraph/internal/graph"

const (
	// nodeSpacing is the number of columns between nodes of a layer.
	nodeSpacing = 3
	// layerSpacing is the number of rows between layers, used for edge routing.
	layerSpacing = 2
)

// Position is the cell rectangle of a node box.
type Position struct {
	X int
	Y int
	W int
	H int
}

// centerX returns the column edges attach to.
func (p Position) centerX() int {
	return p.X + p.W/2
}

// Layout holds the computed positions of the nodes of one level.
type Layout struct {
	Layers    [][]string          // Node IDs organized by BFS depth
	Positions map[string]Position // Computed positions for each node
	Width     int
	Height    int
}

// Viewport is the visible window over a layout.
type Viewport struct {
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// computeLayout assigns the nodes of g to layers by breadth-first search over
// undirected edges, starting at the level's first node. Components not
// reached from it start again at layer 0, in insertion order.
func computeLayout(g *graph.Graph, density NodeDensity) *Layout {
	l := &Layout{Positions: make(map[string]Position)}
	if g == nil || g.NodeCount() == 0 {
		return l
	}

	visited := make(map[string]bool, g.NodeCount())
	for _, n := range g.Nodes() {
		if visited[n.ID] {
			continue
		}
		l.assignLayers(g, n.ID, visited)
	}
	l.positionNodes(density)
	return l
}

// assignLayers runs one BFS from root and merges its layers into l.
func (l *Layout) assignLayers(g *graph.Graph, root string, visited map[string]bool) {
	visited[root] = true
	current := []string{root}
	for depth := 0; len(current) > 0; depth++ {
		if depth == len(l.Layers) {
			l.Layers = append(l.Layers, nil)
		}
		l.Layers[depth] = append(l.Layers[depth], current...)

		var next []string
		for _, id := range current {
			for _, e := range g.EdgesOf(id) {
				other := e.Target
				if other == id {
					other = e.Source
				}
				if !visited[other] {
					visited[other] = true
					next = append(next, other)
				}
			}
		}
		current = next
	}
}

// positionNodes computes the cell rectangle of every node.
func (l *Layout) positionNodes(density NodeDensity) {
	nodeW, nodeH := nodeDimensions(density)
	for layerIdx, layer := range l.Layers {
		for nodeIdx, id := range layer {
			pos := Position{
				X: nodeIdx * (nodeW + nodeSpacing),
				Y: layerIdx * (nodeH + layerSpacing),
				W: nodeW,
				H: nodeH,
			}
			l.Positions[id] = pos
			l.Width = max(l.Width, pos.X+pos.W)
			l.Height = max(l.Height, pos.Y+pos.H+1)
		}
	}
}

// nodeDimensions returns node width and height based on density.
func nodeDimensions(density NodeDensity) (int, int) {
	switch density {
	case DensityCompact:
		return 12, 1
	case DensityDetailed:
		return 26, 2
	default: // DensityStandard
		return 20, 1
	}
}

// elementBox returns the rectangle to keep visible for a node or an edge.
// An edge spans the boxes of both endpoints.
func (l *Layout) elementBox(g *graph.Graph, id string) (Position, bool) {
	if pos, ok := l.Positions[id]; ok {
		return pos, true
	}
	if g == nil {
		return Position{}, false
	}
	e, ok := g.Edge(id)
	if !ok {
		return Position{}, false
	}
	a, okA := l.Positions[e.Source]
	b, okB := l.Positions[e.Target]
	if !okA || !okB {
		return Position{}, false
	}
	x, y := min(a.X, b.X), min(a.Y, b.Y)
	return Position{
		X: x,
		Y: y,
		W: max(a.X+a.W, b.X+b.W) - x,
		H: max(a.Y+a.H, b.Y+b.H) - y,
	}, true
}

// follow moves the viewport so that box is visible. Boxes larger than the
// viewport are aligned on their top-left corner.
func (v *Viewport) follow(box Position) {
	if box.X < v.OffsetX || box.W > v.Width {
		v.OffsetX = box.X
	} else if box.X+box.W > v.OffsetX+v.Width {
		v.OffsetX = box.X + box.W - v.Width
	}

	if box.Y < v.OffsetY || box.H > v.Height {
		v.OffsetY = box.Y
	} else if box.Y+box.H > v.OffsetY+v.Height {
		v.OffsetY = box.Y + box.H - v.Height
	}
	v.OffsetX = max(0, v.OffsetX)
	v.OffsetY = max(0, v.OffsetY)
}
