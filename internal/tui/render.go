package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/npratt/pollygraph/internal/graph"
)

// charGrid is a 2D character grid for rendering. A zero rune marks the
// second cell of a wide rune.
type charGrid struct {
	width  int
	height int
	cells  [][]rune
	styles [][]cellStyle
}

// newGrid creates a new character grid filled with spaces.
func newGrid(width, height int) *charGrid {
	width, height = max(0, width), max(0, height)
	cells := make([][]rune, height)
	styles := make([][]cellStyle, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]rune, width)
		styles[y] = make([]cellStyle, width)
		for x := 0; x < width; x++ {
			cells[y][x] = ' '
		}
	}
	return &charGrid{
		width:  width,
		height: height,
		cells:  cells,
		styles: styles,
	}
}

func (g *charGrid) inside(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// writeRune writes a single rune at the given position.
func (g *charGrid) writeRune(x, y int, r rune, style cellStyle) {
	if g.inside(x, y) {
		g.cells[y][x] = r
		g.styles[y][x] = style
	}
}

// writeLine writes a line-drawing rune unless a more prominent edge already
// occupies the cell.
func (g *charGrid) writeLine(x, y int, r rune, style cellStyle) {
	if g.inside(x, y) && g.styles[y][x] <= style {
		g.writeRune(x, y, r, style)
	}
}

// writeString writes a string starting at the given position and returns
// the number of cells used.
func (g *charGrid) writeString(x, y int, s string, style cellStyle) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if w == 2 && col+1 >= g.width {
			break
		}
		g.writeRune(col, y, r, style)
		if w == 2 {
			g.writeRune(col+1, y, 0, style)
		}
		col += w
	}
	return col - x
}

// String converts the grid to a string, styling runs of equal cells.
func (g *charGrid) String() string {
	lines := make([]string, 0, g.height)
	for y, row := range g.cells {
		var sb strings.Builder
		var run []rune
		current := cellPlain
		flush := func() {
			if len(run) == 0 {
				return
			}
			if current == cellPlain {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(cellStyles[current].Render(string(run)))
			}
			run = run[:0]
		}
		for x, r := range row {
			if r == 0 {
				continue
			}
			if s := g.styles[y][x]; s != current {
				flush()
				current = s
			}
			run = append(run, r)
		}
		flush()
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// Plain returns the grid text without styling.
func (g *charGrid) Plain() string {
	lines := make([]string, 0, g.height)
	for _, row := range g.cells {
		var sb strings.Builder
		for _, r := range row {
			if r != 0 {
				sb.WriteRune(r)
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// graphRenderer draws one level through a viewport.
type graphRenderer struct {
	graph    *graph.Graph
	layout   *Layout
	viewport Viewport
	density  NodeDensity
	tierOf   func(id string) tier
}

// render draws edges first so that nodes draw on top.
func (r graphRenderer) render(width, height int) *charGrid {
	grid := newGrid(width, height)
	if r.graph == nil || r.layout == nil {
		return grid
	}

	// Prominent edges last so their cells win at crossings.
	edges := r.graph.Edges()
	for _, t := range []tier{tierUnfocused, tierPreFocused, tierFocused} {
		for _, e := range edges {
			if r.tierOf(e.ID) == t {
				r.renderEdge(grid, e, edgeCellStyle(t))
			}
		}
	}
	for _, n := range r.graph.Nodes() {
		r.renderNode(grid, n)
	}
	return grid
}

// renderNode writes a node box: a type-coloured marker and its label.
func (r graphRenderer) renderNode(grid *charGrid, n graph.Node) {
	pos, ok := r.layout.Positions[n.ID]
	if !ok {
		return
	}
	x := pos.X - r.viewport.OffsetX
	y := pos.Y - r.viewport.OffsetY
	if x+pos.W < 0 || x >= grid.width || y+pos.H < 0 || y >= grid.height {
		return
	}

	style := nodeCellStyle(r.tierOf(n.ID))
	marker := '●'
	if n.HasInner() {
		marker = '◆'
	}

	label := padRight(" "+truncate(n.Label, pos.W-3)+" ", pos.W-1)
	grid.writeRune(x, y, marker, markerStyle(n.Type))
	grid.writeString(x+1, y, label, style)

	if r.density == DensityDetailed && pos.H > 1 {
		detail := fmt.Sprintf("  size %.2f", n.Size)
		if n.HasInner() {
			detail += " ▸ inner"
		}
		grid.writeString(x, y+1, padRight(truncate(detail, pos.W), pos.W), style)
	}
}

// renderEdge routes an edge between two node boxes. Edges within a layer
// run along the row below it; others drop from the upper node and turn
// towards the lower one on the row above it.
func (r graphRenderer) renderEdge(grid *charGrid, e graph.Edge, style cellStyle) {
	a, okA := r.layout.Positions[e.Source]
	b, okB := r.layout.Positions[e.Target]
	if !okA || !okB {
		return
	}
	ox, oy := r.viewport.OffsetX, r.viewport.OffsetY

	if e.Source == e.Target {
		grid.writeLine(a.X+a.W-1-ox, a.Y+a.H-oy, '↺', style)
		return
	}

	if a.Y == b.Y {
		row := a.Y + a.H - oy
		left, right := min(a.centerX(), b.centerX())-ox, max(a.centerX(), b.centerX())-ox
		for x := left + 1; x < right; x++ {
			grid.writeLine(x, row, '─', style)
		}
		grid.writeLine(left, row, '╰', style)
		grid.writeLine(right, row, '╯', style)
		return
	}

	upper, lower := a, b
	if b.Y < a.Y {
		upper, lower = b, a
	}
	fromX, toX := upper.centerX()-ox, lower.centerX()-ox
	fromY, turnY := upper.Y+upper.H-oy, lower.Y-1-oy

	for y := fromY; y < turnY; y++ {
		grid.writeLine(fromX, y, '│', style)
	}
	switch {
	case fromX == toX:
		grid.writeLine(fromX, turnY, '│', style)
	case toX > fromX:
		grid.writeLine(fromX, turnY, '╰', style)
		for x := fromX + 1; x < toX; x++ {
			grid.writeLine(x, turnY, '─', style)
		}
		grid.writeLine(toX, turnY, '╮', style)
	default:
		grid.writeLine(fromX, turnY, '╯', style)
		for x := toX + 1; x < fromX; x++ {
			grid.writeLine(x, turnY, '─', style)
		}
		grid.writeLine(toX, turnY, '╭', style)
	}
}

// renderEmpty renders a centred placeholder.
func renderEmpty(msg string, width, height int) string {
	if width < runewidth.StringWidth(msg) {
		msg = truncate(msg, width)
	}
	padLeft := max(0, (width-runewidth.StringWidth(msg))/2)
	line := padRight(strings.Repeat(" ", padLeft)+msg, width)

	lines := make([]string, 0, height)
	for y := 0; y < height; y++ {
		if y == height/2 {
			lines = append(lines, line)
		} else {
			lines = append(lines, strings.Repeat(" ", max(0, width)))
		}
	}
	return strings.Join(lines, "\n")
}
