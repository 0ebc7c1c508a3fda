package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/npratt/pollygraph/internal/graph"
	"github.com/npratt/pollygraph/internal/testutil"
)

const triangleJSON = `{
  "nodes": [{"id": "A"}, {"id": "B"}, {"id": "C"}],
  "edges": [
    {"source": "A", "target": "B"},
    {"source": "A", "target": "C"},
    {"source": "B", "target": "C"}
  ]
}`

func renderGraph(t *testing.T, g *graph.Graph, tiers map[string]tier, width, height int) *charGrid {
	t.Helper()
	r := graphRenderer{
		graph:    g,
		layout:   computeLayout(g, DensityStandard),
		viewport: Viewport{Width: width, Height: height},
		density:  DensityStandard,
		tierOf:   func(id string) tier { return tiers[id] },
	}
	return r.render(width, height)
}

func TestCharGrid_WriteString(t *testing.T) {
	g := newGrid(10, 1)

	n := g.writeString(1, 0, "ab日本", cellNode)
	if n != 6 {
		t.Errorf("writeString returned %d, want 6", n)
	}
	if got := g.Plain(); got != " ab日本   " {
		t.Errorf("Plain() = %q", got)
	}
	if w := runewidth.StringWidth(g.Plain()); w != 10 {
		t.Errorf("width = %d, want 10", w)
	}
}

func TestCharGrid_WideRuneAtEdgeIsDropped(t *testing.T) {
	g := newGrid(3, 1)
	g.writeString(2, 0, "日", cellNode)
	if got := g.Plain(); got != "   " {
		t.Errorf("Plain() = %q, want three spaces", got)
	}
}

func TestCharGrid_WriteLineKeepsProminentCells(t *testing.T) {
	g := newGrid(2, 1)
	g.writeLine(0, 0, '│', cellEdgeFocused)
	g.writeLine(0, 0, '─', cellEdge)
	g.writeLine(1, 0, '─', cellEdge)
	g.writeLine(1, 0, '│', cellEdgePreFocused)

	if got := g.Plain(); got != "││" {
		t.Errorf("Plain() = %q, want %q", got, "││")
	}
	if g.styles[0][0] != cellEdgeFocused || g.styles[0][1] != cellEdgePreFocused {
		t.Errorf("styles = %v", g.styles[0])
	}
}

func TestCharGrid_OutOfBoundsIgnored(t *testing.T) {
	g := newGrid(2, 2)
	g.writeRune(-1, 0, 'x', cellPlain)
	g.writeRune(0, 5, 'x', cellPlain)
	g.writeLine(2, 1, 'x', cellEdge)
	if strings.Contains(g.Plain(), "x") {
		t.Errorf("out of bounds write landed: %q", g.Plain())
	}
}

func TestGraphRenderer_Path(t *testing.T) {
	g := testutil.MustBuild(t, testutil.PathGraphJSON)
	grid := renderGraph(t, g, nil, 30, 8)
	lines := strings.Split(grid.Plain(), "\n")

	if !strings.HasPrefix(lines[0], "● Alpha") {
		t.Errorf("line 0 = %q, want node Alpha", lines[0])
	}
	if !strings.HasPrefix(lines[3], "● Bravo") {
		t.Errorf("line 3 = %q, want node Bravo", lines[3])
	}
	if !strings.HasPrefix(lines[6], "● Charlie") {
		t.Errorf("line 6 = %q, want node Charlie", lines[6])
	}
	for _, y := range []int{1, 2, 4, 5} {
		if grid.cells[y][10] != '│' {
			t.Errorf("cell (10, %d) = %q, want │", y, grid.cells[y][10])
		}
	}
}

func TestGraphRenderer_InnerMarker(t *testing.T) {
	g := testutil.MustBuild(t, testutil.LazyInnerJSON)
	grid := renderGraph(t, g, nil, 60, 6)
	if grid.cells[0][0] != '◆' {
		t.Errorf("marker = %q, want ◆ for a node with an inner level", grid.cells[0][0])
	}
}

func TestGraphRenderer_SameLayerEdge(t *testing.T) {
	g := testutil.MustBuild(t, triangleJSON)
	grid := renderGraph(t, g, nil, 60, 6)

	// B and C share the second layer; their edge runs along the row below.
	if grid.cells[4][10] != '╰' || grid.cells[4][33] != '╯' {
		t.Errorf("row 4 = %q", strings.Split(grid.Plain(), "\n")[4])
	}
	if grid.cells[4][20] != '─' {
		t.Errorf("cell (20, 4) = %q, want ─", grid.cells[4][20])
	}
}

func TestGraphRenderer_FocusedTierStyles(t *testing.T) {
	g := testutil.MustBuild(t, testutil.StarGraphJSON)
	tiers := map[string]tier{
		"hub":     tierPreFocused,
		"b - hub": tierFocused,
		"a":       tierFocused,
	}
	grid := renderGraph(t, g, tiers, 80, 6)

	if grid.styles[0][1] != cellNodePreFocused {
		t.Errorf("hub label style = %v, want prefocused", grid.styles[0][1])
	}
	if grid.styles[3][24] != cellNodeFocused {
		t.Errorf("a label style = %v, want focused", grid.styles[3][24])
	}
	// The focused edge is drawn last, so it wins the shared column.
	if grid.cells[2][10] != '│' || grid.styles[2][10] != cellEdgeFocused {
		t.Errorf("cell (10, 2) = %q style %v, want focused │", grid.cells[2][10], grid.styles[2][10])
	}
}

func TestGraphRenderer_ViewportOffset(t *testing.T) {
	g := testutil.MustBuild(t, testutil.PathGraphJSON)
	r := graphRenderer{
		graph:    g,
		layout:   computeLayout(g, DensityStandard),
		viewport: Viewport{OffsetY: 6, Width: 30, Height: 2},
		density:  DensityStandard,
		tierOf:   func(string) tier { return tierUnfocused },
	}
	lines := strings.Split(r.render(30, 2).Plain(), "\n")
	if !strings.HasPrefix(lines[0], "● Charlie") {
		t.Errorf("line 0 = %q, want Charlie at the top", lines[0])
	}
}

func TestGraphRenderer_DetailedDensity(t *testing.T) {
	g := testutil.MustBuild(t, testutil.LazyInnerJSON)
	r := graphRenderer{
		graph:    g,
		layout:   computeLayout(g, DensityDetailed),
		viewport: Viewport{Width: 60, Height: 8},
		density:  DensityDetailed,
		tierOf:   func(string) tier { return tierUnfocused },
	}
	lines := strings.Split(r.render(60, 8).Plain(), "\n")
	if !strings.Contains(lines[1], "size") || !strings.Contains(lines[1], "inner") {
		t.Errorf("detail line = %q, want size and inner marker", lines[1])
	}
}

func TestRenderEmpty(t *testing.T) {
	out := renderEmpty("nothing", 20, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if strings.TrimSpace(lines[2]) != "nothing" {
		t.Errorf("middle line = %q", lines[2])
	}
	for i, l := range lines {
		if runewidth.StringWidth(l) != 20 {
			t.Errorf("line %d width = %d, want 20", i, runewidth.StringWidth(l))
		}
	}
}
