// Package export renders static snapshots of a graph level.
package export

import (
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/npratt/pollygraph/internal/graph"
)

// ErrUnsupportedFormat is returned for output paths that are not SVG.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Options controls snapshot rendering.
type Options struct {
	Width  int
	Height int
	Margin int
	// Title is drawn in the header; empty uses the node and edge counts only.
	Title string
	// Focus is the element drawn focused. A focused node pre-focuses its
	// edges; a focused edge pre-focuses its endpoints.
	Focus string
}

// DefaultOptions returns the snapshot size used when none is configured.
func DefaultOptions() Options {
	return Options{Width: 960, Height: 720, Margin: 60}
}

const headerHeight = 48

var (
	colorBackdrop    = "#0f172a"
	colorHeader      = "#1e293b"
	colorText        = "#e2e8f0"
	colorSubtle      = "#94a3b8"
	colorEdge        = "#475569"
	colorEdgePre     = "#60a5fa"
	colorEdgeFocused = "#4ade80"
	colorNodeStroke  = "#0f172a"
	colorPreStroke   = "#60a5fa"
	colorFocusStroke = "#4ade80"
)

// typeColors fill nodes by type.
var typeColors = []string{"#38bdf8", "#a3e635", "#fbbf24", "#c084fc", "#22d3ee", "#f87171", "#facc15", "#a5b4fc"}

// point is a node centre on the canvas.
type point struct{ x, y int }

// SaveSVG writes the snapshot of g to path. A path without extension gets
// ".svg"; any other extension is rejected.
func SaveSVG(path string, g *graph.Graph, opts Options) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
	case "":
		path += ".svg"
	default:
		return "", fmt.Errorf("%w: %q (want .svg)", ErrUnsupportedFormat, ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteSVG(file, g, opts); err != nil {
		return "", err
	}
	return path, file.Close()
}

// WriteSVG renders one level with nodes on a circle, in insertion order
// starting at the top.
func WriteSVG(w io.Writer, g *graph.Graph, opts Options) error {
	if g == nil || g.NodeCount() == 0 {
		return errors.New("no graph to export")
	}
	defaults := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = defaults.Width
	}
	if opts.Height <= 0 {
		opts.Height = defaults.Height
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}

	pos := circularLayout(g, opts)
	tiers := focusTiers(g, opts.Focus)

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:"+colorBackdrop)
	drawHeader(canvas, g, opts)

	canvas.Group(`class="edges"`)
	for _, t := range []tier{tierNone, tierPre, tierFocused} {
		for _, e := range g.Edges() {
			if tiers[e.ID] == t {
				drawEdge(canvas, e, pos, t)
			}
		}
	}
	canvas.Gend()

	canvas.Group(`class="nodes"`)
	for _, n := range g.Nodes() {
		drawNode(canvas, n, pos[n.ID], tiers[n.ID])
	}
	canvas.Gend()

	canvas.End()
	return nil
}

// tier is the highlight of an element in a snapshot.
type tier int

const (
	tierNone tier = iota
	tierPre
	tierFocused
)

// focusTiers marks the focus element and its context.
func focusTiers(g *graph.Graph, focus string) map[string]tier {
	tiers := make(map[string]tier)
	if focus == "" {
		return tiers
	}
	if g.HasNode(focus) {
		tiers[focus] = tierFocused
		for _, e := range g.EdgesOf(focus) {
			tiers[e.ID] = tierPre
		}
		return tiers
	}
	if e, ok := g.Edge(focus); ok {
		tiers[e.ID] = tierFocused
		tiers[e.Source] = tierPre
		tiers[e.Target] = tierPre
	}
	return tiers
}

// circularLayout places nodes evenly on a circle below the header. A single
// node sits in the centre.
func circularLayout(g *graph.Graph, opts Options) map[string]point {
	nodes := g.Nodes()
	pos := make(map[string]point, len(nodes))

	cx := opts.Width / 2
	cy := headerHeight + (opts.Height-headerHeight)/2
	radius := float64(min(opts.Width, opts.Height-headerHeight))/2 - float64(opts.Margin)
	radius = math.Max(radius, 0)

	if len(nodes) == 1 {
		pos[nodes[0].ID] = point{cx, cy}
		return pos
	}
	for i, n := range nodes {
		angle := 2*math.Pi*float64(i)/float64(len(nodes)) - math.Pi/2
		pos[n.ID] = point{
			x: cx + int(math.Round(radius*math.Cos(angle))),
			y: cy + int(math.Round(radius*math.Sin(angle))),
		}
	}
	return pos
}

// nodeRadius scales a normalized size onto the drawn radius.
func nodeRadius(size float64) int {
	return 8 + int(math.Round(12*size))
}

func drawHeader(canvas *svg.SVG, g *graph.Graph, opts Options) {
	canvas.Rect(0, 0, opts.Width, headerHeight, "fill:"+colorHeader)
	y := 30
	x := 16
	if opts.Title != "" {
		canvas.Text(x, y, truncate(opts.Title, 60),
			"fill:"+colorText+";font-size:16px;font-family:monospace;font-weight:bold")
		x = opts.Width - 240
	}
	canvas.Text(x, y, fmt.Sprintf("nodes: %d  edges: %d  depth: %d", g.NodeCount(), g.EdgeCount(), g.Depth()),
		"fill:"+colorSubtle+";font-size:13px;font-family:monospace")
}

func drawEdge(canvas *svg.SVG, e graph.Edge, pos map[string]point, t tier) {
	a, okA := pos[e.Source]
	b, okB := pos[e.Target]
	if !okA || !okB {
		return
	}

	color := colorEdge
	switch t {
	case tierPre:
		color = colorEdgePre
	case tierFocused:
		color = colorEdgeFocused
	}
	width := 1 + 3*e.Size
	style := fmt.Sprintf("stroke:%s;stroke-width:%.1f;fill:none", color, width)

	canvas.Group(attr("data-id", e.ID))
	canvas.Title(e.Label)
	if e.Source == e.Target {
		canvas.Circle(a.x+14, a.y-14, 10, style)
	} else {
		canvas.Line(a.x, a.y, b.x, b.y, style)
	}
	canvas.Gend()
}

func drawNode(canvas *svg.SVG, n graph.Node, p point, t tier) {
	r := nodeRadius(n.Size)
	stroke, strokeW := colorNodeStroke, 1.5
	switch t {
	case tierPre:
		stroke, strokeW = colorPreStroke, 3
	case tierFocused:
		stroke, strokeW = colorFocusStroke, 4
	}

	canvas.Group(attr("data-id", n.ID))
	title := n.Label
	if n.Info != "" {
		title += "\n" + n.Info
	}
	canvas.Title(title)
	canvas.Circle(p.x, p.y, r,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%.1f", typeColor(n.Type), stroke, strokeW))
	if n.HasInner() {
		canvas.Circle(p.x, p.y, r+5,
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-dasharray:3,3", colorSubtle))
	}
	canvas.Text(p.x, p.y+r+16, truncate(n.Label, 28),
		"fill:"+colorText+";font-size:12px;font-family:monospace;text-anchor:middle")
	canvas.Gend()
}

func typeColor(t int) string {
	n := len(typeColors)
	return typeColors[((t%n)+n)%n]
}

// attr formats an escaped attribute for svgo's raw attribute strings.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
