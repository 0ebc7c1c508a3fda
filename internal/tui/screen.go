package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/npratt/pollygraph/internal/config"
	"github.com/npratt/pollygraph/internal/controller"
	"github.com/npratt/pollygraph/internal/graph"
	"github.com/npratt/pollygraph/internal/source"
)

// tier is the display state of one element.
type tier int

const (
	tierUnfocused tier = iota
	tierPreFocused
	tierFocused
)

func (t tier) String() string {
	switch t {
	case tierPreFocused:
		return "prefocused"
	case tierFocused:
		return "focused"
	default:
		return "unfocused"
	}
}

// infoElement holds keyboard focus while the info pane is active.
const infoElement = "\x00info"

// Screen is the controller.View of the terminal UI. It keeps the display
// tier of every element and emulates keyboard focus: moving focus blurs the
// active element before the controller hears about the new one. All methods
// run on the Bubble Tea event loop.
type Screen struct {
	ctrl   *controller.Controller
	logger *slog.Logger

	graph    *graph.Graph
	path     string
	layout   *Layout
	viewport Viewport
	density  NodeDensity

	tiers  map[string]tier
	active string

	infoID       string
	infoText     string
	infoTemplate string
	markdown     bool
	glamourStyle string
	infoWidth    int
	renderer     *glamour.TermRenderer

	loading string
	loadErr string
}

// newScreen creates an empty Screen.
func newScreen(density NodeDensity, infoTemplate string, markdown bool, glamourStyle string, logger *slog.Logger) *Screen {
	if infoTemplate == "" {
		infoTemplate = config.DefaultInfoTemplate
	}
	return &Screen{
		logger:       logger,
		density:      density,
		tiers:        make(map[string]tier),
		layout:       computeLayout(nil, density),
		infoTemplate: infoTemplate,
		markdown:     markdown,
		glamourStyle: glamourStyle,
		infoWidth:    40,
	}
}

// SetController stores the controller focus events are sent to.
func (s *Screen) SetController(c *controller.Controller) {
	s.ctrl = c
}

// OnDataChange switches to a new level and discards the active element.
func (s *Screen) OnDataChange(g *graph.Graph, path string) {
	s.graph = g
	s.path = path
	s.layout = computeLayout(g, s.density)
	s.viewport.OffsetX, s.viewport.OffsetY = 0, 0
	s.tiers = make(map[string]tier)
	s.active = ""
	s.infoID = ""
	s.infoText = ""
	s.loading = ""
	s.loadErr = ""
}

func (s *Screen) DisplayFocusOnNodeID(id string) {
	s.tiers[id] = tierFocused
	s.follow(id)
}

func (s *Screen) DisplayFocusOnEdgeID(id string) {
	s.tiers[id] = tierFocused
	s.follow(id)
}

func (s *Screen) DisplayPreFocusOnNodeID(id string) { s.tiers[id] = tierPreFocused }
func (s *Screen) DisplayPreFocusOnEdgeID(id string) { s.tiers[id] = tierPreFocused }
func (s *Screen) DisplayUnFocusOnNodeID(id string)  { delete(s.tiers, id) }
func (s *Screen) DisplayUnFocusOnEdgeID(id string)  { delete(s.tiers, id) }

// DisplayPreFocusOnConnectedEdgesToNodeID marks the ring of edges around id
// and clears every other edge.
func (s *Screen) DisplayPreFocusOnConnectedEdgesToNodeID(id string) {
	if s.graph == nil {
		return
	}
	for _, e := range s.graph.Edges() {
		if e.Touches(id) {
			s.tiers[e.ID] = tierPreFocused
		} else {
			delete(s.tiers, e.ID)
		}
	}
}

// DisplayElementInfo renders the info pane for an element.
func (s *Screen) DisplayElementInfo(id string) {
	s.infoID = id
	s.infoText = s.renderInfo(id)
}

// FindAndFocusElement moves keyboard focus to id.
func (s *Screen) FindAndFocusElement(id string) {
	if s.graph == nil || id == s.active {
		return
	}
	isNode, isEdge := s.graph.HasNode(id), s.graph.HasEdge(id)
	if !isNode && !isEdge {
		return
	}
	s.blur()
	s.active = id
	if s.ctrl == nil {
		return
	}
	if isNode {
		s.ctrl.FocusNode(id)
	} else {
		s.ctrl.FocusEdge(id)
	}
}

// FocusInfo moves keyboard focus into the info pane.
func (s *Screen) FocusInfo() {
	if s.active == infoElement {
		return
	}
	s.blur()
	s.active = infoElement
}

func (s *Screen) blur() {
	if s.active == "" || s.ctrl == nil || s.graph == nil {
		return
	}
	switch {
	case s.graph.HasNode(s.active):
		s.ctrl.UnFocusNode(s.active)
	case s.graph.HasEdge(s.active):
		s.ctrl.UnFocusEdge(s.active)
	}
}

func (s *Screen) DisplayLoading(path string) {
	s.loading = path
	s.loadErr = ""
}

func (s *Screen) DisplayLoadError(path string, err error) {
	s.loading = ""
	if path == "" {
		s.loadErr = err.Error()
		return
	}
	s.loadErr = path + ": " + err.Error()
}

// InDetails reports whether the info pane holds keyboard focus.
func (s *Screen) InDetails() bool {
	return s.active == infoElement
}

// tierOf returns the display tier of an element.
func (s *Screen) tierOf(id string) tier {
	return s.tiers[id]
}

// follow scrolls the graph viewport to keep id visible.
func (s *Screen) follow(id string) {
	if box, ok := s.layout.elementBox(s.graph, id); ok {
		s.viewport.follow(box)
	}
}

// setSize resizes the graph viewport and the info pane wrap width.
func (s *Screen) setSize(graphWidth, graphHeight, infoWidth int) {
	s.viewport.Width = graphWidth
	s.viewport.Height = graphHeight
	if infoWidth != s.infoWidth {
		s.infoWidth = infoWidth
		s.renderer = nil
		if s.infoID != "" {
			s.infoText = s.renderInfo(s.infoID)
		}
	}
	if id := s.focusedID(); id != "" {
		s.follow(id)
	}
}

// setDensity re-lays out the level at a new density.
func (s *Screen) setDensity(d NodeDensity) {
	s.density = d
	s.layout = computeLayout(s.graph, d)
	s.viewport.OffsetX, s.viewport.OffsetY = 0, 0
	if id := s.focusedID(); id != "" {
		s.follow(id)
	}
}

// focusedID returns the element with the focused tier, edge first.
func (s *Screen) focusedID() string {
	if s.ctrl != nil {
		return s.ctrl.FocusedElementID()
	}
	return ""
}

// infoVars collects the template variables of an element.
func (s *Screen) infoVars(id string) config.InfoVars {
	vars := config.InfoVars{ID: id, Ref: source.FormatRef(s.path, id)}
	if s.ctrl != nil {
		vars.Info = s.ctrl.GetInfo(id)
	}
	if s.graph == nil {
		return vars
	}
	if n, ok := s.graph.Node(id); ok {
		vars.Kind = "node"
		vars.Label = n.Label
		if n.HasInner() {
			vars.Kind = "node with inner graph"
		}
	} else if e, ok := s.graph.Edge(id); ok {
		vars.Kind = "edge"
		vars.Label = e.Label
	}
	return vars
}

// renderInfo expands the info template and renders it as markdown when
// enabled. Rendering failures fall back to the plain text.
func (s *Screen) renderInfo(id string) string {
	text := config.ExpandInfo(s.infoTemplate, s.infoVars(id))
	if !s.markdown {
		return strings.TrimSpace(text)
	}
	r, err := s.markdownRenderer()
	if err != nil {
		s.logger.Debug("markdown renderer unavailable", "error", err)
		return strings.TrimSpace(text)
	}
	out, err := r.Render(text)
	if err != nil {
		s.logger.Debug("markdown render failed", "element", id, "error", err)
		return strings.TrimSpace(text)
	}
	return strings.Trim(out, "\n")
}

func (s *Screen) markdownRenderer() (*glamour.TermRenderer, error) {
	if s.renderer != nil {
		return s.renderer, nil
	}
	style := glamour.WithStandardStyle(s.glamourStyle)
	if s.glamourStyle == "" || s.glamourStyle == "auto" {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(max(10, s.infoWidth)))
	if err != nil {
		return nil, err
	}
	s.renderer = r
	return r, nil
}
