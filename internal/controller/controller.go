// Package controller implements the focus state machine of pollygraph. It
// turns navigation commands into store queries and view display calls, and
// keeps the back-history of visited elements.
package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/npratt/pollygraph/internal/graph"
	"github.com/npratt/pollygraph/internal/router"
	"github.com/npratt/pollygraph/internal/source"
	"github.com/npratt/pollygraph/internal/store"
)

// ErrPrecondition is returned when a required collaborator is missing.
var ErrPrecondition = errors.New("precondition failed")

// DefaultSearchContext is the excerpt padding used by Search.
const DefaultSearchContext = 20

// State is the logical focus state.
type State string

// Focus states.
const (
	StateUnfocused   State = "unfocused"
	StateNodeFocused State = "node"
	StateEdgeFocused State = "edge"
)

// Model is the graph store as seen by the controller.
type Model interface {
	SetListener(l store.Listener)
	SetDataFromSource(src source.DataSource, opts store.LoadOptions) error
	SetDataFromInnerData(nodeID string) error
	SetDataFromOuterData()
	GetFirstNonVisitedEdgeID(nodeID string, history []string) string
	GetNodeIDOnOtherSide(nodeID, edgeID string) string
	GetNextEdgeID(nodeID, edgeID string, step int) string
	GetInfo(elementID string) string
	Search(query, pathLabel string, contextLength int, caseSensitive bool) store.SearchResults
	Current() *graph.Graph
	Path() string
}

// View renders a level and owns element focus. FindAndFocusElement must
// behave like moving keyboard focus: blur the active element through
// UnFocusNode or UnFocusEdge, then focus the target through FocusNode or
// FocusEdge. Focusing the active element again does nothing. OnDataChange
// discards the active element.
type View interface {
	SetController(c *Controller)
	OnDataChange(g *graph.Graph, path string)
	DisplayFocusOnNodeID(nodeID string)
	DisplayFocusOnEdgeID(edgeID string)
	DisplayPreFocusOnNodeID(nodeID string)
	DisplayPreFocusOnEdgeID(edgeID string)
	DisplayUnFocusOnNodeID(nodeID string)
	DisplayUnFocusOnEdgeID(edgeID string)
	DisplayPreFocusOnConnectedEdgesToNodeID(nodeID string)
	DisplayElementInfo(elementID string)
	FindAndFocusElement(elementID string)
	FocusInfo()
	DisplayLoading(path string)
	DisplayLoadError(path string, err error)
}

// Router records visited routes.
type Router interface {
	Record(path, elementID string)
	Back() (router.Route, bool)
}

// Option configures a Controller.
type Option func(*Controller)

// WithRouter records every level change that did not come from the router.
func WithRouter(r Router) Option {
	return func(c *Controller) {
		c.router = r
	}
}

// WithLogger sets the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSearch sets the excerpt padding and case sensitivity of Search.
func WithSearch(contextLength int, caseSensitive bool) Option {
	return func(c *Controller) {
		c.searchContext = contextLength
		c.caseSensitive = caseSensitive
	}
}

// Controller is the focus state machine. It is not safe for concurrent use:
// every method, including the store callbacks, runs on the view's event loop.
type Controller struct {
	model  Model
	view   View
	router Router
	logger *slog.Logger

	searchContext int
	caseSensitive bool

	focusedNodeID    string
	preFocusedNodeID string
	focusedEdgeID    string
	traversingNearby bool
	history          []string
}

// New wires a controller between model and view and registers it with both.
func New(model Model, view View, opts ...Option) (*Controller, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: controller requires a model", ErrPrecondition)
	}
	if view == nil {
		return nil, fmt.Errorf("%w: controller requires a view", ErrPrecondition)
	}

	c := &Controller{
		model:         model,
		view:          view,
		logger:        slog.Default(),
		searchContext: DefaultSearchContext,
	}
	for _, opt := range opts {
		opt(c)
	}

	view.SetController(c)
	model.SetListener(c)
	return c, nil
}

// State returns the logical focus state. An edge focus wins over the node
// it was reached from.
func (c *Controller) State() State {
	switch {
	case c.focusedEdgeID != "":
		return StateEdgeFocused
	case c.focusedNodeID != "":
		return StateNodeFocused
	default:
		return StateUnfocused
	}
}

// FocusedNodeID returns the node focus last arrived on. It is cleared when
// focus moves from one edge to another.
func (c *Controller) FocusedNodeID() string { return c.focusedNodeID }

// PreFocusedNodeID returns the node giving context to the focused edge.
func (c *Controller) PreFocusedNodeID() string { return c.preFocusedNodeID }

// FocusedEdgeID returns the focused edge.
func (c *Controller) FocusedEdgeID() string { return c.focusedEdgeID }

// TraversingNearby reports whether a sequential hop is in progress.
func (c *Controller) TraversingNearby() bool { return c.traversingNearby }

// History returns a copy of the back-history, oldest first.
func (c *Controller) History() []string { return slices.Clone(c.history) }

// FocusedElementID returns the focused edge, else the focused node.
func (c *Controller) FocusedElementID() string {
	if c.focusedEdgeID != "" {
		return c.focusedEdgeID
	}
	return c.focusedNodeID
}

// Model returns the store the controller navigates.
func (c *Controller) Model() Model { return c.model }

// FocusNode handles focus arriving on a node.
func (c *Controller) FocusNode(nodeID string) {
	if c.preFocusedNodeID != "" {
		c.view.DisplayUnFocusOnNodeID(c.preFocusedNodeID)
	}
	c.focusedNodeID = nodeID
	c.preFocusedNodeID = nodeID
	c.view.DisplayPreFocusOnConnectedEdgesToNodeID(nodeID)
	c.focusedEdgeID = ""
	c.view.DisplayFocusOnNodeID(nodeID)
	c.view.DisplayElementInfo(nodeID)
}

// UnFocusNode handles focus leaving a node. During a nearby traversal the
// node stays marked as context.
func (c *Controller) UnFocusNode(nodeID string) {
	if c.traversingNearby {
		c.view.DisplayPreFocusOnNodeID(nodeID)
		return
	}
	c.view.DisplayUnFocusOnNodeID(nodeID)
}

// FocusEdge handles focus arriving on an edge. Arriving from another edge
// outside a nearby traversal moves the context to the new edge's source.
func (c *Controller) FocusEdge(edgeID string) {
	if !c.traversingNearby && c.focusedEdgeID != "" {
		c.cleanUpOnUnrelatedEdge(edgeID)
	}
	c.focusedEdgeID = edgeID
	c.view.DisplayFocusOnEdgeID(edgeID)
	c.view.DisplayElementInfo(edgeID)
}

func (c *Controller) cleanUpOnUnrelatedEdge(edgeID string) {
	if c.preFocusedNodeID != "" {
		c.view.DisplayUnFocusOnNodeID(c.preFocusedNodeID)
	}
	c.preFocusedNodeID = c.model.GetNodeIDOnOtherSide("", edgeID)
	if c.preFocusedNodeID != "" {
		c.view.DisplayPreFocusOnNodeID(c.preFocusedNodeID)
		c.view.DisplayPreFocusOnConnectedEdgesToNodeID(c.preFocusedNodeID)
	}
	c.focusedNodeID = ""
}

// UnFocusEdge handles focus leaving an edge.
func (c *Controller) UnFocusEdge(edgeID string) {
	if c.traversingNearby {
		c.view.DisplayPreFocusOnEdgeID(edgeID)
		return
	}
	c.view.DisplayUnFocusOnEdgeID(edgeID)
}

// FocusForward crosses the focused edge to the node on the other side, or
// steps from the focused node onto its first edge not yet visited.
func (c *Controller) FocusForward() {
	switch {
	case c.focusedEdgeID != "":
		next := c.model.GetNodeIDOnOtherSide(c.preFocusedNodeID, c.focusedEdgeID)
		if next == "" {
			c.logger.Debug("focus forward: edge not in current level", "edge", c.focusedEdgeID)
			return
		}
		c.history = append(c.history, c.focusedEdgeID)
		if c.preFocusedNodeID != "" {
			c.view.DisplayUnFocusOnNodeID(c.preFocusedNodeID)
		}
		c.view.FindAndFocusElement(next)

	case c.focusedNodeID != "":
		c.traversingNearby = true
		edgeID := c.model.GetFirstNonVisitedEdgeID(c.focusedNodeID, c.history)
		if edgeID != "" {
			c.history = append(c.history, c.focusedNodeID)
			c.view.FindAndFocusElement(edgeID)
		} else {
			c.view.FindAndFocusElement(c.focusedNodeID)
		}
		c.traversingNearby = false

	default:
		c.logger.Debug("focus forward ignored: nothing focused")
	}
}

// FocusBackward returns focus to the most recently left element.
func (c *Controller) FocusBackward() {
	if len(c.history) == 0 {
		c.logger.Debug("focus backward ignored: empty history")
		return
	}
	last := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.view.FindAndFocusElement(last)
}

// FocusNext moves to the next edge around the context node.
func (c *Controller) FocusNext() {
	c.focusAround(1)
}

// FocusPrevious moves to the previous edge around the context node.
func (c *Controller) FocusPrevious() {
	c.focusAround(-1)
}

func (c *Controller) focusAround(step int) {
	if c.preFocusedNodeID == "" {
		c.logger.Debug("edge ring navigation ignored: no context node", "step", step)
		return
	}
	edgeID := c.model.GetNextEdgeID(c.preFocusedNodeID, c.focusedEdgeID, step)
	if edgeID == "" {
		c.logger.Debug("edge ring navigation ignored: isolated node", "node", c.preFocusedNodeID)
		return
	}
	c.traversingNearby = true
	c.view.FindAndFocusElement(edgeID)
	c.traversingNearby = false
}

// FocusInner drills into the inner level of the focused or context node.
func (c *Controller) FocusInner() {
	nodeID := c.focusedNodeID
	if nodeID == "" {
		nodeID = c.preFocusedNodeID
	}
	if nodeID == "" {
		c.logger.Debug("focus inner ignored: no node")
		return
	}
	if err := c.model.SetDataFromInnerData(nodeID); err != nil {
		c.logger.Warn("cannot open inner level", "node", nodeID, "error", err)
		c.view.DisplayLoadError(c.model.Path(), err)
	}
}

// FocusOuter drills out to the outer level.
func (c *Controller) FocusOuter() {
	c.model.SetDataFromOuterData()
}

// FocusDetails moves focus into the info pane, keeping the graph element
// marked as context.
func (c *Controller) FocusDetails() {
	c.traversingNearby = true
	c.view.FocusInfo()
	c.traversingNearby = false
}

// FocusBackFromDetails returns focus from the info pane to the element it
// describes.
func (c *Controller) FocusBackFromDetails() {
	target := c.FocusedElementID()
	if target == "" {
		c.logger.Debug("focus back from details ignored: nothing focused")
		return
	}
	c.traversingNearby = true
	c.view.FindAndFocusElement(target)
	c.traversingNearby = false
}

// GetInfo returns the info text of an element of the current level.
func (c *Controller) GetInfo(elementID string) string {
	return c.model.GetInfo(elementID)
}

// Search searches the current level, building references from its path.
func (c *Controller) Search(query string, contextLength int) store.SearchResults {
	return c.model.Search(query, c.model.Path(), contextLength, c.caseSensitive)
}

// SearchDefault searches with the configured excerpt padding.
func (c *Controller) SearchDefault(query string) store.SearchResults {
	return c.Search(query, c.searchContext)
}

// SetDataFromSource parses path and loads it, focusing focusedElementID once
// the level is current. Invalid sources and invalid inline documents fail
// synchronously.
func (c *Controller) SetDataFromSource(path, focusedElementID string, fromRouter bool) error {
	src, err := source.Parse(path)
	if err != nil {
		return err
	}
	return c.model.SetDataFromSource(src, store.LoadOptions{
		FocusID:    focusedElementID,
		FromRouter: fromRouter,
	})
}

// JumpTo resolves an addressable reference. A reference into the current
// path moves focus directly; any other path is loaded with that focus.
func (c *Controller) JumpTo(ref string) error {
	r := source.ParseRef(ref)
	if r.Path == "" || r.Path == c.model.Path() {
		c.focusElement(r.ElementID)
		return nil
	}
	return c.SetDataFromSource(r.Path, r.ElementID, false)
}

// Back replays the previous route.
func (c *Controller) Back() bool {
	if c.router == nil {
		return false
	}
	route, ok := c.router.Back()
	if !ok {
		return false
	}
	if route.Path == "" || route.Path == c.model.Path() {
		c.focusElement(route.ElementID)
		return true
	}
	if err := c.SetDataFromSource(route.Path, route.ElementID, true); err != nil {
		c.logger.Warn("cannot replay route", "route", route.String(), "error", err)
		return false
	}
	return true
}

func (c *Controller) focusElement(elementID string) {
	g := c.model.Current()
	if g == nil || elementID == "" {
		return
	}
	if !g.HasNode(elementID) && !g.HasEdge(elementID) {
		c.logger.Debug("focus target not in current level", "element", elementID)
		return
	}
	c.view.FindAndFocusElement(elementID)
}

// OnDataChange resets focus for a new current level and focuses the
// requested element, or the level's first node.
func (c *Controller) OnDataChange(change store.DataChange) {
	g := change.Graph
	c.focusedNodeID = ""
	c.preFocusedNodeID = ""
	c.focusedEdgeID = ""
	c.traversingNearby = false
	c.history = nil

	c.view.OnDataChange(g, change.Path)
	if g == nil {
		return
	}

	target := change.FocusID
	switch {
	case target != "" && g.HasNode(target):
	case target != "" && g.HasEdge(target):
		e, _ := g.Edge(target)
		c.preFocusedNodeID = e.Source
		c.view.DisplayPreFocusOnNodeID(e.Source)
		c.view.DisplayPreFocusOnConnectedEdgesToNodeID(e.Source)
	default:
		if target != "" {
			c.logger.Debug("requested focus not in level, using first node", "element", target)
		}
		target = g.FirstNodeID()
	}
	c.view.FindAndFocusElement(target)

	c.logger.Debug("level changed",
		"path", change.Path,
		"cause", change.Cause.String(),
		"focus", c.FocusedElementID())

	if c.router != nil && !change.FromRouter {
		c.router.Record(change.Path, c.FocusedElementID())
	}
}

// OnLoadStart shows that a source is loading.
func (c *Controller) OnLoadStart(path string) {
	c.view.DisplayLoading(path)
}

// OnLoadError reports a failed load. The current level stays interactive.
func (c *Controller) OnLoadError(path string, err error) {
	c.logger.Warn("data source failed to load", "path", path, "error", err)
	c.view.DisplayLoadError(path, err)
}
