// Package controllertest provides a terminal-free controller.View for tests.
package controllertest

import (
	"fmt"
	"sync"

	"github.com/npratt/pollygraph/internal/controller"
	"github.com/npratt/pollygraph/internal/graph"
)

// Tier is the display state a RecordingView holds for one element.
type Tier string

// Display tiers.
const (
	TierUnfocused  Tier = "unfocused"
	TierPreFocused Tier = "prefocused"
	TierFocused    Tier = "focused"
)

// infoElement is the pseudo element that holds focus while the info pane is
// active.
const infoElement = "<info>"

// RecordingView implements controller.View without a terminal. It records
// every display call and emulates keyboard focus: FindAndFocusElement blurs
// the active element and focuses the target through the controller.
type RecordingView struct {
	mu sync.Mutex

	Controller *controller.Controller
	Graph      *graph.Graph
	Path       string

	Calls    []string
	Tiers    map[string]Tier
	Info     string
	Active   string
	Loading  string
	LoadErrs []error
}

// NewRecordingView creates an empty RecordingView.
func NewRecordingView() *RecordingView {
	return &RecordingView{Tiers: make(map[string]Tier)}
}

func (v *RecordingView) record(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Calls = append(v.Calls, fmt.Sprintf(format, args...))
}

func (v *RecordingView) setTier(id string, tier Tier) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Tiers[id] = tier
}

// SetController stores the controller focus events are sent to.
func (v *RecordingView) SetController(c *controller.Controller) {
	v.Controller = c
}

// OnDataChange records the new level and discards the active element.
func (v *RecordingView) OnDataChange(g *graph.Graph, path string) {
	v.record("data %s", path)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Graph = g
	v.Path = path
	v.Active = ""
	v.Loading = ""
	v.Tiers = make(map[string]Tier)
}

func (v *RecordingView) DisplayFocusOnNodeID(id string) {
	v.record("focus node %s", id)
	v.setTier(id, TierFocused)
}

func (v *RecordingView) DisplayFocusOnEdgeID(id string) {
	v.record("focus edge %s", id)
	v.setTier(id, TierFocused)
}

func (v *RecordingView) DisplayPreFocusOnNodeID(id string) {
	v.record("prefocus node %s", id)
	v.setTier(id, TierPreFocused)
}

func (v *RecordingView) DisplayPreFocusOnEdgeID(id string) {
	v.record("prefocus edge %s", id)
	v.setTier(id, TierPreFocused)
}

func (v *RecordingView) DisplayUnFocusOnNodeID(id string) {
	v.record("unfocus node %s", id)
	v.setTier(id, TierUnfocused)
}

func (v *RecordingView) DisplayUnFocusOnEdgeID(id string) {
	v.record("unfocus edge %s", id)
	v.setTier(id, TierUnfocused)
}

func (v *RecordingView) DisplayPreFocusOnConnectedEdgesToNodeID(id string) {
	v.record("prefocus edges of %s", id)
	if v.Graph == nil {
		return
	}
	for _, e := range v.Graph.Edges() {
		if e.Touches(id) {
			v.setTier(e.ID, TierPreFocused)
		} else {
			v.setTier(e.ID, TierUnfocused)
		}
	}
}

func (v *RecordingView) DisplayElementInfo(id string) {
	v.record("info %s", id)
	if v.Controller == nil {
		return
	}
	info := v.Controller.GetInfo(id)
	v.mu.Lock()
	v.Info = info
	v.mu.Unlock()
}

// FindAndFocusElement moves the emulated focus to id.
func (v *RecordingView) FindAndFocusElement(id string) {
	v.record("find %s", id)

	v.mu.Lock()
	active, g := v.Active, v.Graph
	v.mu.Unlock()

	if g == nil || id == active {
		return
	}
	isNode, isEdge := g.HasNode(id), g.HasEdge(id)
	if !isNode && !isEdge {
		return
	}

	v.blur(active, g)

	v.mu.Lock()
	v.Active = id
	v.mu.Unlock()

	if v.Controller == nil {
		return
	}
	if isNode {
		v.Controller.FocusNode(id)
	} else {
		v.Controller.FocusEdge(id)
	}
}

func (v *RecordingView) blur(active string, g *graph.Graph) {
	if active == "" || v.Controller == nil {
		return
	}
	switch {
	case g.HasNode(active):
		v.Controller.UnFocusNode(active)
	case g.HasEdge(active):
		v.Controller.UnFocusEdge(active)
	}
}

// FocusInfo moves the emulated focus into the info pane.
func (v *RecordingView) FocusInfo() {
	v.record("focus info")
	v.mu.Lock()
	active, g := v.Active, v.Graph
	v.mu.Unlock()
	if active == infoElement {
		return
	}
	if g != nil {
		v.blur(active, g)
	}
	v.mu.Lock()
	v.Active = infoElement
	v.mu.Unlock()
}

func (v *RecordingView) DisplayLoading(path string) {
	v.record("loading %s", path)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Loading = path
}

func (v *RecordingView) DisplayLoadError(path string, err error) {
	v.record("load error %s", path)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Loading = ""
	v.LoadErrs = append(v.LoadErrs, err)
}

// TierOf returns the recorded tier of an element, unfocused by default.
func (v *RecordingView) TierOf(id string) Tier {
	v.mu.Lock()
	defer v.mu.Unlock()
	if tier, ok := v.Tiers[id]; ok {
		return tier
	}
	return TierUnfocused
}

// ActiveElement returns the element holding the emulated focus.
func (v *RecordingView) ActiveElement() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Active
}

// ResetCalls clears the recorded calls.
func (v *RecordingView) ResetCalls() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Calls = nil
}

// GetCalls returns a copy of the recorded calls.
func (v *RecordingView) GetCalls() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.Calls...)
}
