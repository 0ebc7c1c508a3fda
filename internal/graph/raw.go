package graph

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// RawGraph is a graph document as supplied by a data source. Nodes and Edges
// are nil when the document omits them, which Normalize rejects.
type RawGraph struct {
	Nodes []RawNode `json:"nodes" validate:"required,dive"`
	Edges []RawEdge `json:"edges" validate:"required,dive"`
}

// RawNode is a partial node record. Pointer fields distinguish an absent value
// from an explicit zero.
type RawNode struct {
	ID    string   `json:"id" validate:"required"`
	Label string   `json:"label,omitempty"`
	Type  *int     `json:"type,omitempty"`
	Group *int     `json:"group,omitempty"`
	Size  *float64 `json:"size,omitempty"`
	Level *int     `json:"level,omitempty"`
	Info  string   `json:"info,omitempty"`

	// Inner is a nested graph document. InnerSource is set instead when the
	// document references its inner graph as a string data source.
	Inner       *RawGraph `json:"-"`
	InnerSource string    `json:"-"`
}

// RawEdge is a partial edge record.
type RawEdge struct {
	ID     string   `json:"id,omitempty"`
	Source string   `json:"source" validate:"required"`
	Target string   `json:"target" validate:"required"`
	Label  string   `json:"label,omitempty"`
	Size   *float64 `json:"size,omitempty"`
	Info   string   `json:"info,omitempty"`
}

// UnmarshalJSON accepts "edges" or "links" and keeps missing arrays nil so
// validation can tell them apart from empty ones.
func (r *RawGraph) UnmarshalJSON(data []byte) error {
	var doc struct {
		Nodes json.RawMessage `json:"nodes"`
		Edges json.RawMessage `json:"edges"`
		Links json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	edges := doc.Edges
	if len(edges) == 0 {
		edges = doc.Links
	}

	nodes, err := decodeArray[RawNode]("nodes", doc.Nodes)
	if err != nil {
		return err
	}
	links, err := decodeArray[RawEdge]("edges", edges)
	if err != nil {
		return err
	}
	r.Nodes = nodes
	r.Edges = links
	return nil
}

// decodeArray decodes a JSON array field. An absent field yields nil; a
// present field that is not an array is an error.
func decodeArray[T any](field string, data json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s must be an array", ErrValidation, field)
	}
	items := make([]T, 0)
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UnmarshalJSON decodes a node, splitting "inner" into a nested document or a
// string data source.
func (n *RawNode) UnmarshalJSON(data []byte) error {
	type plain RawNode
	var doc struct {
		plain
		Inner json.RawMessage `json:"inner"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*n = RawNode(doc.plain)

	inner := bytes.TrimSpace(doc.Inner)
	switch {
	case len(inner) == 0, bytes.Equal(inner, []byte("null")), bytes.Equal(inner, []byte(`""`)):
	case inner[0] == '{':
		var nested RawGraph
		if err := json.Unmarshal(inner, &nested); err != nil {
			return fmt.Errorf("node %q inner: %w", n.ID, err)
		}
		n.Inner = &nested
	case inner[0] == '"':
		if err := json.Unmarshal(inner, &n.InnerSource); err != nil {
			return fmt.Errorf("node %q inner: %w", n.ID, err)
		}
	default:
		return fmt.Errorf("%w: node %q inner must be an object or a string", ErrValidation, n.ID)
	}
	return nil
}

// MarshalJSON writes the node back with "inner" as an object or a string.
func (n RawNode) MarshalJSON() ([]byte, error) {
	type plain RawNode
	doc := struct {
		plain
		Inner any `json:"inner,omitempty"`
	}{plain: plain(n)}
	switch {
	case n.Inner != nil:
		doc.Inner = n.Inner
	case n.InnerSource != "":
		doc.Inner = n.InnerSource
	}
	return json.Marshal(doc)
}

// Raw converts a level back into a raw document. Synthetic cluster levels
// round-trip too: their inner graphs become nested documents.
func (g *Graph) Raw() RawGraph {
	raw := RawGraph{
		Nodes: make([]RawNode, 0, len(g.nodes)),
		Edges: make([]RawEdge, 0, len(g.edges)),
	}
	for _, n := range g.nodes {
		rn := RawNode{
			ID:          n.ID,
			Label:       n.Label,
			Type:        ptr(n.Type),
			Size:        ptr(n.Size),
			Level:       ptr(n.Level),
			Info:        n.Info,
			InnerSource: n.InnerSource,
		}
		if n.Inner != nil {
			inner := n.Inner.Raw()
			rn.Inner = &inner
		}
		raw.Nodes = append(raw.Nodes, rn)
	}
	for _, e := range g.edges {
		raw.Edges = append(raw.Edges, RawEdge{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Label:  e.Label,
			Size:   ptr(e.Size),
			Info:   e.Info,
		})
	}
	return raw
}

func ptr[T any](v T) *T {
	return &v
}
