package testutil

// Graph documents shared by store, controller and TUI tests.

// PathGraphJSON is a connected path A - B - C.
var PathGraphJSON = `{
  "nodes": [
    {"id": "A", "label": "Alpha", "info": "First node"},
    {"id": "B", "label": "Bravo"},
    {"id": "C", "label": "Charlie", "info": "Last node of the path"}
  ],
  "edges": [
    {"source": "A", "target": "B"},
    {"source": "B", "target": "C", "label": "bravo to charlie", "info": "The second hop"}
  ]
}`

// StarGraphJSON is a hub with three spokes, in insertion order b, a, c.
var StarGraphJSON = `{
  "nodes": [
    {"id": "hub", "label": "Hub"},
    {"id": "a"},
    {"id": "b"},
    {"id": "c"}
  ],
  "edges": [
    {"source": "hub", "target": "b"},
    {"source": "a", "target": "hub"},
    {"source": "c", "target": "hub"}
  ]
}`

// TwoPairsJSON holds two disjoint pairs, so it decomposes into two clusters.
var TwoPairsJSON = `{
  "nodes": [
    {"id": "A"}, {"id": "B"}, {"id": "C"}, {"id": "D"}
  ],
  "edges": [
    {"source": "A", "target": "B"},
    {"source": "C", "target": "D"}
  ]
}`

// SingleNodeJSON is one isolated node.
var SingleNodeJSON = `{"nodes": [{"id": "solo", "label": "Solo"}], "edges": []}`

// LazyInnerJSON has a node whose inner level is a separate document.
var LazyInnerJSON = `{
  "nodes": [
    {"id": "top", "label": "Top", "inner": "./inner.json"},
    {"id": "side", "label": "Side"}
  ],
  "edges": [
    {"source": "top", "target": "side"}
  ]
}`

// InnerJSON is the document referenced by LazyInnerJSON.
var InnerJSON = `{
  "nodes": [
    {"id": "x", "label": "Inner X"},
    {"id": "y", "label": "Inner Y"}
  ],
  "edges": [
    {"source": "x", "target": "y"}
  ]
}`

// SearchGraphJSON mixes case and multi-byte text for search tests.
var SearchGraphJSON = `{
  "nodes": [
    {"id": "n1", "label": "Zürich Hauptbahnhof", "info": "Main station of ZÜRICH"},
    {"id": "n2", "label": "Bern", "info": "Capital city"},
    {"id": "n3", "label": "Genève"}
  ],
  "edges": [
    {"source": "n1", "target": "n2", "info": "Intercity line via Olten"},
    {"source": "n2", "target": "n3", "label": "west line"}
  ]
}`
