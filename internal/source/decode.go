package source

import (
	"fmt"
	"path"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/npratt/pollygraph/internal/graph"
)

// Format is the encoding of a fetched document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the decoder for a location from its extension.
func FormatOf(location string) Format {
	p := location
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a graph document.
func Decode(data []byte, format Format) (graph.RawGraph, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (graph.RawGraph, error) {
	var raw graph.RawGraph
	if err := json.Unmarshal(data, &raw); err != nil {
		return graph.RawGraph{}, fmt.Errorf("decode json: %w", err)
	}
	return raw, nil
}

// decodeYAML converts the YAML document to JSON so both formats share the
// RawGraph decoding rules ("links" alias, string or object "inner").
func decodeYAML(data []byte) (graph.RawGraph, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return graph.RawGraph{}, fmt.Errorf("decode yaml: %w", err)
	}
	converted, err := json.Marshal(doc)
	if err != nil {
		return graph.RawGraph{}, fmt.Errorf("decode yaml: %w", err)
	}
	return decodeJSON(converted)
}
