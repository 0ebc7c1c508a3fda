// Package source resolves pollygraph data sources: it parses the string form
// of a source, fetches URLs and files, decodes JSON and YAML documents, and
// caches decoded documents.
package source

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/npratt/pollygraph/internal/graph"
)

var (
	// ErrInvalidSource is returned when a data-source argument is not a URL,
	// a path, JSON text or a graph object.
	ErrInvalidSource = fmt.Errorf("%w: invalid data source", graph.ErrValidation)
	// ErrFetch wraps transport and decoding failures of a URL or file source.
	ErrFetch = errors.New("fetch failed")
)

// Kind tags the variant held by a DataSource.
type Kind int

const (
	KindURL Kind = iota
	KindFile
	KindJSONText
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindFile:
		return "file"
	case KindJSONText:
		return "json"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// DataSource is a resolved data-source argument. Construct it with URL, File,
// JSONText, Object or Parse; the zero value is invalid.
type DataSource struct {
	kind     Kind
	location string
	raw      *graph.RawGraph
	valid    bool
}

// URL returns an http(s) source.
func URL(u string) DataSource {
	return DataSource{kind: KindURL, location: u, valid: true}
}

// File returns a local file source.
func File(path string) DataSource {
	return DataSource{kind: KindFile, location: path, valid: true}
}

// JSONText returns an inline JSON document source.
func JSONText(text string) DataSource {
	return DataSource{kind: KindJSONText, location: text, valid: true}
}

// Object returns a source holding an already decoded document.
func Object(raw graph.RawGraph) DataSource {
	return DataSource{kind: KindObject, raw: &raw, valid: true}
}

// Kind returns the variant of the source.
func (d DataSource) Kind() Kind {
	return d.kind
}

// Valid reports whether d was built by one of the constructors.
func (d DataSource) Valid() bool {
	return d.valid
}

// Remote reports whether the source must be fetched.
func (d DataSource) Remote() bool {
	return d.valid && (d.kind == KindURL || d.kind == KindFile)
}

// Location returns the URL, file path or JSON text of the source.
func (d DataSource) Location() string {
	return d.location
}

// Path returns the addressable path of the source: the URL or file path for
// remote sources, empty for inline documents.
func (d DataSource) Path() string {
	if d.Remote() {
		return d.location
	}
	return ""
}

func (d DataSource) String() string {
	switch d.kind {
	case KindURL, KindFile:
		return d.location
	case KindJSONText:
		return "inline json"
	default:
		return "inline object"
	}
}

// Parse resolves the string form of a data source. JSON text starts with
// "{", URLs use the http or https scheme, and paths start with "./", "../",
// "/" or "file://". Anything else fails with ErrInvalidSource.
func Parse(s string) (DataSource, error) {
	trimmed := strings.TrimSpace(s)
	switch {
	case trimmed == "":
		return DataSource{}, fmt.Errorf("%w: empty", ErrInvalidSource)

	case strings.HasPrefix(trimmed, "{"):
		return JSONText(trimmed), nil

	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		u, err := url.Parse(trimmed)
		if err != nil || u.Host == "" {
			return DataSource{}, fmt.Errorf("%w: %q is not a valid URL", ErrInvalidSource, s)
		}
		return URL(u.String()), nil

	case strings.HasPrefix(trimmed, "file://"):
		u, err := url.Parse(trimmed)
		if err != nil || u.Path == "" {
			return DataSource{}, fmt.Errorf("%w: %q is not a valid file URL", ErrInvalidSource, s)
		}
		return File(u.Path), nil

	case strings.HasPrefix(trimmed, "./"), strings.HasPrefix(trimmed, "../"), strings.HasPrefix(trimmed, "/"):
		return File(trimmed), nil
	}
	return DataSource{}, fmt.Errorf("%w: %q", ErrInvalidSource, s)
}

// Ref is an addressable reference "<path>#<elementID>".
type Ref struct {
	Path      string
	ElementID string
}

// FormatRef joins a path and an element id.
func FormatRef(path, elementID string) string {
	return path + "#" + elementID
}

// ParseRef splits an addressable reference at its first "#". A reference
// without "#" is a bare path.
func ParseRef(s string) Ref {
	path, id, _ := strings.Cut(s, "#")
	return Ref{Path: path, ElementID: id}
}

func (r Ref) String() string {
	if r.ElementID == "" {
		return r.Path
	}
	return FormatRef(r.Path, r.ElementID)
}
