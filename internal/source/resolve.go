package source

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Resolve parses s and, when it is a relative path, resolves it against base:
// next to the base file for file sources, as a URL reference for URL sources.
func Resolve(base DataSource, s string) (DataSource, error) {
	src, err := Parse(s)
	if err != nil {
		return DataSource{}, err
	}
	if src.Kind() != KindFile || filepath.IsAbs(src.Location()) {
		return src, nil
	}

	switch base.Kind() {
	case KindFile:
		joined := filepath.Join(filepath.Dir(base.Location()), src.Location())
		if !filepath.IsAbs(joined) && !strings.HasPrefix(joined, "..") {
			joined = "./" + joined
		}
		return File(joined), nil

	case KindURL:
		b, err := url.Parse(base.Location())
		if err != nil {
			return src, nil
		}
		ref, err := url.Parse(filepath.ToSlash(src.Location()))
		if err != nil {
			return src, nil
		}
		return URL(b.ResolveReference(ref).String()), nil
	}
	return src, nil
}
