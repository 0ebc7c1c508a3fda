package tui

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const truncateIndicator = "…"

// NodeDensity represents the level of detail shown for nodes.
type NodeDensity int

const (
	// DensityCompact shows a short label.
	DensityCompact NodeDensity = iota
	// DensityStandard shows a longer label.
	DensityStandard
	// DensityDetailed adds a second line with size and inner marker.
	DensityDetailed
)

// String returns a string representation of the NodeDensity.
func (d NodeDensity) String() string {
	switch d {
	case DensityCompact:
		return "compact"
	case DensityStandard:
		return "standard"
	case DensityDetailed:
		return "detailed"
	default:
		return "unknown"
	}
}

// ParseDensity converts a string to NodeDensity.
func ParseDensity(s string) NodeDensity {
	switch s {
	case "compact":
		return DensityCompact
	case "detailed":
		return DensityDetailed
	default:
		return DensityStandard
	}
}

// next cycles compact, standard, detailed.
func (d NodeDensity) next() NodeDensity {
	return (d + 1) % 3
}

// truncate shortens text to maxWidth terminal cells, adding an indicator if
// truncated. Wide runes count as two cells.
func truncate(s string, maxWidth int) string {
	s = safeString(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= runewidth.StringWidth(truncateIndicator) {
		return runewidth.Truncate(truncateIndicator, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, truncateIndicator)
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// safeString sanitizes a string for display by removing control characters
// and limiting newlines.
func safeString(s string) string {
	// Remove ANSI escape sequences
	s = stripANSI(s)

	// Replace newlines with spaces
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")

	// Remove other control characters (except space)
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == ' ' || !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	// Collapse multiple spaces
	result := sb.String()
	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}

	return strings.TrimSpace(result)
}

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// pluralize returns singular or plural form based on count.
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", count, plural)
}
