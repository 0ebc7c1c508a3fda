package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/npratt/pollygraph/internal/graph"
)

// IsTerminal returns true if both stdout and stdin are TTYs.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// terminalSize returns the current terminal width and height.
// Returns 0, 0 if the terminal size cannot be determined.
func terminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// TerminalTooSmall returns true if the terminal is below the minimum size.
func TerminalTooSmall() bool {
	width, height := terminalSize()
	return width < minWidth || height < minHeight
}

// WriteSummary prints one level as plain text for non-interactive output:
// every node with its edges, in insertion order.
func WriteSummary(w io.Writer, g *graph.Graph, path string) error {
	if g == nil {
		_, err := fmt.Fprintln(w, "no graph loaded")
		return err
	}

	var sb strings.Builder
	if path != "" {
		fmt.Fprintf(&sb, "%s\n", path)
	}
	fmt.Fprintf(&sb, "%s, %s\n",
		pluralize(g.NodeCount(), "node", "nodes"),
		pluralize(g.EdgeCount(), "edge", "edges"))

	for _, n := range g.Nodes() {
		marker := "●"
		if n.HasInner() {
			marker = "◆"
		}
		fmt.Fprintf(&sb, "%s %s", marker, safeString(n.Label))
		if n.Label != n.ID {
			fmt.Fprintf(&sb, " [%s]", n.ID)
		}
		sb.WriteString("\n")

		for _, e := range g.EdgesOf(n.ID) {
			other := e.Target
			if other == n.ID {
				other = e.Source
			}
			fmt.Fprintf(&sb, "    ─ %s", other)
			if e.Label != "" && e.Label != e.ID {
				fmt.Fprintf(&sb, " (%s)", safeString(e.Label))
			}
			sb.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteHierarchy prints the nesting of levels below g as an indented tree.
// Inner levels deeper than maxDepth are elided; a negative maxDepth prints
// everything. Inner data sources that were never loaded are shown by path.
func WriteHierarchy(w io.Writer, g *graph.Graph, maxDepth int) error {
	var sb strings.Builder
	writeLevel(&sb, g, 0, maxDepth)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeLevel(sb *strings.Builder, g *graph.Graph, depth, maxDepth int) {
	if g == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	for _, n := range g.Nodes() {
		fmt.Fprintf(sb, "%s%s (%s)\n", indent, safeString(n.Label),
			pluralize(len(g.EdgesOf(n.ID)), "edge", "edges"))

		switch {
		case n.Inner != nil && maxDepth >= 0 && depth+1 > maxDepth:
			fmt.Fprintf(sb, "%s  … %s\n", indent, pluralize(n.Inner.NodeCount(), "node", "nodes"))
		case n.Inner != nil:
			writeLevel(sb, n.Inner, depth+1, maxDepth)
		case n.InnerSource != "":
			fmt.Fprintf(sb, "%s  → %s\n", indent, n.InnerSource)
		}
	}
}
