package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the TUI.
var styles = struct {
	// Layout styles
	Container lipgloss.Style
	Divider   lipgloss.Style

	// Header styles
	Title      lipgloss.Style
	Breadcrumb lipgloss.Style
	Counts     lipgloss.Style
	Loading    lipgloss.Style

	// Footer style
	Footer lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style

	// Search styles
	ResultSelected lipgloss.Style
	ResultRef      lipgloss.Style
	ResultExcerpt  lipgloss.Style
	ResultGroup    lipgloss.Style

	// Focus indicators
	FocusedBorder   lipgloss.Style
	UnfocusedBorder lipgloss.Style
}{
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")),

	Divider: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Breadcrumb: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")),

	Counts: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Loading: lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("114")),

	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),

	ResultSelected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Background(lipgloss.Color("236")),

	ResultRef: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	ResultExcerpt: lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")),

	ResultGroup: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("177")),

	FocusedBorder: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")), // Bright blue for focused

	UnfocusedBorder: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")), // Dimmed gray for unfocused
}

// cellStyle indexes the palette a grid cell is drawn with.
type cellStyle int

const (
	cellPlain cellStyle = iota
	cellEdge
	cellEdgePreFocused
	cellEdgeFocused
	cellNode
	cellNodePreFocused
	cellNodeFocused
	cellMarker // first of typeColors
)

// typeColors colour the node marker by node type.
var typeColors = []lipgloss.Color{"39", "114", "214", "177", "81", "203", "220", "147"}

// cellStyles maps every cellStyle to its lipgloss style.
var cellStyles = func() []lipgloss.Style {
	palette := []lipgloss.Style{
		cellPlain: lipgloss.NewStyle(),

		cellEdge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")),
		cellEdgePreFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("111")),
		cellEdgeFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82")),

		cellNode: lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")),
		cellNodePreFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("111")).
			Background(lipgloss.Color("235")),
		cellNodeFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("82")),
	}
	for _, c := range typeColors {
		palette = append(palette, lipgloss.NewStyle().Foreground(c))
	}
	return palette
}()

// markerStyle returns the marker cell style for a node type.
func markerStyle(nodeType int) cellStyle {
	n := len(typeColors)
	return cellMarker + cellStyle(((nodeType%n)+n)%n)
}

// edgeCellStyle and nodeCellStyle map a display tier onto the palette.
func edgeCellStyle(t tier) cellStyle {
	switch t {
	case tierFocused:
		return cellEdgeFocused
	case tierPreFocused:
		return cellEdgePreFocused
	default:
		return cellEdge
	}
}

func nodeCellStyle(t tier) cellStyle {
	switch t {
	case tierFocused:
		return cellNodeFocused
	case tierPreFocused:
		return cellNodePreFocused
	default:
		return cellNode
	}
}
