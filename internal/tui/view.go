package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth  = 60
	minHeight = 15
)

// View implements tea.Model. This renders the full TUI display.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Handle too small terminal
	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}

	graphW, infoW, bodyH := m.paneSizes()

	graphStyle, infoStyle := styles.FocusedBorder, styles.UnfocusedBorder
	if m.screen.InDetails() || m.searching {
		graphStyle, infoStyle = styles.UnfocusedBorder, styles.FocusedBorder
	}

	graphPane := graphStyle.Width(graphW).Render(m.renderGraph(graphW, bodyH))
	infoPane := infoStyle.Width(infoW).Render(m.renderSide(infoW, bodyH))

	sections := []string{
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, graphPane, infoPane),
		m.renderStatus(),
		m.renderHelp(),
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		strings.Join(sections, "\n"))
}

// renderHeader renders the title, the breadcrumb and the level counts.
func (m model) renderHeader() string {
	title := styles.Title.Render("pollygraph")

	crumbs := m.breadcrumb()
	var crumb string
	if len(crumbs) > 0 {
		crumb = styles.Breadcrumb.Render(strings.Join(crumbs, " › "))
	}

	var counts string
	if g := m.screen.graph; g != nil {
		counts = styles.Counts.Render(fmt.Sprintf("%s · %s",
			pluralize(g.NodeCount(), "node", "nodes"),
			pluralize(g.EdgeCount(), "edge", "edges")))
	}

	right := counts
	if m.screen.loading != "" {
		right = m.spinner.View() + styles.Loading.Render(" loading "+m.screen.loading)
	}

	left := title
	if crumb != "" {
		left += "  " + crumb
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		avail := max(0, m.width-lipgloss.Width(title)-lipgloss.Width(right)-3)
		left = title + "  " + styles.Breadcrumb.Render(truncate(strings.Join(crumbs, " › "), avail))
		gap = max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	}
	return left + strings.Repeat(" ", gap) + right
}

// breadcrumb returns the labels from the root level down to the current one.
func (m model) breadcrumb() []string {
	if m.nav != nil {
		return m.nav.Breadcrumb()
	}
	if m.screen.path != "" {
		return []string{m.screen.path}
	}
	return nil
}

// renderGraph renders the graph pane content.
func (m model) renderGraph(width, height int) string {
	s := m.screen
	if s.graph == nil {
		msg := "No graph loaded"
		if s.loading != "" {
			msg = "Loading " + s.loading + "..."
		}
		return renderEmpty(msg, width, height)
	}

	r := graphRenderer{
		graph:    s.graph,
		layout:   s.layout,
		viewport: s.viewport,
		density:  s.density,
		tierOf:   s.tierOf,
	}
	return r.render(width, height).String()
}

// renderSide renders the info pane, or the search box and results.
func (m model) renderSide(width, height int) string {
	if m.searching {
		return m.renderSearch(width, height)
	}
	if m.screen.infoText == "" {
		return renderEmpty("Focus an element to see its info", width, height)
	}
	return m.info.View()
}

// renderSearch renders the search input followed by a window of results
// around the selected one.
func (m model) renderSearch(width, height int) string {
	lines := []string{m.search.View(), ""}

	if m.search.Value() != "" && len(m.results) == 0 {
		lines = append(lines, styles.Footer.Render("no matches"))
	}

	avail := max(1, (height-len(lines))/2)
	start := 0
	if m.resultIdx >= avail {
		start = m.resultIdx - avail + 1
	}
	end := min(len(m.results), start+avail)

	for i := start; i < end; i++ {
		line := m.results[i]
		ref := truncate(line.result.Ref, width-2)
		excerpt := truncate(safeString(line.result.Excerpt), width-2)
		if i == m.resultIdx {
			lines = append(lines, styles.ResultSelected.Render("▸ "+ref))
		} else {
			lines = append(lines, styles.ResultRef.Render("  "+ref))
		}
		lines = append(lines, "  "+styles.ResultGroup.Render(line.group+": ")+styles.ResultExcerpt.Render(excerpt))
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

// renderStatus renders the status line: a load error, a transient message
// or the focus state.
func (m model) renderStatus() string {
	switch {
	case m.screen.loadErr != "":
		return styles.Error.Render(truncate("error: "+m.screen.loadErr, m.width))
	case m.status != "" && m.statusErr:
		return styles.Error.Render(truncate(m.status, m.width))
	case m.status != "":
		return styles.Status.Render(truncate(m.status, m.width))
	}

	if m.screen.ctrl == nil {
		return ""
	}
	state := string(m.screen.ctrl.State())
	if id := m.screen.focusedID(); id != "" {
		state += ": " + id
	}
	return styles.Footer.Render(truncate(state, m.width))
}

// renderHelp renders the key bindings of the current mode.
func (m model) renderHelp() string {
	switch {
	case m.searching:
		return m.help.ShortHelpView(m.keys.searchHelp())
	case m.screen.InDetails():
		return m.help.ShortHelpView(m.keys.detailsHelp())
	}
	if m.help.ShowAll {
		return fullHelpLine(m.help, m.keys)
	}
	return m.help.View(m.keys)
}

// fullHelpLine flattens the full help onto one row so the layout keeps its height.
func fullHelpLine(h help.Model, k keyMap) string {
	var all []string
	for _, group := range k.FullHelp() {
		for _, b := range group {
			all = append(all, b.Help().Key+" "+b.Help().Desc)
		}
	}
	return styles.Footer.Render(truncate(strings.Join(all, " • "), max(1, h.Width)))
}

// renderTooSmall renders a message when the terminal is too small.
func (m model) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small\nNeed %dx%d, have %dx%d",
		minWidth, minHeight, m.width, m.height)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}
