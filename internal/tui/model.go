package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/pollygraph/internal/store"
)

// Layout size constants.
const (
	// graphWidthPercent is the percentage of width for the graph pane.
	graphWidthPercent = 60
	// headerRows and footerRows frame the panes.
	headerRows = 1
	footerRows = 2
	// statusTimeout is how long a status message stays in the footer.
	statusTimeout = 3 * time.Second
)

// callMsg carries a callback queued through TUI.Dispatch.
type callMsg func()

// callsClosedMsg signals that the callback channel was closed.
type callsClosedMsg struct{}

// clearStatusMsg clears the footer status if it is still the one set by seq.
type clearStatusMsg struct{ seq int }

// resultLine is one selectable search result.
type resultLine struct {
	group  string
	result store.SearchResult
}

// model is the bubbletea model for the TUI.
type model struct {
	screen *Screen
	calls  <-chan func()
	nav    Navigator
	logger *slog.Logger

	keys    keyMap
	help    help.Model
	info    viewport.Model
	search  textinput.Model
	spinner spinner.Model

	// UI state
	width     int
	height    int
	spinning  bool
	infoID    string
	searching bool
	results   []resultLine
	resultIdx int
	status    string
	statusErr bool
	statusSeq int

	// Callbacks
	clipboard func(string) error
	onQuit    func()
}

// newModel creates a new model with the given collaborators.
func newModel(
	screen *Screen,
	calls <-chan func(),
	nav Navigator,
	clip func(string) error,
	onQuit func(),
	logger *slog.Logger,
) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "search labels and info"
	ti.Prompt = "/ "
	ti.CharLimit = 256

	if logger == nil {
		logger = slog.Default()
	}

	return model{
		screen:    screen,
		calls:     calls,
		nav:       nav,
		logger:    logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
		info:      viewport.New(0, 0),
		search:    ti,
		spinner:   sp,
		clipboard: clip,
		onQuit:    onQuit,
	}
}

// waitForCall creates a command that waits for the next queued callback.
// Returns callsClosedMsg if the channel is closed.
func waitForCall(ch <-chan func()) tea.Cmd {
	return func() tea.Msg {
		fn, ok := <-ch
		if !ok {
			return callsClosedMsg{}
		}
		return callMsg(fn)
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return waitForCall(m.calls)
}

// Update, handleKey and friends are implemented in update.go
// View is implemented in view.go

// paneSizes returns the inner sizes of the graph and info panes.
func (m model) paneSizes() (graphW, infoW, bodyH int) {
	outerGraph := m.width * graphWidthPercent / 100
	graphW = max(1, outerGraph-2)
	infoW = max(1, m.width-outerGraph-2)
	bodyH = max(1, m.height-headerRows-footerRows-2)
	return graphW, infoW, bodyH
}

// updatePaneSizes recalculates pane dimensions after a resize.
func (m *model) updatePaneSizes() {
	graphW, infoW, bodyH := m.paneSizes()
	m.screen.setSize(graphW, bodyH, infoW)
	m.info.Width = infoW
	m.info.Height = bodyH
	m.search.Width = max(1, infoW-4)
	m.help.Width = m.width
	m.info.SetContent(m.screen.infoText)
}

// syncInfo refreshes the info pane after the controller changed it.
func (m *model) syncInfo() {
	if m.screen.infoID != m.infoID {
		m.infoID = m.screen.infoID
		m.info.SetContent(m.screen.infoText)
		m.info.GotoTop()
		return
	}
	m.info.SetContent(m.screen.infoText)
}

// setStatus shows a footer message and schedules its removal.
func (m *model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = msg
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// flattenResults turns grouped search results into selectable lines.
func flattenResults(r store.SearchResults) []resultLine {
	var lines []resultLine
	groups := []struct {
		name    string
		results []store.SearchResult
	}{
		{"node labels", r.NodeLabels},
		{"node info", r.NodeInfos},
		{"edge labels", r.EdgeLabels},
		{"edge info", r.EdgeInfos},
	}
	for _, g := range groups {
		for _, res := range g.results {
			lines = append(lines, resultLine{group: g.name, result: res})
		}
	}
	return lines
}
