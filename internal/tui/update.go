package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/pollygraph/internal/source"
)

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePaneSizes()
		return m, nil

	case callMsg:
		msg()
		m.syncInfo()
		cmds := []tea.Cmd{waitForCall(m.calls)}
		if cmd := m.startSpinner(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case callsClosedMsg:
		m.logger.Info("callback channel closed, exiting TUI")
		return m, tea.Quit

	case spinner.TickMsg:
		if m.screen.loading == "" {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	default:
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// startSpinner starts ticking the spinner when a load begins.
func (m *model) startSpinner() tea.Cmd {
	if m.screen.loading == "" || m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// handleKey processes keyboard input and returns the updated model and command.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits; q only outside the search box
	if msg.String() == "ctrl+c" || (!m.searching && key.Matches(msg, m.keys.Quit)) {
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.screen.InDetails() {
		return m.handleDetailsKey(msg)
	}

	ctrl := m.screen.ctrl
	if ctrl == nil {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Forward):
		ctrl.FocusForward()
	case key.Matches(msg, m.keys.Backward):
		ctrl.FocusBackward()
	case key.Matches(msg, m.keys.Next):
		ctrl.FocusNext()
	case key.Matches(msg, m.keys.Previous):
		ctrl.FocusPrevious()
	case key.Matches(msg, m.keys.Inner):
		ctrl.FocusInner()
	case key.Matches(msg, m.keys.Outer):
		ctrl.FocusOuter()
	case key.Matches(msg, m.keys.Details):
		ctrl.FocusDetails()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.results = nil
		m.resultIdx = 0
		m.search.SetValue("")
		cmd = m.search.Focus()
	case key.Matches(msg, m.keys.Reload):
		cmd = m.reload()
	case key.Matches(msg, m.keys.Route):
		if !ctrl.Back() {
			cmd = m.setStatus("no previous route", false)
		}
	case key.Matches(msg, m.keys.Copy):
		cmd = m.copyRef()
	case key.Matches(msg, m.keys.Density):
		m.screen.setDensity(m.screen.density.next())
		cmd = m.setStatus("density: "+m.screen.density.String(), false)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.syncInfo()
	return m, tea.Batch(cmd, m.startSpinner())
}

// handleDetailsKey processes keys while the info pane has focus.
func (m model) handleDetailsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.screen.ctrl != nil {
			m.screen.ctrl.FocusBackFromDetails()
		}
		m.syncInfo()
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyRef()
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDn):
		var cmd tea.Cmd
		m.info, cmd = m.info.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleSearchKey processes keys while the search box has focus.
func (m model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeSearch()
		return m, nil

	case tea.KeyEnter:
		if len(m.results) == 0 {
			return m, nil
		}
		ref := m.results[m.resultIdx].result.Ref
		m.closeSearch()
		if err := m.screen.ctrl.JumpTo(ref); err != nil {
			return m, m.setStatus("jump failed: "+err.Error(), true)
		}
		m.syncInfo()
		return m, m.startSpinner()

	case tea.KeyUp:
		if m.resultIdx > 0 {
			m.resultIdx--
		}
		return m, nil

	case tea.KeyDown:
		if m.resultIdx < len(m.results)-1 {
			m.resultIdx++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.screen.ctrl != nil {
		m.results = flattenResults(m.screen.ctrl.SearchDefault(m.search.Value()))
	}
	m.resultIdx = min(m.resultIdx, max(0, len(m.results)-1))
	return m, cmd
}

func (m *model) closeSearch() {
	m.searching = false
	m.search.Blur()
	m.results = nil
	m.resultIdx = 0
}

// reload refetches the current document.
func (m *model) reload() tea.Cmd {
	if m.nav == nil {
		return nil
	}
	if err := m.nav.Reload(); err != nil {
		m.logger.Warn("reload failed", "error", err)
		return m.setStatus("reload failed: "+err.Error(), true)
	}
	return nil
}

// copyRef copies the addressable reference of the focused element.
func (m *model) copyRef() tea.Cmd {
	id := m.screen.focusedID()
	if id == "" {
		return m.setStatus("nothing focused", false)
	}
	ref := source.FormatRef(m.screen.path, id)
	if m.clipboard == nil {
		return m.setStatus(ref, false)
	}
	if err := m.clipboard(ref); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		return m.setStatus("copy failed: "+err.Error(), true)
	}
	return m.setStatus("copied "+ref, false)
}
