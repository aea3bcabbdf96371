package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		updated, cmd, handled := m.handleKeyMsg(msg)
		if handled {
			return updated, cmd
		}
		m = updated

		// Everything else edits the filter.
		if !m.loading && !m.detail {
			before := m.textinput.Value()
			m.textinput, cmd = m.textinput.Update(msg)
			if m.textinput.Value() != before {
				m = m.applyFilter()
			}
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m = m.handleWindowResize(msg)

	case loadedMsg:
		m = m.handleLoaded(msg)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.updateViewportContent()
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleWindowResize adjusts the layout when the terminal is resized.
func (m Model) handleWindowResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 1
	inputHeight := 1
	footerHeight := 1
	margins := 3

	viewportHeight := m.height - headerHeight - inputHeight - footerHeight - margins
	if viewportHeight < 5 {
		viewportHeight = 5
	}

	if !m.ready {
		m.viewport = viewport.New(m.width-2, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width - 2
		m.viewport.Height = viewportHeight
	}
	m.textinput.Width = m.width - 8

	m.updateViewportContent()
	return m
}

// handleLoaded stores the loaded tree or the load error.
func (m Model) handleLoaded(msg loadedMsg) Model {
	m.loading = false
	m.err = msg.err
	if msg.err == nil {
		m.entries = flatten(msg.tree)
		m.visible = m.entries
		m.cursor = 0
	}
	m.updateViewportContent()
	return m
}

// applyFilter recomputes the visible lines from the filter input.
func (m Model) applyFilter() Model {
	m.visible = filterEntries(m.entries, m.textinput.Value())
	m.cursor = 0
	m.status = ""
	m.updateViewportContent()
	return m
}

// selected returns the entry under the cursor.
func (m Model) selected() (entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return entry{}, false
	}
	return m.visible[m.cursor], true
}
