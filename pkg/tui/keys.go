package tui

import (
	"encoding/json"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg processes keyboard input and returns the updated model and command.
// A nil command with handled false lets the key reach the filter input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.detail {
			m.detail = false
			m.updateViewportContent()
			return m, nil, true
		}
		return m, tea.Quit, true

	case "up", "ctrl+p":
		return m.moveCursor(-1), nil, true

	case "down", "ctrl+n":
		return m.moveCursor(1), nil, true

	case "enter":
		return m.handleToggleDetail(), nil, true

	case "ctrl+y":
		return m.handleCopySelected(), nil, true

	case "ctrl+u":
		return m.handleClearFilter(), nil, true

	case "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true

	default:
		return m, nil, false
	}
}

// moveCursor moves the selection by delta, clamped to the visible lines.
func (m Model) moveCursor(delta int) Model {
	if m.detail || len(m.visible) == 0 {
		return m
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	m.status = ""
	m.updateViewportContent()
	return m
}

// handleToggleDetail switches between the tree and the selected item's JSON.
func (m Model) handleToggleDetail() Model {
	if len(m.visible) == 0 {
		return m
	}
	m.detail = !m.detail
	m.updateViewportContent()
	m.viewport.GotoTop()
	return m
}

// handleCopySelected copies the selected item as JSON to the clipboard.
func (m Model) handleCopySelected() Model {
	selected, ok := m.selected()
	if !ok {
		return m
	}
	data, err := json.MarshalIndent(selected.Raw, "", "  ")
	if err != nil {
		m.status = "copy failed: " + err.Error()
		return m
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.status = "copy failed: " + err.Error()
		return m
	}
	m.status = "copied " + selected.Name
	return m
}

// handleClearFilter empties the filter and shows the whole tree again.
func (m Model) handleClearFilter() Model {
	m.textinput.SetValue("")
	return m.applyFilter()
}
