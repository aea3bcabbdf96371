package tui

import (
	"fmt"
	"strings"

	"github.com/blackcoderx/collie/pkg/core"
	"github.com/charmbracelet/lipgloss"
)

// View renders the entire TUI to a string.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(InputAreaStyle.Width(m.width - 3).Render(m.textinput.View()))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// updateViewportContent renders the tree, or the selected item's JSON in
// detail mode, and keeps the cursor line in view.
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}

	switch {
	case m.loading:
		m.viewport.SetContent(m.spinner.View() + " loading " + m.title)
		return
	case m.err != nil:
		m.viewport.SetContent(ErrorStyle.Render("  Error: " + core.NormalizeMessage(m.err)))
		return
	case m.detail:
		if selected, ok := m.selected(); ok {
			m.viewport.SetContent(HighlightJSON(selected.Raw, m.renderer))
		}
		return
	}

	if len(m.visible) == 0 {
		m.viewport.SetContent(FooterStyle.Render("  no matches"))
		return
	}

	lines := make([]string, len(m.visible))
	for i, e := range m.visible {
		lines[i] = m.formatEntry(e, i == m.cursor)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// formatEntry renders one tree line.
func (m *Model) formatEntry(e entry, selected bool) string {
	prefix := "  "
	if selected {
		prefix = SelectedPrefix
	}
	indent := strings.Repeat(IndentUnit, e.Depth)

	var line string
	switch e.Kind {
	case "collection":
		line = CollectionStyle.Render(e.Name)
	case "folder":
		line = FolderStyle.Render(e.Name + "/")
	default:
		line = MethodStyle.Render(e.Method) + " " + e.Name + " " + EndpointStyle.Render(e.Endpoint)
	}

	if selected {
		return SelectedStyle.Render(prefix) + indent + line
	}
	return prefix + indent + line
}

// renderHeader renders the title and the number of matching lines.
func (m Model) renderHeader() string {
	header := TitleStyle.Render(m.title)
	if !m.loading && m.err == nil {
		header += FooterStyle.Render(fmt.Sprintf("  %d/%d", len(m.visible), len(m.entries)))
	}
	return header
}

// renderFooter renders the status on the left and shortcuts on the right.
func (m Model) renderFooter() string {
	left := m.status
	if m.loading {
		left = m.spinner.View() + " loading"
	}

	var parts []string
	if m.detail {
		parts = append(parts, ShortcutKeyStyle.Render("esc")+ShortcutDescStyle.Render(" back"))
	} else {
		parts = append(parts, ShortcutKeyStyle.Render("↑↓")+ShortcutDescStyle.Render(" select"))
		parts = append(parts, ShortcutKeyStyle.Render("enter")+ShortcutDescStyle.Render(" json"))
		parts = append(parts, ShortcutKeyStyle.Render("ctrl+u")+ShortcutDescStyle.Render(" clear"))
	}
	parts = append(parts, ShortcutKeyStyle.Render("ctrl+y")+ShortcutDescStyle.Render(" copy"))
	right := strings.Join(parts, "    ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return FooterStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
