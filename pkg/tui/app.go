// Package tui provides the interactive collection browser.
//
// File organization:
// - app.go: Entry point (Run function)
// - model.go: Model struct and message types
// - init.go: Model initialization and the load command
// - tree.go: Flattening and filtering of the collection tree
// - update.go: Event handling and state updates
// - view.go: Rendering and display logic
// - keys.go: Keyboard input handling
// - styles.go: Visual styling (colors, borders, etc.)
// - highlight.go: JSON syntax highlighting
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the browser. load runs once as a Bubble Tea command while a
// spinner is shown.
func Run(title string, load LoadFunc) error {
	m := NewModel(title, load)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := prog.Run()
	return err
}
