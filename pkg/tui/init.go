package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// NewModel creates the browser model for title, loading the tree with load.
func NewModel(title string, load LoadFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "filter by name, method or endpoint"
	ti.Prompt = PromptStyle.Render("/ ")
	ti.CharLimit = 256
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	return Model{
		textinput: ti,
		spinner:   s,
		renderer:  renderer,
		title:     title,
		load:      load,
		loading:   true,
	}
}

// Init starts the spinner and the load command.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, loadTree(m.load))
}

func loadTree(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		tree, err := load(context.Background())
		return loadedMsg{tree: tree, err: err}
	}
}
