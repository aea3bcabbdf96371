package tui

import (
	"context"

	"github.com/blackcoderx/collie/pkg/schema"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// LoadFunc fetches and validates the tree to browse.
type LoadFunc func(ctx context.Context) ([]schema.Object, error)

// entry is one visible line of the tree
type entry struct {
	Kind     string // "collection", "folder", "request"
	Depth    int
	Name     string
	Method   string // requests only
	Endpoint string // requests only
	Raw      schema.Object
}

// Model is the Bubble Tea model for the collection browser.
// It manages:
// - viewport for the scrollable tree or the selected item's JSON
// - textinput for the filter
// - spinner while the tree loads
type Model struct {
	viewport  viewport.Model
	textinput textinput.Model
	spinner   spinner.Model
	renderer  *glamour.TermRenderer

	title   string
	load    LoadFunc
	loading bool
	err     error

	entries []entry // every line of the tree
	visible []entry // lines matching the filter
	cursor  int     // index into visible
	detail  bool    // true while the selected item's JSON is shown
	status  string  // transient footer message, e.g. "copied"

	width  int
	height int
	ready  bool
}

// loadedMsg carries the result of the load command
type loadedMsg struct {
	tree []schema.Object
	err  error
}
