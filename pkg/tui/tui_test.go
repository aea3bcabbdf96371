package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/blackcoderx/collie/pkg/schema"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() []schema.Object {
	return []schema.Object{
		{
			"name": "users",
			"folders": []any{
				schema.Object{
					"name":    "admin",
					"folders": []any{},
					"requests": []any{
						schema.Object{"name": "ban", "method": "POST", "endpoint": "/users/ban"},
					},
				},
			},
			"requests": []any{
				schema.Object{"name": "list", "method": "GET", "endpoint": "/users"},
			},
		},
		{"name": "orders", "folders": []any{}, "requests": []any{}},
	}
}

func TestFlatten(t *testing.T) {
	entries := flatten(sampleTree())

	type line struct {
		Kind  string
		Depth int
		Name  string
	}
	var got []line
	for _, e := range entries {
		got = append(got, line{e.Kind, e.Depth, e.Name})
	}

	assert.Equal(t, []line{
		{"collection", 0, "users"},
		{"folder", 1, "admin"},
		{"request", 2, "ban"},
		{"request", 1, "list"},
		{"collection", 0, "orders"},
	}, got)
	assert.Equal(t, "/users/ban", entries[2].Endpoint)
	assert.Equal(t, "POST", entries[2].Method)
}

func TestFilterEntries(t *testing.T) {
	entries := flatten(sampleTree())

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"users", "admin", "ban", "list", "orders"}},
		{query: "post", want: []string{"ban"}},
		{query: "/USERS", want: []string{"ban", "list"}},
		{query: "  ord ", want: []string{"orders"}},
		{query: "nothing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var names []string
			for _, e := range filterEntries(entries, tt.query) {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated
}

func TestModel_Browse(t *testing.T) {
	load := func(context.Context) ([]schema.Object, error) { return sampleTree(), nil }

	m := NewModel("users.json", load)
	assert.True(t, m.loading)
	assert.Equal(t, "Initializing...", m.View())

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, loadTree(load)())
	require.False(t, m.loading)
	require.NoError(t, m.err)
	assert.Len(t, m.visible, 5)
	assert.Contains(t, m.View(), "users.json")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	selected, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "ban", selected.Name)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.detail)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.detail)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("list")})
	assert.Equal(t, "list", m.textinput.Value())
	require.Len(t, m.visible, 1)
	assert.Equal(t, "list", m.visible[0].Name)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Empty(t, m.textinput.Value())
	assert.Len(t, m.visible, 5)
}

func TestModel_LoadError(t *testing.T) {
	load := func(context.Context) ([]schema.Object, error) {
		return nil, errors.New("MALFORMED_COLLECTION:   broken\n")
	}

	m := NewModel("broken.json", load)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	m = update(t, m, loadTree(load)())

	require.Error(t, m.err)
	assert.Empty(t, m.entries)
	assert.Contains(t, m.View(), "broken")

	// Keys are ignored while nothing is loaded.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.detail)
}
