package tui

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/glamour"
)

// HighlightJSON renders value as an indented, syntax highlighted JSON code
// block. It falls back to plain indented JSON when rendering fails.
func HighlightJSON(value any, renderer *glamour.TermRenderer) string {
	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return ""
	}
	if renderer == nil {
		return string(pretty)
	}

	var sb strings.Builder
	sb.WriteString("```json\n")
	sb.Write(pretty)
	sb.WriteString("\n```")

	out, err := renderer.Render(sb.String())
	if err != nil {
		return string(pretty)
	}
	return strings.TrimSpace(out)
}
