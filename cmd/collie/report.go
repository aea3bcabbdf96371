package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/blackcoderx/collie/pkg/form"
	"github.com/blackcoderx/collie/pkg/storage"
	"github.com/charmbracelet/glamour"
)

// previewBoundary keeps multipart previews stable between runs.
const previewBoundary = "collie-preview"

type reportStats struct {
	collections int
	folders     int
	requests    int
}

// buildReport renders a validated tree as Markdown. Endpoints, headers and
// bodies are shown with env substituted.
func buildReport(source string, collections []storage.Collection, env map[string]string) string {
	var body strings.Builder
	stats := reportStats{collections: len(collections)}
	for _, col := range collections {
		writeCollection(&body, col, col.Name, env, &stats)
	}

	var sb strings.Builder
	sb.WriteString("# Collection report\n\n")
	sb.WriteString(fmt.Sprintf("Source: `%s`  \n", source))
	sb.WriteString(fmt.Sprintf("%d collections, %d folders, %d requests\n\n", stats.collections, stats.folders, stats.requests))
	sb.WriteString(body.String())
	return sb.String()
}

func writeCollection(sb *strings.Builder, col storage.Collection, title string, env map[string]string, stats *reportStats) {
	sb.WriteString("## " + title + "\n\n")

	if len(col.Requests) == 0 {
		sb.WriteString("_No requests._\n\n")
	} else {
		sb.WriteString("| Method | Name | Endpoint |\n")
		sb.WriteString("|---|---|---|\n")
		for _, req := range col.Requests {
			applied := storage.ApplyEnvironment(req, env)
			sb.WriteString(fmt.Sprintf("| %s | %s | `%s` |\n", applied.Method, escapeCell(applied.Name), applied.Endpoint))
		}
		sb.WriteString("\n")

		for _, req := range col.Requests {
			if preview := multipartPreview(storage.ApplyEnvironment(req, env)); preview != "" {
				sb.WriteString("**" + req.Name + "** multipart body:\n\n")
				sb.WriteString("```\n" + preview + "```\n\n")
			}
		}
	}
	stats.requests += len(col.Requests)

	for _, folder := range col.Folders {
		stats.folders++
		writeCollection(sb, folder, title+" / "+folder.Name, env, stats)
	}
}

// multipartPreview encodes the active form entries of a multipart body.
func multipartPreview(req storage.Request) string {
	if !req.Body.IsMultipart() {
		return ""
	}

	var entries []form.Entry
	for _, e := range req.Body.FormEntries() {
		if !e.Active {
			continue
		}
		value := e.Value
		if e.IsFile {
			value = "<file " + e.Value + ">"
		}
		entries = append(entries, form.Entry{Key: e.Key, Value: value})
	}

	f := form.Encode(entries)
	f.SetBoundary(previewBoundary)

	var buf bytes.Buffer
	contentType, err := f.WriteTo(&buf)
	if err != nil {
		return ""
	}
	return "Content-Type: " + contentType + "\n\n" + strings.ReplaceAll(buf.String(), "\r\n", "\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// renderMarkdown renders md for the terminal, falling back to the raw text.
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
