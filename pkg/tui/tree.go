package tui

import (
	"strings"

	"github.com/blackcoderx/collie/pkg/schema"
)

// flatten lists collections depth first: a node, its folders, then its
// requests.
func flatten(collections []schema.Object) []entry {
	var out []entry
	for _, col := range collections {
		out = appendNode(out, col, 0, "collection")
	}
	return out
}

func appendNode(out []entry, node schema.Object, depth int, kind string) []entry {
	name, _ := node["name"].(string)
	out = append(out, entry{Kind: kind, Depth: depth, Name: name, Raw: node})

	folders, _ := node["folders"].([]any)
	for _, f := range folders {
		if folder, ok := f.(schema.Object); ok {
			out = appendNode(out, folder, depth+1, "folder")
		}
	}

	requests, _ := node["requests"].([]any)
	for _, r := range requests {
		req, ok := r.(schema.Object)
		if !ok {
			continue
		}
		e := entry{Kind: "request", Depth: depth + 1, Raw: req}
		e.Name, _ = req["name"].(string)
		e.Method, _ = req["method"].(string)
		e.Endpoint, _ = req["endpoint"].(string)
		out = append(out, e)
	}
	return out
}

// filterEntries keeps entries whose name, method or endpoint contains query,
// ignoring case. An empty query keeps everything.
func filterEntries(entries []entry, query string) []entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}

	var out []entry
	for _, e := range entries {
		haystack := strings.ToLower(e.Name + " " + e.Method + " " + e.Endpoint)
		if strings.Contains(haystack, query) {
			out = append(out, e)
		}
	}
	return out
}
