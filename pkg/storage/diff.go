package storage

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"
)

// Diff returns a unified diff between two renderings of the same file, or
// "" when they are identical.
func Diff(filename, original, modified string) string {
	if original == modified {
		return ""
	}

	// Use go-udiff to generate unified diff with 3 lines of context
	edits := udiff.Strings(original, modified)
	unified, err := udiff.ToUnified("a/"+filename, "b/"+filename, original, edits, 3)
	if err != nil {
		return fmt.Sprintf("--- a/%s\n+++ b/%s\n(diff generation failed)\n", filename, filename)
	}
	return unified
}
