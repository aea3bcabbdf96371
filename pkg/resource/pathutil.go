package resource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned for paths that resolve outside the configured
// root directory.
var ErrOutsideRoot = errors.New("access denied: path outside root directory")

// withinRoot resolves filePath against root and checks that the result does
// not escape it. Relative paths are taken relative to root.
func withinRoot(filePath, root string) (string, error) {
	target := filePath
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}

	absPath, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root directory: %w", err)
	}

	// The separator suffix stops /project-evil from matching /project.
	prefix := absRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if absPath != absRoot && !strings.HasPrefix(absPath, prefix) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, filePath)
	}

	return absPath, nil
}
