package storage

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/blackcoderx/collie/pkg/core"
)

// LoadJSON reads and parses a JSON file. fileExists is the caller's
// existence check; LoadJSON does not probe the file system itself before
// reading.
func LoadJSON(path string, fileExists bool) (any, error) {
	if !strings.HasSuffix(path, ".json") {
		return nil, core.InvalidFileType(path)
	}
	if !fileExists {
		return nil, core.FileNotFound(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.Unknown(err)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, core.Unknown(err)
	}
	return parsed, nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
