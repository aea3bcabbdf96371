package resource

import (
	"context"
	"path/filepath"

	"github.com/blackcoderx/collie/pkg/storage"
	"github.com/rs/zerolog/log"
)

// LocalSource reads resources from JSON files on disk.
type LocalSource struct {
	root string
}

// LocalOption configures a LocalSource.
type LocalOption func(*LocalSource)

// WithRoot confines every path to dir. Paths escaping it fail with
// ErrOutsideRoot.
func WithRoot(dir string) LocalOption {
	return func(s *LocalSource) {
		s.root = dir
	}
}

// NewLocalSource creates a file based source.
func NewLocalSource(opts ...LocalOption) *LocalSource {
	s := &LocalSource{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Exists reports whether path names an existing file. Relative paths are
// taken relative to the root when one is set.
func (s *LocalSource) Exists(path string) bool {
	if s.root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	return storage.FileExists(path)
}

// Contents loads req.PathOrID as a JSON file.
func (s *LocalSource) Contents(_ context.Context, req Request) (any, error) {
	path := req.PathOrID
	if s.root != "" {
		abs, err := withinRoot(path, s.root)
		if err != nil {
			return nil, err
		}
		path = abs
	}

	log.Debug().Str("source", "local").Str("path", path).Str("type", string(req.Type)).Msg("loading resource")
	return storage.LoadJSON(path, storage.FileExists(path))
}
