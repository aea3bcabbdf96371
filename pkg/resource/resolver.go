package resource

import (
	"context"
	"strings"

	"github.com/blackcoderx/collie/pkg/storage"
)

// Resolver picks a source for each request: an existing local file first,
// then the remote workspace when credentials are present, and otherwise a
// local load that reports why the path is unusable.
type Resolver struct {
	local  *LocalSource
	remote Source
}

// NewResolver combines a local and a remote source. remote may be nil.
func NewResolver(local *LocalSource, remote Source) *Resolver {
	if local == nil {
		local = NewLocalSource()
	}
	return &Resolver{local: local, remote: remote}
}

// Contents implements Source.
func (r *Resolver) Contents(ctx context.Context, req Request) (any, error) {
	if r.local.Exists(req.PathOrID) {
		return r.local.Contents(ctx, req)
	}

	if r.remote != nil && (req.AccessToken != "" || hasCredentials(r.remote)) {
		if strings.TrimSpace(req.ServerURL) == "" {
			return nil, invalidServerURL(req.ServerURL)
		}
		return r.remote.Contents(ctx, req)
	}

	return storage.LoadJSON(req.PathOrID, false)
}

func hasCredentials(src Source) bool {
	c, ok := src.(interface{ HasCredentials() bool })
	return ok && c.HasCredentials()
}
