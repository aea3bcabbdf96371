// Package collection validates whole collection trees: every request of
// every collection and folder is resolved to the current request schema,
// and the first failure rejects the tree.
package collection

import (
	"context"
	"fmt"

	"github.com/blackcoderx/collie/pkg/core"
	"github.com/blackcoderx/collie/pkg/resource"
	"github.com/blackcoderx/collie/pkg/schema"
	"github.com/rs/zerolog/log"
)

// Options carries the remote access settings for a parse call.
type Options struct {
	Token  string
	Server string
}

// Validator parses and validates collections and environments.
type Validator struct {
	source   resource.Source
	resolver *schema.Resolver
	maxDepth int
}

// Option configures a Validator.
type Option func(*Validator)

// WithResolver replaces the default schema resolver.
func WithResolver(r *schema.Resolver) Option {
	return func(v *Validator) {
		v.resolver = r
	}
}

// WithMaxDepth bounds folder nesting for both the tree walk and the schema
// resolver. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(v *Validator) {
		if depth > 0 {
			v.maxDepth = depth
		}
	}
}

// NewValidator creates a validator fetching content from source.
func NewValidator(source resource.Source, opts ...Option) *Validator {
	v := &Validator{
		source:   source,
		maxDepth: schema.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.resolver == nil {
		v.resolver = schema.NewResolver(schema.WithMaxDepth(v.maxDepth))
	}
	return v
}

// ParseCollectionData fetches pathOrID, resolves it against the collection
// schema and validates every nested request. A single collection object is
// treated as a one-element list.
func (v *Validator) ParseCollectionData(ctx context.Context, pathOrID string, opts Options) ([]schema.Object, error) {
	raw, err := v.source.Contents(ctx, resource.Request{
		PathOrID:    pathOrID,
		AccessToken: opts.Token,
		ServerURL:   opts.Server,
		Type:        resource.TypeCollection,
	})
	if err != nil {
		return nil, err
	}
	return v.ResolveCollections(raw, pathOrID)
}

// ResolveCollections validates already fetched collection content. raw is
// not modified.
func (v *Validator) ResolveCollections(raw any, originPath string) ([]schema.Object, error) {
	if _, isArray := raw.([]any); !isArray {
		raw = []any{raw}
	}

	collections, err := v.resolver.ResolveArray(raw, schema.KindCollection)
	if err != nil {
		return nil, core.MalformedCollection(originPath, err)
	}

	return v.ValidateTree(collections, originPath)
}

// ParseEnvironmentData fetches pathOrID and resolves it against the
// environment schema.
func (v *Validator) ParseEnvironmentData(ctx context.Context, pathOrID string, opts Options) (schema.Object, error) {
	raw, err := v.source.Contents(ctx, resource.Request{
		PathOrID:    pathOrID,
		AccessToken: opts.Token,
		ServerURL:   opts.Server,
		Type:        resource.TypeEnvironment,
	})
	if err != nil {
		return nil, err
	}

	env, err := v.resolver.ResolveObject(raw, schema.KindEnvironment)
	if err != nil {
		return nil, core.MalformedEnvironment(pathOrID, err)
	}
	return env, nil
}

// ValidateTree resolves the requests of every collection and, recursively,
// of every folder. Each node is rebuilt with its validated requests and
// folders; all other fields are kept. The first failure aborts the walk
// with MALFORMED_COLLECTION tagged with originPath. A node without a
// folders field is left without one; requests are required.
func (v *Validator) ValidateTree(collections []schema.Object, originPath string) ([]schema.Object, error) {
	return v.validateLevel(collections, originPath, "", 0)
}

func (v *Validator) validateLevel(collections []schema.Object, originPath, path string, depth int) ([]schema.Object, error) {
	if depth > v.maxDepth {
		return nil, core.MalformedCollection(originPath, fmt.Errorf("%s: folder nesting exceeds %d levels", path, v.maxDepth))
	}

	out := make([]schema.Object, 0, len(collections))
	for i, col := range collections {
		nodePath := fmt.Sprintf("%s[%d]", path, i)

		requests, err := v.resolver.ResolveArray(col["requests"], schema.KindRequest)
		if err != nil {
			return nil, core.MalformedCollection(originPath, fmt.Errorf("%s.requests: %w", nodePath, err))
		}

		node := make(schema.Object, len(col))
		for k, val := range col {
			node[k] = val
		}
		node["requests"] = objectsToAny(requests)

		if raw, ok := col["folders"]; ok {
			folders, err := folderList(raw)
			if err != nil {
				return nil, core.MalformedCollection(originPath, fmt.Errorf("%s.folders: %w", nodePath, err))
			}
			if len(folders) > 0 {
				folders, err = v.validateLevel(folders, originPath, nodePath+".folders", depth+1)
				if err != nil {
					return nil, err
				}
			}
			node["folders"] = objectsToAny(folders)
		}

		out = append(out, node)
	}

	log.Debug().
		Str("origin", originPath).
		Str("path", path).
		Int("depth", depth).
		Int("collections", len(out)).
		Msg("validated collection level")

	return out, nil
}

func folderList(raw any) ([]schema.Object, error) {
	switch v := raw.(type) {
	case []schema.Object:
		return v, nil
	case []any:
		folders := make([]schema.Object, 0, len(v))
		for i, item := range v {
			obj, ok := item.(schema.Object)
			if !ok {
				return nil, fmt.Errorf("[%d]: expected an object, got %T", i, item)
			}
			folders = append(folders, obj)
		}
		return folders, nil
	default:
		return nil, fmt.Errorf("expected an array, got %T", raw)
	}
}

func objectsToAny(objs []schema.Object) []any {
	out := make([]any, len(objs))
	for i, obj := range objs {
		out[i] = obj
	}
	return out
}
