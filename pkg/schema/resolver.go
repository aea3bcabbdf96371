package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

// DefaultMaxDepth bounds the nesting of child entities (folders).
const DefaultMaxDepth = 128

// maxReportedErrors caps how many schema errors end up in a reason.
const maxReportedErrors = 3

// Resolver validates raw values against an entity kind and migrates them to
// the current version of that kind.
type Resolver struct {
	entities map[Kind]*Entity
	maxDepth int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the deepest child nesting accepted. Values below 1 are
// ignored.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// WithEntity registers an entity, replacing any built-in one of the same
// kind.
func WithEntity(e *Entity) Option {
	return func(r *Resolver) {
		r.entities[e.Kind] = e
	}
}

// NewResolver creates a resolver for the built-in collection, request and
// environment entities.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		entities: map[Kind]*Entity{
			KindCollection:  CollectionEntity(),
			KindRequest:     RequestEntity(),
			KindEnvironment: EnvironmentEntity(),
		},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxDepth returns the deepest child nesting the resolver accepts.
func (r *Resolver) MaxDepth() int {
	return r.maxDepth
}

// Resolve validates raw against kind. Objects are resolved as one entity;
// arrays are resolved element by element into a new array. The input is
// never modified.
func (r *Resolver) Resolve(raw any, kind Kind) (any, error) {
	switch raw.(type) {
	case []any, []Object:
		objs, err := r.ResolveArray(raw, kind)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(objs))
		for i, obj := range objs {
			out[i] = obj
		}
		return out, nil
	default:
		return r.ResolveObject(raw, kind)
	}
}

// ResolveArray validates every element of an array against kind.
func (r *Resolver) ResolveArray(raw any, kind Kind) ([]Object, error) {
	e, err := r.entity(kind)
	if err != nil {
		return nil, err
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []Object:
		items = make([]any, len(v))
		for i, obj := range v {
			items[i] = obj
		}
	default:
		return nil, &ValidationError{Kind: kind, Reason: "expected an array, got " + jsonType(raw)}
	}

	out := make([]Object, 0, len(items))
	for i, item := range items {
		obj, err := r.resolve(item, e, "["+strconv.Itoa(i)+"]", 0)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// ResolveObject validates a single object against kind.
func (r *Resolver) ResolveObject(raw any, kind Kind) (Object, error) {
	e, err := r.entity(kind)
	if err != nil {
		return nil, err
	}
	return r.resolve(raw, e, "", 0)
}

func (r *Resolver) entity(kind Kind) (*Entity, error) {
	e, ok := r.entities[kind]
	if !ok {
		return nil, &ValidationError{Kind: kind, Reason: "unknown entity kind"}
	}
	return e, nil
}

func (r *Resolver) resolve(raw any, e *Entity, path string, depth int) (Object, error) {
	if depth > r.maxDepth {
		return nil, &ValidationError{Kind: e.Kind, Path: path, Reason: fmt.Sprintf("nesting exceeds %d levels", r.maxDepth)}
	}

	src, ok := raw.(Object)
	if !ok {
		return nil, &ValidationError{Kind: e.Kind, Path: path, Reason: "expected an object, got " + jsonType(raw)}
	}
	obj := cloneObject(src)

	version, err := e.Detect(obj)
	if err != nil {
		return nil, &ValidationError{Kind: e.Kind, Path: path, Reason: err.Error()}
	}
	if _, known := e.Schemas[version]; !known || version > e.Current {
		return nil, &ValidationError{Kind: e.Kind, Path: path, Version: versionLabel(version), Reason: "unknown schema version"}
	}
	if err := check(e, obj, version, path); err != nil {
		return nil, err
	}

	from := version
	for version < e.Current {
		step, ok := e.Steps[version]
		if !ok {
			return nil, &ValidationError{Kind: e.Kind, Path: path, Version: versionLabel(version), Reason: "no migration to a newer version"}
		}
		obj = step(obj)
		version++
		obj["v"] = e.Tag(version)
		if err := check(e, obj, version, path); err != nil {
			return nil, err
		}
	}
	if from != version {
		log.Debug().
			Str("kind", string(e.Kind)).
			Str("path", path).
			Str("from", versionLabel(from)).
			Int("to", version).
			Msg("migrated entity")
	}

	if e.Children != "" {
		children, err := r.resolveChildren(obj, e, path, depth)
		if err != nil {
			return nil, err
		}
		obj[e.Children] = children
	}

	return obj, nil
}

func (r *Resolver) resolveChildren(obj Object, e *Entity, path string, depth int) ([]any, error) {
	items, _ := obj[e.Children].([]any)
	out := make([]any, len(items))
	for i, item := range items {
		childPath := e.Children + "[" + strconv.Itoa(i) + "]"
		if path != "" {
			childPath = path + "." + childPath
		}
		child, err := r.resolve(item, e, childPath, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = child
	}
	return out, nil
}

func check(e *Entity, obj Object, version int, path string) error {
	s := e.Schemas[version]
	if s == nil {
		return &ValidationError{Kind: e.Kind, Path: path, Version: versionLabel(version), Reason: "unknown schema version"}
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(obj))
	if err != nil {
		return &ValidationError{Kind: e.Kind, Path: path, Version: versionLabel(version), Reason: err.Error()}
	}
	if result.Valid() {
		return nil
	}
	return &ValidationError{Kind: e.Kind, Path: path, Version: versionLabel(version), Reason: describe(result.Errors())}
}

func describe(errs []gojsonschema.ResultError) string {
	var msgs []string
	for i, re := range errs {
		if i == maxReportedErrors {
			msgs = append(msgs, fmt.Sprintf("and %d more", len(errs)-maxReportedErrors))
			break
		}
		msgs = append(msgs, re.Field()+": "+re.Description())
	}
	return strings.Join(msgs, "; ")
}

// Pre-tag versions have names instead of numbers.
const (
	versionFlat   = -1
	versionLegacy = 0
)

func versionLabel(v int) string {
	switch v {
	case versionFlat:
		return "flat"
	case versionLegacy:
		return "legacy"
	default:
		return strconv.Itoa(v)
	}
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
