// Package schema resolves the schema version of collection data and migrates
// older versions to the current one.
//
// Every entity kind (collection, request, environment) is described by an
// Entity: how to detect the version of a raw value, one JSON Schema per
// known version, and one pure step function per version that upgrades a
// value to the next version. A Resolver walks that chain until the current
// version is reached, validating the structure at every step.
package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Object is a decoded JSON object.
type Object = map[string]any

// Kind names an entity shape that values are validated against.
type Kind string

const (
	KindCollection  Kind = "collection"
	KindRequest     Kind = "request"
	KindEnvironment Kind = "environment"
)

// Step upgrades a value of version N to version N+1. Steps receive a value
// the resolver already owns and may modify it in place.
type Step func(Object) Object

// Entity describes the version history of one Kind.
type Entity struct {
	Kind    Kind
	Current int

	// Children names a field holding nested entities of the same kind.
	// Each child is resolved on its own, so children may carry a different
	// version than their parent.
	Children string

	// Detect returns the version of a raw object.
	Detect func(Object) (int, error)

	// Schemas holds the structural check for each known version.
	Schemas map[int]*gojsonschema.Schema

	// Steps[n] upgrades version n to version n+1.
	Steps map[int]Step

	// Tag renders the version number stored in the "v" field of migrated
	// values.
	Tag func(int) any
}

// ValidationError describes why a value could not be resolved.
type ValidationError struct {
	Kind    Kind
	Path    string // Location inside the resolved value, e.g. "[1].folders[0]"
	Version string // Version being checked, empty when undetermined
	Reason  string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	if e.Path != "" {
		sb.WriteString(" at " + e.Path)
	}
	if e.Version != "" {
		sb.WriteString(" (version " + e.Version + ")")
	}
	sb.WriteString(": " + e.Reason)
	return sb.String()
}

// mustSchema compiles a built-in JSON Schema document.
func mustSchema(doc Object) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("schema: invalid built-in schema: %v", err))
	}
	return s
}

// versionTag reads the "v" field. It accepts integral numbers and numeric
// strings; ok is false when the field is absent.
func versionTag(obj Object) (version int, ok bool, err error) {
	raw, present := obj["v"]
	if !present {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, true, fmt.Errorf("version tag %v is not an integer", v)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	case string:
		n, convErr := strconv.Atoi(strings.TrimSpace(v))
		if convErr != nil {
			return 0, true, fmt.Errorf("version tag %q is not a number", v)
		}
		return n, true, nil
	default:
		return 0, true, fmt.Errorf("version tag has unsupported type %T", raw)
	}
}

func numericTag(v int) any { return float64(v) }

func stringTag(v int) any { return strconv.Itoa(v) }
