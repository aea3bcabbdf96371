package schema

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/xeipuuv/gojsonschema"
)

// EnvironmentEntity describes the environment versions:
//
//	flat    {"KEY": "value"} with no version tag
//	legacy  untagged, {name?, variables: [{key, value}]}
//	1       tagged, every variable carries a secret flag
func EnvironmentEntity() *Entity {
	return &Entity{
		Kind:    KindEnvironment,
		Current: 1,
		Detect:  detectEnvironment,
		Schemas: map[int]*gojsonschema.Schema{
			versionFlat:   mustSchema(environmentFlatDoc()),
			versionLegacy: mustSchema(environmentLegacyDoc()),
			1:             mustSchema(environmentV1Doc()),
		},
		Steps: map[int]Step{
			versionFlat:   environmentFromFlat,
			versionLegacy: environmentAddSecrets,
		},
		Tag: numericTag,
	}
}

func detectEnvironment(obj Object) (int, error) {
	v, ok, err := versionTag(obj)
	if err != nil {
		return 0, err
	}
	if ok {
		return v, nil
	}
	if _, hasVars := obj["variables"]; hasVars {
		return versionLegacy, nil
	}
	return versionFlat, nil
}

func environmentFlatDoc() Object {
	return Object{
		"type":                 "object",
		"additionalProperties": typed("string", "number", "boolean"),
	}
}

func environmentLegacyDoc() Object {
	variable := object([]string{"key", "value"}, Object{"key": str(), "value": str()})
	return object([]string{"variables"}, Object{
		"id":        str(),
		"name":      str(),
		"variables": arrayOf(variable),
	})
}

func environmentV1Doc() Object {
	variable := object([]string{"key", "value", "secret"}, Object{
		"key":    str(),
		"value":  str(),
		"secret": boolean(),
	})
	return object([]string{"v", "name", "variables"}, Object{
		"v":         tag(),
		"id":        str(),
		"name":      str(),
		"variables": arrayOf(variable),
	})
}

func environmentFromFlat(obj Object) Object {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vars := make([]any, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, Object{"key": k, "value": flatValue(obj[k])})
	}
	return Object{"name": "", "variables": vars}
}

func flatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func environmentAddSecrets(obj Object) Object {
	if _, set := obj["name"]; !set {
		obj["name"] = ""
	}
	vars, _ := obj["variables"].([]any)
	for _, v := range vars {
		if m, ok := v.(Object); ok {
			if _, set := m["secret"]; !set {
				m["secret"] = false
			}
		}
	}
	return obj
}
