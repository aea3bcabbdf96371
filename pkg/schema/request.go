package schema

import (
	"errors"
	"slices"

	"github.com/xeipuuv/gojsonschema"
)

const multipartContentType = "multipart/form-data"

// RequestEntity describes the request versions:
//
//	legacy  untagged, url + path, entries without "active"
//	"1"     endpoint, active flags, normalized body and auth
//	"2"     requestVariables
//	"3"     description on headers and params, isFile on multipart entries
func RequestEntity() *Entity {
	return &Entity{
		Kind:    KindRequest,
		Current: 3,
		Detect:  detectRequest,
		Schemas: map[int]*gojsonschema.Schema{
			versionLegacy: mustSchema(requestLegacyDoc()),
			1:             mustSchema(requestV1Doc()),
			2:             mustSchema(requestV2Doc()),
			3:             mustSchema(requestV3Doc()),
		},
		Steps: map[int]Step{
			versionLegacy: requestFromLegacy,
			1:             requestAddVariables,
			2:             requestAddDescriptions,
		},
		Tag: stringTag,
	}
}

func detectRequest(obj Object) (int, error) {
	v, ok, err := versionTag(obj)
	if err != nil {
		return 0, err
	}
	if ok {
		return v, nil
	}
	if _, hasURL := obj["url"]; hasURL {
		return versionLegacy, nil
	}
	return 0, errors.New("missing version tag")
}

func requestLegacyDoc() Object {
	pair := object([]string{"key", "value"}, Object{"key": str(), "value": str()})
	return object([]string{"name", "method", "url"}, Object{
		"name":             str(),
		"method":           str(),
		"url":              str(),
		"path":             str(),
		"headers":          arrayOf(pair),
		"params":           arrayOf(pair),
		"body":             typed("object", "null"),
		"auth":             typed("object"),
		"preRequestScript": str(),
		"testScript":       str(),
	})
}

func requestV1Props() Object {
	return Object{
		"v":        tag(),
		"name":     str(),
		"method":   str(),
		"endpoint": str(),
		"headers":  arrayOf(keyValue()),
		"params":   arrayOf(keyValue()),
		"body": object([]string{"contentType", "body"}, Object{
			"contentType": typed("string", "null"),
		}),
		"auth": object([]string{"authType", "authActive"}, Object{
			"authType":   str(),
			"authActive": boolean(),
		}),
		"preRequestScript": str(),
		"testScript":       str(),
	}
}

var requestV1Required = []string{
	"v", "name", "method", "endpoint", "headers", "params",
	"body", "auth", "preRequestScript", "testScript",
}

func requestV2Required() []string {
	return append(slices.Clone(requestV1Required), "requestVariables")
}

func requestV1Doc() Object {
	return object(requestV1Required, requestV1Props())
}

func requestV2Props() Object {
	props := requestV1Props()
	props["requestVariables"] = arrayOf(keyValue())
	return props
}

func requestV2Doc() Object {
	return object(requestV2Required(), requestV2Props())
}

func requestV3Doc() Object {
	props := requestV2Props()
	props["headers"] = arrayOf(keyValue("description"))
	props["params"] = arrayOf(keyValue("description"))

	formEntry := object([]string{"key", "active", "isFile"}, Object{
		"key":    str(),
		"active": boolean(),
		"isFile": boolean(),
	})
	props["body"] = object([]string{"contentType", "body"}, Object{
		"contentType": typed("string", "null"),
		"body": Object{
			"anyOf": []any{
				typed("string", "null", "object"),
				arrayOf(formEntry),
			},
		},
	})
	return object(requestV2Required(), props)
}

func requestFromLegacy(obj Object) Object {
	url, _ := obj["url"].(string)
	path, _ := obj["path"].(string)
	obj["endpoint"] = url + path
	delete(obj, "url")
	delete(obj, "path")

	for _, field := range []string{"headers", "params"} {
		entries, _ := obj[field].([]any)
		if entries == nil {
			entries = []any{}
		}
		for _, entry := range entries {
			if m, ok := entry.(Object); ok {
				if _, set := m["active"]; !set {
					m["active"] = true
				}
			}
		}
		obj[field] = entries
	}

	body, _ := obj["body"].(Object)
	if body == nil {
		body = Object{}
	}
	for _, key := range []string{"contentType", "body"} {
		if _, set := body[key]; !set {
			body[key] = nil
		}
	}
	obj["body"] = body

	auth, _ := obj["auth"].(Object)
	if auth == nil {
		auth = Object{}
	}
	if _, set := auth["authType"]; !set {
		auth["authType"] = "none"
	}
	if _, set := auth["authActive"]; !set {
		auth["authActive"] = true
	}
	obj["auth"] = auth

	for _, field := range []string{"preRequestScript", "testScript"} {
		if _, set := obj[field]; !set {
			obj[field] = ""
		}
	}
	return obj
}

func requestAddVariables(obj Object) Object {
	if _, set := obj["requestVariables"]; !set {
		obj["requestVariables"] = []any{}
	}
	return obj
}

func requestAddDescriptions(obj Object) Object {
	for _, field := range []string{"headers", "params"} {
		entries, _ := obj[field].([]any)
		for _, entry := range entries {
			if m, ok := entry.(Object); ok {
				if _, set := m["description"]; !set {
					m["description"] = ""
				}
			}
		}
	}

	body, _ := obj["body"].(Object)
	if ct, _ := body["contentType"].(string); ct == multipartContentType {
		entries, _ := body["body"].([]any)
		for _, entry := range entries {
			if m, ok := entry.(Object); ok {
				if _, set := m["isFile"]; !set {
					m["isFile"] = false
				}
			}
		}
	}
	return obj
}
