package schema

import "github.com/xeipuuv/gojsonschema"

// CollectionEntity describes the collection versions. Untagged collections
// are version 1; version 2 adds collection level auth and headers. Folders
// are collections and are resolved one by one.
func CollectionEntity() *Entity {
	return &Entity{
		Kind:     KindCollection,
		Current:  2,
		Children: "folders",
		Detect:   detectCollection,
		Schemas: map[int]*gojsonschema.Schema{
			1: mustSchema(collectionV1Doc()),
			2: mustSchema(collectionV2Doc()),
		},
		Steps: map[int]Step{
			1: collectionAddAuth,
		},
		Tag: numericTag,
	}
}

func detectCollection(obj Object) (int, error) {
	v, ok, err := versionTag(obj)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 1, nil
	}
	return v, nil
}

func collectionV1Props() Object {
	return Object{
		"v":        tag(),
		"id":       str(),
		"name":     str(),
		"folders":  arrayOf(typed("object")),
		"requests": typed("array"),
	}
}

func collectionV1Doc() Object {
	return object([]string{"name", "folders", "requests"}, collectionV1Props())
}

func collectionV2Doc() Object {
	props := collectionV1Props()
	props["auth"] = object([]string{"authType", "authActive"}, Object{
		"authType":   str(),
		"authActive": boolean(),
	})
	props["headers"] = arrayOf(keyValue())
	return object([]string{"v", "name", "folders", "requests", "auth", "headers"}, props)
}

func collectionAddAuth(obj Object) Object {
	if _, set := obj["auth"]; !set {
		obj["auth"] = Object{"authType": "inherit", "authActive": true}
	}
	if _, set := obj["headers"]; !set {
		obj["headers"] = []any{}
	}
	return obj
}
