package schema

// Helpers for assembling the built-in JSON Schema documents. Every call
// returns a fresh document, so callers may extend the result.

func object(required []string, props Object) Object {
	doc := Object{"type": "object", "properties": props}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

func arrayOf(items Object) Object {
	return Object{"type": "array", "items": items}
}

func typed(types ...string) Object {
	if len(types) == 1 {
		return Object{"type": types[0]}
	}
	return Object{"type": types}
}

func str() Object { return typed("string") }

func boolean() Object { return typed("boolean") }

// tag accepts both string and numeric version tags.
func tag() Object { return typed("string", "number") }

// keyValue is a header, param or variable entry.
func keyValue(extra ...string) Object {
	required := append([]string{"key", "value", "active"}, extra...)
	props := Object{
		"key":    str(),
		"value":  str(),
		"active": boolean(),
	}
	for _, name := range extra {
		props[name] = str()
	}
	return object(required, props)
}
