package schema

// cloneObject deep-copies a decoded JSON object so migration steps can
// modify it without touching caller-owned data.
func cloneObject(src Object) Object {
	dst := make(Object, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Object:
		return cloneObject(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []Object:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneObject(item)
		}
		return out
	default:
		return v
	}
}
