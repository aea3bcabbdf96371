package storage

import (
	"os"
	"regexp"
	"strings"
)

// varPattern matches {{VAR_NAME}} or {{env:VAR_NAME}}
var varPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// SubstituteVariables replaces {{VAR}} placeholders with values from the environment
func SubstituteVariables(text string, env map[string]string) string {
	return varPattern.ReplaceAllStringFunc(text, func(match string) string {
		// Extract variable name (remove {{ and }})
		varName := strings.TrimPrefix(strings.TrimSuffix(match, "}}"), "{{")
		varName = strings.TrimSpace(varName)

		// Check for env: prefix (reference to system environment)
		if strings.HasPrefix(varName, "env:") {
			sysVar := strings.TrimPrefix(varName, "env:")
			if val := os.Getenv(sysVar); val != "" {
				return val
			}
			return match // Keep original if not found
		}

		if val, ok := env[varName]; ok {
			return val
		}

		return match // Keep original if not found
	})
}

// ApplyEnvironment returns a copy of req with placeholders in the endpoint,
// active headers, active params and the body substituted. File entries of a
// multipart body keep their value. Request variables take
// precedence over the environment.
func ApplyEnvironment(req Request, env map[string]string) Request {
	vars := make(map[string]string, len(env)+len(req.RequestVariables))
	for k, v := range env {
		vars[k] = v
	}
	for _, rv := range req.RequestVariables {
		if rv.Active {
			vars[rv.Key] = rv.Value
		}
	}

	applied := req
	applied.Endpoint = SubstituteVariables(req.Endpoint, vars)
	applied.Headers = substituteAll(req.Headers, vars)
	applied.Params = substituteAll(req.Params, vars)

	switch content := req.Body.Content.(type) {
	case string:
		applied.Body.Content = SubstituteVariables(content, vars)
	default:
		if entries := req.Body.FormEntries(); entries != nil {
			for i, e := range entries {
				if e.Active && !e.IsFile {
					entries[i].Value = SubstituteVariables(e.Value, vars)
				}
			}
			applied.Body.Content = entries
		}
	}

	return applied
}

func substituteAll(pairs []KeyValue, vars map[string]string) []KeyValue {
	if pairs == nil {
		return nil
	}
	out := make([]KeyValue, len(pairs))
	for i, kv := range pairs {
		out[i] = kv
		if kv.Active {
			out[i].Value = SubstituteVariables(kv.Value, vars)
		}
	}
	return out
}
