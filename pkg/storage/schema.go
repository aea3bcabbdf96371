package storage

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Current schema versions of the typed model below.
const (
	RequestVersion     Version = "3"
	CollectionVersion  Version = "2"
	EnvironmentVersion Version = "1"
)

// Version is a schema version tag. Stored documents write it as a string or
// a number; both decode to the same text.
type Version string

// UnmarshalJSON accepts "3" and 3 alike.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Version(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("version tag must be a string or a number, got %s", data)
	}
	*v = Version(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar tag.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("version tag must be a scalar, got %v at line %d", node.Tag, node.Line)
	}
	*v = Version(node.Value)
	return nil
}

// KeyValue is a header, query parameter or request variable.
type KeyValue struct {
	Key         string `json:"key" yaml:"key"`
	Value       string `json:"value" yaml:"value"`
	Active      bool   `json:"active" yaml:"active"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Body is a request body. Content is a string for raw bodies and a list of
// form entries for multipart bodies.
type Body struct {
	ContentType *string `json:"contentType" yaml:"contentType"`
	Content     any     `json:"body" yaml:"body"`
}

// Auth describes how a request or collection authenticates.
type Auth struct {
	AuthType   string `json:"authType" yaml:"authType"`
	AuthActive bool   `json:"authActive" yaml:"authActive"`
}

// Request represents a saved API request at the current schema version.
type Request struct {
	V                Version    `json:"v" yaml:"v"`
	Name             string     `json:"name" yaml:"name"`
	Method           string     `json:"method" yaml:"method"`
	Endpoint         string     `json:"endpoint" yaml:"endpoint"` // Can contain {{VAR}} placeholders
	Headers          []KeyValue `json:"headers" yaml:"headers"`
	Params           []KeyValue `json:"params" yaml:"params"`
	Body             Body       `json:"body" yaml:"body"`
	Auth             Auth       `json:"auth" yaml:"auth"`
	PreRequestScript string     `json:"preRequestScript" yaml:"preRequestScript"`
	TestScript       string     `json:"testScript" yaml:"testScript"`
	RequestVariables []KeyValue `json:"requestVariables" yaml:"requestVariables"`
}

// Collection represents a folder of related requests and nested folders.
type Collection struct {
	V        Version      `json:"v" yaml:"v"`
	Name     string       `json:"name" yaml:"name"`
	Folders  []Collection `json:"folders" yaml:"folders"`
	Requests []Request    `json:"requests" yaml:"requests"`
	Auth     Auth         `json:"auth" yaml:"auth"`
	Headers  []KeyValue   `json:"headers" yaml:"headers"`
}

// EnvVariable is a single environment variable.
type EnvVariable struct {
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
	Secret bool   `json:"secret" yaml:"secret"`
}

// Environment represents a set of environment variables.
type Environment struct {
	V         Version       `json:"v" yaml:"v"`
	ID        string        `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string        `json:"name" yaml:"name"` // Environment name (e.g., "dev", "prod")
	Variables []EnvVariable `json:"variables" yaml:"variables"`
}

// Map returns the variables as a lookup table. Later keys win.
func (e Environment) Map() map[string]string {
	m := make(map[string]string, len(e.Variables))
	for _, v := range e.Variables {
		m[v.Key] = v.Value
	}
	return m
}

// FormEntry is a multipart body entry at the current schema version.
type FormEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Active bool   `json:"active"`
	IsFile bool   `json:"isFile"`
}

// IsMultipart reports whether the body is a multipart form.
func (b Body) IsMultipart() bool {
	return b.ContentType != nil && *b.ContentType == "multipart/form-data"
}
