package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleTree() []any {
	return []any{
		map[string]any{
			"v":        float64(2),
			"name":     "users",
			"folders":  []any{},
			"requests": []any{},
			"auth":     map[string]any{"authType": "inherit", "authActive": true},
			"headers":  []any{},
		},
	}
}

func TestSaveTree(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "out", "tree.json")
		require.NoError(t, SaveTree(sampleTree(), path))

		loaded, err := LoadJSON(path, true)
		require.NoError(t, err)
		if diff := cmp.Diff(sampleTree(), loaded); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "tree.yaml")
		require.NoError(t, SaveTree(sampleTree(), path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "users", decoded[0]["name"])
	})
}

func TestDecodeCollections(t *testing.T) {
	tree := sampleTree()
	tree[0].(map[string]any)["requests"] = []any{
		map[string]any{
			"v":        "3",
			"name":     "list",
			"method":   "GET",
			"endpoint": "{{BASE}}/users",
			"headers":  []any{map[string]any{"key": "Accept", "value": "application/json", "active": true, "description": ""}},
			"params":   []any{},
			"body": map[string]any{
				"contentType": "multipart/form-data",
				"body": []any{
					map[string]any{"key": "a", "value": "1", "active": true, "isFile": false},
				},
			},
			"auth":             map[string]any{"authType": "none", "authActive": true},
			"preRequestScript": "",
			"testScript":       "",
			"requestVariables": []any{},
		},
	}

	cols, err := DecodeCollections(tree)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	require.Len(t, cols[0].Requests, 1)

	req := cols[0].Requests[0]
	assert.Equal(t, "{{BASE}}/users", req.Endpoint)
	assert.True(t, req.Body.IsMultipart())
	assert.Equal(t, []FormEntry{{Key: "a", Value: "1", Active: true}}, req.Body.FormEntries())
}

func TestDecodeCollections_MixedVersionTags(t *testing.T) {
	tree := []any{
		map[string]any{
			"v":       "2",
			"name":    "users",
			"folders": []any{},
			"requests": []any{
				map[string]any{"v": float64(3), "name": "list", "method": "GET", "endpoint": "/users"},
				map[string]any{"v": "3", "name": "create", "method": "POST", "endpoint": "/users"},
			},
		},
		map[string]any{"v": float64(2), "name": "orders", "folders": []any{}, "requests": []any{}},
	}

	cols, err := DecodeCollections(tree)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, CollectionVersion, cols[0].V)
	assert.Equal(t, CollectionVersion, cols[1].V)
	assert.Equal(t, RequestVersion, cols[0].Requests[0].V)
	assert.Equal(t, RequestVersion, cols[0].Requests[1].V)

	env, err := DecodeEnvironment(map[string]any{"v": "1", "name": "dev", "variables": []any{}})
	require.NoError(t, err)
	assert.Equal(t, EnvironmentVersion, env.V)

	_, err = DecodeEnvironment(map[string]any{"v": true, "name": "dev"})
	assert.ErrorContains(t, err, "version tag must be a string or a number")
}

func TestVersion_UnmarshalYAML(t *testing.T) {
	var col Collection
	require.NoError(t, yaml.Unmarshal([]byte("v: 2\nname: users\n"), &col))
	assert.Equal(t, CollectionVersion, col.V)

	var req Request
	require.NoError(t, yaml.Unmarshal([]byte("v: '3'\nname: list\n"), &req))
	assert.Equal(t, RequestVersion, req.V)

	assert.Error(t, yaml.Unmarshal([]byte("v: [1]\n"), &col))
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv("COLLIE_TEST_TOKEN", "s3cret")

	req := Request{
		Endpoint: "{{BASE}}/users/{{id}}",
		Headers: []KeyValue{
			{Key: "Authorization", Value: "Bearer {{env:COLLIE_TEST_TOKEN}}", Active: true},
			{Key: "X-Off", Value: "{{BASE}}", Active: false},
		},
		Params:           []KeyValue{{Key: "q", Value: "{{missing}}", Active: true}},
		Body:             Body{Content: `{"base": "{{BASE}}"}`},
		RequestVariables: []KeyValue{{Key: "id", Value: "42", Active: true}},
	}

	applied := ApplyEnvironment(req, map[string]string{"BASE": "http://localhost:8080", "id": "7"})

	assert.Equal(t, "http://localhost:8080/users/42", applied.Endpoint)
	assert.Equal(t, "Bearer s3cret", applied.Headers[0].Value)
	assert.Equal(t, "{{BASE}}", applied.Headers[1].Value)
	assert.Equal(t, "{{missing}}", applied.Params[0].Value)
	assert.Equal(t, `{"base": "http://localhost:8080"}`, applied.Body.Content)

	// The original request is untouched.
	assert.Equal(t, "{{BASE}}/users/{{id}}", req.Endpoint)
	assert.Equal(t, "Bearer {{env:COLLIE_TEST_TOKEN}}", req.Headers[0].Value)
}

func TestApplyEnvironment_Multipart(t *testing.T) {
	multipart := "multipart/form-data"
	req := Request{Body: Body{
		ContentType: &multipart,
		Content: []any{
			map[string]any{"key": "owner", "value": "{{USER}}", "active": true, "isFile": false},
			map[string]any{"key": "avatar", "value": "{{USER}}.png", "active": true, "isFile": true},
			map[string]any{"key": "off", "value": "{{USER}}", "active": false, "isFile": false},
		},
	}}

	applied := ApplyEnvironment(req, map[string]string{"USER": "ada"})

	assert.Equal(t, []FormEntry{
		{Key: "owner", Value: "ada", Active: true},
		{Key: "avatar", Value: "{{USER}}.png", Active: true, IsFile: true},
		{Key: "off", Value: "{{USER}}", Active: false},
	}, applied.Body.FormEntries())
}

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff("a.json", "same\n", "same\n"))

	diff := Diff("a.json", "{\n  \"v\": 1\n}\n", "{\n  \"v\": 2\n}\n")
	assert.True(t, strings.HasPrefix(diff, "--- a/a.json"))
	assert.Contains(t, diff, "-  \"v\": 1")
	assert.Contains(t, diff, "+  \"v\": 2")
}

func TestEnvironmentMap(t *testing.T) {
	env := Environment{Variables: []EnvVariable{{Key: "A", Value: "1"}, {Key: "A", Value: "2"}, {Key: "B", Value: "3"}}}
	assert.Equal(t, map[string]string{"A": "2", "B": "3"}, env.Map())
}
