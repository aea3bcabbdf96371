package collection

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/blackcoderx/collie/pkg/core"
	"github.com/blackcoderx/collie/pkg/resource"
	"github.com/blackcoderx/collie/pkg/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySource serves canned content keyed by path or id.
type memorySource struct {
	content map[string]any
	last    resource.Request
}

func (m *memorySource) Contents(_ context.Context, req resource.Request) (any, error) {
	m.last = req
	v, ok := m.content[req.PathOrID]
	if !ok {
		return nil, core.FileNotFound(req.PathOrID)
	}
	return v, nil
}

func request(name string) schema.Object {
	return schema.Object{
		"v":                "3",
		"name":             name,
		"method":           "GET",
		"endpoint":         "{{BASE}}/" + name,
		"headers":          []any{},
		"params":           []any{},
		"body":             schema.Object{"contentType": nil, "body": nil},
		"auth":             schema.Object{"authType": "inherit", "authActive": true},
		"preRequestScript": "",
		"testScript":       "",
		"requestVariables": []any{},
	}
}

func legacyRequest(name string) schema.Object {
	return schema.Object{
		"name":   name,
		"method": "GET",
		"url":    "{{BASE}}",
		"path":   "/" + name,
	}
}

func collection(name string, requests []any, folders ...any) schema.Object {
	if requests == nil {
		requests = []any{}
	}
	if folders == nil {
		folders = []any{}
	}
	return schema.Object{
		"v":        float64(2),
		"id":       name + "-id",
		"name":     name,
		"folders":  folders,
		"requests": requests,
		"auth":     schema.Object{"authType": "inherit", "authActive": true},
		"headers":  []any{},
	}
}

func sampleTree() []schema.Object {
	return []schema.Object{
		collection("users", []any{request("list"), request("create")},
			collection("admin", []any{request("ban")},
				collection("audit", []any{request("log")}),
			),
			collection("empty", nil),
		),
		collection("orders", []any{request("recent")}),
	}
}

func TestValidateTree_RoundTrip(t *testing.T) {
	v := NewValidator(&memorySource{})

	got, err := v.ValidateTree(sampleTree(), "tree.json")
	require.NoError(t, err)
	if diff := cmp.Diff(sampleTree(), got); diff != "" {
		t.Fatalf("valid tree changed (-want +got):\n%s", diff)
	}

	again, err := v.ValidateTree(got, "tree.json")
	require.NoError(t, err)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Fatalf("validation is not idempotent (-want +got):\n%s", diff)
	}
}

func TestValidateTree_MigratesNestedRequests(t *testing.T) {
	v := NewValidator(&memorySource{})

	input := []schema.Object{
		collection("root", []any{legacyRequest("a")},
			collection("child", []any{legacyRequest("b"), request("c")}),
		),
	}

	got, err := v.ValidateTree(input, "tree.json")
	require.NoError(t, err)

	rootReq := got[0]["requests"].([]any)[0].(schema.Object)
	assert.Equal(t, "3", rootReq["v"])
	assert.Equal(t, "{{BASE}}/a", rootReq["endpoint"])

	child := got[0]["folders"].([]any)[0].(schema.Object)
	childReqs := child["requests"].([]any)
	require.Len(t, childReqs, 2)
	assert.Equal(t, "{{BASE}}/b", childReqs[0].(schema.Object)["endpoint"])
	assert.Equal(t, "c", childReqs[1].(schema.Object)["name"])

	// The input tree keeps its legacy requests.
	assert.Equal(t, legacyRequest("a"), input[0]["requests"].([]any)[0])
}

func TestValidateTree_FailureAtDepth(t *testing.T) {
	broken := schema.Object{"v": "3", "name": "broken"}

	tests := []struct {
		name      string
		tree      []schema.Object
		wantPath  string
		wantIndex string
	}{
		{
			name:      "top level",
			tree:      []schema.Object{collection("a", []any{request("ok"), broken})},
			wantPath:  "[0].requests",
			wantIndex: "[1]",
		},
		{
			name: "second collection",
			tree: []schema.Object{
				collection("a", []any{request("ok")}),
				collection("b", []any{broken}),
			},
			wantPath:  "[1].requests",
			wantIndex: "[0]",
		},
		{
			name: "depth three",
			tree: []schema.Object{
				collection("a", nil,
					collection("b", nil,
						collection("c", nil,
							collection("d", []any{broken}),
						),
					),
				),
			},
			wantPath:  "[0].folders[0].folders[0].folders[0].requests",
			wantIndex: "[0]",
		},
	}

	v := NewValidator(&memorySource{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateTree(tt.tree, "my/collection.json")
			require.Error(t, err)
			assert.Nil(t, got)

			var cerr *core.Error
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, core.CodeMalformedCollection, cerr.Code)
			assert.Equal(t, "my/collection.json", cerr.Path)
			assert.Equal(t, core.CollectionHint, cerr.Data)
			assert.Contains(t, err.Error(), tt.wantPath+":")

			var verr *schema.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, schema.KindRequest, verr.Kind)
			assert.Equal(t, tt.wantIndex, verr.Path)
		})
	}
}

func TestValidateTree_EmptyFoldersStayEmpty(t *testing.T) {
	v := NewValidator(&memorySource{})

	input := collection("a", []any{request("x")})
	delete(input, "folders")

	got, err := v.ValidateTree([]schema.Object{collection("b", nil), input}, "tree.json")
	require.NoError(t, err)
	assert.Equal(t, []any{}, got[0]["folders"])

	// A node without folders is not given any.
	_, hasFolders := got[1]["folders"]
	assert.False(t, hasFolders)
	assert.Equal(t, "a-id", got[1]["id"])
}

func TestValidateTree_RequestsRequired(t *testing.T) {
	v := NewValidator(&memorySource{})

	missing := collection("a", nil)
	delete(missing, "requests")
	null := collection("b", nil)
	null["requests"] = nil

	for name, node := range map[string]schema.Object{"missing": missing, "null": null} {
		t.Run(name, func(t *testing.T) {
			_, err := v.ValidateTree([]schema.Object{node}, "tree.json")
			require.Error(t, err)
			assert.Equal(t, core.CodeMalformedCollection, core.CodeOf(err))
			assert.Contains(t, err.Error(), "[0].requests:")
			assert.Contains(t, err.Error(), "expected an array, got null")
		})
	}
}

func TestValidateTree_MaxDepth(t *testing.T) {
	tree := []schema.Object{
		collection("a", nil, collection("b", nil, collection("c", nil))),
	}

	_, err := NewValidator(&memorySource{}, WithMaxDepth(2)).ValidateTree(tree, "deep.json")
	require.NoError(t, err)

	_, err = NewValidator(&memorySource{}, WithMaxDepth(1)).ValidateTree(tree, "deep.json")
	require.Error(t, err)
	assert.Equal(t, core.CodeMalformedCollection, core.CodeOf(err))
	assert.Contains(t, err.Error(), "folder nesting exceeds 1 levels")
}

func TestParseCollectionData(t *testing.T) {
	single := collection("users", []any{legacyRequest("list")})
	src := &memorySource{content: map[string]any{
		"single.json": single,
		"array.json":  []any{single},
		"legacy.json": schema.Object{"name": "old", "folders": []any{}, "requests": []any{request("a")}},
		"broken.json": []any{schema.Object{"name": "no folders"}},
		"bad-req":     []any{collection("x", []any{schema.Object{"v": "7"}})},
		"scalar.json": "hello",
	}}
	v := NewValidator(src)

	t.Run("single object equals one element array", func(t *testing.T) {
		fromSingle, err := v.ParseCollectionData(t.Context(), "single.json", Options{})
		require.NoError(t, err)
		fromArray, err := v.ParseCollectionData(t.Context(), "array.json", Options{})
		require.NoError(t, err)

		require.Len(t, fromSingle, 1)
		if diff := cmp.Diff(fromArray, fromSingle); diff != "" {
			t.Fatalf("single object differs from array (-want +got):\n%s", diff)
		}
	})

	t.Run("options reach the source", func(t *testing.T) {
		_, err := v.ParseCollectionData(t.Context(), "array.json", Options{Token: "tok", Server: "http://srv"})
		require.NoError(t, err)
		assert.Equal(t, resource.Request{
			PathOrID:    "array.json",
			AccessToken: "tok",
			ServerURL:   "http://srv",
			Type:        resource.TypeCollection,
		}, src.last)
	})

	t.Run("untagged collection is migrated", func(t *testing.T) {
		got, err := v.ParseCollectionData(t.Context(), "legacy.json", Options{})
		require.NoError(t, err)
		assert.Equal(t, float64(2), got[0]["v"])
		assert.Equal(t, []any{}, got[0]["headers"])
	})

	for _, id := range []string{"broken.json", "bad-req", "scalar.json"} {
		t.Run("malformed "+id, func(t *testing.T) {
			_, err := v.ParseCollectionData(t.Context(), id, Options{})
			require.Error(t, err)

			var cerr *core.Error
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, core.CodeMalformedCollection, cerr.Code)
			assert.Equal(t, id, cerr.Path)
		})
	}

	t.Run("source errors pass through", func(t *testing.T) {
		_, err := v.ParseCollectionData(t.Context(), "missing.json", Options{})
		assert.Equal(t, core.CodeFileNotFound, core.CodeOf(err))
	})
}

func TestResolveCollections(t *testing.T) {
	v := NewValidator(&memorySource{})

	raw := map[string]any{"name": "old", "folders": []any{}, "requests": []any{legacyRequest("a")}}
	got, err := v.ResolveCollections(raw, "users-id")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "{{BASE}}/a", got[0]["requests"].([]any)[0].(schema.Object)["endpoint"])

	// The fetched content is left as it was.
	assert.Equal(t, legacyRequest("a"), raw["requests"].([]any)[0])
	_, tagged := raw["v"]
	assert.False(t, tagged)

	_, err = v.ResolveCollections("scalar", "users-id")
	var cerr *core.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, core.CodeMalformedCollection, cerr.Code)
	assert.Equal(t, "users-id", cerr.Path)
}

func TestParseEnvironmentData(t *testing.T) {
	src := &memorySource{content: map[string]any{
		"flat.json":   schema.Object{"BASE": "http://localhost"},
		"broken.json": schema.Object{"v": 1, "name": "x"},
	}}
	v := NewValidator(src)

	env, err := v.ParseEnvironmentData(t.Context(), "flat.json", Options{})
	require.NoError(t, err)
	assert.Equal(t, resource.TypeEnvironment, src.last.Type)
	assert.Equal(t, []any{schema.Object{"key": "BASE", "value": "http://localhost", "secret": false}}, env["variables"])

	_, err = v.ParseEnvironmentData(t.Context(), "broken.json", Options{})
	var cerr *core.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, core.CodeMalformedEnv, cerr.Code)
	assert.Equal(t, "broken.json", cerr.Path)
	assert.Equal(t, core.EnvironmentHint, cerr.Data)
}

func TestParseCollectionData_FromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"name": "users",
		"folders": [{"name": "admin", "folders": [], "requests": [
			{"name": "ban", "method": "POST", "url": "{{BASE}}", "path": "/ban"}
		]}],
		"requests": []
	}`), 0644))

	v := NewValidator(resource.NewResolver(resource.NewLocalSource(), nil))

	got, err := v.ParseCollectionData(t.Context(), path, Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	admin := got[0]["folders"].([]any)[0].(schema.Object)
	ban := admin["requests"].([]any)[0].(schema.Object)
	assert.Equal(t, "{{BASE}}/ban", ban["endpoint"])
	assert.Equal(t, float64(2), admin["v"])

	_, err = v.ParseCollectionData(t.Context(), filepath.Join(dir, "users.yaml"), Options{})
	assert.Equal(t, core.CodeInvalidFileType, core.CodeOf(err))
}
