// Package resource fetches raw collection and environment content, either
// from a local JSON file or from a remote workspace.
package resource

import "context"

// Type names the kind of resource being fetched.
type Type string

const (
	TypeCollection  Type = "collection"
	TypeEnvironment Type = "environment"
)

// Request identifies the content to fetch.
type Request struct {
	PathOrID    string
	AccessToken string
	ServerURL   string
	Type        Type
}

// Source returns the raw decoded JSON content for a request.
type Source interface {
	Contents(ctx context.Context, req Request) (any, error)
}
