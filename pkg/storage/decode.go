package storage

import (
	"encoding/json"
	"fmt"
)

// DecodeCollections converts validated collection trees into typed values.
// Fields unknown to the typed model are dropped.
func DecodeCollections(raw any) ([]Collection, error) {
	var out []Collection
	if err := remarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode collections: %w", err)
	}
	return out, nil
}

// DecodeEnvironment converts a validated environment into a typed value.
func DecodeEnvironment(raw any) (*Environment, error) {
	var env Environment
	if err := remarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	return &env, nil
}

// FormEntries returns the entries of a multipart body, or nil for any other
// body.
func (b Body) FormEntries() []FormEntry {
	if !b.IsMultipart() {
		return nil
	}
	var entries []FormEntry
	if err := remarshal(b.Content, &entries); err != nil {
		return nil
	}
	return entries
}

func remarshal(in any, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
