// Package form builds multipart form bodies from ordered key/value entries.
package form

import (
	"fmt"
	"io"
	"mime/multipart"
)

// Entry is one form field.
type Entry struct {
	Key   string
	Value string
}

// Form is an ordered multi-map of fields. Repeated keys are kept as
// separate entries in insertion order.
type Form struct {
	entries  []Entry
	boundary string
}

// Encode builds a form holding entries in order.
func Encode(entries []Entry) *Form {
	f := &Form{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		f.Append(e.Key, e.Value)
	}
	return f
}

// Append adds a field after the existing ones.
func (f *Form) Append(key, value string) {
	f.entries = append(f.entries, Entry{Key: key, Value: value})
}

// Entries returns a copy of every field in order.
func (f *Form) Entries() []Entry {
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Values returns the values stored under key in order.
func (f *Form) Values(key string) []string {
	var values []string
	for _, e := range f.entries {
		if e.Key == key {
			values = append(values, e.Value)
		}
	}
	return values
}

// Len returns the number of fields.
func (f *Form) Len() int {
	return len(f.entries)
}

// SetBoundary fixes the multipart boundary used by WriteTo.
func (f *Form) SetBoundary(boundary string) {
	f.boundary = boundary
}

// WriteTo writes the form as a multipart/form-data body, one part per
// field, and returns the matching Content-Type header value.
func (f *Form) WriteTo(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)
	if f.boundary != "" {
		if err := mw.SetBoundary(f.boundary); err != nil {
			return "", fmt.Errorf("failed to set boundary: %w", err)
		}
	}

	for _, e := range f.entries {
		if err := mw.WriteField(e.Key, e.Value); err != nil {
			return "", fmt.Errorf("failed to write field %q: %w", e.Key, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to close form: %w", err)
	}
	return mw.FormDataContentType(), nil
}
