package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	trailingNewlines = regexp.MustCompile(`\n+$`)
	whitespaceRun    = regexp.MustCompile(`\s{2,}`)
)

// Failure is the closed set of shapes a caught failure value is converted
// into before it is formatted for a user.
type Failure interface {
	failure()
}

// StructuredFailure is a failure carrying a code and a message.
type StructuredFailure struct {
	Code    string
	Message string
}

// StringFailure is a plain text failure.
type StringFailure string

// OpaqueFailure is any other value.
type OpaqueFailure struct {
	Value any
}

func (StructuredFailure) failure() {}
func (StringFailure) failure()     {}
func (OpaqueFailure) failure()     {}

// Classify converts an arbitrary failure value into a Failure.
func Classify(v any) Failure {
	switch val := v.(type) {
	case Failure:
		return val
	case string:
		return StringFailure(val)
	case error:
		var e *Error
		if errors.As(val, &e) {
			return StructuredFailure{Code: string(e.Code), Message: e.Error()}
		}
		return StringFailure(val.Error())
	default:
		return OpaqueFailure{Value: v}
	}
}

// NormalizeMessage turns any failure value into a single-line message fit
// for a terminal. Structured failures lose their "<code>:" and "error:"
// prefixes; opaque values are rendered as JSON.
func NormalizeMessage(v any) string {
	var msg string
	switch f := Classify(v).(type) {
	case StructuredFailure:
		msg = strings.TrimSpace(f.Message)
		if f.Code != "" {
			msg = strings.TrimPrefix(msg, f.Code+":")
		}
		msg = strings.TrimPrefix(strings.TrimSpace(msg), "error:")
	case StringFailure:
		msg = string(f)
	case OpaqueFailure:
		data, err := json.Marshal(f.Value)
		if err != nil {
			msg = fmt.Sprintf("%v", f.Value)
		} else {
			msg = string(data)
		}
	}

	msg = trailingNewlines.ReplaceAllString(msg, "")
	msg = whitespaceRun.ReplaceAllString(msg, " ")
	return strings.TrimSpace(msg)
}
