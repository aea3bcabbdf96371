// Package core holds the pieces shared by every collie command: the error
// taxonomy surfaced to callers, the message normalizer used for anything a
// user reads, and the .collie config folder bootstrap.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is the stable identifier of a failure kind. Callers and the CLI
// layer switch on it; the string values never change.
type ErrorCode string

const (
	CodeInvalidFileType     ErrorCode = "INVALID_FILE_TYPE"
	CodeFileNotFound        ErrorCode = "FILE_NOT_FOUND"
	CodeMalformedCollection ErrorCode = "MALFORMED_COLLECTION"
	CodeMalformedEnv        ErrorCode = "MALFORMED_ENV_FILE"
	CodeUnknown             ErrorCode = "UNKNOWN_ERROR"

	// Workspace (remote) failures.
	CodeInvalidServerURL  ErrorCode = "INVALID_SERVER_URL"
	CodeConnectionRefused ErrorCode = "SERVER_CONNECTION_REFUSED"
	CodeTokenExpired      ErrorCode = "TOKEN_EXPIRED"
	CodeTokenInvalid      ErrorCode = "TOKEN_INVALID"
	CodeInvalidID         ErrorCode = "INVALID_ID"
)

// CollectionHint is attached to malformed collection errors.
const CollectionHint = "Please check the collection data."

// EnvironmentHint is attached to malformed environment errors.
const EnvironmentHint = "Please check the environment data."

// Error is a typed, terminal failure. It carries a Code and either a Path
// (file path or remote identifier) or a free-form Data payload.
type Error struct {
	Code  ErrorCode
	Path  string
	Data  any
	Cause error
}

// Error renders "<CODE>: <path> <data> (<cause>)", skipping empty parts.
func (e *Error) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Data != nil {
		parts = append(parts, fmt.Sprint(e.Data))
	}
	if e.Cause != nil {
		if len(parts) == 0 {
			parts = append(parts, e.Cause.Error())
		} else {
			parts = append(parts, "("+e.Cause.Error()+")")
		}
	}
	if len(parts) == 0 {
		return string(e.Code)
	}
	return string(e.Code) + ": " + strings.Join(parts, " ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code, so errors.Is(err, &Error{Code: c})
// works regardless of path and payload.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or "" when
// there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// InvalidFileType reports a path without a .json extension.
func InvalidFileType(path string) *Error {
	return &Error{Code: CodeInvalidFileType, Data: path}
}

// FileNotFound reports a missing file.
func FileNotFound(path string) *Error {
	return &Error{Code: CodeFileNotFound, Path: path}
}

// MalformedCollection reports collection data that failed validation at any
// depth. origin is the file path or remote id the tree came from.
func MalformedCollection(origin string, cause error) *Error {
	return &Error{Code: CodeMalformedCollection, Path: origin, Data: CollectionHint, Cause: cause}
}

// MalformedEnvironment reports environment data that failed validation.
func MalformedEnvironment(origin string, cause error) *Error {
	return &Error{Code: CodeMalformedEnv, Path: origin, Data: EnvironmentHint, Cause: cause}
}

// Unknown wraps an unexpected failure opaquely.
func Unknown(cause error) *Error {
	return &Error{Code: CodeUnknown, Cause: cause}
}
