package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/blackcoderx/collie/pkg/core"
	"github.com/blackcoderx/collie/pkg/resource"
	"github.com/charmbracelet/lipgloss"
)

var errorLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true)

// wrapError attaches an errbuilder code to a library error so the exit code
// can be derived from it.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return err
	}
	msg := core.NormalizeMessage(err)
	if code := core.CodeOf(err); code != "" {
		msg = "[" + string(code) + "] " + msg
	}
	return errbuilder.New().
		WithCode(codeFor(err)).
		WithMsg(msg).
		WithCause(err)
}

func codeFor(err error) errbuilder.ErrCode {
	if errors.Is(err, resource.ErrOutsideRoot) {
		return errbuilder.CodePermissionDenied
	}
	switch core.CodeOf(err) {
	case core.CodeInvalidFileType, core.CodeInvalidServerURL:
		return errbuilder.CodeInvalidArgument
	case core.CodeFileNotFound, core.CodeInvalidID:
		return errbuilder.CodeNotFound
	case core.CodeMalformedCollection, core.CodeMalformedEnv:
		return errbuilder.CodeFailedPrecondition
	case core.CodeTokenExpired, core.CodeTokenInvalid:
		return errbuilder.CodePermissionDenied
	default:
		return errbuilder.CodeInternal
	}
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeNotFound:
		return 3
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodePermissionDenied:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return core.NormalizeMessage(err)
}

// printError writes a styled one-line error.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", errorLabelStyle.Render("Error"), errorMessage(err))
}
