package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/blackcoderx/collie/pkg/storage"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const secretMask = "********"

var (
	envNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true)
	envKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0e0e0"))
	envDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c6c6c"))
)

func newEnvCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "env <path-or-id>",
		Short: "Validate an environment and list its variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnv(cmd.Context(), cmd, root, args[0])
		},
	}
}

func runEnv(ctx context.Context, cmd *cobra.Command, root *rootOptions, pathOrID string) error {
	a := newApp(cmd, root)

	envObj, err := a.validator.ParseEnvironmentData(ctx, pathOrID, a.opts)
	if err != nil {
		return wrapError(err)
	}
	env, err := storage.DecodeEnvironment(envObj)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode validated environment").
			WithCause(err)
	}

	printf(cmd, "%s\n", formatEnvironment(env, pathOrID))
	return nil
}

// formatEnvironment lists variables one per line with secrets masked.
func formatEnvironment(env *storage.Environment, fallbackName string) string {
	name := env.Name
	if name == "" {
		name = fallbackName
	}

	width := 0
	for _, v := range env.Variables {
		width = max(width, len(v.Key))
	}

	var sb strings.Builder
	sb.WriteString(envNameStyle.Render(name))
	sb.WriteString(envDimStyle.Render(" (" + pluralize(len(env.Variables), "variable") + ")"))
	for _, v := range env.Variables {
		value := v.Value
		if v.Secret {
			value = envDimStyle.Render(secretMask)
		}
		sb.WriteString("\n  " + envKeyStyle.Render(v.Key+strings.Repeat(" ", width-len(v.Key))) + "  " + value)
	}
	return sb.String()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
