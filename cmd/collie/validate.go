package main

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/blackcoderx/collie/pkg/storage"
	"github.com/spf13/cobra"
)

type validateOptions struct {
	Env string
	Raw bool
}

func newValidateCommand(root *rootOptions) *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <path-or-id>",
		Short: "Validate a collection and print a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, root, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.Env, "env", "e", "", "environment file used to substitute {{VARS}}")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "print plain Markdown")
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts validateOptions, pathOrID string) error {
	a := newApp(cmd, root)

	tree, err := a.validator.ParseCollectionData(ctx, pathOrID, a.opts)
	if err != nil {
		return wrapError(err)
	}

	collections, err := storage.DecodeCollections(objectsToAny(tree))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode validated collections").
			WithCause(err)
	}

	var vars map[string]string
	if opts.Env != "" {
		envObj, err := a.validator.ParseEnvironmentData(ctx, opts.Env, a.opts)
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
		vars = env.Map()
	}

	report := buildReport(pathOrID, collections, vars)
	if !opts.Raw {
		report = renderMarkdown(report)
	}
	printf(cmd, "%s", report)
	return nil
}
