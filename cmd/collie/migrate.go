package main

import (
	"context"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/atotto/clipboard"
	"github.com/blackcoderx/collie/pkg/resource"
	"github.com/blackcoderx/collie/pkg/storage"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

type migrateOptions struct {
	Out   string
	Diff  bool
	Write bool
	Yes   bool
	Copy  bool
}

// confirmOverwrite asks before the source file is replaced.
var confirmOverwrite = func(path string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title("Overwrite " + path + " with the migrated collection?").
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

func newMigrateCommand(root *rootOptions) *cobra.Command {
	opts := migrateOptions{}
	cmd := &cobra.Command{
		Use:   "migrate <path-or-id>",
		Short: "Migrate a collection to the current schema",
		Long: `Migrate a collection to the current schema. Without --out or --write the
migrated JSON is printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), cmd, root, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the migrated tree to a .json or .yaml file")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "show a unified diff between the input and the migrated tree")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "overwrite the source file")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "do not ask before overwriting")
	cmd.Flags().BoolVar(&opts.Copy, "copy", false, "copy the migrated JSON to the clipboard")
	return cmd
}

func runMigrate(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts migrateOptions, pathOrID string) error {
	if opts.Write && !storage.FileExists(pathOrID) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("--write needs a local collection file")
	}

	a := newApp(cmd, root)

	raw, err := a.source.Contents(ctx, resource.Request{
		PathOrID:    pathOrID,
		AccessToken: a.opts.Token,
		ServerURL:   a.opts.Server,
		Type:        resource.TypeCollection,
	})
	if err != nil {
		return wrapError(err)
	}

	tree, err := a.validator.ResolveCollections(raw, pathOrID)
	if err != nil {
		return wrapError(err)
	}
	migrated := objectsToAny(tree)

	data, err := storage.Marshal(migrated, ".json")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode migrated collection").
			WithCause(err)
	}

	if opts.Diff {
		if err := printDiff(cmd, raw, pathOrID, string(data)); err != nil {
			return err
		}
	}

	if opts.Out != "" {
		if err := storage.SaveTree(migrated, opts.Out); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write " + opts.Out).
				WithCause(err)
		}
		printf(cmd, "Wrote %d collections to %s\n", len(tree), opts.Out)
	}

	if opts.Write {
		if err := overwrite(cmd, pathOrID, migrated, opts.Yes); err != nil {
			return err
		}
	}

	if opts.Copy {
		if err := clipboard.WriteAll(string(data)); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to copy to clipboard").
				WithCause(err)
		}
		printf(cmd, "Copied migrated JSON to the clipboard\n")
	}

	if opts.Out == "" && !opts.Write && !opts.Diff && !opts.Copy {
		printf(cmd, "%s", data)
	}
	return nil
}

// printDiff compares the fetched input, re-encoded the same way as the
// output, with the migrated tree. A single collection is compared as a
// one-element list.
func printDiff(cmd *cobra.Command, raw any, pathOrID, migrated string) error {
	if _, isArray := raw.([]any); !isArray {
		raw = []any{raw}
	}
	original, err := storage.Marshal(raw, ".json")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode original collection").
			WithCause(err)
	}

	diff := storage.Diff(filepath.Base(pathOrID), string(original), migrated)
	if diff == "" {
		printf(cmd, "No changes: %s is already current\n", pathOrID)
		return nil
	}
	printf(cmd, "%s", diff)
	return nil
}

func overwrite(cmd *cobra.Command, path string, migrated []any, yes bool) error {
	if !yes {
		ok, err := confirmOverwrite(path)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("confirmation failed").
				WithCause(err)
		}
		if !ok {
			printf(cmd, "Left %s unchanged\n", path)
			return nil
		}
	}

	if err := storage.SaveTree(migrated, path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + path).
			WithCause(err)
	}
	printf(cmd, "Updated %s\n", path)
	return nil
}
