package main

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/blackcoderx/collie/pkg/schema"
	"github.com/blackcoderx/collie/pkg/tui"
	"github.com/spf13/cobra"
)

func newBrowseCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <path-or-id>",
		Short: "Browse a validated collection interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd, root)
			pathOrID := args[0]

			load := func(ctx context.Context) ([]schema.Object, error) {
				tree, err := a.validator.ParseCollectionData(ctx, pathOrID, a.opts)
				return tree, wrapError(err)
			}
			if err := tui.Run(pathOrID, load); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to run browser").
					WithCause(err)
			}
			return nil
		},
	}
}
