package main

import (
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/blackcoderx/collie/pkg/core"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .collie folder with a default config.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := core.InitializeConfigFolder(dir)
			if err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to initialize config folder").
					WithCause(err)
			}
			configPath := filepath.Join(dir, core.ConfigFolderName, "config.json")
			if created {
				printf(cmd, "Created %s\n", configPath)
			} else {
				printf(cmd, "%s already exists\n", configPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to create the config folder in")
	return cmd
}
