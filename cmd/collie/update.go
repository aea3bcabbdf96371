package main

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/blang/semver"
	"github.com/charmbracelet/huh"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

const releaseRepo = "blackcoderx/collie"

func newUpdateCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update collie to the latest version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if version == "dev" {
				printf(cmd, "You are running a development version of collie. Update is not supported.\n")
				return nil
			}

			latest, found, err := selfupdate.DetectLatest(releaseRepo)
			if err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to detect latest version").
					WithCause(err)
			}

			current, err := semver.Parse(version)
			if err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to parse current version " + version).
					WithCause(err)
			}

			if !found || latest.Version.LTE(current) {
				printf(cmd, "Current version is the latest\n")
				return nil
			}

			if !yes {
				ok := false
				err := huh.NewConfirm().
					Title("Update to " + latest.Version.String() + "?").
					Affirmative("Yes").
					Negative("No").
					Value(&ok).
					Run()
				if err != nil || !ok {
					return nil
				}
			}

			exe, err := os.Executable()
			if err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("could not locate executable path").
					WithCause(err)
			}
			if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to update binary").
					WithCause(err)
			}
			printf(cmd, "Successfully updated to version %s\n", latest.Version)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "update without asking")
	return cmd
}
