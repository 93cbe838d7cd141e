package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oarkflow/releasepr/internal/release"
)

func newLatestTagCmd(inv *Invocation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latest-tag",
		Short: "Resolve the latest release tag of the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := inv.service().LatestTag(cmd.Context(), inv.Opts)
			if err != nil {
				return err
			}
			// The resolved tag is the command's only stdout output.
			fmt.Fprintln(inv.Stdout, tag)
			return nil
		},
	}
	cmd.Flags().String("release-type", release.DefaultType, "release type of the package")
	return cmd
}
