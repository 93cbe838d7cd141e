package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oarkflow/releasepr/internal/release"
)

func newReleasePRCmd(inv *Invocation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release-pr",
		Short: "Create or update the pending release pull request",
		Long: `Create a pull request proposing the next release, or update the open
one carrying the pending-release label.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := inv.service().ReleasePR(cmd.Context(), inv.Opts)
			if err != nil {
				return err
			}
			log.Info("release PR ready", "number", pr.Number, "url", pr.URL)
			return nil
		},
	}
	cmd.Flags().String("release-type", release.DefaultType, "release type of the package")
	return cmd
}
