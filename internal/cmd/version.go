package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oarkflow/releasepr"
)

func newVersionCmd(inv *Invocation) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(inv.Stdout, "releasepr %s\n", releasepr.Version)
			if releasepr.GitCommit != "" {
				fmt.Fprintf(inv.Stdout, "  Commit: %s\n", releasepr.GitCommit)
			}
			if releasepr.BuildDate != "" {
				fmt.Fprintf(inv.Stdout, "  Built:  %s\n", releasepr.BuildDate)
			}
		},
	}
}
