package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oarkflow/releasepr/internal/release"
)

func newGitHubReleaseCmd(inv *Invocation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "github-release",
		Short: "Publish a GitHub release from the changelog",
		Long: `Publish a GitHub release for the newest changelog entry, or for the
version given with --release-as.

Unlike the other commands, github-release requires an explicit
--release-type.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := release.GitHubReleaseOptions{
				Options:       inv.Opts,
				ChangelogPath: inv.ChangelogPath,
				Draft:         inv.Draft,
			}
			rel, err := inv.service().GitHubRelease(cmd.Context(), opts)
			if err != nil {
				return err
			}
			log.Info("release published", "tag", rel.TagName, "draft", rel.Draft, "url", rel.URL)
			return nil
		},
	}
	cmd.Flags().String("release-type", "", "release type of the package (required)")
	cmd.Flags().StringVar(&inv.ChangelogPath, "changelog-path", "CHANGELOG.md", "changelog to take release notes from")
	cmd.Flags().BoolVar(&inv.Draft, "draft", false, "create the release as a draft")
	return cmd
}
