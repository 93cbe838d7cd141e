/*
Package cmd provides the CLI commands for releasepr.
*/
package cmd

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/oarkflow/releasepr/internal/config"
	"github.com/oarkflow/releasepr/internal/fault"
	"github.com/oarkflow/releasepr/internal/release"
	"github.com/oarkflow/releasepr/internal/secret"
)

// Invocation carries the state of a single CLI run from parsing through
// dispatch to the fault boundary. One process handles exactly one
// invocation.
type Invocation struct {
	// Command is the selected subcommand, set once dispatch begins. The
	// fault boundary reads it for the failure message; it stays empty when
	// a failure precedes command selection.
	Command string

	// Debug enables stack traces and upstream diagnostics on failure
	Debug bool

	// ConfigFile is an explicit defaults file path (--config)
	ConfigFile string

	// Opts are the parsed global options, written during parsing and the
	// secret-resolution pass, read-only afterwards
	Opts release.Options

	// ChangelogPath and Draft belong to the github-release command
	ChangelogPath string
	Draft         bool

	// Service performs the release operations. Left nil, a GitHub client
	// is built from the resolved options on first use.
	Service release.Service

	Stdout io.Writer
	Stderr io.Writer
}

// service returns the release service for this invocation.
func (inv *Invocation) service() release.Service {
	if inv.Service == nil {
		inv.Service = release.NewGitHub(inv.Opts.Token, inv.Opts.APIURL)
	}
	return inv.Service
}

// newRootCmd builds the command tree for one invocation.
func newRootCmd(inv *Invocation) *cobra.Command {
	root := &cobra.Command{
		Use:   "releasepr",
		Short: "Automate release PRs and GitHub releases",
		Long: `releasepr automates the release workflow of a GitHub repository.

It maintains a pending release pull request, resolves the latest release
tag, and publishes GitHub releases from the changelog.

Example:
  releasepr release-pr --repo-url=owner/repo --token=$GITHUB_TOKEN
  releasepr latest-tag --repo-url=owner/repo
  releasepr github-release --repo-url=owner/repo --release-type=node`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cmd.Name() {
			case "release-pr", "latest-tag", "github-release":
				inv.Command = cmd.Name()
				return inv.setup(cmd)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return fault.Usagef(cmd.UsageString(), "exactly one command is required")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &fault.UsageError{Err: err, Usage: cmd.UsageString()}
	})

	flags := root.PersistentFlags()
	flags.BoolVar(&inv.Debug, "debug", false, "print stack traces and upstream diagnostics on failure")
	flags.StringVarP(&inv.ConfigFile, "config", "c", "", "defaults file (default is .releasepr.yaml)")
	flags.StringVar(&inv.Opts.Token, "token", "", "GitHub token, or path to a file containing it")
	flags.StringVar(&inv.Opts.APIURL, "api-url", release.DefaultAPIURL, "GitHub API base URL, or path to a file containing it")
	flags.StringVar(&inv.Opts.DefaultBranch, "default-branch", "", "branch to open the release PR against (default is the repository's default branch)")
	flags.StringVar(&inv.Opts.RepoURL, "repo-url", "", "repository URL (HTTPS, SSH, or owner/repo)")
	flags.StringVar(&inv.Opts.Label, "label", "autorelease: pending", "label marking the pending release PR")
	flags.StringVar(&inv.Opts.ReleaseAs, "release-as", "", "release with this version instead of computing a bump")
	flags.BoolVar(&inv.Opts.BumpMinorPreMajor, "bump-minor-pre-major", false, "bump the minor version for pre-1.0 releases")
	flags.StringVar(&inv.Opts.Path, "path", "", "release from this subdirectory of the repository")
	flags.StringVar(&inv.Opts.PackageName, "package-name", "", "name of the released package")
	flags.BoolVar(&inv.Opts.MonorepoTags, "monorepo-tags", false, "prefix tags with the package name")
	flags.StringVar(&inv.Opts.VersionFile, "version-file", "", "override the release type's version file")
	flags.StringVar(&inv.Opts.LastPackageVersion, "last-package-version", "", "override the latest released version")
	flags.BoolVar(&inv.Opts.Fork, "fork", false, "open the release PR from a fork")
	flags.BoolVar(&inv.Opts.Snapshot, "snapshot", false, "include prerelease tags when resolving versions")

	root.AddCommand(newReleasePRCmd(inv))
	root.AddCommand(newLatestTagCmd(inv))
	root.AddCommand(newGitHubReleaseCmd(inv))
	root.AddCommand(newVersionCmd(inv))
	return root
}

// setup runs after parsing and before dispatch: it wires the log level,
// layers in file-provided defaults, validates required and enumerated
// options, and resolves secret-bearing values.
func (inv *Invocation) setup(cmd *cobra.Command) error {
	if inv.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	log.SetOutput(inv.Stderr)

	// Each subcommand declares its own release-type flag so the defaults
	// stay per-command; fold the executed command's value in before the
	// config overlay.
	if f := cmd.Flags().Lookup("release-type"); f != nil {
		inv.Opts.ReleaseType = f.Value.String()
	}

	cfg, err := config.Load(inv.ConfigFile)
	if err != nil {
		return err
	}
	if err := cfg.Apply(&inv.Opts, cmd.Flags().Changed); err != nil {
		return err
	}

	if inv.Opts.RepoURL == "" {
		return fault.Usagef(cmd.UsageString(), "required flag --repo-url not set")
	}

	if cmd.Flags().Lookup("release-type") != nil {
		types := strings.Join(release.Types(), ", ")
		switch v := inv.Opts.ReleaseType; {
		case v == "":
			return fault.Usagef(cmd.UsageString(), "required flag --release-type not set (valid types: %s)", types)
		case !release.SupportedType(v):
			return fault.Usagef(cmd.UsageString(), "invalid release type %q (valid types: %s)", v, types)
		}
	}

	// Secret-resolvable options: a value naming a readable file is replaced
	// by that file's contents before the handler sees it.
	for _, field := range []*string{&inv.Opts.Token, &inv.Opts.APIURL} {
		resolved, err := secret.Resolve(*field)
		if err != nil {
			return err
		}
		*field = resolved
	}
	return nil
}
