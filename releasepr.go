/*
Package releasepr provides the command-line layer for automating release
pull requests and GitHub releases.

The tool handles one invocation per process: it parses and validates the
command line, resolves credential options that may reference files, and
dispatches to one of three operations:

	releasepr release-pr      # Create or update the pending release PR
	releasepr latest-tag      # Resolve the latest release tag
	releasepr github-release  # Publish a GitHub release from the changelog

All failures are reported as a single bounded line on standard error; pass
--debug to include the full stack trace and upstream diagnostics.

For more information, see the documentation at https://github.com/oarkflow/releasepr
*/
package releasepr

// Version is the current version of releasepr
const Version = "1.0.0"

// BuildDate is set at build time
var BuildDate string

// GitCommit is set at build time
var GitCommit string
