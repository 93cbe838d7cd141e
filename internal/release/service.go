/*
Package release performs the release operations behind the CLI: resolving
release tags, maintaining the pending release pull request, and publishing
GitHub releases.
*/
package release

import (
	"context"
	"fmt"
)

// Options are the validated invocation options shared by all operations.
type Options struct {
	// Token authenticates against the GitHub API
	Token string `yaml:"token,omitempty"`

	// APIURL is the GitHub API base URL
	APIURL string `yaml:"api-url,omitempty"`

	// DefaultBranch overrides the repository's default branch
	DefaultBranch string `yaml:"default-branch,omitempty"`

	// RepoURL identifies the repository (HTTPS, SSH, or owner/repo)
	RepoURL string `yaml:"repo-url,omitempty"`

	// Label marks the pending release pull request
	Label string `yaml:"label,omitempty"`

	// ReleaseAs forces the next version instead of computing a bump
	ReleaseAs string `yaml:"release-as,omitempty"`

	// BumpMinorPreMajor bumps the minor version for pre-1.0 releases
	BumpMinorPreMajor bool `yaml:"bump-minor-pre-major,omitempty"`

	// Path restricts the release to a subdirectory of the repository
	Path string `yaml:"path,omitempty"`

	// PackageName names the released package (used for monorepo tags)
	PackageName string `yaml:"package-name,omitempty"`

	// MonorepoTags prefixes tags with the package name
	MonorepoTags bool `yaml:"monorepo-tags,omitempty"`

	// VersionFile overrides the release type's version file
	VersionFile string `yaml:"version-file,omitempty"`

	// LastPackageVersion overrides the latest released version
	LastPackageVersion string `yaml:"last-package-version,omitempty"`

	// Fork creates the release PR from a fork
	Fork bool `yaml:"fork,omitempty"`

	// Snapshot includes prerelease tags when resolving versions
	Snapshot bool `yaml:"snapshot,omitempty"`

	// ReleaseType is the ecosystem convention the release follows
	ReleaseType string `yaml:"release-type,omitempty"`
}

// GitHubReleaseOptions are the options for publishing a GitHub release.
type GitHubReleaseOptions struct {
	Options

	// ChangelogPath is the markdown changelog to take release notes from
	ChangelogPath string `yaml:"changelog-path,omitempty"`

	// Draft creates the release as a draft
	Draft bool `yaml:"draft,omitempty"`
}

// PullRequest is a release pull request created or updated by the service.
type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Branch string `json:"-"`
	URL    string `json:"html_url"`
}

// Release is a published GitHub release.
type Release struct {
	ID      int64  `json:"id"`
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Draft   bool   `json:"draft"`
	URL     string `json:"html_url"`
}

// Service performs release operations against a repository host.
type Service interface {
	// ReleasePR creates the pending release pull request, or updates the
	// open one carrying the configured label.
	ReleasePR(ctx context.Context, opts Options) (*PullRequest, error)

	// LatestTag resolves the latest release tag of the repository.
	LatestTag(ctx context.Context, opts Options) (string, error)

	// GitHubRelease publishes a GitHub release with notes taken from the
	// changelog.
	GitHubRelease(ctx context.Context, opts GitHubReleaseOptions) (*Release, error)
}

// RequestError is a failed upstream API call. The response body is retained
// for debug output but never included in the error message.
type RequestError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

// Status returns the upstream HTTP status code.
func (e *RequestError) Status() int { return e.StatusCode }

// ResponseBody returns the raw upstream response body.
func (e *RequestError) ResponseBody() string { return e.Body }
