package release

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultAPIURL is the GitHub API base URL used when no override is given.
const DefaultAPIURL = "https://api.github.com"

var repoURLPattern = regexp.MustCompile(`^(?:(?:https?://|git@)?github\.com[/:])?([^/:@]+)/([^/:]+?)(?:\.git)?$`)

// ParseRepoURL extracts owner and repository name from an HTTPS URL, an SSH
// URL, or the owner/repo shorthand.
func ParseRepoURL(raw string) (string, string, error) {
	m := repoURLPattern.FindStringSubmatch(strings.TrimSuffix(raw, "/"))
	if m == nil {
		return "", "", fmt.Errorf("invalid repository URL: %s", raw)
	}
	return m[1], m[2], nil
}

// GitHub is a Service backed by the GitHub REST API.
type GitHub struct {
	apiURL string
	token  string
	client *http.Client
}

// NewGitHub creates a GitHub-backed release service.
func NewGitHub(token, apiURL string) *GitHub {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &GitHub{
		apiURL: strings.TrimSuffix(apiURL, "/"),
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// do performs one API request, decoding a 2xx response into out. Any other
// status becomes a RequestError carrying the raw body.
func (g *GitHub) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.apiURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("GitHub API request", "method", method, "path", path)
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			Op:         fmt.Sprintf("%s %s", method, strings.SplitN(path, "?", 2)[0]),
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// LatestTag resolves the highest release tag of the repository. Prerelease
// tags are skipped unless the invocation asked for snapshots; monorepo
// invocations only consider tags carrying the package prefix.
func (g *GitHub) LatestTag(ctx context.Context, opts Options) (string, error) {
	owner, repo, err := ParseRepoURL(opts.RepoURL)
	if err != nil {
		return "", err
	}

	prefix := tagPrefix(opts)
	var best Version
	var bestTag string

	for page := 1; ; page++ {
		var tags []struct {
			Name string `json:"name"`
		}
		path := fmt.Sprintf("/repos/%s/%s/tags?per_page=100&page=%d", owner, repo, page)
		if err := g.do(ctx, http.MethodGet, path, nil, &tags); err != nil {
			return "", err
		}
		for _, t := range tags {
			if !strings.HasPrefix(t.Name, prefix) {
				continue
			}
			v, ok := ParseVersion(strings.TrimPrefix(t.Name, prefix))
			if !ok {
				continue
			}
			if v.Prerelease != "" && !opts.Snapshot {
				continue
			}
			if bestTag == "" || v.Compare(best) > 0 {
				best = v
				bestTag = t.Name
			}
		}
		if len(tags) < 100 {
			break
		}
	}

	if bestTag == "" {
		return "", fmt.Errorf("no release tags found for %s/%s", owner, repo)
	}
	log.Debug("resolved latest tag", "tag", bestTag, "prefix", prefix)
	return bestTag, nil
}

// ReleasePR creates the pending release pull request, or updates the open
// one carrying the configured label.
func (g *GitHub) ReleasePR(ctx context.Context, opts Options) (*PullRequest, error) {
	owner, repo, err := ParseRepoURL(opts.RepoURL)
	if err != nil {
		return nil, err
	}

	base := opts.DefaultBranch
	if base == "" {
		var info struct {
			DefaultBranch string `json:"default_branch"`
		}
		if err := g.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s", owner, repo), nil, &info); err != nil {
			return nil, err
		}
		base = info.DefaultBranch
	}

	next, err := g.nextVersion(ctx, opts)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("chore: release %s", next)
	if opts.PackageName != "" {
		title = fmt.Sprintf("chore: release %s %s", opts.PackageName, next)
	}

	// Reuse the open pending PR when one exists.
	var open []PullRequest
	path := fmt.Sprintf("/repos/%s/%s/issues?state=open&labels=%s", owner, repo, url.QueryEscape(opts.Label))
	if err := g.do(ctx, http.MethodGet, path, nil, &open); err != nil {
		return nil, err
	}
	if len(open) > 0 {
		pr := open[0]
		if pr.Title != title {
			update := map[string]string{"title": title}
			if err := g.do(ctx, http.MethodPatch, fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, pr.Number), update, nil); err != nil {
				return nil, err
			}
			pr.Title = title
		}
		log.Debug("updated pending release PR", "number", pr.Number)
		return &pr, nil
	}

	branch := fmt.Sprintf("release-v%s", next)
	if opts.PackageName != "" {
		branch = fmt.Sprintf("release-%s-v%s", opts.PackageName, next)
	}
	if err := g.ensureBranch(ctx, owner, repo, base, branch, opts); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Release %s.", next)
	if vf := versionFileFor(opts); vf != "" {
		body = fmt.Sprintf("%s\n\nVersion file: %s", body, vf)
	}
	create := map[string]interface{}{
		"title": title,
		"head":  branch,
		"base":  base,
		"body":  body,
	}
	var pr PullRequest
	if err := g.do(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/pulls", owner, repo), create, &pr); err != nil {
		return nil, err
	}
	pr.Branch = branch

	labels := map[string][]string{"labels": {opts.Label}}
	if err := g.do(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/issues/%d/labels", owner, repo, pr.Number), labels, nil); err != nil {
		return nil, err
	}
	log.Debug("created release PR", "number", pr.Number, "branch", branch)
	return &pr, nil
}

// GitHubRelease publishes a GitHub release with notes taken from the
// changelog entry for the released version.
func (g *GitHub) GitHubRelease(ctx context.Context, opts GitHubReleaseOptions) (*Release, error) {
	owner, repo, err := ParseRepoURL(opts.RepoURL)
	if err != nil {
		return nil, err
	}

	version, notes, err := ChangelogEntry(opts.ChangelogPath, opts.ReleaseAs)
	if err != nil {
		return nil, err
	}
	tag := tagPrefix(opts.Options) + version
	parsed, _ := ParseVersion(version)

	create := map[string]interface{}{
		"tag_name":   tag,
		"name":       tag,
		"body":       notes,
		"draft":      opts.Draft,
		"prerelease": parsed.Prerelease != "",
	}
	var rel Release
	if err := g.do(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/releases", owner, repo), create, &rel); err != nil {
		return nil, err
	}
	log.Debug("published release", "tag", rel.TagName, "draft", rel.Draft)
	return &rel, nil
}

// nextVersion computes the version the release PR proposes.
func (g *GitHub) nextVersion(ctx context.Context, opts Options) (Version, error) {
	if opts.LastPackageVersion != "" {
		last, ok := ParseVersion(opts.LastPackageVersion)
		if !ok {
			return Version{}, fmt.Errorf("invalid last-package-version: %s", opts.LastPackageVersion)
		}
		return last.Bump(opts)
	}

	tag, err := g.LatestTag(ctx, opts)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return Version{}, err
		}
		// No tags yet: start from zero.
		return Version{}.Bump(opts)
	}
	last, ok := ParseVersion(strings.TrimPrefix(tag, tagPrefix(opts)))
	if !ok {
		return Version{}, fmt.Errorf("cannot parse latest tag %s", tag)
	}
	return last.Bump(opts)
}

// ensureBranch points the release branch at the head of base, creating it
// when missing. Fork-based invocations manage the branch themselves.
func (g *GitHub) ensureBranch(ctx context.Context, owner, repo, base, branch string, opts Options) error {
	if opts.Fork {
		log.Debug("fork release, skipping branch creation", "branch", branch)
		return nil
	}

	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	if err := g.do(ctx, http.MethodGet, fmt.Sprintf("/repos/%s/%s/git/ref/heads/%s", owner, repo, base), nil, &ref); err != nil {
		return err
	}

	create := map[string]string{
		"ref": "refs/heads/" + branch,
		"sha": ref.Object.SHA,
	}
	err := g.do(ctx, http.MethodPost, fmt.Sprintf("/repos/%s/%s/git/refs", owner, repo), create, nil)
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusUnprocessableEntity {
		// Branch already exists from a previous run, fast-forward it.
		update := map[string]interface{}{"sha": ref.Object.SHA, "force": true}
		return g.do(ctx, http.MethodPatch, fmt.Sprintf("/repos/%s/%s/git/refs/heads/%s", owner, repo, branch), update, nil)
	}
	return err
}
