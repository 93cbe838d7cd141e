package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oarkflow/releasepr/internal/config"
	"github.com/oarkflow/releasepr/internal/release"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "releasepr.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func changedSet(names ...string) func(string) bool {
	set := map[string]bool{}
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestApplyFillsUnsetOptions(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "repo-url: acme/widget\ndefault-branch: main\nmonorepo-tags: true\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	opts := release.Options{DefaultBranch: "develop"}
	if err := cfg.Apply(&opts, changedSet("default-branch")); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if opts.RepoURL != "acme/widget" {
		t.Fatalf("expected file to fill repo-url, got %q", opts.RepoURL)
	}
	if opts.DefaultBranch != "develop" {
		t.Fatalf("expected supplied flag to win, got %q", opts.DefaultBranch)
	}
	if !opts.MonorepoTags {
		t.Fatal("expected monorepo-tags from file")
	}
}

func TestApplyOverridesFlagDefaults(t *testing.T) {
	body := "label: 'autorelease: tagged'\napi-url: https://ghe.example.com/api/v3\n"
	cfg, err := config.Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Flag defaults are present in opts but the user touched neither flag,
	// so the file values must win over them.
	opts := release.Options{
		APIURL: "https://api.github.com",
		Label:  "autorelease: pending",
	}
	if err := cfg.Apply(&opts, changedSet()); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if opts.Label != "autorelease: tagged" {
		t.Fatalf("expected file label to replace the default, got %q", opts.Label)
	}
	if opts.APIURL != "https://ghe.example.com/api/v3" {
		t.Fatalf("expected file api-url to replace the default, got %q", opts.APIURL)
	}
}

func TestApplySuppliedFlagBeatsFile(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "fork: true\nlabel: 'autorelease: tagged'\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// An explicit --fork=false must survive a file saying fork: true even
	// though false is the zero value.
	opts := release.Options{Fork: false, Label: "autorelease: pending"}
	if err := cfg.Apply(&opts, changedSet("fork", "label")); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if opts.Fork {
		t.Fatal("expected explicit --fork=false to win over the file")
	}
	if opts.Label != "autorelease: pending" {
		t.Fatalf("expected supplied label to win, got %q", opts.Label)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadDefaultMissing(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	opts := release.Options{RepoURL: "acme/widget"}
	if err := cfg.Apply(&opts, changedSet("repo-url")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if opts.RepoURL != "acme/widget" {
		t.Fatalf("expected options untouched, got %q", opts.RepoURL)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "repo-url: [\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}
