package release

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const changelog = `# Changelog

## [1.3.0](https://github.com/acme/widget/compare/v1.2.0...v1.3.0) (2026-08-20)

### Features

* add widget polishing

## [1.2.0](https://github.com/acme/widget/compare/v1.1.0...v1.2.0) (2026-07-01)

### Bug Fixes

* stop widget wobble
`

func writeChangelog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	if err := os.WriteFile(path, []byte(changelog), 0644); err != nil {
		t.Fatalf("write changelog: %v", err)
	}
	return path
}

func TestChangelogEntryNewest(t *testing.T) {
	version, notes, err := ChangelogEntry(writeChangelog(t), "")
	if err != nil {
		t.Fatalf("changelog entry: %v", err)
	}
	if version != "1.3.0" {
		t.Fatalf("expected 1.3.0, got %s", version)
	}
	if !strings.Contains(notes, "widget polishing") {
		t.Fatalf("expected 1.3.0 notes, got %q", notes)
	}
	if strings.Contains(notes, "wobble") {
		t.Fatalf("notes leaked into older entry: %q", notes)
	}
}

func TestChangelogEntryByVersion(t *testing.T) {
	version, notes, err := ChangelogEntry(writeChangelog(t), "1.2.0")
	if err != nil {
		t.Fatalf("changelog entry: %v", err)
	}
	if version != "1.2.0" {
		t.Fatalf("expected 1.2.0, got %s", version)
	}
	if !strings.Contains(notes, "wobble") {
		t.Fatalf("expected 1.2.0 notes, got %q", notes)
	}
}

func TestChangelogEntryMissingVersion(t *testing.T) {
	if _, _, err := ChangelogEntry(writeChangelog(t), "9.9.9"); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestChangelogEntryMissingFile(t *testing.T) {
	if _, _, err := ChangelogEntry(filepath.Join(t.TempDir(), "nope.md"), ""); err == nil {
		t.Fatal("expected error for missing changelog")
	}
}

func TestChangelogEntryNoEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	if err := os.WriteFile(path, []byte("# Changelog\n\nnothing yet\n"), 0644); err != nil {
		t.Fatalf("write changelog: %v", err)
	}
	if _, _, err := ChangelogEntry(path, ""); err == nil {
		t.Fatal("expected error for changelog without entries")
	}
}
