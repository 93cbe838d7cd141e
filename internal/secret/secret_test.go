package secret

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLiteral(t *testing.T) {
	got, err := Resolve("ghp_notafile")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "ghp_notafile" {
		t.Fatalf("expected literal passthrough, got %q", got)
	}
}

func TestResolveEmpty(t *testing.T) {
	got, err := Resolve("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}

func TestResolveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("abc123\n"), 0600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	got, err := Resolve(path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("expected trimmed file contents, got %q", got)
	}
}

func TestResolveUnreadable(t *testing.T) {
	// A directory passes the existence check but cannot be read as a file;
	// that must surface as an error, not fall back to the path.
	_, err := Resolve(t.TempDir())
	if err == nil {
		t.Fatal("expected error for unreadable secret source")
	}
	if !strings.Contains(err.Error(), "failed to read secret file") {
		t.Fatalf("unexpected error: %v", err)
	}
}
