package fault

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type statusErr struct {
	status int
	body   string
}

func (e *statusErr) Error() string        { return fmt.Sprintf("upstream status %d", e.status) }
func (e *statusErr) Status() int          { return e.status }
func (e *statusErr) ResponseBody() string { return e.body }

func TestNormalizeDefault(t *testing.T) {
	var buf bytes.Buffer
	Normalize(&buf, "latest-tag", Capture(&statusErr{status: 404, body: `{"message":"not found"}`}), false)

	if got := buf.String(); got != "command latest-tag failed with status 404\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestNormalizeWithoutStatus(t *testing.T) {
	var buf bytes.Buffer
	Normalize(&buf, "release-pr", Capture(errors.New("boom")), false)

	if got := buf.String(); got != "command release-pr failed\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestNormalizeDebug(t *testing.T) {
	var buf bytes.Buffer
	Normalize(&buf, "latest-tag", Capture(&statusErr{status: 500, body: "internal"}), true)

	out := buf.String()
	if !strings.HasPrefix(out, "command latest-tag failed with status 500\n---\n") {
		t.Fatalf("expected separator after message, got %q", out)
	}
	if !strings.Contains(out, "upstream status 500") {
		t.Fatalf("expected error message in debug output, got %q", out)
	}
	if !strings.Contains(out, "internal") {
		t.Fatalf("expected upstream body in debug output, got %q", out)
	}
	if !strings.Contains(out, "goroutine") {
		t.Fatalf("expected stack trace in debug output, got %q", out)
	}
}

func TestCaptureWrappedStatus(t *testing.T) {
	err := fmt.Errorf("release failed: %w", &statusErr{status: 403})
	rec := Capture(err)

	if rec.Status != 403 {
		t.Fatalf("expected status 403 through wrapping, got %d", rec.Status)
	}
}

func TestFromPanic(t *testing.T) {
	rec := FromPanic("unexpected state")
	if rec.Message != "panic: unexpected state" {
		t.Fatalf("unexpected message: %q", rec.Message)
	}
	if rec.Stack == "" {
		t.Fatal("expected stack trace")
	}
}

func TestUsageError(t *testing.T) {
	err := Usagef("Usage: x", "invalid value %q", "rust")

	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *UsageError, got %T", err)
	}
	if usageErr.Usage != "Usage: x" {
		t.Fatalf("unexpected usage text: %q", usageErr.Usage)
	}
	if !strings.Contains(err.Error(), `"rust"`) {
		t.Fatalf("unexpected message: %v", err)
	}
}
