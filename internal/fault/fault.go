/*
Package fault normalizes failures into bounded, user-facing diagnostics.

Every failure path of an invocation converges on a single Record that is
consumed exactly once: the default output is one short line on standard
error, and stack traces or upstream payloads surface only when debug output
was requested.
*/
package fault

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
)

// statusCarrier is implemented by errors that carry an upstream HTTP status.
type statusCarrier interface {
	Status() int
}

// bodyCarrier is implemented by errors that retain an upstream response body.
type bodyCarrier interface {
	ResponseBody() string
}

// Record is a single captured failure. It is created at the fault boundary
// and consumed exactly once by Normalize.
type Record struct {
	Message string
	Stack   string
	Status  int
	Body    string
}

// Capture builds a Record from an error returned through normal control flow.
func Capture(err error) *Record {
	rec := &Record{
		Message: err.Error(),
		Stack:   string(debug.Stack()),
	}
	var sc statusCarrier
	if errors.As(err, &sc) {
		rec.Status = sc.Status()
	}
	var bc bodyCarrier
	if errors.As(err, &bc) {
		rec.Body = bc.ResponseBody()
	}
	return rec
}

// FromPanic builds a Record from a recovered panic value.
func FromPanic(v interface{}) *Record {
	return &Record{
		Message: fmt.Sprintf("panic: %v", v),
		Stack:   string(debug.Stack()),
	}
}

// Normalize writes the bounded failure message for command to w. The default
// output is a single line; stack trace and captured upstream payload are
// printed after a separator only when debugEnabled is set.
func Normalize(w io.Writer, command string, rec *Record, debugEnabled bool) {
	msg := fmt.Sprintf("command %s failed", command)
	if rec.Status > 0 {
		msg = fmt.Sprintf("%s with status %d", msg, rec.Status)
	}
	fmt.Fprintln(w, msg)

	if !debugEnabled {
		return
	}
	fmt.Fprintln(w, "---")
	fmt.Fprintln(w, rec.Message)
	if rec.Body != "" {
		fmt.Fprintln(w, rec.Body)
	}
	fmt.Fprint(w, rec.Stack)
}

// UsageError marks a malformed invocation. The supervisor prints usage text
// for these instead of the normalized failure line.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Usagef builds a UsageError with the given usage text.
func Usagef(usage, format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...), Usage: usage}
}
