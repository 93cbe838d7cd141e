package cmd

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/oarkflow/releasepr/internal/fault"
)

// Execute runs one invocation and returns its process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	return Run(&Invocation{Stdout: stdout, Stderr: stderr}, args)
}

// Run executes one invocation inside a fault boundary. Usage errors print
// the message and usage text; every other failure, including panics escaping
// a handler, reaches the normalizer exactly once.
func Run(inv *Invocation, args []string) int {
	root := newRootCmd(inv)
	root.SetArgs(args)
	root.SetOut(inv.Stdout)
	root.SetErr(inv.Stderr)

	var once sync.Once
	exit := 0
	fail := func(rec *fault.Record) {
		once.Do(func() {
			fault.Normalize(inv.Stderr, inv.Command, rec, inv.Debug)
			exit = 1
		})
	}

	err := func() (err error) {
		defer func() {
			if v := recover(); v != nil {
				fail(fault.FromPanic(v))
			}
		}()
		return root.Execute()
	}()

	if err != nil {
		var usageErr *fault.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(inv.Stderr, "Error: %v\n\n%s", err, usageErr.Usage)
			return 1
		}
		if inv.Command == "" {
			// cobra rejected the invocation before any command was
			// selected: unknown command or misplaced arguments.
			fmt.Fprintf(inv.Stderr, "Error: %v\n\n%s", err, root.UsageString())
			return 1
		}
		fail(fault.Capture(err))
	}
	return exit
}
