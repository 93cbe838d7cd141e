/*
Package main provides the CLI entry point for releasepr.
*/
package main

import (
	"os"

	"github.com/oarkflow/releasepr/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
