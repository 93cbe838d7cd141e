/*
Package secret resolves option values that may reference file-backed content.

Operators can pass a credential either literally or as a path to a file
holding it, keeping the value itself out of process listings and shell
history.
*/
package secret

import (
	"fmt"
	"os"
	"strings"
)

// Resolve returns the trimmed contents of value when it names an existing
// file, and value itself otherwise. A path that exists but cannot be read is
// an error: a credential must never silently degrade to its path.
func Resolve(value string) (string, error) {
	if value == "" {
		return value, nil
	}
	if _, err := os.Stat(value); err != nil {
		return value, nil
	}
	data, err := os.ReadFile(value)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", value, err)
	}
	return strings.TrimSpace(string(data)), nil
}
