package release

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var changelogHeading = regexp.MustCompile(`(?m)^#{1,3} \[?v?(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)\]?`)

// ChangelogEntry returns the version and notes of one entry in a markdown
// changelog. An empty version selects the newest entry.
func ChangelogEntry(path, version string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read changelog: %w", err)
	}

	locs := changelogHeading.FindAllSubmatchIndex(data, -1)
	if len(locs) == 0 {
		return "", "", fmt.Errorf("no release entries found in %s", path)
	}

	for i, loc := range locs {
		entry := string(data[loc[2]:loc[3]])
		if version != "" && entry != version {
			continue
		}

		// Notes run from the end of the heading line to the next entry.
		start := loc[0]
		if nl := bytes.IndexByte(data[start:], '\n'); nl >= 0 {
			start += nl + 1
		} else {
			start = len(data)
		}
		end := len(data)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		return entry, strings.TrimSpace(string(data[start:end])), nil
	}
	return "", "", fmt.Errorf("no changelog entry for version %s in %s", version, path)
}
