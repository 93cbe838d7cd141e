package release

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var versionPattern = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?$`)

// Version is a parsed semantic version.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// ParseVersion parses a semantic version, with or without a leading v.
func ParseVersion(s string) (Version, bool) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, false
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch, Prerelease: m[4]}, true
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// Compare returns -1, 0, or 1 ordering v against o. A prerelease sorts
// before the release it precedes.
func (v Version) Compare(o Version) int {
	for _, d := range [...]int{v.Major - o.Major, v.Minor - o.Minor, v.Patch - o.Patch} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return comparePrerelease(v.Prerelease, o.Prerelease)
}

// comparePrerelease orders prerelease suffixes per semver: the empty suffix
// ranks highest, numeric identifiers compare numerically and rank below
// alphanumeric ones, and a shorter identifier list ranks lower.
func comparePrerelease(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}

	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		ai, bi := as[i], bs[i]
		if ai == bi {
			continue
		}
		an, aerr := strconv.Atoi(ai)
		bn, berr := strconv.Atoi(bi)
		switch {
		case aerr == nil && berr == nil:
			if an < bn {
				return -1
			}
			return 1
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		default:
			return strings.Compare(ai, bi)
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

// Bump returns the next version after v for the given options. ReleaseAs
// wins when supplied; otherwise the patch version is bumped, or the minor
// version for pre-1.0 packages when BumpMinorPreMajor is set.
func (v Version) Bump(opts Options) (Version, error) {
	if opts.ReleaseAs != "" {
		next, ok := ParseVersion(opts.ReleaseAs)
		if !ok {
			return Version{}, fmt.Errorf("invalid release-as version: %s", opts.ReleaseAs)
		}
		return next, nil
	}
	next := Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	if opts.BumpMinorPreMajor && v.Major == 0 {
		next.Minor++
		next.Patch = 0
		return next, nil
	}
	next.Patch++
	return next, nil
}

// tagPrefix returns the tag prefix for the invocation: monorepo packages tag
// as <package>-v<version>, everything else as v<version>.
func tagPrefix(opts Options) string {
	if opts.MonorepoTags && opts.PackageName != "" {
		return opts.PackageName + "-v"
	}
	return "v"
}
