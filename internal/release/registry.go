package release

import (
	"fmt"
	"path"
	"sort"
)

// DefaultType is the release type assumed when a command does not require an
// explicit choice.
const DefaultType = "node"

// strategy describes the ecosystem conventions a release type follows.
type strategy struct {
	name        string
	versionFile string
}

var registry = map[string]strategy{}

// register adds a release type. Registering the same name twice is a
// configuration error and fails at startup.
func register(s strategy) {
	if _, ok := registry[s.name]; ok {
		panic(fmt.Sprintf("release type %q registered twice", s.name))
	}
	registry[s.name] = s
}

func init() {
	register(strategy{name: "node", versionFile: "package.json"})
	register(strategy{name: "python", versionFile: "setup.py"})
	register(strategy{name: "ruby", versionFile: "lib/version.rb"})
	register(strategy{name: "go"})
	register(strategy{name: "terraform-module"})
	register(strategy{name: "simple", versionFile: "version.txt"})
}

// Types returns the supported release types in sorted order.
func Types() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SupportedType reports whether name is a registered release type.
func SupportedType(name string) bool {
	_, ok := registry[name]
	return ok
}

// versionFileFor returns the version file the release PR updates: the
// release type's conventional file unless the invocation overrides it,
// resolved inside the package subdirectory when one is set.
func versionFileFor(opts Options) string {
	vf := opts.VersionFile
	if vf == "" {
		vf = registry[opts.ReleaseType].versionFile
	}
	if vf != "" && opts.Path != "" {
		vf = path.Join(opts.Path, vf)
	}
	return vf
}
