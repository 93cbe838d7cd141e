/*
Package config loads the optional .releasepr.yaml defaults file.

The file supplies defaults for repository-level options so CI invocations
only need to pass what changes per run. Values given on the command line
always win; file values only fill options left unset.
*/
package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/oarkflow/releasepr/internal/release"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = ".releasepr.yaml"

// File is the parsed defaults file.
type File struct {
	release.Options `yaml:",inline"`
}

// Load reads a defaults file. When path is empty the default file name is
// tried and its absence is not an error; an explicitly named file must
// exist.
func Load(path string) (*File, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &f, nil
}

// flagFields maps every option to its flag name so Apply can tell values
// the user supplied apart from built-in flag defaults.
var flagFields = []struct {
	name string
	set  func(dst *release.Options, src release.Options)
}{
	{"token", func(d *release.Options, s release.Options) { d.Token = s.Token }},
	{"api-url", func(d *release.Options, s release.Options) { d.APIURL = s.APIURL }},
	{"default-branch", func(d *release.Options, s release.Options) { d.DefaultBranch = s.DefaultBranch }},
	{"repo-url", func(d *release.Options, s release.Options) { d.RepoURL = s.RepoURL }},
	{"label", func(d *release.Options, s release.Options) { d.Label = s.Label }},
	{"release-as", func(d *release.Options, s release.Options) { d.ReleaseAs = s.ReleaseAs }},
	{"bump-minor-pre-major", func(d *release.Options, s release.Options) { d.BumpMinorPreMajor = s.BumpMinorPreMajor }},
	{"path", func(d *release.Options, s release.Options) { d.Path = s.Path }},
	{"package-name", func(d *release.Options, s release.Options) { d.PackageName = s.PackageName }},
	{"monorepo-tags", func(d *release.Options, s release.Options) { d.MonorepoTags = s.MonorepoTags }},
	{"version-file", func(d *release.Options, s release.Options) { d.VersionFile = s.VersionFile }},
	{"last-package-version", func(d *release.Options, s release.Options) { d.LastPackageVersion = s.LastPackageVersion }},
	{"fork", func(d *release.Options, s release.Options) { d.Fork = s.Fork }},
	{"snapshot", func(d *release.Options, s release.Options) { d.Snapshot = s.Snapshot }},
	{"release-type", func(d *release.Options, s release.Options) { d.ReleaseType = s.ReleaseType }},
}

// Apply overlays file values onto opts. A flag the user set always wins;
// otherwise file values replace built-in flag defaults, and flag defaults
// fill whatever the file leaves out. changed reports whether a flag was
// supplied on the command line.
func (f *File) Apply(opts *release.Options, changed func(name string) bool) error {
	flagLayer := *opts
	merged := f.Options
	if err := mergo.Merge(&merged, flagLayer); err != nil {
		return fmt.Errorf("failed to apply config defaults: %w", err)
	}
	for _, field := range flagFields {
		if changed(field.name) {
			field.set(&merged, flagLayer)
		}
	}
	*opts = merged
	return nil
}
