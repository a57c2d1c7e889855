/*
Copyright © 2025 Jayson Grace <jayson.e.grace@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package generator turns a PackageConfig into a PkgTemplates run: it picks
// the plugins for a template preset, encodes them as a plugin list
// expression and runs the julia driver script.
package generator

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/cowdogmoo/jtc/errors"
	"github.com/cowdogmoo/jtc/pathexpand"
	"github.com/cowdogmoo/jtc/plugins"
)

// Template presets.
const (
	PresetMinimal  = "minimal"
	PresetStandard = "standard"
	PresetFull     = "full"
)

// DefaultProjectVersion is the ProjectFile version used when none is set.
const DefaultProjectVersion = "0.0.1"

var presets = map[string][]plugins.Kind{
	PresetMinimal: {
		plugins.ProjectFile, plugins.License, plugins.Git, plugins.Tests,
	},
	PresetStandard: {
		plugins.ProjectFile, plugins.License, plugins.Git, plugins.Tests,
		plugins.Formatter, plugins.GitHubActions, plugins.Codecov,
	},
	PresetFull: {
		plugins.ProjectFile, plugins.License, plugins.Git, plugins.Tests,
		plugins.Formatter, plugins.GitHubActions, plugins.Codecov,
		plugins.Documenter, plugins.TagBot, plugins.CompatHelper,
	},
}

// Presets returns the template preset names from smallest to largest.
func Presets() []string {
	return []string{PresetMinimal, PresetStandard, PresetFull}
}

// PresetKinds returns the plugin kinds enabled by a template preset.
func PresetKinds(name string) ([]plugins.Kind, bool) {
	kinds, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	out := make([]plugins.Kind, len(kinds))
	copy(out, kinds)
	return out, true
}

var licenseIdentifiers = map[string]string{
	"MIT":     "MIT",
	"Apache":  "ASL",
	"Apache2": "ASL",
	"BSD2":    "BSD2",
	"BSD3":    "BSD3",
	"GPL2":    "GPL-2.0+",
	"GPL3":    "GPL-3.0+",
	"MPL":     "MPL",
	"ISC":     "ISC",
	"LGPL2":   "LGPL-2.1+",
	"LGPL3":   "LGPL-3.0+",
	"AGPL3":   "AGPL-3.0+",
	"EUPL":    "EUPL-1.2+",
}

// Licenses returns the accepted license short names, sorted.
func Licenses() []string {
	names := make([]string, 0, len(licenseIdentifiers))
	for name := range licenseIdentifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LicenseIdentifier maps a license short name such as "Apache" to the
// identifier PkgTemplates expects ("ASL"). Names are matched
// case-insensitively. Identifiers pass through unchanged. known is false
// when name is neither a short name nor an identifier.
func LicenseIdentifier(name string) (id string, known bool) {
	name = strings.TrimSpace(name)
	for short, ident := range licenseIdentifiers {
		if strings.EqualFold(short, name) {
			return ident, true
		}
	}
	for _, ident := range licenseIdentifiers {
		if ident == name {
			return ident, true
		}
	}
	return name, false
}

// PackageConfig describes one package to create.
type PackageConfig struct {
	Name string

	// Author, User and Mail are handed to PkgTemplates. Empty values let
	// PkgTemplates fall back to the git configuration.
	Author string
	User   string
	Mail   string

	// OutputDir is the parent directory of the package. Empty means the
	// current directory.
	OutputDir string

	// Template is a preset name; see Presets.
	Template string
	// License is a short name or PkgTemplates identifier. Empty leaves the
	// License plugin out.
	License      string
	JuliaVersion string

	NoDocs    bool
	NoCI      bool
	NoCodecov bool

	// PluginOptions holds keyword options per plugin, merged from the
	// config file and the command line.
	PluginOptions map[plugins.Kind]map[string]any

	// PluginList is a plugin list expression that replaces the preset.
	PluginList string

	WithMise         bool
	MiseFilenameBase string

	ForceInGitRepo bool

	// ShowJuliaOutput streams julia's output instead of capturing it. The
	// logger's verbose mode implies it.
	ShowJuliaOutput bool
}

// ParentDir returns the absolute directory the package is created in. A
// leading "~" and environment variables in OutputDir are expanded.
func (c PackageConfig) ParentDir() (string, error) {
	dir, err := pathexpand.ExpandPath(c.OutputDir)
	if err != nil {
		return "", errors.Wrap("expand output directory", c.OutputDir, err)
	}
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(dir)
}

// PackageDir returns the absolute path of the package directory.
func (c PackageConfig) PackageDir() (string, error) {
	parent, err := c.ParentDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, c.Name), nil
}

// EnabledKinds returns the plugin kinds of the preset after the no-docs,
// no-ci and no-codecov toggles are applied.
func (c PackageConfig) EnabledKinds() ([]plugins.Kind, bool) {
	template := c.Template
	if template == "" {
		template = PresetStandard
	}
	kinds, ok := PresetKinds(template)
	if !ok {
		return nil, false
	}

	removed := map[plugins.Kind]bool{}
	if c.NoDocs {
		removed[plugins.Documenter] = true
	}
	if c.NoCI {
		removed[plugins.GitHubActions] = true
		removed[plugins.TagBot] = true
		removed[plugins.CompatHelper] = true
	}
	if c.NoCodecov {
		removed[plugins.Codecov] = true
	}
	if c.License == "" {
		removed[plugins.License] = true
	}

	out := kinds[:0]
	for _, k := range kinds {
		if !removed[k] {
			out = append(out, k)
		}
	}
	return out, true
}
