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

package cli

import (
	"fmt"
	"strings"

	"github.com/cowdogmoo/jtc/config"
	"github.com/cowdogmoo/jtc/plugins"
)

// CreateCLIOptions defines command-line options for the create command.
//
// String fields left empty and nil pointer fields were not given on the
// command line and fall back to the config file.
type CreateCLIOptions struct {
	// Name is the package name, with any ".jl" suffix.
	Name string

	Author    string
	User      string
	Mail      string
	OutputDir string

	// Template is the preset name: minimal, standard or full.
	Template     string
	License      string
	JuliaVersion string

	NoDocs    bool
	NoCI      bool
	NoCodecov bool

	// Shorthands for single plugin options.
	FormatterStyle string
	SSH            *bool
	IgnorePatterns []string
	TestsAqua      *bool
	TestsJET       *bool
	TestsProject   *bool
	ProjectVersion string

	// PluginFlags holds the raw "k=v ..." values of --git, --tests,
	// --formatter and --project-file, in the order given.
	PluginFlags map[plugins.Kind][]string

	// PluginList is a plugin list expression replacing the preset.
	PluginList string

	NoMise           bool
	MiseFilenameBase string

	ForceInGitRepo bool
	DryRun         bool
	JuliaOutput    bool
}

// PluginOptions parses the plugin option flags and applies the shorthand
// flags on top of them.
func (o *CreateCLIOptions) PluginOptions() (map[plugins.Kind]map[string]any, error) {
	parsed, err := NewParser().ParsePluginOptions(o.PluginFlags)
	if err != nil {
		return nil, err
	}
	return MergePluginOptions(parsed, o.shorthandOptions()), nil
}

func (o *CreateCLIOptions) shorthandOptions() map[plugins.Kind]map[string]any {
	opts := map[plugins.Kind]map[string]any{}
	set := func(kind plugins.Kind, key string, value any) {
		if opts[kind] == nil {
			opts[kind] = map[string]any{}
		}
		opts[kind][key] = value
	}

	if o.FormatterStyle != "" {
		set(plugins.Formatter, "style", o.FormatterStyle)
	}
	if o.SSH != nil {
		set(plugins.Git, "ssh", *o.SSH)
	}
	if o.IgnorePatterns != nil {
		set(plugins.Git, "ignore", splitPatterns(o.IgnorePatterns))
	}
	if o.TestsAqua != nil {
		set(plugins.Tests, "aqua", *o.TestsAqua)
	}
	if o.TestsJET != nil {
		set(plugins.Tests, "jet", *o.TestsJET)
	}
	if o.TestsProject != nil {
		set(plugins.Tests, "project", *o.TestsProject)
	}
	if o.ProjectVersion != "" {
		set(plugins.ProjectFile, "version", o.ProjectVersion)
	}
	return opts
}

// splitPatterns accepts both repeated flags and comma separated values.
func splitPatterns(values []string) []string {
	patterns := []string{}
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
	}
	return patterns
}

// Change is one default updated by ApplyDefaults.
type Change struct {
	Key   string
	Value any
}

// String renders the change the way "jtc config set" reports it.
func (c Change) String() string {
	if items, ok := c.Value.([]string); ok {
		return fmt.Sprintf("Set default %s: %s", c.Key, strings.Join(items, ", "))
	}
	return fmt.Sprintf("Set default %s: %v", c.Key, c.Value)
}

// ApplyDefaults copies the options that were given into d and returns one
// Change per updated key, in a stable order.
func (o *CreateCLIOptions) ApplyDefaults(d *config.Defaults) ([]Change, error) {
	var changes []Change
	setString := func(key string, dst *string, value string) {
		if value != "" {
			*dst = value
			changes = append(changes, Change{Key: key, Value: value})
		}
	}

	setString("author", &d.Author, o.Author)
	setString("user", &d.User, o.User)
	setString("mail", &d.Mail, o.Mail)
	setString("output_dir", &d.OutputDir, o.OutputDir)
	setString("license", &d.License, o.License)
	setString("template", &d.Template, o.Template)
	setString("julia_version", &d.JuliaVersion, o.JuliaVersion)
	setString("mise_filename_base", &d.MiseFilenameBase, o.MiseFilenameBase)
	setString("plugins", &d.PluginList, o.PluginList)

	if o.NoMise {
		d.WithMise = false
		changes = append(changes, Change{Key: "with_mise", Value: false})
	}

	opts, err := o.PluginOptions()
	if err != nil {
		return nil, err
	}
	for _, kind := range plugins.Kinds() {
		kindOpts := opts[kind]
		for _, key := range sortedOptionKeys(kindOpts) {
			d.SetPluginOption(kind, key, kindOpts[key])
			changes = append(changes, Change{Key: fmt.Sprintf("%s.%s", kind, key), Value: kindOpts[key]})
		}
	}
	return changes, nil
}
