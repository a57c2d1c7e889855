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

package main

import (
	"fmt"

	"github.com/cowdogmoo/jtc/cli"
	"github.com/cowdogmoo/jtc/config"
	"github.com/cowdogmoo/jtc/generator"
	"github.com/cowdogmoo/jtc/git"
	"github.com/cowdogmoo/jtc/logging"
	"github.com/cowdogmoo/jtc/plugins"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// defaultFlags holds the flags shared by create and config set. Tri-state
// booleans are read with changedBool after parsing.
type defaultFlags struct {
	opts        cli.CreateCLIOptions
	gitOpts     []string
	testsOpts   []string
	formatOpts  []string
	projectOpts []string
	ssh         bool
	aqua        bool
	jet         bool
	project     bool
	format      string
}

var (
	createFlags = &defaultFlags{}

	// newGenerator is swapped in tests.
	newGenerator = func() *generator.Generator { return generator.New(nil) }
)

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new Julia package",
	Long: `Create a new Julia package with PkgTemplates.jl.

Values not given on the command line come from the config file, then from
the built-in defaults. Author, user and mail fall back to git config inside
PkgTemplates when they are not set anywhere.`,
	Example: `  # Standard package with defaults from the config file
  jtc create MyPkg

  # Full preset with SSH remotes and Aqua checks
  jtc create MyPkg -t full --ssh --tests-aqua

  # Plugin options as key=value pairs
  jtc create MyPkg --git "ssh=true ignore=[*.tmp,build]" --tests "jet=true"

  # Explicit plugin list instead of a preset
  jtc create MyPkg --plugins '[License(; name="MIT"), Git(), Tests()]'

  # Show the Julia code without running it
  jtc create MyPkg --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	addCreateFlags(createCmd.Flags(), createFlags)
	registerCreateCompletions(createCmd)
}

// addCreateFlags registers every create flag.
func addCreateFlags(fs *pflag.FlagSet, f *defaultFlags) {
	addDefaultFlags(fs, f)
	addPresetFlags(fs, f)

	o := &f.opts
	fs.BoolVar(&o.ForceInGitRepo, "force-in-git-repo", false, "Allow creating the package inside a git repository")
	fs.BoolVar(&o.DryRun, "dry-run", false, "Print the Julia code instead of running it")
	fs.BoolVar(&o.JuliaOutput, "julia-output", false, "Stream julia output while creating the package")
	fs.StringVar(&f.format, "format", "text", "Output format (text, json, yaml)")
}

// addPresetFlags registers the flags that remove plugins from the preset.
func addPresetFlags(fs *pflag.FlagSet, f *defaultFlags) {
	o := &f.opts
	fs.BoolVar(&o.NoDocs, "no-docs", false, "Disable the Documenter plugin")
	fs.BoolVar(&o.NoCI, "no-ci", false, "Disable GitHubActions, TagBot and CompatHelper")
	fs.BoolVar(&o.NoCodecov, "no-codecov", false, "Disable the Codecov plugin")
}

// addDefaultFlags registers the flags that map onto config defaults.
func addDefaultFlags(fs *pflag.FlagSet, f *defaultFlags) {
	o := &f.opts
	fs.StringVarP(&o.Author, "author", "a", "", "Package author")
	fs.StringVarP(&o.User, "user", "u", "", "GitHub user or organization")
	fs.StringVarP(&o.Mail, "mail", "m", "", "Author e-mail")
	fs.StringVarP(&o.OutputDir, "output-dir", "o", "", "Directory the package is created in")
	fs.StringVarP(&o.Template, "template", "t", "", "Template preset (minimal, standard, full)")
	fs.StringVar(&o.License, "license", "", "License short name (MIT, Apache, BSD3, ...)")
	fs.StringVar(&o.JuliaVersion, "julia-version", "", "Minimum Julia version for [compat]")
	fs.StringVar(&o.PluginList, "plugins", "", "Plugin list expression replacing the preset")
	fs.StringVar(&o.MiseFilenameBase, "mise-filename-base", "", "Base name of the mise config file")
	fs.BoolVar(&o.NoMise, "no-mise", false, "Do not write a mise config file")

	fs.StringVar(&o.FormatterStyle, "formatter-style", "", "JuliaFormatter style (nostyle, sciml, blue, yas)")
	fs.BoolVar(&f.ssh, "ssh", false, "Use SSH remote URLs in the Git plugin")
	fs.StringSliceVar(&o.IgnorePatterns, "ignore-patterns", nil, "Extra .gitignore patterns")
	fs.BoolVar(&f.aqua, "tests-aqua", false, "Add Aqua.jl quality checks")
	fs.BoolVar(&f.jet, "tests-jet", false, "Add JET.jl static analysis")
	fs.BoolVar(&f.project, "tests-project", false, "Use a separate test/Project.toml")
	fs.StringVar(&o.ProjectVersion, "project-version", "", "Initial package version")

	fs.StringArrayVar(&f.gitOpts, "git", nil, `Git plugin options, e.g. "ssh=true manifest=false"`)
	fs.StringArrayVar(&f.testsOpts, "tests", nil, `Tests plugin options, e.g. "aqua=true jet=true"`)
	fs.StringArrayVar(&f.formatOpts, "formatter", nil, `Formatter plugin options, e.g. "style=blue"`)
	fs.StringArrayVar(&f.projectOpts, "project-file", nil, `ProjectFile plugin options, e.g. "version=0.1.0"`)

	for flag, key := range map[string]string{
		"author":             "default.author",
		"user":               "default.user",
		"mail":               "default.mail",
		"output-dir":         "default.output_dir",
		"template":           "default.template",
		"license":            "default.license",
		"julia-version":      "default.julia_version",
		"plugins":            "default.plugins",
		"mise-filename-base": "default.mise_filename_base",
	} {
		bindConfigKey(fs, flag, key)
	}
}

// resolve fills the tri-state and repeated flags of f.opts from cmd.
func (f *defaultFlags) resolve(cmd *cobra.Command) *cli.CreateCLIOptions {
	o := &f.opts
	o.SSH = changedBool(cmd, "ssh", f.ssh)
	o.TestsAqua = changedBool(cmd, "tests-aqua", f.aqua)
	o.TestsJET = changedBool(cmd, "tests-jet", f.jet)
	o.TestsProject = changedBool(cmd, "tests-project", f.project)

	o.PluginFlags = map[plugins.Kind][]string{}
	for kind, values := range map[plugins.Kind][]string{
		plugins.Git:         f.gitOpts,
		plugins.Tests:       f.testsOpts,
		plugins.Formatter:   f.formatOpts,
		plugins.ProjectFile: f.projectOpts,
	} {
		if len(values) > 0 {
			o.PluginFlags[kind] = values
		}
	}
	return o
}

func changedBool(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("config not available in context")
	}

	opts := createFlags.resolve(cmd)
	opts.Name = args[0]

	formatter := cli.NewOutputFormatter(createFlags.format).WithWriter(cmd.OutOrStdout())
	if err := formatter.Validate(); err != nil {
		return err
	}
	if err := cli.NewValidator().ValidateCreateOptions(opts); err != nil {
		return err
	}

	pkg, err := packageConfig(cmd, cfg, opts)
	if err != nil {
		return err
	}

	gen := newGenerator()
	if opts.DryRun {
		code, err := gen.GenerateJuliaCode(ctx, pkg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), code)
		return err
	}

	created, err := gen.CreatePackage(ctx, pkg)
	if err != nil {
		return err
	}
	return formatter.DisplayCreated(ctx, created)
}

// packageConfig merges the command line options over the config defaults.
// Scalar flags already reached cfg through initConfig.
func packageConfig(cmd *cobra.Command, cfg *config.Config, opts *cli.CreateCLIOptions) (generator.PackageConfig, error) {
	d := cfg.Default

	flagOpts, err := opts.PluginOptions()
	if err != nil {
		return generator.PackageConfig{}, err
	}

	if d.Author == "" || d.User == "" || d.Mail == "" {
		id := git.NewConfigReader().Identity(cmd.Context())
		logging.DebugContext(cmd.Context(), "Unset author/user/mail fall back to git config in PkgTemplates: author=%q github.user=%q",
			id.Author(), id.GitHubUser)
	}

	return generator.PackageConfig{
		Name:             opts.Name,
		Author:           firstNonEmpty(opts.Author, d.Author),
		User:             firstNonEmpty(opts.User, d.User),
		Mail:             firstNonEmpty(opts.Mail, d.Mail),
		OutputDir:        firstNonEmpty(opts.OutputDir, d.OutputDir),
		Template:         firstNonEmpty(opts.Template, d.Template),
		License:          firstNonEmpty(opts.License, d.License),
		JuliaVersion:     firstNonEmpty(opts.JuliaVersion, d.JuliaVersion),
		NoDocs:           opts.NoDocs,
		NoCI:             opts.NoCI,
		NoCodecov:        opts.NoCodecov,
		PluginOptions:    cli.MergePluginOptions(d.PluginOptions, flagOpts),
		PluginList:       firstNonEmpty(opts.PluginList, d.PluginList),
		WithMise:         d.WithMise && !opts.NoMise,
		MiseFilenameBase: firstNonEmpty(opts.MiseFilenameBase, d.MiseFilenameBase),
		ForceInGitRepo:   opts.ForceInGitRepo,
		ShowJuliaOutput:  opts.JuliaOutput,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
