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

package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cowdogmoo/jtc/errors"
	"github.com/cowdogmoo/jtc/git"
	"github.com/cowdogmoo/jtc/logging"
	"github.com/cowdogmoo/jtc/plugins"
	"github.com/cowdogmoo/jtc/templates"
)

// Directory and file permissions for created files.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// PkgTemplatesHint is appended to julia errors that mention PkgTemplates.
const PkgTemplatesHint = `Hint: Make sure PkgTemplates.jl is installed: julia -e 'using Pkg; Pkg.add("PkgTemplates")'`

var juliaErrorLine = regexp.MustCompile(`(Error:|Error creating package:)\s*(.+)`)

// Generator creates Julia packages by running the PkgTemplates driver
// script through a CommandRunner.
type Generator struct {
	runner   CommandRunner
	versions *templates.VersionManager
	// Julia is the julia executable, "julia" unless overridden.
	Julia string
}

// New returns a Generator using runner. A nil runner runs real commands.
func New(runner CommandRunner) *Generator {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Generator{
		runner:   runner,
		versions: templates.NewVersionManager(),
		Julia:    "julia",
	}
}

// Plan is everything needed to run PkgTemplates for one package.
type Plan struct {
	Config     PackageConfig  `json:"-" yaml:"-"`
	PackageDir string         `json:"package_dir" yaml:"package_dir"`
	Plugins    []plugins.Spec `json:"plugins" yaml:"plugins"`
	Expression string         `json:"expression" yaml:"expression"`
	Args       []string       `json:"args" yaml:"args"`
}

// Created describes a package that was generated.
type Created struct {
	PackageDir string         `json:"package_dir" yaml:"package_dir"`
	Plugins    []plugins.Spec `json:"plugins" yaml:"plugins"`
	Expression string         `json:"expression" yaml:"expression"`
	MiseFile   string         `json:"mise_file,omitempty" yaml:"mise_file,omitempty"`
}

// Prepare validates cfg and resolves the plugin expression and driver
// arguments without touching the file system.
func (g *Generator) Prepare(ctx context.Context, cfg PackageConfig) (*Plan, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, fmt.Errorf("%w: name is empty", errors.ErrInvalidPackageName)
	}
	if err := g.versions.ValidateJuliaVersion(cfg.JuliaVersion); err != nil {
		return nil, errors.Wrap("validate julia version", cfg.JuliaVersion, err)
	}

	parent, err := cfg.ParentDir()
	if err != nil {
		return nil, errors.Wrap("resolve output directory", cfg.OutputDir, err)
	}

	specs, err := BuildPlugins(ctx, cfg)
	if err != nil {
		return nil, err
	}
	expr, err := PluginExpression(ctx, specs)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Author) == "" && strings.TrimSpace(cfg.Mail) != "" {
		logging.DebugContext(ctx, "Ignoring mail %q: it is only used together with author", cfg.Mail)
	}

	args := templates.DriverArgs{
		Name:         cfg.Name,
		Authors:      cfg.Author,
		User:         cfg.User,
		Mail:         cfg.Mail,
		Dir:          parent,
		Plugins:      expr,
		JuliaVersion: strings.TrimPrefix(cfg.JuliaVersion, "v"),
	}

	return &Plan{
		Config:     cfg,
		PackageDir: filepath.Join(parent, cfg.Name),
		Plugins:    specs,
		Expression: expr,
		Args:       args.Slice(),
	}, nil
}

// GenerateJuliaCode returns the julia program a dry run would execute.
func (g *Generator) GenerateJuliaCode(ctx context.Context, cfg PackageConfig) (string, error) {
	plan, err := g.Prepare(ctx, cfg)
	if err != nil {
		return "", err
	}

	authors := cfg.Author
	if authors != "" && cfg.Mail != "" {
		authors = fmt.Sprintf("%s <%s>", cfg.Author, cfg.Mail)
	}
	return templates.RenderJuliaCode(templates.CodeData{
		Name:         cfg.Name,
		Authors:      authors,
		User:         cfg.User,
		Dir:          filepath.Dir(plan.PackageDir),
		Plugins:      plan.Expression,
		JuliaVersion: strings.TrimPrefix(cfg.JuliaVersion, "v"),
	})
}

// CreatePackage generates the package described by cfg and writes the
// mise task file into it.
func (g *Generator) CreatePackage(ctx context.Context, cfg PackageConfig) (*Created, error) {
	plan, err := g.Prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}
	parent := filepath.Dir(plan.PackageDir)

	if !cfg.ForceInGitRepo {
		if root, inside := git.RepoRoot(parent); inside {
			return nil, fmt.Errorf("%w: %s (use --force-in-git-repo to create it anyway)", errors.ErrInsideGitRepo, root)
		}
	}
	if _, err := os.Stat(plan.PackageDir); err == nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrPackageExists, plan.PackageDir)
	}
	if _, err := g.runner.LookPath(g.Julia); err != nil {
		return nil, errors.ErrJuliaNotFound
	}
	if err := os.MkdirAll(parent, dirPerm); err != nil {
		return nil, errors.Wrap("create output directory", parent, err)
	}

	if err := g.runDriver(ctx, plan); err != nil {
		return nil, err
	}

	created := &Created{
		PackageDir: plan.PackageDir,
		Plugins:    plan.Plugins,
		Expression: plan.Expression,
	}

	if cfg.WithMise {
		path, err := g.writeMise(plan)
		if err != nil {
			return nil, err
		}
		created.MiseFile = path
	}

	logging.InfoContext(ctx, "Created package %s", plan.PackageDir)
	return created, nil
}

func (g *Generator) runDriver(ctx context.Context, plan *Plan) error {
	script, err := os.CreateTemp("", "jtc-create-*.jl")
	if err != nil {
		return errors.Wrap("create driver script", "", err)
	}
	defer func() { _ = os.Remove(script.Name()) }()

	if _, err := io.WriteString(script, templates.DriverScript()); err != nil {
		_ = script.Close()
		return errors.Wrap("write driver script", script.Name(), err)
	}
	if err := script.Close(); err != nil {
		return errors.Wrap("write driver script", script.Name(), err)
	}

	verbose := plan.Config.ShowJuliaOutput || logging.FromContext(ctx).IsVerbose()
	cmd := Command{
		Name: g.Julia,
		Args: append([]string{"--startup-file=no", script.Name()}, plan.Args...),
	}
	if verbose {
		cmd.Stream = logging.FromContext(ctx).ConsoleWriter
	}

	logging.DebugContext(ctx, "Running %s with plugins %s", g.Julia, plan.Expression)
	result, runErr := g.runner.Run(ctx, cmd)

	_, statErr := os.Stat(plan.PackageDir)
	created := statErr == nil

	if runErr == nil {
		if !created {
			return fmt.Errorf("%w: %s", errors.ErrPackageNotCreated, plan.PackageDir)
		}
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if result == nil {
		return errors.Wrap("run julia", g.Julia, runErr)
	}

	if created && (verbose || !juliaErrorLine.MatchString(result.Stdout)) {
		logging.WarnContext(ctx, "julia exited with status %d but %s was created", result.ExitCode, plan.PackageDir)
		return nil
	}
	return juliaError(result)
}

// juliaError builds an error from a failed julia run, preferring the last
// "Error:" line julia printed.
func juliaError(result *Result) *errors.JuliaError {
	jerr := &errors.JuliaError{ExitCode: result.ExitCode}

	if matches := juliaErrorLine.FindAllStringSubmatch(result.Stdout, -1); len(matches) > 0 {
		jerr.Message = strings.TrimSpace(matches[len(matches)-1][2])
	} else if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
		jerr.Message = "julia execution failed: " + lastLine(stderr)
	}
	if strings.Contains(result.Stderr, "PkgTemplates") {
		jerr.Hint = PkgTemplatesHint
	}
	return jerr
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func (g *Generator) writeMise(plan *Plan) (string, error) {
	kinds := map[plugins.Kind]bool{}
	for _, spec := range plan.Plugins {
		kinds[spec.Kind] = true
	}

	data, err := templates.RenderMise(templates.MiseData{
		PackageName:  plan.Config.Name,
		JuliaVersion: strings.TrimPrefix(plan.Config.JuliaVersion, "v"),
		Formatter:    kinds[plugins.Formatter],
		Docs:         kinds[plugins.Documenter],
	})
	if err != nil {
		return "", err
	}

	path := filepath.Join(plan.PackageDir, templates.MiseFileName(plan.Config.MiseFilenameBase))
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", errors.Wrap("write mise config", path, err)
	}
	return path, nil
}
