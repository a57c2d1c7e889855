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
	"strings"

	"github.com/cowdogmoo/jtc/logging"
	"golang.org/x/sync/errgroup"
)

// Dependency names reported by CheckDependencies.
const (
	DepJulia        = "julia"
	DepPkgTemplates = "PkgTemplates.jl"
	DepMise         = "mise"
)

// MinJuliaVersion is the oldest Julia release PkgTemplates supports.
const MinJuliaVersion = "1.6"

// Dependency is the status of one external tool.
type Dependency struct {
	Name      string `json:"name" yaml:"name"`
	Available bool   `json:"available" yaml:"available"`
	Required  bool   `json:"required" yaml:"required"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Detail    string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// CheckDependencies probes julia, PkgTemplates.jl and mise concurrently
// and reports them in that order. Missing tools are reported, not returned
// as errors.
func (g *Generator) CheckDependencies(ctx context.Context) ([]Dependency, error) {
	deps := []Dependency{
		{Name: DepJulia, Required: true},
		{Name: DepPkgTemplates, Required: true},
		{Name: DepMise},
	}

	probes := []func(context.Context, *Dependency){
		g.probeJulia,
		g.probePkgTemplates,
		g.probeMise,
	}

	eg, ctx := errgroup.WithContext(ctx)
	for i, probe := range probes {
		eg.Go(func() error {
			probe(ctx, &deps[i])
			return ctx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return deps, nil
}

func (g *Generator) probeJulia(ctx context.Context, dep *Dependency) {
	result, err := g.runner.Run(ctx, Command{Name: g.Julia, Args: []string{"--version"}})
	if err != nil {
		dep.Detail = "install Julia from https://julialang.org/downloads/"
		logging.DebugContext(ctx, "julia --version failed: %v", err)
		return
	}
	dep.Available = true
	ver, err := g.versions.ParseJuliaOutput(result.Stdout)
	if err != nil || ver == nil {
		return
	}
	dep.Version = ver.String()
	if ok, err := g.versions.SatisfiesCompat(dep.Version, MinJuliaVersion); err == nil && !ok {
		dep.Available = false
		dep.Detail = fmt.Sprintf("julia %s is older than the supported minimum %s", dep.Version, MinJuliaVersion)
	}
}

func (g *Generator) probePkgTemplates(ctx context.Context, dep *Dependency) {
	if _, err := g.runner.Run(ctx, Command{Name: g.Julia, Args: []string{"-e", "using PkgTemplates"}}); err != nil {
		dep.Detail = `julia -e 'using Pkg; Pkg.add("PkgTemplates")'`
		logging.DebugContext(ctx, "PkgTemplates check failed: %v", err)
		return
	}
	dep.Available = true
}

func (g *Generator) probeMise(ctx context.Context, dep *Dependency) {
	result, err := g.runner.Run(ctx, Command{Name: "mise", Args: []string{"--version"}})
	if err != nil {
		dep.Detail = "optional; see https://mise.jdx.dev"
		logging.DebugContext(ctx, "mise --version failed: %v", err)
		return
	}
	dep.Available = true
	if fields := strings.Fields(result.Stdout); len(fields) > 0 {
		dep.Version = fields[0]
	}
}
