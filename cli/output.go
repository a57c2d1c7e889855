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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cowdogmoo/jtc/generator"
	"github.com/cowdogmoo/jtc/logging"
	"github.com/cowdogmoo/jtc/plugins"
	"gopkg.in/yaml.v3"
)

// Formats accepted by NewOutputFormatter.
var Formats = []string{"text", "table", "json", "yaml"}

// OutputFormatter formats command output for display.
type OutputFormatter struct {
	format string // text, table, json, yaml
	out    io.Writer
}

// NewOutputFormatter creates a new output formatter with the specified
// format, writing to stdout.
func NewOutputFormatter(format string) *OutputFormatter {
	return &OutputFormatter{
		format: strings.ToLower(format),
		out:    os.Stdout,
	}
}

// WithWriter redirects output to w.
func (f *OutputFormatter) WithWriter(w io.Writer) *OutputFormatter {
	f.out = w
	return f
}

// Validate reports an unsupported format.
func (f *OutputFormatter) Validate() error {
	switch f.format {
	case "", "text", "table", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown format: %s (supported: %s)", f.format, strings.Join(Formats, ", "))
	}
}

// encode writes data as JSON or YAML and reports whether the format was
// one of those.
func (f *OutputFormatter) encode(data any) (bool, error) {
	switch f.format {
	case "json":
		encoder := json.NewEncoder(f.out)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(data)
	case "yaml":
		encoder := yaml.NewEncoder(f.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return true, err
		}
		return true, encoder.Close()
	default:
		return false, f.Validate()
	}
}

// DisplayDependencies displays the dependency report of "jtc check".
func (f *OutputFormatter) DisplayDependencies(deps []generator.Dependency) error {
	if done, err := f.encode(deps); done || err != nil {
		return err
	}

	w := tabwriter.NewWriter(f.out, 0, 0, 3, ' ', 0)
	if _, err := fmt.Fprintln(w, "DEPENDENCY\tSTATUS\tVERSION\tNOTES"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "----------\t------\t-------\t-----"); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, dep := range deps {
		status := "ok"
		if !dep.Available {
			status = "missing"
			if !dep.Required {
				status = "missing (optional)"
			}
		}
		version := dep.Version
		if version == "" {
			version = "-"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dep.Name, status, version, dep.Detail); err != nil {
			return fmt.Errorf("failed to write dependency row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// PluginInfo describes one registered plugin kind.
type PluginInfo struct {
	Kind   plugins.Kind    `json:"kind" yaml:"kind"`
	Params []plugins.Param `json:"params,omitempty" yaml:"params,omitempty"`
}

// DisplayPluginList displays the registered plugin kinds and their
// parameters.
func (f *OutputFormatter) DisplayPluginList(kinds []plugins.Kind) error {
	infos := make([]PluginInfo, 0, len(kinds))
	for _, k := range kinds {
		infos = append(infos, PluginInfo{Kind: k, Params: plugins.Schema(k)})
	}
	if done, err := f.encode(infos); done || err != nil {
		return err
	}

	w := tabwriter.NewWriter(f.out, 0, 0, 3, ' ', 0)
	if _, err := fmt.Fprintln(w, "PLUGIN\tPARAMETERS"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "------\t----------"); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, info := range infos {
		params := make([]string, 0, len(info.Params))
		for _, p := range info.Params {
			params = append(params, fmt.Sprintf("%s (%s)", p.Name, p.Type))
		}
		desc := strings.Join(params, ", ")
		if desc == "" {
			desc = "-"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", info.Kind, desc); err != nil {
			return fmt.Errorf("failed to write plugin row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	_, err := fmt.Fprintf(f.out, "\nTotal plugins: %d\n", len(infos))
	return err
}

// DecodeReport is the result of decoding a plugin list expression.
type DecodeReport struct {
	Plugins    []plugins.Spec    `json:"plugins" yaml:"plugins"`
	Expression string            `json:"expression" yaml:"expression"`
	Warnings   []plugins.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewDecodeReport builds a report for decoded specs.
func NewDecodeReport(specs []plugins.Spec, warnings []plugins.Warning) DecodeReport {
	if specs == nil {
		specs = []plugins.Spec{}
	}
	return DecodeReport{
		Plugins:    specs,
		Expression: plugins.Encode(specs),
		Warnings:   warnings,
	}
}

// DisplayDecodeReport displays decoded plugins followed by the dropped
// expressions.
func (f *OutputFormatter) DisplayDecodeReport(report DecodeReport) error {
	if done, err := f.encode(report); done || err != nil {
		return err
	}

	if f.format == "table" {
		return f.displayDecodeTable(report)
	}

	for _, spec := range report.Plugins {
		if _, err := fmt.Fprintln(f.out, spec.Expression()); err != nil {
			return err
		}
	}
	for _, w := range report.Warnings {
		if _, err := fmt.Fprintf(f.out, "# %s\n", w); err != nil {
			return err
		}
	}
	return nil
}

func (f *OutputFormatter) displayDecodeTable(report DecodeReport) error {
	w := tabwriter.NewWriter(f.out, 0, 0, 3, ' ', 0)
	if _, err := fmt.Fprintln(w, "PLUGIN\tSTATUS\tEXPRESSION"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "------\t------\t----------"); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}
	for _, spec := range report.Plugins {
		if _, err := fmt.Fprintf(w, "%s\tok\t%s\n", spec.Kind, spec.Expression()); err != nil {
			return fmt.Errorf("failed to write plugin row: %w", err)
		}
	}
	for _, warn := range report.Warnings {
		kind := string(warn.Kind)
		if kind == "" {
			kind = "?"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", kind, warn.Reason, warn.Expression); err != nil {
			return fmt.Errorf("failed to write warning row: %w", err)
		}
	}
	return w.Flush()
}

// DisplayExpression writes an encoded plugin list expression.
func (f *OutputFormatter) DisplayExpression(specs []plugins.Spec) error {
	if done, err := f.encode(NewDecodeReport(specs, nil)); done || err != nil {
		return err
	}
	_, err := fmt.Fprintln(f.out, plugins.Encode(specs))
	return err
}

// DisplayCreated logs the created package and the next steps.
func (f *OutputFormatter) DisplayCreated(ctx context.Context, created *generator.Created) error {
	if done, err := f.encode(created); done || err != nil {
		return err
	}

	logging.InfoContext(ctx, "Package created successfully at: %s", created.PackageDir)
	logging.InfoContext(ctx, "Plugins: %s", created.Expression)
	if created.MiseFile != "" {
		logging.InfoContext(ctx, "mise config: %s", created.MiseFile)
	}

	logging.InfoContext(ctx, "Next steps:")
	logging.InfoContext(ctx, "  cd %s", created.PackageDir)
	if created.MiseFile != "" {
		logging.InfoContext(ctx, "  mise run instantiate  # Install dependencies")
		logging.InfoContext(ctx, "  mise run test         # Run tests")
		logging.InfoContext(ctx, "  mise run repl         # Start Julia REPL")
	} else {
		logging.InfoContext(ctx, "  julia --project=. -e 'using Pkg; Pkg.test()'")
	}
	return nil
}
