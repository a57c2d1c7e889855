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
	"github.com/spf13/cobra"
)

var checkFormat string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that julia, PkgTemplates.jl and mise are available",
	Long: `Probe the external tools jtc uses and report their versions.

julia and PkgTemplates.jl are required; mise is optional.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "table", "Output format (table, json, yaml)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	f := cli.NewOutputFormatter(checkFormat).WithWriter(cmd.OutOrStdout())
	if err := f.Validate(); err != nil {
		return err
	}

	deps, err := newGenerator().CheckDependencies(cmd.Context())
	if err != nil {
		return err
	}
	if err := f.DisplayDependencies(deps); err != nil {
		return err
	}

	for _, d := range deps {
		if d.Required && !d.Available {
			return fmt.Errorf("missing required dependency: %s", d.Name)
		}
	}
	return nil
}
