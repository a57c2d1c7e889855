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
	"github.com/cowdogmoo/jtc/generator"
	"github.com/cowdogmoo/jtc/plugins"
	"github.com/spf13/cobra"
)

var pluginsFormat string

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "Inspect PkgTemplates plugin lists",
	Long: `Inspect the PkgTemplates plugins jtc knows about and the plugin list
expressions handed to julia.`,
}

var pluginsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known plugins and their parameters",
	Args:  cobra.NoArgs,
	RunE:  runPluginsList,
}

var pluginsDecodeCmd = &cobra.Command{
	Use:   "decode EXPR",
	Short: "Decode a plugin list expression",
	Long: `Decode a plugin list expression and show the plugins jtc keeps.

Unknown, duplicate and malformed entries are dropped and listed as warnings.`,
	Example: `  jtc plugins decode '[License(; name="MIT"), Git(; ssh=true), Foo()]'`,
	Args:    cobra.ExactArgs(1),
	RunE:    runPluginsDecode,
}

var (
	encodeFlags = &defaultFlags{}

	pluginsEncodeCmd = &cobra.Command{
		Use:   "encode",
		Short: "Print the plugin list a create would use",
		Long: `Build the plugin list from the config file and the given flags, the
same way "jtc create" does, and print its expression.`,
		Example: `  jtc plugins encode -t full --no-codecov --git "ssh=true"`,
		Args:    cobra.NoArgs,
		RunE:    runPluginsEncode,
	}
)

func init() {
	pluginsCmd.AddCommand(pluginsListCmd)
	pluginsCmd.AddCommand(pluginsDecodeCmd)
	pluginsCmd.AddCommand(pluginsEncodeCmd)

	pluginsCmd.PersistentFlags().StringVar(&pluginsFormat, "format", "text", "Output format (text, table, json, yaml)")

	fs := pluginsEncodeCmd.Flags()
	addDefaultFlags(fs, encodeFlags)
	addPresetFlags(fs, encodeFlags)
	registerCreateCompletions(pluginsEncodeCmd)
}

func pluginsFormatter(cmd *cobra.Command) (*cli.OutputFormatter, error) {
	f := cli.NewOutputFormatter(pluginsFormat).WithWriter(cmd.OutOrStdout())
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func runPluginsList(cmd *cobra.Command, args []string) error {
	f, err := pluginsFormatter(cmd)
	if err != nil {
		return err
	}
	return f.DisplayPluginList(plugins.Kinds())
}

func runPluginsDecode(cmd *cobra.Command, args []string) error {
	f, err := pluginsFormatter(cmd)
	if err != nil {
		return err
	}
	specs, warnings := plugins.Decode(cmd.Context(), args[0])
	return f.DisplayDecodeReport(cli.NewDecodeReport(specs, warnings))
}

func runPluginsEncode(cmd *cobra.Command, args []string) error {
	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("config not available in context")
	}
	f, err := pluginsFormatter(cmd)
	if err != nil {
		return err
	}

	opts := encodeFlags.resolve(cmd)
	if err := cli.NewValidator().ValidateDefaults(opts); err != nil {
		return err
	}
	pkg, err := packageConfig(cmd, cfg, opts)
	if err != nil {
		return err
	}

	specs, err := generator.BuildPlugins(cmd.Context(), pkg)
	if err != nil {
		return err
	}
	if _, err := generator.PluginExpression(cmd.Context(), specs); err != nil {
		return err
	}
	return f.DisplayExpression(specs)
}
