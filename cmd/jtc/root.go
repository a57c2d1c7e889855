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

// Package main implements jtc, a command line front end for creating Julia
// packages with PkgTemplates.jl.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cowdogmoo/jtc/config"
	"github.com/cowdogmoo/jtc/logging"
	"github.com/cowdogmoo/jtc/pathexpand"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Context key type for storing config
type configKeyType struct{}

// configKeyAnnotation maps a command flag onto a config file key, so the
// flag overrides the file value through viper.
const configKeyAnnotation = "jtc_config_key"

var (
	// configKey is the context key for storing the config
	configKey = configKeyType{}

	// Root command options
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "jtc",
	Short: "jtc - Julia package creator",
	Long: `jtc creates Julia packages with PkgTemplates.jl.

It turns presets, config file defaults and command line flags into a
PkgTemplates plugin list, runs julia to generate the package and adds a
mise task file for day to day work.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is $XDG_CONFIG_HOME/jtc/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json, color)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Quiet mode - only show errors")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose mode - show debug output")

	registerRootCompletions(rootCmd)

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(pluginsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// configFromContext retrieves the config from the command context.
// Returns nil if no config is stored in context.
func configFromContext(cmd *cobra.Command) *config.Config {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	return nil
}

// initConfig initializes configuration with proper precedence:
// CLI Flags > Environment Variables > Config File > Defaults
func initConfig(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// 1. Load config (defaults, config file, environment)
	var cfg *config.Config
	var loadErr error
	if cfgFile != "" {
		c, err := config.LoadFromPath(pathexpand.MustExpandPath(cfgFile))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	} else if cfg, loadErr = config.Load(); loadErr != nil {
		cfg = config.New()
	}

	// 2. Seed a viper instance with the loaded values
	v := viper.New()
	for _, key := range config.ScalarKeys() {
		if value, err := config.Get(cfg, key); err == nil {
			v.SetDefault(key, value)
		}
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3. Bind flags so explicit flags win
	if err := v.BindPFlag("log.level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return fmt.Errorf("failed to bind log-level flag: %w", err)
	}
	if err := v.BindPFlag("log.format", cmd.Root().PersistentFlags().Lookup("log-format")); err != nil {
		return fmt.Errorf("failed to bind log-format flag: %w", err)
	}
	BindCommandFlagsToViper(v, cmd)

	// 4. Logger from the final values
	logger := logging.NewCustomLoggerWithOptions(v.GetString("log.level"), v.GetString("log.format"), quiet, verbose)
	logger.ConsoleWriter = cmd.ErrOrStderr()
	logger.OutputWriter = cmd.OutOrStdout()
	ctx = logging.WithLogger(ctx, logger)

	if loadErr != nil {
		logging.WarnContext(ctx, "failed to load config, using defaults: %v", loadErr)
	}
	for _, w := range cfg.Warnings {
		logging.WarnContext(ctx, "%s", w)
	}

	// 5. Write the merged values back for the subcommands
	for _, key := range config.ScalarKeys() {
		if key == "default.with_mise" {
			cfg.Default.WithMise = v.GetBool(key)
			continue
		}
		if err := config.Set(cfg, key, v.GetString(key)); err != nil {
			return err
		}
	}

	ctx = context.WithValue(ctx, configKey, cfg)
	cmd.SetContext(ctx)

	return nil
}

// BindFlagsToViper binds all flags from a command to a Viper instance.
// Flags carrying a config key annotation bind to that key; the rest bind
// under viperKey with dashes turned into underscores.
func BindFlagsToViper(v *viper.Viper, cmd *cobra.Command, viperKey string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if viperKey != "" {
			key = viperKey + "." + key
		}
		if keys := f.Annotations[configKeyAnnotation]; len(keys) > 0 {
			key = keys[0]
		}

		if err := v.BindPFlag(key, f); err != nil {
			logging.WarnContext(cmd.Context(), "failed to bind flag %s to viper: %v", f.Name, err)
		}
	})
}

// BindCommandFlagsToViper binds flags from the current command and its parent persistent flags to Viper.
func BindCommandFlagsToViper(v *viper.Viper, cmd *cobra.Command) {
	BindFlagsToViper(v, cmd, getCommandPath(cmd))

	cmd.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			logging.WarnContext(cmd.Context(), "failed to bind inherited flag %s to viper: %v", f.Name, err)
		}
	})
}

// getCommandPath returns the command path for Viper key namespacing.
// For example, "jtc config set" returns "config.set".
func getCommandPath(cmd *cobra.Command) string {
	var parts []string
	current := cmd

	for current != nil && current.Parent() != nil {
		parts = append([]string{current.Name()}, parts...)
		current = current.Parent()
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ".")
}

// bindConfigKey marks flag name of fs as the command line form of key.
func bindConfigKey(fs *pflag.FlagSet, name, key string) {
	_ = fs.SetAnnotation(name, configKeyAnnotation, []string{key})
}
