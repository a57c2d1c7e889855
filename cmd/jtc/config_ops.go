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
	"github.com/cowdogmoo/jtc/git"
	"github.com/cowdogmoo/jtc/logging"
	"github.com/cowdogmoo/jtc/pathexpand"
	"github.com/spf13/cobra"
)

// configPath returns the file config commands write to: --config when
// given, otherwise the default location.
func configPath() (string, error) {
	if cfgFile != "" {
		return pathexpand.MustExpandPath(cfgFile), nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	return path, nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path, err := configPath()
	if err != nil {
		return err
	}

	if config.Exists(path) {
		if !configForce {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
		logging.WarnContext(ctx, "Overwriting existing config file at %s", path)
		logging.WarnContext(ctx, "This will reset all custom settings to defaults!")
	}

	cfg := config.New()
	id := git.NewConfigReader().Identity(ctx)
	cfg.Default.Author = id.Name
	cfg.Default.Mail = id.Email
	cfg.Default.User = id.GitHubUser

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	logging.InfoContext(ctx, "Configuration file created at: %s", path)
	logging.InfoContext(ctx, "Edit this file or use 'jtc config set' to customize your defaults")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("config not available in context")
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# Current jtc configuration")
	fmt.Fprintln(out, "# Sources: defaults -> config file -> environment variables -> CLI flags")
	fmt.Fprintln(out)
	fmt.Fprint(out, string(data))

	if cfg.Source != "" {
		fmt.Fprintf(out, "\n# Config file: %s\n", cfg.Source)
	} else {
		fmt.Fprintln(out, "\n# No config file found (using defaults)")
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	cfg := configFromContext(cmd)
	if cfg != nil && cfg.Source != "" {
		fmt.Fprintln(cmd.OutOrStdout(), cfg.Source)
		return nil
	}

	path, err := configPath()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (not created yet)\n", path)
	logging.InfoContext(cmd.Context(), "Run 'jtc config init' to create the config file")
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg := configFromContext(cmd)
	if cfg == nil {
		return fmt.Errorf("config not available in context")
	}

	value, err := config.Get(cfg, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	opts := configSetFlags.resolve(cmd)
	if err := cli.NewValidator().ValidateDefaults(opts); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	// Re-read the file so environment and flag overrides held by the
	// context config are not persisted.
	cfg := config.New()
	if config.Exists(path) {
		if cfg, err = config.LoadFromPath(path); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		logging.WarnContext(ctx, "Config file doesn't exist. Creating %s", path)
	}

	changes, err := opts.ApplyDefaults(&cfg.Default)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		value := cli.ParseConfigValue(args[0], args[1])
		if err := config.Set(cfg, args[0], value); err != nil {
			return err
		}
		changes = append(changes, cli.Change{Key: args[0], Value: value})
	}

	if len(changes) == 0 {
		return fmt.Errorf("nothing to set: pass KEY VALUE or default flags such as --author")
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	for _, c := range changes {
		logging.InfoContext(ctx, "%s", c)
	}
	logging.InfoContext(ctx, "Configuration saved to: %s", path)
	return nil
}

func runConfigSchema(cmd *cobra.Command, args []string) error {
	data, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
