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

// Package config loads and saves the jtc configuration file.
//
// The file lives at $XDG_CONFIG_HOME/jtc/config.toml and holds the defaults
// used by "jtc create":
//
//	[default]
//	author = "Jane Doe"
//	license = "MIT"
//	template = "standard"
//
//	[default.Git]
//	ssh = true
//
//	[log]
//	level = "info"
//
// Values are resolved with the precedence CLI flags > JTC_* environment
// variables > config file > built-in defaults.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cowdogmoo/jtc/errors"
	"github.com/cowdogmoo/jtc/plugins"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variable overrides, e.g. JTC_LOG_LEVEL.
const EnvPrefix = "JTC"

// Built-in defaults.
const (
	DefaultTemplate         = "standard"
	DefaultLicense          = "MIT"
	DefaultMiseFilenameBase = ".mise"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "color"
)

// Config is the jtc configuration file.
type Config struct {
	Default Defaults  `mapstructure:"default" json:"default" yaml:"default"`
	Log     LogConfig `mapstructure:"log" json:"log" yaml:"log"`

	// Warnings collects problems found while normalizing the file, such as
	// option tables for unknown plugins.
	Warnings []string `mapstructure:"-" json:"-" yaml:"-"`
	// Source is the file the config was read from, empty for defaults.
	Source string `mapstructure:"-" json:"-" yaml:"-"`
}

// Defaults holds the default values for package creation.
type Defaults struct {
	Author           string `mapstructure:"author" json:"author,omitempty" yaml:"author,omitempty" jsonschema:"description=Package author; falls back to git config user.name"`
	User             string `mapstructure:"user" json:"user,omitempty" yaml:"user,omitempty" jsonschema:"description=GitHub user or organization; falls back to git config github.user"`
	Mail             string `mapstructure:"mail" json:"mail,omitempty" yaml:"mail,omitempty" jsonschema:"description=Author e-mail; falls back to git config user.email"`
	License          string `mapstructure:"license" json:"license,omitempty" yaml:"license,omitempty" jsonschema:"description=License short name such as MIT or Apache"`
	Template         string `mapstructure:"template" json:"template,omitempty" yaml:"template,omitempty" jsonschema:"enum=minimal,enum=standard,enum=full"`
	JuliaVersion     string `mapstructure:"julia_version" json:"julia_version,omitempty" yaml:"julia_version,omitempty" jsonschema:"description=Minimum Julia version for [compat]"`
	OutputDir        string `mapstructure:"output_dir" json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	WithMise         bool   `mapstructure:"with_mise" json:"with_mise" yaml:"with_mise"`
	MiseFilenameBase string `mapstructure:"mise_filename_base" json:"mise_filename_base,omitempty" yaml:"mise_filename_base,omitempty"`
	PluginList       string `mapstructure:"plugins" json:"plugins,omitempty" yaml:"plugins,omitempty" jsonschema:"description=Plugin list expression that replaces the template preset"`

	// PluginOptions holds the per-plugin option tables such as [default.Git].
	PluginOptions map[plugins.Kind]map[string]any `mapstructure:"-" json:"plugin_options,omitempty" yaml:"plugin_options,omitempty"`

	// Tables captures every table under [default] that is not a known field.
	Tables map[string]any `mapstructure:",remain" json:"-" yaml:"-"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" json:"format" yaml:"format" jsonschema:"enum=text,enum=color,enum=json"`
}

// New returns a config holding only the built-in defaults.
func New() *Config {
	return &Config{
		Default: Defaults{
			License:          DefaultLicense,
			Template:         DefaultTemplate,
			WithMise:         true,
			MiseFilenameBase: DefaultMiseFilenameBase,
		},
		Log: LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Load reads the config file from the standard locations. A missing file
// is not an error.
func Load() (*Config, error) {
	v := newViper()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap("read config", v.ConfigFileUsed(), err)
		}
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.Source = v.ConfigFileUsed()
	return cfg, nil
}

// LoadFromPath reads configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap("read config", path, err)
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

func newViper() *viper.Viper {
	v := NewConfigViper()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap("decode config", v.ConfigFileUsed(), err)
	}
	cfg.Warnings = cfg.Default.normalize()
	return &cfg, nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("default.license", DefaultLicense)
	v.SetDefault("default.template", DefaultTemplate)
	v.SetDefault("default.with_mise", true)
	v.SetDefault("default.mise_filename_base", DefaultMiseFilenameBase)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}

// bindEnvVars binds the scalar keys so JTC_* variables override them even
// when the file does not set them.
func bindEnvVars(v *viper.Viper) {
	for _, key := range ScalarKeys() {
		_ = v.BindEnv(key)
	}
}

// ScalarKeys returns every non-table config key in dotted form.
func ScalarKeys() []string {
	return []string{
		"default.author",
		"default.user",
		"default.mail",
		"default.license",
		"default.template",
		"default.julia_version",
		"default.output_dir",
		"default.with_mise",
		"default.mise_filename_base",
		"default.plugins",
		"log.level",
		"log.format",
	}
}

// normalize moves plugin option tables from Tables into PluginOptions,
// resolving table names case-insensitively. It returns a warning for each
// table it cannot use.
func (d *Defaults) normalize() []string {
	var warnings []string

	names := make([]string, 0, len(d.Tables))
	for name := range d.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if kindName, key, dotted := strings.Cut(name, "."); dotted {
			kind, err := plugins.ParseKind(kindName)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("ignoring default.%s: %v", name, err))
				continue
			}
			d.SetPluginOption(kind, key, d.Tables[name])
			continue
		}

		kind, err := plugins.ParseKind(name)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring [default.%s]: %v", name, err))
			continue
		}
		table, ok := d.Tables[name].(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("ignoring default.%s: expected a table of plugin options", name))
			continue
		}
		for key, value := range table {
			d.SetPluginOption(kind, key, value)
		}
	}
	d.Tables = nil

	return warnings
}

// SetPluginOption records one plugin option, replacing any previous value.
func (d *Defaults) SetPluginOption(kind plugins.Kind, key string, value any) {
	if d.PluginOptions == nil {
		d.PluginOptions = make(map[plugins.Kind]map[string]any)
	}
	if d.PluginOptions[kind] == nil {
		d.PluginOptions[kind] = make(map[string]any)
	}
	d.PluginOptions[kind][strings.ToLower(key)] = value
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
