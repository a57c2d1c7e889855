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

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cowdogmoo/jtc/errors"
	"github.com/cowdogmoo/jtc/plugins"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Marshal renders cfg as config.toml content. Empty strings are left out
// and plugin option tables are written under [default.<Kind>].
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(cfg.toMap()); err != nil {
		return nil, errors.Wrap("encode config", "", err)
	}
	return buf.Bytes(), nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermReadWriteExec); err != nil {
		return errors.Wrap("create config directory", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, FilePermReadWrite); err != nil {
		return errors.Wrap("write config", path, err)
	}
	return nil
}

// Get returns the value stored under a dotted key such as "default.author"
// or "default.git.ssh". Keys are case-insensitive.
func Get(cfg *Config, key string) (any, error) {
	data, err := Marshal(cfg)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.Wrap("read config", "", err)
	}

	value := v.Get(key)
	if value == nil {
		return nil, errors.New("key not found: " + key)
	}
	return value, nil
}

func (c *Config) toMap() map[string]any {
	def := map[string]any{}
	putString := func(key, value string) {
		if value != "" {
			def[key] = value
		}
	}

	d := c.Default
	putString("author", d.Author)
	putString("user", d.User)
	putString("mail", d.Mail)
	putString("license", d.License)
	putString("template", d.Template)
	putString("julia_version", d.JuliaVersion)
	putString("output_dir", d.OutputDir)
	def["with_mise"] = d.WithMise
	putString("mise_filename_base", d.MiseFilenameBase)
	putString("plugins", d.PluginList)

	for kind, opts := range d.PluginOptions {
		if len(opts) == 0 {
			continue
		}
		table := make(map[string]any, len(opts))
		for k, v := range opts {
			table[k] = v
		}
		def[string(kind)] = table
	}

	out := map[string]any{"default": def}
	logTable := map[string]any{}
	if c.Log.Level != "" {
		logTable["level"] = c.Log.Level
	}
	if c.Log.Format != "" {
		logTable["format"] = c.Log.Format
	}
	if len(logTable) > 0 {
		out["log"] = logTable
	}
	return out
}

// Set stores value under a dotted key: "log.level", "default.author" or a
// plugin option such as "default.Git.ssh". Plugin names are resolved with
// plugins.ParseKind.
func Set(cfg *Config, key string, value any) error {
	parts := strings.Split(strings.TrimSpace(key), ".")
	for i := range parts[:min(2, len(parts))] {
		parts[i] = strings.ToLower(parts[i])
	}

	switch {
	case len(parts) == 2 && parts[0] == "log":
		s := fmt.Sprint(value)
		switch parts[1] {
		case "level":
			cfg.Log.Level = s
		case "format":
			cfg.Log.Format = s
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		return nil
	case len(parts) == 2 && parts[0] == "default":
		return cfg.Default.setScalar(parts[1], value)
	case len(parts) == 3 && parts[0] == "default":
		kind, err := plugins.ParseKind(parts[1])
		if err != nil {
			return fmt.Errorf("unknown config key %s: %w", key, err)
		}
		cfg.Default.SetPluginOption(kind, parts[2], value)
		return nil
	default:
		return fmt.Errorf("unknown config key: %s (use dot notation like default.author or default.Git.ssh)", key)
	}
}

func (d *Defaults) setScalar(name string, value any) error {
	if name == "with_mise" {
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("default.with_mise must be a bool, got %v", value)
		}
		d.WithMise = b
		return nil
	}

	fields := map[string]*string{
		"author":             &d.Author,
		"user":               &d.User,
		"mail":               &d.Mail,
		"license":            &d.License,
		"template":           &d.Template,
		"julia_version":      &d.JuliaVersion,
		"output_dir":         &d.OutputDir,
		"mise_filename_base": &d.MiseFilenameBase,
		"plugins":            &d.PluginList,
	}
	field, ok := fields[name]
	if !ok {
		return fmt.Errorf("unknown config key: default.%s", name)
	}
	*field = fmt.Sprint(value)
	return nil
}
