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
	"sort"
	"strings"

	"github.com/cowdogmoo/jtc/errors"
	"github.com/cowdogmoo/jtc/logging"
	"github.com/cowdogmoo/jtc/plugins"
	"github.com/cowdogmoo/jtc/templates"
)

// BuildPlugins returns the plugin specs for cfg. A non-empty PluginList
// replaces the preset and is decoded as is; otherwise one spec is built per
// enabled kind with its options applied. Options that do not fit a plugin's
// schema are dropped with a warning.
func BuildPlugins(ctx context.Context, cfg PackageConfig) ([]plugins.Spec, error) {
	if strings.TrimSpace(cfg.PluginList) != "" {
		logging.DebugContext(ctx, "Using plugin list expression instead of the %q preset", cfg.Template)
		specs, warnings := plugins.Decode(ctx, cfg.PluginList)
		if len(specs) == 0 && len(warnings) > 0 {
			return nil, fmt.Errorf("plugin list %q has no usable plugins", cfg.PluginList)
		}
		return specs, nil
	}

	kinds, ok := cfg.EnabledKinds()
	if !ok {
		return nil, fmt.Errorf("unknown template %q (valid: %s)", cfg.Template, strings.Join(Presets(), ", "))
	}

	enabled := make(map[plugins.Kind]bool, len(kinds))
	for _, k := range kinds {
		enabled[k] = true
	}
	for kind := range cfg.PluginOptions {
		if !enabled[kind] && len(cfg.PluginOptions[kind]) > 0 {
			logging.WarnContext(ctx, "Ignoring options for %s: plugin is not enabled by the %q template", kind, cfg.Template)
		}
	}

	specs := make([]plugins.Spec, 0, len(kinds))
	for _, kind := range kinds {
		params, err := buildParams(ctx, kind, cfg)
		if err != nil {
			return nil, err
		}
		spec := plugins.NewSpec(kind, params)
		if err := spec.Validate(); err != nil {
			logging.WarnContext(ctx, "Dropping %s plugin: %v", kind, err)
			continue
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func buildParams(ctx context.Context, kind plugins.Kind, cfg PackageConfig) (map[string]plugins.Value, error) {
	params := map[string]plugins.Value{}

	switch kind {
	case plugins.License:
		id, known := LicenseIdentifier(cfg.License)
		if !known {
			logging.WarnContext(ctx, "Unknown license %q, using as-is", cfg.License)
		}
		params["name"] = plugins.StringValue(id)
	case plugins.ProjectFile:
		params["version"] = plugins.VersionValue(DefaultProjectVersion)
	}

	opts := cfg.PluginOptions[kind]
	keys := make([]string, 0, len(opts))
	for key := range opts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		param, ok := plugins.LookupParam(kind, key)
		if !ok {
			logging.WarnContext(ctx, "Ignoring unknown option %s.%s", kind, key)
			continue
		}
		raw := opts[key]
		if param.Type == plugins.VersionType {
			normalized, err := templates.NewVersionManager().NormalizeProjectVersion(fmt.Sprint(raw))
			if err != nil {
				return nil, errors.Wrap("parse option", fmt.Sprintf("%s.%s", kind, key), err)
			}
			if normalized == "" {
				continue
			}
			raw = normalized
		}
		value, err := plugins.ValueFromInterface(param.Type, raw)
		if err != nil {
			logging.WarnContext(ctx, "Ignoring option %s.%s: %v", kind, key, err)
			continue
		}
		if param.TrueOnly {
			if b, _ := value.AsBool(); !b {
				continue
			}
		}
		params[key] = value
	}
	return params, nil
}

// PluginExpression encodes specs, decodes the result and encodes again, so
// the julia driver only ever receives known, deduplicated plugins in a form
// the decoder accepts.
func PluginExpression(ctx context.Context, specs []plugins.Spec) (string, error) {
	encoded := plugins.Encode(specs)
	decoded, warnings := plugins.Decode(ctx, encoded)
	if len(warnings) > 0 {
		return "", fmt.Errorf("plugin list does not round-trip: %s", warnings[0])
	}
	return plugins.Encode(decoded), nil
}
