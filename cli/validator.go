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
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/cowdogmoo/jtc/errors"
	"github.com/cowdogmoo/jtc/generator"
	"github.com/cowdogmoo/jtc/plugins"
	"github.com/cowdogmoo/jtc/templates"
)

// FormatterStyles lists the JuliaFormatter styles accepted by --formatter-style.
var FormatterStyles = []string{"nostyle", "sciml", "blue", "yas"}

// Validator validates CLI input before passing to business logic.
type Validator struct {
	versions *templates.VersionManager
}

// NewValidator creates a new CLI validator.
func NewValidator() *Validator {
	return &Validator{versions: templates.NewVersionManager()}
}

// ValidatePackageName checks a Julia package name and returns it without a
// trailing ".jl".
func (v *Validator) ValidatePackageName(name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".jl")
	if name == "" {
		return "", fmt.Errorf("%w: package name is required", errors.ErrInvalidPackageName)
	}

	for _, r := range name {
		if r != '-' && r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", fmt.Errorf("%w: Package name must contain only letters, numbers, hyphens, and underscores", errors.ErrInvalidPackageName)
		}
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		return "", fmt.Errorf("%w: Package name must start with a letter", errors.ErrInvalidPackageName)
	}
	return name, nil
}

// ValidateCreateOptions validates the create command options and
// normalizes opts.Name.
func (v *Validator) ValidateCreateOptions(opts *CreateCLIOptions) error {
	name, err := v.ValidatePackageName(opts.Name)
	if err != nil {
		return err
	}
	opts.Name = name

	return v.ValidateDefaults(opts)
}

// ValidateDefaults validates the options shared by create and config set.
func (v *Validator) ValidateDefaults(opts *CreateCLIOptions) error {
	if err := v.ValidateTemplate(opts.Template); err != nil {
		return err
	}
	if err := v.ValidateLicense(opts.License); err != nil {
		return err
	}
	if err := v.ValidateFormatterStyle(opts.FormatterStyle); err != nil {
		return err
	}
	if err := v.versions.ValidateJuliaVersion(opts.JuliaVersion); err != nil {
		return fmt.Errorf("invalid --julia-version: %w", err)
	}
	if _, err := v.versions.NormalizeProjectVersion(opts.ProjectVersion); err != nil {
		return fmt.Errorf("invalid --project-version: %w", err)
	}
	pluginOpts, err := opts.PluginOptions()
	if err != nil {
		return err
	}
	return v.ValidatePluginOptions(pluginOpts)
}

// ValidateTemplate checks a preset name. Empty is allowed.
func (v *Validator) ValidateTemplate(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := generator.PresetKinds(name); !ok {
		return fmt.Errorf("invalid template %q (valid: %s)", name, strings.Join(generator.Presets(), ", "))
	}
	return nil
}

// ValidateLicense checks a license short name or PkgTemplates identifier.
// Empty is allowed.
func (v *Validator) ValidateLicense(name string) error {
	if name == "" {
		return nil
	}
	if _, known := generator.LicenseIdentifier(name); !known {
		return fmt.Errorf("invalid license %q (valid: %s)", name, strings.Join(generator.Licenses(), ", "))
	}
	return nil
}

// ValidateFormatterStyle checks a JuliaFormatter style. Empty is allowed.
func (v *Validator) ValidateFormatterStyle(style string) error {
	if style == "" {
		return nil
	}
	for _, s := range FormatterStyles {
		if s == style {
			return nil
		}
	}
	return fmt.Errorf("invalid formatter style %q (valid: %s)", style, strings.Join(FormatterStyles, ", "))
}

// ValidatePluginOptions checks option keys and value types against the
// plugin schemas.
func (v *Validator) ValidatePluginOptions(opts map[plugins.Kind]map[string]any) error {
	for _, kind := range plugins.Kinds() {
		kindOpts := opts[kind]
		for _, key := range sortedOptionKeys(kindOpts) {
			param, ok := plugins.LookupParam(kind, key)
			if !ok {
				return fmt.Errorf("%s has no option %q%s", kind, key, validKeys(kind))
			}
			raw := kindOpts[key]
			if param.Type == plugins.VersionType {
				if _, err := v.versions.NormalizeProjectVersion(fmt.Sprint(raw)); err != nil {
					return fmt.Errorf("%s.%s: %w", kind, key, err)
				}
				continue
			}
			if _, err := plugins.ValueFromInterface(param.Type, raw); err != nil {
				return fmt.Errorf("%s.%s: %w", kind, key, err)
			}
		}
	}
	return nil
}

func validKeys(kind plugins.Kind) string {
	params := plugins.Schema(kind)
	if len(params) == 0 {
		return " (it takes no options)"
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return fmt.Sprintf(" (valid: %s)", strings.Join(names, ", "))
}

func sortedOptionKeys(opts map[string]any) []string {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
