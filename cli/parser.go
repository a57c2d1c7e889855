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

// Package cli provides utilities for parsing, validating, and formatting CLI
// input and output.
//
// This package sits between the cobra commands and the generator:
//
//   - Parsing: turning "k=v k2=v2" plugin option flags into typed options
//   - Validation: checking names, presets and versions before any julia run
//   - Output: rendering dependency reports, plugin listings and decode
//     results as text, tables, JSON or YAML
//
// # Key Components
//
// Parser: parses plugin option flags:
//
//	opts, err := cli.ParseKeyValuePairs(`ssh=true ignore="[*.tmp, *.log]"`)
//
// Validator: validates CLI options before processing:
//
//	validator := cli.NewValidator()
//	if err := validator.ValidateCreateOptions(opts); err != nil {
//	    return err
//	}
//
// OutputFormatter: formats results for display:
//
//	formatter := cli.NewOutputFormatter("table")
//	formatter.DisplayDependencies(deps)
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cowdogmoo/jtc/plugins"
	"mvdan.cc/sh/v3/shell"
)

// Parser handles parsing of CLI input into structured data.
type Parser struct{}

// NewParser creates a new CLI parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseKeyValue parses a single key=value string.
// Returns the key, value, and an error if the format is invalid.
func ParseKeyValue(pair string) (string, string, error) {
	parts := strings.SplitN(pair, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("expected format key=value, got %q", pair)
	}

	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])

	if key == "" {
		return "", "", fmt.Errorf("key cannot be empty")
	}

	return key, value, nil
}

// ParseOptionValue converts a raw option value to a typed value:
// true/yes/1/on and false/no/0/off become bools, other integers become
// ints, [a, b] becomes a []string and anything else stays a string.
func ParseOptionValue(raw string) any {
	s := strings.TrimSpace(raw)

	switch strings.ToLower(s) {
	case "true", "yes", "1", "on":
		return true
	case "false", "no", "0", "off":
		return false
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		items := []string{}
		for _, part := range strings.Split(s[1:len(s)-1], ",") {
			part = strings.TrimSpace(part)
			part = strings.Trim(part, `"'`)
			if part != "" {
				items = append(items, part)
			}
		}
		return items
	}

	return s
}

// keepVariables leaves $NAME references untouched during shell splitting.
func keepVariables(name string) string {
	return "$" + name
}

// ParseKeyValuePairs splits s into words with shell quoting rules and
// parses each key=value word with ParseOptionValue. Words without "=" are
// ignored and later keys override earlier ones. Keys are lowercased.
//
// Example:
//
//	opts, err := cli.ParseKeyValuePairs(`ssh=yes ignore="[*.tmp, build dir]"`)
//	// opts == map[string]any{"ssh": true, "ignore": []string{"*.tmp", "build dir"}}
func ParseKeyValuePairs(s string) (map[string]any, error) {
	raw, err := splitKeyValuePairs(s)
	if err != nil {
		return nil, err
	}
	result := make(map[string]any, len(raw))
	for key, value := range raw {
		result[key] = ParseOptionValue(value)
	}
	return result, nil
}

func splitKeyValuePairs(s string) (map[string]string, error) {
	words, err := shell.Fields(s, keepVariables)
	if err != nil {
		return nil, fmt.Errorf("invalid option string %q: %w", s, err)
	}

	result := make(map[string]string, len(words))
	for _, word := range words {
		if !strings.Contains(word, "=") {
			continue
		}
		key, value, err := ParseKeyValue(word)
		if err != nil {
			return nil, fmt.Errorf("invalid pair %q: %w", word, err)
		}
		result[strings.ToLower(key)] = value
	}
	return result, nil
}

// ParseParamValue types raw for the parameter key of kind. String and
// version parameters keep the raw text, so version=1 stays "1"; other and
// unknown parameters go through ParseOptionValue.
func ParseParamValue(kind plugins.Kind, key, raw string) any {
	if p, ok := plugins.LookupParam(kind, key); ok {
		switch p.Type {
		case plugins.StringType, plugins.VersionType:
			return strings.TrimSpace(raw)
		}
	}
	return ParseOptionValue(raw)
}

// ParseConfigValue types raw for the dotted config key it will be stored
// under. Plugin options follow ParseParamValue, default.with_mise is a
// bool and every other key keeps the raw text.
func ParseConfigValue(key, raw string) any {
	parts := strings.Split(strings.TrimSpace(key), ".")
	switch {
	case len(parts) == 3 && strings.EqualFold(parts[0], "default"):
		kind, err := plugins.ParseKind(parts[1])
		if err != nil {
			return ParseOptionValue(raw)
		}
		return ParseParamValue(kind, strings.ToLower(parts[2]), raw)
	case len(parts) == 2 && strings.EqualFold(parts[1], "with_mise"):
		return ParseOptionValue(raw)
	case len(parts) == 2:
		return strings.TrimSpace(raw)
	}
	return ParseOptionValue(raw)
}

// ParsePluginOptions parses repeated plugin option flags such as
// --git "ssh=true" --git "manifest=false". Values are typed against the
// plugin's parameters and repeated flags merge key by key, later flags
// winning.
func (p *Parser) ParsePluginOptions(flags map[plugins.Kind][]string) (map[plugins.Kind]map[string]any, error) {
	if len(flags) == 0 {
		return nil, nil
	}

	result := make(map[plugins.Kind]map[string]any, len(flags))
	for kind, values := range flags {
		for _, value := range values {
			raw, err := splitKeyValuePairs(value)
			if err != nil {
				return nil, fmt.Errorf("%s options: %w", kind, err)
			}
			opts := make(map[string]any, len(raw))
			for key, v := range raw {
				opts[key] = ParseParamValue(kind, key, v)
			}
			result = MergePluginOptions(result, map[plugins.Kind]map[string]any{kind: opts})
		}
	}
	return result, nil
}

// MergePluginOptions returns base with override applied key by key. Neither
// input is modified.
func MergePluginOptions(base, override map[plugins.Kind]map[string]any) map[plugins.Kind]map[string]any {
	result := make(map[plugins.Kind]map[string]any, len(base)+len(override))
	for _, src := range []map[plugins.Kind]map[string]any{base, override} {
		for kind, opts := range src {
			if len(opts) == 0 {
				continue
			}
			if result[kind] == nil {
				result[kind] = make(map[string]any, len(opts))
			}
			for k, v := range opts {
				result[kind][k] = v
			}
		}
	}
	return result
}
