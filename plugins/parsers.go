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

package plugins

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Parser turns one expression of a known kind into a Spec.
type Parser func(expr string) (Spec, error)

var (
	quotedPattern  = regexp.MustCompile(`^(?:"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')$`)
	boolPattern    = regexp.MustCompile(`^(true|false)$`)
	listPattern    = regexp.MustCompile(`^\[(.*)\]$`)
	versionPattern = regexp.MustCompile(`^v("(?:[^"\\]|\\.)*")$`)
)

// arguments returns the raw keyword arguments of a constructor call keyed
// by name. Positional arguments are ignored.
func arguments(expr string) (map[string]string, error) {
	open := strings.Index(expr, "(")
	if open < 0 {
		return map[string]string{}, nil
	}
	end := closingParen(expr, open)
	if end < 0 {
		return nil, fmt.Errorf("unterminated argument list in %q", expr)
	}
	if rest := strings.TrimSpace(expr[end+1:]); rest != "" {
		return nil, fmt.Errorf("unexpected %q after argument list", rest)
	}
	body := strings.TrimSpace(expr[open+1 : end])

	args := make(map[string]string)
	for _, part := range scan(body, ",;") {
		if part.Malformed {
			return nil, fmt.Errorf("unbalanced argument %q", part.Text)
		}
		key, value, ok := strings.Cut(part.Text, "=")
		if !ok {
			continue
		}
		args[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return args, nil
}

func parseString(raw string) (Value, error) {
	if !quotedPattern.MatchString(raw) {
		return Value{}, fmt.Errorf("expected quoted string, got %s", raw)
	}
	s, ok := unquote(raw)
	if !ok {
		return Value{}, fmt.Errorf("invalid string literal %s", raw)
	}
	return StringValue(s), nil
}

func parseBool(raw string) (Value, error) {
	m := boolPattern.FindStringSubmatch(raw)
	if m == nil {
		return Value{}, fmt.Errorf("expected true or false, got %s", raw)
	}
	return BoolValue(m[1] == "true"), nil
}

func parseList(raw string) (Value, error) {
	m := listPattern.FindStringSubmatch(raw)
	if m == nil {
		return Value{}, fmt.Errorf("expected list, got %s", raw)
	}
	items := []string{}
	for _, el := range scan(m[1], ",") {
		if el.Malformed {
			return Value{}, fmt.Errorf("unbalanced list element %s", el.Text)
		}
		if s, ok := unquote(el.Text); ok {
			items = append(items, s)
			continue
		}
		items = append(items, strings.Trim(el.Text, `"' `))
	}
	return ListValue(items...), nil
}

func parseVersion(raw string) (Value, error) {
	m := versionPattern.FindStringSubmatch(raw)
	if m == nil {
		return Value{}, fmt.Errorf(`expected v"x.y.z", got %s`, raw)
	}
	s, ok := unquote(m[1])
	if !ok {
		return Value{}, fmt.Errorf("invalid version literal %s", raw)
	}
	normalized, err := NormalizeVersion(s)
	if err != nil {
		return Value{}, err
	}
	return VersionValue(normalized), nil
}

// NormalizeVersion parses s as a semantic version, accepting a leading "v"
// and missing minor or patch numbers, and returns it as x.y.z.
func NormalizeVersion(s string) (string, error) {
	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", s, err)
	}
	return v.String(), nil
}

// noParams builds the parser for kinds without parameters.
func noParams(kind Kind) Parser {
	return func(string) (Spec, error) {
		return Spec{Kind: kind}, nil
	}
}

// parseLicense falls back to MIT when name is missing or unreadable.
func parseLicense(expr string) (Spec, error) {
	name := "MIT"
	if args, err := arguments(expr); err == nil {
		if raw, ok := args["name"]; ok {
			if v, err := parseString(raw); err == nil {
				name, _ = v.AsString()
			}
		}
	}
	return NewSpec(License, map[string]Value{"name": StringValue(name)}), nil
}

func parseFormatter(expr string) (Spec, error) {
	args, err := arguments(expr)
	if err != nil {
		return Spec{}, err
	}
	params := map[string]Value{}
	if raw, ok := args["style"]; ok {
		v, err := parseString(raw)
		if err != nil {
			return Spec{}, fmt.Errorf("style: %w", err)
		}
		params["style"] = v
	}
	return NewSpec(Formatter, params), nil
}

func parseGit(expr string) (Spec, error) {
	args, err := arguments(expr)
	if err != nil {
		return Spec{}, err
	}
	params := map[string]Value{}
	for _, name := range []string{"manifest", "ssh"} {
		raw, ok := args[name]
		if !ok {
			continue
		}
		v, err := parseBool(raw)
		if err != nil {
			return Spec{}, fmt.Errorf("%s: %w", name, err)
		}
		params[name] = v
	}
	if raw, ok := args["ignore"]; ok {
		v, err := parseList(raw)
		if err != nil {
			return Spec{}, fmt.Errorf("ignore: %w", err)
		}
		params["ignore"] = v
	}
	return NewSpec(Git, params), nil
}

// parseTests keeps only flags set to true.
func parseTests(expr string) (Spec, error) {
	args, err := arguments(expr)
	if err != nil {
		return Spec{}, err
	}
	params := map[string]Value{}
	for _, name := range []string{"project", "aqua", "jet"} {
		if args[name] == "true" {
			params[name] = BoolValue(true)
		}
	}
	return NewSpec(Tests, params), nil
}

func parseProjectFile(expr string) (Spec, error) {
	args, err := arguments(expr)
	if err != nil {
		return Spec{}, err
	}
	params := map[string]Value{}
	if raw, ok := args["version"]; ok {
		v, err := parseVersion(raw)
		if err != nil {
			return Spec{}, fmt.Errorf("version: %w", err)
		}
		params["version"] = v
	}
	return NewSpec(ProjectFile, params), nil
}
