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

// Package plugins models PkgTemplates plugins and implements the textual
// plugin list expression handed to the julia subprocess.
//
// A plugin list expression looks like:
//
//	[License(; name="MIT"), Git(; ssh=true, ignore=["*.tmp"]), TagBot()]
//
// Encode renders a list of Specs into that form and Decode reads it back,
// dropping unknown, duplicate and malformed entries with a Warning.
package plugins

import (
	"fmt"
	"strings"
)

// Kind identifies a PkgTemplates plugin.
type Kind string

// Known plugin kinds.
const (
	ProjectFile   Kind = "ProjectFile"
	License       Kind = "License"
	Git           Kind = "Git"
	Formatter     Kind = "Formatter"
	Tests         Kind = "Tests"
	GitHubActions Kind = "GitHubActions"
	Codecov       Kind = "Codecov"
	Documenter    Kind = "Documenter{GitHubActions}"
	TagBot        Kind = "TagBot"
	CompatHelper  Kind = "CompatHelper"
	Develop       Kind = "Develop"
)

// allKinds is the canonical kind order used for listings and schemas.
var allKinds = []Kind{
	ProjectFile,
	License,
	Git,
	Formatter,
	Tests,
	GitHubActions,
	Codecov,
	Documenter,
	TagBot,
	CompatHelper,
	Develop,
}

// Kinds returns every known plugin kind in canonical order.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// String returns the constructor name of the kind.
func (k Kind) String() string {
	return string(k)
}

// Known reports whether k is one of the known plugin kinds.
func (k Kind) Known() bool {
	_, ok := schemas[k]
	return ok
}

// ParseKind resolves a user supplied plugin name to a Kind. Matching ignores
// case, hyphens and underscores, so "project-file", "projectfile" and
// "ProjectFile" all resolve to ProjectFile. "documenter" resolves to the
// GitHubActions flavored Documenter.
func ParseKind(name string) (Kind, error) {
	want := normalizeKindName(name)
	if want == "" {
		return "", fmt.Errorf("empty plugin name")
	}
	for _, k := range allKinds {
		if normalizeKindName(string(k)) == want {
			return k, nil
		}
	}
	if want == "documenter" {
		return Documenter, nil
	}
	return "", fmt.Errorf("unknown plugin %q", name)
}

func normalizeKindName(name string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(name)))
}

// ValueType is the type of a plugin parameter value.
type ValueType int

// Parameter value types.
const (
	StringType ValueType = iota
	BoolType
	ListType
	VersionType
)

// String returns a short name for the value type.
func (t ValueType) String() string {
	switch t {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	case ListType:
		return "list"
	case VersionType:
		return "version"
	default:
		return "unknown"
	}
}

// MarshalText renders the type name in JSON and YAML output.
func (t ValueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Param describes one legal keyword parameter of a plugin kind.
type Param struct {
	Name        string    `json:"name" yaml:"name"`
	Type        ValueType `json:"type" yaml:"type"`
	Description string    `json:"description" yaml:"description"`
	// TrueOnly parameters are encoded only when true; false is expressed by
	// leaving the parameter out.
	TrueOnly bool `json:"true_only,omitempty" yaml:"true_only,omitempty"`
}

var schemas = map[Kind][]Param{
	ProjectFile: {
		{Name: "version", Type: VersionType, Description: "Initial package version"},
	},
	License: {
		{Name: "name", Type: StringType, Description: "License identifier understood by PkgTemplates"},
	},
	Git: {
		{Name: "manifest", Type: BoolType, Description: "Commit Manifest.toml"},
		{Name: "ssh", Type: BoolType, Description: "Use SSH remote URLs"},
		{Name: "ignore", Type: ListType, Description: "Extra .gitignore patterns"},
	},
	Formatter: {
		{Name: "style", Type: StringType, Description: "JuliaFormatter style"},
	},
	Tests: {
		{Name: "project", Type: BoolType, Description: "Separate test/Project.toml", TrueOnly: true},
		{Name: "aqua", Type: BoolType, Description: "Add Aqua.jl quality checks", TrueOnly: true},
		{Name: "jet", Type: BoolType, Description: "Add JET.jl static analysis", TrueOnly: true},
	},
	GitHubActions: nil,
	Codecov:       nil,
	Documenter:    nil,
	TagBot:        nil,
	CompatHelper:  nil,
	Develop:       nil,
}

// Schema returns the parameters accepted by kind, in encoding order.
// Zero-parameter and unknown kinds return nil.
func Schema(kind Kind) []Param {
	params := schemas[kind]
	if len(params) == 0 {
		return nil
	}
	out := make([]Param, len(params))
	copy(out, params)
	return out
}

// LookupParam returns the schema entry for a parameter of kind.
func LookupParam(kind Kind, name string) (Param, bool) {
	for _, p := range schemas[kind] {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
