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

// Package templates holds the embedded files jtc renders: the julia driver
// script that calls PkgTemplates and the mise task file written into new
// packages.
package templates

import (
	"bytes"
	"embed"
	"text/template"

	"github.com/cowdogmoo/jtc/errors"
	"github.com/cowdogmoo/jtc/plugins"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed files/*
var files embed.FS

const (
	driverFile = "files/create_package.jl"
	miseFile   = "files/mise.toml.tmpl"
	codeFile   = "files/template.jl.tmpl"
)

var (
	miseTemplate = template.Must(template.ParseFS(files, miseFile))
	codeTemplate = template.Must(template.New("template.jl.tmpl").
		Funcs(template.FuncMap{"jl": juliaString}).
		ParseFS(files, codeFile))
)

// juliaString renders s as a julia string literal.
func juliaString(s string) string {
	return plugins.StringValue(s).Literal()
}

// DriverScript returns the julia program run by jtc create. It expects the
// arguments described by DriverArgs.
func DriverScript() string {
	data, err := files.ReadFile(driverFile)
	if err != nil {
		// Embedded at build time.
		panic(err)
	}
	return string(data)
}

// DriverArgs is the positional argument vector of the driver script.
type DriverArgs struct {
	Name         string
	Authors      string
	User         string
	Mail         string
	Dir          string
	Plugins      string
	JuliaVersion string
}

// Slice returns the arguments in the order the driver script reads them.
func (a DriverArgs) Slice() []string {
	return []string{a.Name, a.Authors, a.User, a.Mail, a.Dir, a.Plugins, a.JuliaVersion}
}

// MiseData feeds the mise task template.
type MiseData struct {
	PackageName  string
	JuliaVersion string
	// Formatter adds a format task.
	Formatter bool
	// Docs adds a docs task.
	Docs bool
}

// MiseFileName returns the file name for a mise config with base name
// base, e.g. ".mise" -> ".mise.toml".
func MiseFileName(base string) string {
	if base == "" {
		base = ".mise"
	}
	return base + ".toml"
}

// RenderMise renders the mise task file and checks that the result parses
// as TOML.
func RenderMise(data MiseData) ([]byte, error) {
	var buf bytes.Buffer
	if err := miseTemplate.ExecuteTemplate(&buf, "mise.toml.tmpl", data); err != nil {
		return nil, errors.Wrap("render mise config", data.PackageName, err)
	}

	var parsed map[string]any
	if err := toml.Unmarshal(buf.Bytes(), &parsed); err != nil {
		return nil, errors.Wrap("validate mise config", data.PackageName, err)
	}

	return buf.Bytes(), nil
}

// CodeData feeds the standalone julia program shown by a dry run.
type CodeData struct {
	Name    string
	Authors string
	User    string
	Dir     string
	// Plugins is an encoded plugin list expression.
	Plugins      string
	JuliaVersion string
}

// RenderJuliaCode renders the julia program equivalent to running the
// driver script with the same values.
func RenderJuliaCode(data CodeData) (string, error) {
	if data.Plugins == "" {
		data.Plugins = "[]"
	}
	var buf bytes.Buffer
	if err := codeTemplate.ExecuteTemplate(&buf, "template.jl.tmpl", data); err != nil {
		return "", errors.Wrap("render julia code", data.Name, err)
	}
	return buf.String(), nil
}
