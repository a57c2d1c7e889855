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
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cowdogmoo/jtc/generator"
	"github.com/cowdogmoo/jtc/logging"
	"github.com/cowdogmoo/jtc/plugins"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testDeps() []generator.Dependency {
	return []generator.Dependency{
		{Name: generator.DepJulia, Available: true, Required: true, Version: "1.10.4"},
		{Name: generator.DepPkgTemplates, Required: true, Detail: "install it"},
		{Name: generator.DepMise},
	}
}

func TestOutputFormatterValidate(t *testing.T) {
	for _, format := range append(Formats, "") {
		assert.NoError(t, NewOutputFormatter(format).Validate(), format)
	}
	assert.Error(t, NewOutputFormatter("xml").Validate())
}

func TestDisplayDependenciesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter("table").WithWriter(&buf).DisplayDependencies(testDeps()))

	out := buf.String()
	assert.Contains(t, out, "DEPENDENCY")
	assert.Contains(t, out, "----------")
	assert.Regexp(t, `julia\s+ok\s+1\.10\.4`, out)
	assert.Regexp(t, `PkgTemplates\.jl\s+missing\s+-\s+install it`, out)
	assert.Contains(t, out, "missing (optional)")
}

func TestDisplayDependenciesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter("json").WithWriter(&buf).DisplayDependencies(testDeps()))

	var got []generator.Dependency
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testDeps(), got)
}

func TestDisplayUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewOutputFormatter("xml").WithWriter(&buf).DisplayDependencies(testDeps())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format: xml")
	assert.Empty(t, buf.String())
}

func TestDisplayPluginList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter("text").WithWriter(&buf).DisplayPluginList(plugins.Kinds()))

	out := buf.String()
	assert.Regexp(t, `Git\s+manifest \(bool\), ssh \(bool\), ignore \(list\)`, out)
	assert.Regexp(t, `TagBot\s+-`, out)
	assert.Contains(t, out, "Documenter{GitHubActions}")
	assert.Contains(t, out, "Total plugins: 11")
}

func TestDisplayPluginListYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter("yaml").WithWriter(&buf).DisplayPluginList([]plugins.Kind{plugins.Formatter}))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Formatter", got[0]["kind"])
	params := got[0]["params"].([]any)
	require.Len(t, params, 1)
	assert.Equal(t, "string", params[0].(map[string]any)["type"])
}

func decodeForTest(t *testing.T, expr string) DecodeReport {
	t.Helper()
	ctx := logging.WithLogger(context.Background(), logging.NewCustomLoggerWithOptions("error", "text", true, false))
	specs, warnings := plugins.Decode(ctx, expr)
	return NewDecodeReport(specs, warnings)
}

func TestDisplayDecodeReportText(t *testing.T) {
	report := decodeForTest(t, `[Git(; ssh=true), Licence(), TagBot()]`)

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter("text").WithWriter(&buf).DisplayDecodeReport(report))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Git(; ssh=true)", lines[0])
	assert.Equal(t, "TagBot()", lines[1])
	assert.Equal(t, "# unknown plugin type, skipping: Licence(); did you mean License?", lines[2])
}

func TestDisplayDecodeReportTable(t *testing.T) {
	report := decodeForTest(t, `[TagBot(), TagBot()]`)

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter("table").WithWriter(&buf).DisplayDecodeReport(report))

	out := buf.String()
	assert.Regexp(t, `TagBot\s+ok\s+TagBot\(\)`, out)
	assert.Regexp(t, `TagBot\s+duplicate plugin type\s+TagBot\(\)`, out)
}

func TestDisplayDecodeReportJSON(t *testing.T) {
	report := decodeForTest(t, `[License(; name="MIT"), Nope()]`)

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter("json").WithWriter(&buf).DisplayDecodeReport(report))

	var got struct {
		Plugins []struct {
			Kind   string         `json:"kind"`
			Params map[string]any `json:"params"`
		} `json:"plugins"`
		Expression string `json:"expression"`
		Warnings   []struct {
			Reason     string `json:"reason"`
			Expression string `json:"expression"`
		} `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	require.Len(t, got.Plugins, 1)
	assert.Equal(t, "License", got.Plugins[0].Kind)
	assert.Equal(t, "MIT", got.Plugins[0].Params["name"])
	assert.Equal(t, `[License(; name="MIT")]`, got.Expression)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, "unknown plugin type", got.Warnings[0].Reason)
	assert.Equal(t, "Nope()", got.Warnings[0].Expression)
}

func TestDisplayExpression(t *testing.T) {
	var buf bytes.Buffer
	specs := []plugins.Spec{plugins.NewSpec(plugins.TagBot, nil), plugins.NewSpec(plugins.Codecov, nil)}
	require.NoError(t, NewOutputFormatter("").WithWriter(&buf).DisplayExpression(specs))
	assert.Equal(t, "[TagBot(), Codecov()]\n", buf.String())
}

func TestDisplayCreated(t *testing.T) {
	var console bytes.Buffer
	logger := logging.NewCustomLoggerWithOptions("info", "text", false, false)
	logger.ConsoleWriter = &console
	ctx := logging.WithLogger(context.Background(), logger)

	created := &generator.Created{
		PackageDir: "/tmp/out/MyPkg",
		Expression: "[TagBot()]",
		MiseFile:   "/tmp/out/MyPkg/.mise.toml",
	}
	require.NoError(t, NewOutputFormatter("text").DisplayCreated(ctx, created))

	out := console.String()
	assert.Contains(t, out, "Package created successfully at: /tmp/out/MyPkg")
	assert.Contains(t, out, "cd /tmp/out/MyPkg")
	assert.Contains(t, out, "mise run instantiate")

	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter("json").WithWriter(&buf).DisplayCreated(ctx, created))
	assert.Contains(t, buf.String(), `"package_dir": "/tmp/out/MyPkg"`)
}
