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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		specs []Spec
		want  string
	}{
		{
			name: "empty list",
			want: "[]",
		},
		{
			name:  "zero parameter kinds",
			specs: []Spec{{Kind: TagBot}, {Kind: Documenter}, NewSpec(Formatter, map[string]Value{})},
			want:  "[TagBot(), Documenter{GitHubActions}(), Formatter()]",
		},
		{
			name: "string and version parameters",
			specs: []Spec{
				NewSpec(License, map[string]Value{"name": StringValue("MIT")}),
				NewSpec(ProjectFile, map[string]Value{"version": VersionValue("0.0.1")}),
			},
			want: `[License(; name="MIT"), ProjectFile(; version=v"0.0.1")]`,
		},
		{
			name: "git parameters follow schema order",
			specs: []Spec{NewSpec(Git, map[string]Value{
				"ignore":   ListValue("*.tmp", "custom_file"),
				"ssh":      BoolValue(true),
				"manifest": BoolValue(false),
			})},
			want: `[Git(; manifest=false, ssh=true, ignore=["*.tmp", "custom_file"])]`,
		},
		{
			name: "extra keys are sorted after schema keys",
			specs: []Spec{NewSpec(Tests, map[string]Value{
				"zeta":  BoolValue(true),
				"alpha": BoolValue(true),
				"aqua":  BoolValue(true),
			})},
			want: `[Tests(; aqua=true, alpha=true, zeta=true)]`,
		},
		{
			name:  "strings are escaped",
			specs: []Spec{NewSpec(Formatter, map[string]Value{"style": StringValue(`a"b\c$d`)})},
			want:  `[Formatter(; style="a\"b\\c\$d")]`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Encode(tc.specs))
		})
	}
}

func TestValueLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "true", BoolValue(true).Literal())
	assert.Equal(t, "[]", ListValue().Literal())
	assert.Equal(t, `v"1.2.3"`, VersionValue("v1.2.3").Literal())
	assert.Equal(t, `"x"`, StringValue("x").String())
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: `"plain"`, want: "plain", wantOK: true},
		{in: `'single'`, want: "single", wantOK: true},
		{in: `"a\"b"`, want: `a"b`, wantOK: true},
		{in: `"\$x"`, want: "$x", wantOK: true},
		{in: `"open`, wantOK: false},
		{in: `"a"b"`, wantOK: false},
		{in: `"trailing\"`, wantOK: false},
		{in: `x`, wantOK: false},
	}

	for _, tc := range tests {
		got, ok := unquote(tc.in)
		assert.Equal(t, tc.wantOK, ok, tc.in)
		if tc.wantOK {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}
