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
	"bytes"
	"context"
	"testing"

	"github.com/cowdogmoo/jtc/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	buf := new(bytes.Buffer)
	logger := logging.NewCustomLoggerWithOptions("warn", "text", false, false)
	logger.ConsoleWriter = buf
	return logging.WithLogger(context.Background(), logger), buf
}

func TestDecodeScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		encoded      string
		want         []Spec
		wantWarnings []Reason
	}{
		{
			name:    "license",
			encoded: `[License(; name="MIT")]`,
			want:    []Spec{NewSpec(License, map[string]Value{"name": StringValue("MIT")})},
		},
		{
			name:    "formatter without style",
			encoded: `[Formatter()]`,
			want:    []Spec{{Kind: Formatter}},
		},
		{
			name:    "git with every parameter",
			encoded: `[Git(; manifest=true, ssh=true, ignore=["*.tmp", "custom_file"])]`,
			want: []Spec{NewSpec(Git, map[string]Value{
				"manifest": BoolValue(true),
				"ssh":      BoolValue(true),
				"ignore":   ListValue("*.tmp", "custom_file"),
			})},
		},
		{
			name:         "duplicate kind keeps the first",
			encoded:      `[License(; name="MIT"), License(; name="Apache")]`,
			want:         []Spec{NewSpec(License, map[string]Value{"name": StringValue("MIT")})},
			wantWarnings: []Reason{ReasonDuplicate},
		},
		{
			name:         "unknown kind is skipped",
			encoded:      `[UnknownPlugin(; x=1), TagBot()]`,
			want:         []Spec{{Kind: TagBot}},
			wantWarnings: []Reason{ReasonUnknown},
		},
		{
			name:    "malformed license falls back to MIT",
			encoded: `[License(; bogus="x")]`,
			want:    []Spec{NewSpec(License, map[string]Value{"name": StringValue("MIT")})},
		},
		{
			name:    "license name that is not a string falls back to MIT",
			encoded: `[License(; name=MIT)]`,
			want:    []Spec{NewSpec(License, map[string]Value{"name": StringValue("MIT")})},
		},
		{
			name:         "unquoted formatter style is rejected",
			encoded:      `[Formatter(; style=blue), Codecov()]`,
			want:         []Spec{{Kind: Codecov}},
			wantWarnings: []Reason{ReasonInvalid},
		},
		{
			name:         "failed parse does not claim the kind",
			encoded:      `[Formatter(; style=1), Formatter(; style="blue")]`,
			want:         []Spec{NewSpec(Formatter, map[string]Value{"style": StringValue("blue")})},
			wantWarnings: []Reason{ReasonInvalid},
		},
		{
			name:    "git subset of parameters",
			encoded: `[Git(; ssh=false)]`,
			want:    []Spec{NewSpec(Git, map[string]Value{"ssh": BoolValue(false)})},
		},
		{
			name:         "git with non boolean manifest",
			encoded:      `[Git(; manifest="yes")]`,
			wantWarnings: []Reason{ReasonInvalid},
		},
		{
			name:    "tests keeps only true flags",
			encoded: `[Tests(; project=false, aqua=true, jet=true)]`,
			want: []Spec{NewSpec(Tests, map[string]Value{
				"aqua": BoolValue(true),
				"jet":  BoolValue(true),
			})},
		},
		{
			name:    "project file version",
			encoded: `[ProjectFile(; version=v"0.0.1")]`,
			want:    []Spec{NewSpec(ProjectFile, map[string]Value{"version": VersionValue("0.0.1")})},
		},
		{
			name:    "short project file version is normalized",
			encoded: `[ProjectFile(; version=v"0.1"), Git()]`,
			want: []Spec{
				NewSpec(ProjectFile, map[string]Value{"version": VersionValue("0.1.0")}),
				{Kind: Git},
			},
		},
		{
			name:    "project file without version",
			encoded: `[ProjectFile()]`,
			want:    []Spec{{Kind: ProjectFile}},
		},
		{
			name:         "project file with invalid version",
			encoded:      `[ProjectFile(; version=v"one"), ProjectFile(; version="1.0.0")]`,
			wantWarnings: []Reason{ReasonInvalid, ReasonInvalid},
		},
		{
			name:         "malformed expression is skipped",
			encoded:      `[TagBot(), License(; name="MIT]`,
			want:         []Spec{{Kind: TagBot}},
			wantWarnings: []Reason{ReasonMalformed},
		},
		{
			name:         "text after the closing parenthesis is malformed",
			encoded:      `[Git(; manifest=true) junk, TagBot()]`,
			want:         []Spec{{Kind: TagBot}},
			wantWarnings: []Reason{ReasonMalformed},
		},
		{
			name:    "zero parameter kinds ignore arguments",
			encoded: `[Documenter{GitHubActions}(; logo="x"), CompatHelper(), Develop()]`,
			want:    []Spec{{Kind: Documenter}, {Kind: CompatHelper}, {Kind: Develop}},
		},
		{
			name:    "empty input",
			encoded: "[]",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := quietContext(t)

			got, warnings := Decode(ctx, tc.encoded)

			require.Len(t, got, len(tc.want))
			for i := range tc.want {
				assert.Truef(t, tc.want[i].Equal(got[i]), "spec %d: want %s, got %s", i, tc.want[i], got[i])
			}

			reasons := make([]Reason, 0, len(warnings))
			for _, w := range warnings {
				reasons = append(reasons, w.Reason)
			}
			if len(tc.wantWarnings) == 0 {
				assert.Empty(t, reasons)
			} else {
				assert.Equal(t, tc.wantWarnings, reasons)
			}
		})
	}
}

func TestDecodePreservesOrder(t *testing.T) {
	t.Parallel()
	ctx, _ := quietContext(t)

	got, warnings := Decode(ctx, `[TagBot(), Codecov(), License(; name="ISC"), GitHubActions()]`)
	require.Empty(t, warnings)

	kinds := make([]Kind, 0, len(got))
	for _, s := range got {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []Kind{TagBot, Codecov, License, GitHubActions}, kinds)
}

func TestDecodeSeenSetIsPerCall(t *testing.T) {
	t.Parallel()
	ctx, _ := quietContext(t)
	dec := NewDecoder(nil)

	for i := 0; i < 3; i++ {
		got, warnings := dec.Decode(ctx, `[License(; name="MIT")]`)
		require.Len(t, got, 1)
		assert.Empty(t, warnings)
	}
}

func TestDecodeLogsWarnings(t *testing.T) {
	t.Parallel()
	ctx, buf := quietContext(t)

	_, warnings := Decode(ctx, `[TagBot(), TagBot()]`)
	require.Len(t, warnings, 1)

	assert.Contains(t, buf.String(), "duplicate plugin type")
	assert.Contains(t, buf.String(), "TagBot()")
}

func TestDecodeSuggestions(t *testing.T) {
	t.Parallel()
	ctx, _ := quietContext(t)

	tests := []struct {
		encoded string
		want    Kind
	}{
		{encoded: `[Documenter()]`, want: Documenter},
		{encoded: `[Licence(; name="MIT")]`, want: License},
		{encoded: `[UnknownPlugin(; x=1)]`, want: ""},
	}

	for _, tc := range tests {
		_, warnings := Decode(ctx, tc.encoded)
		require.Len(t, warnings, 1, tc.encoded)
		assert.Equal(t, ReasonUnknown, warnings[0].Reason)
		assert.Equal(t, tc.want, warnings[0].Suggestion, tc.encoded)
	}
}

func TestWarningString(t *testing.T) {
	t.Parallel()

	w := Warning{Reason: ReasonUnknown, Expression: "Licence()", Suggestion: License}
	assert.Equal(t, "unknown plugin type, skipping: Licence(); did you mean License?", w.String())

	w = Warning{Reason: ReasonInvalid, Expression: "Git(; ssh=1)", Detail: "ssh: expected true or false, got 1"}
	assert.Equal(t, "invalid plugin parameters, skipping: Git(; ssh=1) (ssh: expected true or false, got 1)", w.String())
}

func TestCustomRegistry(t *testing.T) {
	t.Parallel()
	ctx, _ := quietContext(t)

	reg := NewRegistry(map[Kind]Parser{
		TagBot: noParams(TagBot),
	})
	assert.Equal(t, []Kind{TagBot}, reg.Kinds())

	got, warnings := NewDecoder(reg).Decode(ctx, `[TagBot(), Codecov()]`)
	require.Len(t, got, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, ReasonUnknown, warnings[0].Reason)
}
