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

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		encoded string
		want    []string
	}{
		{
			name:    "empty input",
			encoded: "",
			want:    []string{},
		},
		{
			name:    "empty brackets",
			encoded: "[ ]",
			want:    []string{},
		},
		{
			name:    "commas nested in strings and lists",
			encoded: `[License(; name="MIT"), Git(; manifest=true, ignore=["a,b", "c"])]`,
			want:    []string{`License(; name="MIT")`, `Git(; manifest=true, ignore=["a,b", "c"])`},
		},
		{
			name:    "no surrounding brackets",
			encoded: `TagBot(), CompatHelper()`,
			want:    []string{"TagBot()", "CompatHelper()"},
		},
		{
			name:    "trailing comma",
			encoded: `[TagBot(), ]`,
			want:    []string{"TagBot()"},
		},
		{
			name:    "other quote character is not a closer",
			encoded: `[Formatter(; style="it's, fine"), Codecov()]`,
			want:    []string{`Formatter(; style="it's, fine")`, "Codecov()"},
		},
		{
			name:    "escaped quote stays inside literal",
			encoded: `[License(; name="a\", b"), TagBot()]`,
			want:    []string{`License(; name="a\", b")`, "TagBot()"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Tokenize(tc.encoded))
		})
	}
}

func TestSplitMarksUnbalancedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		encoded string
		want    []Expression
	}{
		{
			name:    "unterminated quote swallows the rest",
			encoded: `[TagBot(), License(; name="MIT), Codecov()]`,
			want: []Expression{
				{Text: "TagBot()"},
				{Text: `License(; name="MIT), Codecov()`, Malformed: true},
			},
		},
		{
			name:    "unclosed parenthesis",
			encoded: `[Git(; ssh=true, Codecov()]`,
			want: []Expression{
				{Text: `Git(; ssh=true, Codecov()`, Malformed: true},
			},
		},
		{
			name:    "stray closer only taints its own element",
			encoded: `[TagBot()), Codecov()]`,
			want: []Expression{
				{Text: "TagBot())", Malformed: true},
				{Text: "Codecov()"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Split(tc.encoded))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr   string
		want   Kind
		wantOK bool
	}{
		{expr: `License(; name="MIT")`, want: License, wantOK: true},
		{expr: "Documenter{GitHubActions}()", want: Documenter, wantOK: true},
		{expr: "Documenter{ GitHubActions }()", want: Documenter, wantOK: true},
		{expr: "TagBot", want: TagBot, wantOK: true},
		{expr: "  Codecov ()", want: Codecov, wantOK: true},
		{expr: "Documenter()", wantOK: false},
		{expr: `Formatter(; style="License")`, want: Formatter, wantOK: true},
		{expr: "GitHubActionsX()", wantOK: false},
		{expr: "Gitlab()", wantOK: false},
		{expr: "Git.Foo()", wantOK: false},
		{expr: `"Git"()`, wantOK: false},
		{expr: "", wantOK: false},
		{expr: "Git(; manifest=true) junk", wantOK: false},
		{expr: `Git(; ignore=[")"])`, want: Git, wantOK: true},
	}

	for _, tc := range tests {
		got, ok := Classify(tc.expr)
		assert.Equal(t, tc.wantOK, ok, tc.expr)
		assert.Equal(t, tc.want, got, tc.expr)
	}
}

func TestTrailing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "junk", Trailing("Git(; manifest=true) junk"))
	assert.Equal(t, "()", Trailing("TagBot()()"))
	assert.Equal(t, "", Trailing(`License(; name=")")`))
	assert.Equal(t, "", Trailing("Codecov"))
	assert.Equal(t, "", Trailing("Git(; ssh=true"))
}
