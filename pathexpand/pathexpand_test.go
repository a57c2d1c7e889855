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

package pathexpand

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("JTC_TEST_DIR", "/srv/julia")
	t.Setenv("JTC_TEST_UNSET", "")

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "Empty", input: "", expected: ""},
		{name: "Tilde only", input: "~", expected: home},
		{name: "Tilde with path", input: "~/projects", expected: filepath.Join(home, "projects")},
		{name: "Tilde with deep path", input: "~/dev/julia/MyPkg", expected: filepath.Join(home, "dev/julia/MyPkg")},
		{name: "Absolute path unchanged", input: "/opt/julia/packages", expected: "/opt/julia/packages"},
		{name: "Relative path unchanged", input: "./packages", expected: "./packages"},
		{name: "Tilde inside the path is literal", input: "/tmp/~cache", expected: "/tmp/~cache"},
		{name: "Environment variable expansion", input: "${HOME}/work", expected: filepath.Join(home, "work")},
		{name: "Bare variable", input: "$JTC_TEST_DIR/pkgs", expected: "/srv/julia/pkgs"},
		{name: "Default value", input: "${JTC_TEST_UNSET:-~/dev}", expected: filepath.Join(home, "dev")},
		{name: "Unterminated expansion", input: "${HOME", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExpandPath(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandPath(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMustExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := MustExpandPath("~/pkgs"); got != filepath.Join(home, "pkgs") {
		t.Errorf("MustExpandPath(~/pkgs) = %q", got)
	}
	if got := MustExpandPath("${HOME"); got != "${HOME" {
		t.Errorf("MustExpandPath should return the input on error, got %q", got)
	}
}
