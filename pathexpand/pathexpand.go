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

// Package pathexpand expands a leading tilde and environment variables in
// user supplied paths such as output_dir = "~/dev/julia".
package pathexpand

import (
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// ExpandPath expands "~", "~/..." and $VAR, ${VAR} or ${VAR:-default}
// references. Unset variables expand to the empty string.
//
// Examples:
//   - "~/projects" -> "/home/user/projects"
//   - "${HOME}/work" -> "/home/user/work"
//   - "${JULIA_DEV:-~/dev}" -> "/home/user/dev" when JULIA_DEV is unset
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	expanded, err := shell.Expand(path, nil)
	if err != nil {
		return "", err
	}

	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(expanded[1:], "/")), nil
	}
	return expanded, nil
}

// MustExpandPath is like ExpandPath but returns path unchanged when it
// cannot be expanded.
func MustExpandPath(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}
