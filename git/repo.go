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

package git

import (
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// RepoRoot returns the root of the git repository containing path. path
// does not have to exist; the search starts at its nearest existing
// ancestor. The second result is false when no repository is found.
func RepoRoot(path string) (string, bool) {
	start, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	start = nearestExisting(start)

	repo, err := gogit.PlainOpenWithOptions(start, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repository
		return start, true
	}
	return wt.Filesystem.Root(), true
}

// IsInsideRepo reports whether path is inside a git repository.
func IsInsideRepo(path string) bool {
	_, ok := RepoRoot(path)
	return ok
}

// Init creates an empty repository at path.
func Init(path string) error {
	_, err := gogit.PlainInit(path, false)
	return err
}

func nearestExisting(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}
