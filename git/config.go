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

// Package git reads the user's git identity and inspects repositories.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cowdogmoo/jtc/logging"
	"gopkg.in/ini.v1"
)

// Identity is the user information PkgTemplates falls back to when no
// author, user or mail is given.
type Identity struct {
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Email      string `json:"email,omitempty" yaml:"email,omitempty"`
	GitHubUser string `json:"github_user,omitempty" yaml:"github_user,omitempty"`
}

// Author formats the identity as a git author string.
func (i Identity) Author() string {
	return formatAuthor(i.Name, i.Email)
}

// ConfigReader reads git configuration from .gitconfig files.
type ConfigReader struct {
	home string
}

// NewConfigReader creates a reader for the current user's ~/.gitconfig.
func NewConfigReader() *ConfigReader {
	return &ConfigReader{}
}

// NewConfigReaderWithHome creates a reader rooted at home instead of the
// user's home directory.
func NewConfigReaderWithHome(home string) *ConfigReader {
	return &ConfigReader{home: home}
}

// Identity reads user.name, user.email and github.user, following one
// level of [include] when values are missing. Read errors yield an empty
// identity.
func (r *ConfigReader) Identity(ctx context.Context) Identity {
	home := r.home
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			logging.DebugContext(ctx, "Failed to get home directory: %v", err)
			return Identity{}
		}
	}

	cfg := r.loadGitConfig(ctx, home)
	if cfg == nil {
		return Identity{}
	}

	id := r.extractIdentity(cfg)
	if id.Name == "" || id.Email == "" || id.GitHubUser == "" {
		id = r.tryIncludedConfig(ctx, cfg, home, id)
	}
	return id
}

// loadGitConfig loads the main .gitconfig file from home.
func (r *ConfigReader) loadGitConfig(ctx context.Context, home string) *ini.File {
	gitconfigPath := filepath.Join(home, ".gitconfig")
	cfg, err := ini.Load(gitconfigPath)
	if err != nil {
		logging.DebugContext(ctx, "Failed to load .gitconfig: %v", err)
		return nil
	}
	return cfg
}

func (r *ConfigReader) extractIdentity(cfg *ini.File) Identity {
	return Identity{
		Name:       cfg.Section("user").Key("name").String(),
		Email:      cfg.Section("user").Key("email").String(),
		GitHubUser: cfg.Section("github").Key("user").String(),
	}
}

// tryIncludedConfig fills empty fields from the file named by
// [include] path.
func (r *ConfigReader) tryIncludedConfig(ctx context.Context, cfg *ini.File, home string, current Identity) Identity {
	includePath := cfg.Section("include").Key("path").String()
	if includePath == "" {
		return current
	}
	includePath = expandPath(includePath, home)

	includedCfg, err := ini.Load(includePath)
	if err != nil {
		logging.DebugContext(ctx, "Failed to load included config from %s: %v", includePath, err)
		return current
	}

	included := r.extractIdentity(includedCfg)
	if current.Name == "" {
		current.Name = included.Name
	}
	if current.Email == "" {
		current.Email = included.Email
	}
	if current.GitHubUser == "" {
		current.GitHubUser = included.GitHubUser
	}
	return current
}

// expandPath resolves ~ and environment variables. Relative paths are
// relative to home, where .gitconfig lives.
func expandPath(path, home string) string {
	path = os.ExpandEnv(path)
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	case !filepath.IsAbs(path):
		return filepath.Join(home, path)
	default:
		return path
	}
}

// formatAuthor formats name and email as a git author string.
func formatAuthor(name, email string) string {
	switch {
	case name != "" && email != "":
		return fmt.Sprintf("%s <%s>", name, email)
	case name != "":
		return name
	case email != "":
		return email
	default:
		return ""
	}
}
