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

package templates

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionManager validates the Julia and package versions handed to
// PkgTemplates.
type VersionManager struct{}

// NewVersionManager returns a VersionManager.
func NewVersionManager() *VersionManager {
	return &VersionManager{}
}

var juliaVersionOutput = regexp.MustCompile(`julia version (\S+)`)

// ParseVersion parses a version with an optional "v" prefix. Partial
// versions such as "1.10" are accepted. An empty string yields nil.
func (vm *VersionManager) ParseVersion(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if version == "" {
		return nil, nil
	}

	ver, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid version format %q: %w", version, err)
	}
	return ver, nil
}

// ValidateJuliaVersion checks a Julia compat version such as "1", "1.10"
// or "1.10.2". Empty means PkgTemplates' default.
func (vm *VersionManager) ValidateJuliaVersion(version string) error {
	_, err := vm.ParseVersion(version)
	return err
}

// NormalizeProjectVersion turns a package version into full x.y.z form,
// so "0.1" becomes "0.1.0". Empty input stays empty.
func (vm *VersionManager) NormalizeProjectVersion(version string) (string, error) {
	ver, err := vm.ParseVersion(version)
	if err != nil || ver == nil {
		return "", err
	}
	return ver.String(), nil
}

// ParseJuliaOutput extracts the version from `julia --version` output,
// e.g. "julia version 1.10.4".
func (vm *VersionManager) ParseJuliaOutput(output string) (*semver.Version, error) {
	m := juliaVersionOutput.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("unrecognized julia version output %q", strings.TrimSpace(output))
	}
	return vm.ParseVersion(m[1])
}

// SatisfiesCompat reports whether the installed Julia version meets the
// minimum compat version. An empty minimum is always satisfied.
func (vm *VersionManager) SatisfiesCompat(installed, minimum string) (bool, error) {
	if strings.TrimSpace(minimum) == "" {
		return true, nil
	}

	inst, err := vm.ParseVersion(installed)
	if err != nil {
		return false, err
	}
	if inst == nil {
		return false, fmt.Errorf("installed version is empty")
	}

	c, err := semver.NewConstraint(">= " + strings.TrimPrefix(strings.TrimSpace(minimum), "v"))
	if err != nil {
		return false, fmt.Errorf("invalid constraint: %w", err)
	}
	return c.Check(inst), nil
}
