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

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cowdogmoo/jtc/config"
	"github.com/cowdogmoo/jtc/generator"
	"github.com/cowdogmoo/jtc/logging"
	"github.com/spf13/cobra"
)

// setupTestContext creates a context with a logger suitable for testing.
func setupTestContext(t *testing.T) context.Context {
	t.Helper()
	logger := logging.NewCustomLoggerWithOptions("error", "text", true, false)
	ctx := logging.WithLogger(context.Background(), logger)
	return ctx
}

// newTestCmd creates a cobra.Command with a config and a quiet logger in
// context. Output is collected in the returned buffer.
func newTestCmd(t *testing.T, cfg *config.Config) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	ctx := context.WithValue(setupTestContext(t), configKey, cfg)
	cmd.SetContext(ctx)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

// newTestCmdNoConfig creates a cobra.Command with no config in context.
func newTestCmdNoConfig(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.SetContext(setupTestContext(t))
	return cmd
}

// withCfgFile sets the --config global for the duration of a test.
func withCfgFile(t *testing.T, path string) {
	t.Helper()
	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })
}

// isolateHome points the config and git lookups at an empty directory.
func isolateHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)
	return dir
}

// fakeRunner stands in for julia and mise.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []generator.Command
	missing map[string]bool
	handle  func(generator.Command) (*generator.Result, error)
}

func (f *fakeRunner) Run(_ context.Context, cmd generator.Command) (*generator.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.missing[cmd.Name] {
		return &generator.Result{ExitCode: -1}, errors.New("executable file not found in $PATH")
	}
	if f.handle == nil {
		return &generator.Result{}, nil
	}
	return f.handle(cmd)
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + name, nil
}

// useRunner makes newGenerator return a generator backed by r.
func useRunner(t *testing.T, r *fakeRunner) {
	t.Helper()
	old := newGenerator
	newGenerator = func() *generator.Generator { return generator.New(r) }
	t.Cleanup(func() { newGenerator = old })
}

// mkdirRunner simulates julia creating dir.
func mkdirRunner(dir string) *fakeRunner {
	return &fakeRunner{handle: func(generator.Command) (*generator.Result, error) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		return &generator.Result{}, nil
	}}
}
