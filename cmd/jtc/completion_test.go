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
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompletionCommandStructure(t *testing.T) {
	t.Parallel()

	if completionCmd.Use != "completion [bash|zsh|fish|powershell]" {
		t.Errorf("completionCmd.Use = %q, unexpected", completionCmd.Use)
	}

	expectedArgs := map[string]bool{"bash": true, "zsh": true, "fish": true, "powershell": true}
	if len(completionCmd.ValidArgs) != len(expectedArgs) {
		t.Fatalf("ValidArgs length = %d, want %d", len(completionCmd.ValidArgs), len(expectedArgs))
	}
	for _, arg := range completionCmd.ValidArgs {
		if !expectedArgs[arg] {
			t.Errorf("unexpected ValidArg: %q", arg)
		}
	}
	if !completionCmd.DisableFlagsInUseLine {
		t.Error("DisableFlagsInUseLine should be true")
	}
}

func TestCompletionCommandArgsValidation(t *testing.T) {
	t.Parallel()

	if err := cobra.ExactArgs(1)(completionCmd, []string{}); err == nil {
		t.Error("expected error for 0 args")
	}
	if err := cobra.ExactArgs(1)(completionCmd, []string{"bash"}); err != nil {
		t.Errorf("expected no error for 1 arg, got: %v", err)
	}
	if err := cobra.ExactArgs(1)(completionCmd, []string{"bash", "zsh"}); err == nil {
		t.Error("expected error for 2 args")
	}
}

func TestCompletionCommand_Shells(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			buf := new(bytes.Buffer)
			root := &cobra.Command{Use: "jtc"}
			root.AddCommand(completionCmd)
			root.SetOut(buf)
			root.SetArgs([]string{"completion", shell})

			if err := root.Execute(); err != nil {
				t.Errorf("completion %s command returned error: %v", shell, err)
			}
			if buf.Len() == 0 {
				t.Errorf("completion %s produced no output", shell)
			}
		})
	}
}

func TestCompletionCommand_InvalidArg(t *testing.T) {
	buf := new(bytes.Buffer)
	root := &cobra.Command{Use: "jtc"}
	root.AddCommand(completionCmd)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"completion", "invalid"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for invalid completion arg")
	}
}

func TestCreateCompletions(t *testing.T) {
	root := &cobra.Command{Use: "jtc"}
	create := &cobra.Command{Use: "create", Run: func(*cobra.Command, []string) {}}
	addCreateFlags(create.Flags(), &defaultFlags{})
	root.AddCommand(create)

	registerCreateCompletions(create)

	tests := []struct {
		flag string
		want []string
	}{
		{"template", []string{"minimal", "standard", "full"}},
		{"license", []string{"MIT", "Apache", "BSD3"}},
		{"formatter-style", []string{"blue", "sciml"}},
		{"format", []string{"json", "yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			buf := new(bytes.Buffer)
			root.SetOut(buf)
			root.SetErr(buf)
			root.SetArgs([]string{"__complete", "create", "--" + tt.flag, ""})
			_ = root.Execute()

			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("--%s completions missing %q: %s", tt.flag, want, out)
				}
			}
		})
	}
}

func TestRootCompletions(t *testing.T) {
	root := &cobra.Command{Use: "jtc", Run: func(*cobra.Command, []string) {}}
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().String("log-level", "", "")
	root.PersistentFlags().String("log-format", "", "")

	registerRootCompletions(root)

	tests := []struct {
		flag string
		want string
	}{
		{"log-level", "debug"},
		{"log-format", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			buf := new(bytes.Buffer)
			root.SetOut(buf)
			root.SetErr(buf)
			root.SetArgs([]string{"__complete", "--" + tt.flag, ""})
			_ = root.Execute()

			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("--%s completions missing %q: %s", tt.flag, tt.want, buf.String())
			}
		})
	}
}
