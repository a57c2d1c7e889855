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
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setOutput(t *testing.T, path string) {
	t.Helper()
	originalOutput := *output
	*output = path
	t.Cleanup(func() {
		*output = originalOutput
	})
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "writes schema output",
			setup: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(t.TempDir(), "nested", "schema.json")
			},
		},
		{
			name: "returns error on unwritable output",
			setup: func(t *testing.T) string {
				t.Helper()
				tmpDir := t.TempDir()
				readOnlyDir := filepath.Join(tmpDir, "readonly")
				if err := os.Mkdir(readOnlyDir, 0500); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
				t.Cleanup(func() {
					_ = os.Chmod(readOnlyDir, 0700)
				})
				if os.Geteuid() == 0 {
					t.Skip("root can write to read-only directories")
				}
				return filepath.Join(readOnlyDir, "schema.json")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputPath := tt.setup(t)
			setOutput(t, outputPath)

			err := run()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("run() error = %v", err)
			}

			data, err := os.ReadFile(outputPath)
			if err != nil {
				t.Fatalf("read schema: %v", err)
			}
			if !strings.HasSuffix(string(data), "}\n") {
				t.Error("schema file should end with a newline")
			}
		})
	}
}

// TestRunSchemaContent checks the generated schema describes the config
// file layout.
func TestRunSchemaContent(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "schema.json")
	setOutput(t, outputPath)

	if err := run(); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("schema JSON is not valid: %v", err)
	}

	if schema["$id"] != "https://github.com/cowdogmoo/jtc/schema/jtc-config.json" {
		t.Errorf("schema $id = %v", schema["$id"])
	}
	if schema["title"] != "jtc configuration" {
		t.Errorf("schema title = %v", schema["title"])
	}

	props, ok := schema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("schema missing properties")
	}
	def, ok := props["default"].(map[string]interface{})
	if !ok {
		t.Fatal("schema missing the default table")
	}
	defProps, _ := def["properties"].(map[string]interface{})
	for _, key := range []string{"author", "julia_version", "Git", "Tests"} {
		if _, ok := defProps[key]; !ok {
			t.Errorf("default table missing %q", key)
		}
	}

	examples, ok := schema["examples"].([]interface{})
	if !ok || len(examples) == 0 {
		t.Error("schema should carry an example config")
	}
}
