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

// Package main writes the JSON schema of the jtc config file. Editors use the
// generated file for completion and validation of config.toml.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cowdogmoo/jtc/config"
	"github.com/invopop/jsonschema"
)

var (
	output = flag.String("o", "schema/jtc-config.json", "Output path for JSON schema")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	schema := config.Schema()
	schema.ID = jsonschema.ID("https://github.com/cowdogmoo/jtc/schema/jtc-config.json")

	schema.Examples = []interface{}{
		map[string]interface{}{
			"default": map[string]interface{}{
				"author":        "Jane Doe",
				"mail":          "jane@example.com",
				"user":          "janedoe",
				"license":       config.DefaultLicense,
				"template":      config.DefaultTemplate,
				"julia_version": "1.10",
				"with_mise":     true,
				"Git": map[string]interface{}{
					"ssh":    true,
					"ignore": []string{"*.tmp"},
				},
				"Tests": map[string]interface{}{
					"aqua": true,
				},
			},
			"log": map[string]interface{}{
				"level":  config.DefaultLogLevel,
				"format": config.DefaultLogFormat,
			},
		},
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	dir := filepath.Dir(*output)
	if err := os.MkdirAll(dir, config.DirPermReadWriteExec); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Trailing newline for end-of-file-fixer
	data = append(data, '\n')

	if err := os.WriteFile(*output, data, config.FilePermReadWrite); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}

	fmt.Printf("Generated JSON schema: %s\n", *output)
	return nil
}
