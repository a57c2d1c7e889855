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

package config

import (
	"encoding/json"

	"github.com/cowdogmoo/jtc/errors"
	"github.com/cowdogmoo/jtc/plugins"
	"github.com/invopop/jsonschema"
)

// Schema returns a JSON Schema describing config.toml, including the
// option tables of every plugin that takes parameters.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(&Config{})
	s.Title = "jtc configuration"
	s.Description = "Defaults for jtc create, stored at $XDG_CONFIG_HOME/jtc/config.toml"

	def, ok := s.Properties.Get("default")
	if !ok || def == nil {
		return s
	}
	def.Properties.Delete("plugin_options")

	for _, kind := range plugins.Kinds() {
		params := plugins.Schema(kind)
		if len(params) == 0 {
			continue
		}
		table := &jsonschema.Schema{
			Type:                 "object",
			Description:          "Options for the " + string(kind) + " plugin",
			Properties:           jsonschema.NewProperties(),
			AdditionalProperties: jsonschema.FalseSchema,
		}
		for _, p := range params {
			table.Properties.Set(p.Name, paramSchema(p))
		}
		def.Properties.Set(string(kind), table)
	}

	return s
}

func paramSchema(p plugins.Param) *jsonschema.Schema {
	s := &jsonschema.Schema{Description: p.Description}
	switch p.Type {
	case plugins.BoolType:
		s.Type = "boolean"
	case plugins.ListType:
		s.Type = "array"
		s.Items = &jsonschema.Schema{Type: "string"}
	case plugins.VersionType:
		s.Type = "string"
		s.Pattern = `^v?\d+\.\d+\.\d+`
	default:
		s.Type = "string"
	}
	return s
}

// SchemaJSON renders Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, errors.Wrap("encode config schema", "", err)
	}
	return data, nil
}
