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

package plugins

import (
	"fmt"
	"sort"
	"strings"
)

// Spec is one requested plugin activation.
type Spec struct {
	Kind   Kind             `json:"kind" yaml:"kind"`
	Params map[string]Value `json:"params,omitempty" yaml:"params,omitempty"`
}

// NewSpec returns a Spec for kind with a copy of params.
func NewSpec(kind Kind, params map[string]Value) Spec {
	s := Spec{Kind: kind}
	if len(params) > 0 {
		s.Params = make(map[string]Value, len(params))
		for k, v := range params {
			s.Params[k] = v
		}
	}
	return s
}

// Param returns the named parameter value.
func (s Spec) Param(name string) (Value, bool) {
	v, ok := s.Params[name]
	return v, ok
}

// Validate checks s against the parameter schema of its kind.
func (s Spec) Validate() error {
	if !s.Kind.Known() {
		return fmt.Errorf("unknown plugin type %q", s.Kind)
	}
	for _, name := range sortedKeys(s.Params) {
		v := s.Params[name]
		p, ok := LookupParam(s.Kind, name)
		if !ok {
			return fmt.Errorf("%s does not accept parameter %q", s.Kind, name)
		}
		if v.Type() != p.Type {
			return fmt.Errorf("%s.%s must be a %s, got %s", s.Kind, name, p.Type, v.Type())
		}
		if p.TrueOnly {
			if b, _ := v.AsBool(); !b {
				return fmt.Errorf("%s.%s can only be enabled; omit it to disable", s.Kind, name)
			}
		}
		if p.Type == VersionType {
			raw, _ := v.AsString()
			if _, err := NormalizeVersion(raw); err != nil {
				return fmt.Errorf("%s.%s: %w", s.Kind, name, err)
			}
		}
	}
	return nil
}

// Expression renders s as a single Julia constructor call, such as
// Git(; ssh=true). Parameters follow schema order, then any extra keys in
// sorted order.
func (s Spec) Expression() string {
	if len(s.Params) == 0 {
		return string(s.Kind) + "()"
	}
	args := make([]string, 0, len(s.Params))
	for _, name := range s.paramOrder() {
		args = append(args, name+"="+s.Params[name].Literal())
	}
	return string(s.Kind) + "(; " + strings.Join(args, ", ") + ")"
}

// Equal reports whether two specs have the same kind and parameters.
func (s Spec) Equal(o Spec) bool {
	if s.Kind != o.Kind || len(s.Params) != len(o.Params) {
		return false
	}
	for k, v := range s.Params {
		ov, ok := o.Params[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (s Spec) String() string {
	return s.Expression()
}

func (s Spec) paramOrder() []string {
	order := make([]string, 0, len(s.Params))
	seen := make(map[string]bool, len(s.Params))
	for _, p := range schemas[s.Kind] {
		if _, ok := s.Params[p.Name]; ok {
			order = append(order, p.Name)
			seen[p.Name] = true
		}
	}
	for _, name := range sortedKeys(s.Params) {
		if !seen[name] {
			order = append(order, name)
		}
	}
	return order
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
