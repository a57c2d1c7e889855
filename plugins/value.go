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
	"encoding/json"
	"fmt"
	"strings"
)

// Value is a typed plugin parameter value.
type Value struct {
	typ  ValueType
	str  string
	b    bool
	list []string
}

// StringValue returns a string parameter value.
func StringValue(s string) Value {
	return Value{typ: StringType, str: s}
}

// BoolValue returns a boolean parameter value.
func BoolValue(b bool) Value {
	return Value{typ: BoolType, b: b}
}

// ListValue returns a list of strings parameter value.
func ListValue(items ...string) Value {
	list := make([]string, len(items))
	copy(list, items)
	return Value{typ: ListType, list: list}
}

// VersionValue returns a version parameter value. A leading "v" is dropped.
func VersionValue(v string) Value {
	return Value{typ: VersionType, str: strings.TrimPrefix(strings.TrimSpace(v), "v")}
}

// Type returns the value's type.
func (v Value) Type() ValueType {
	return v.typ
}

// AsString returns the string held by a string or version value.
func (v Value) AsString() (string, bool) {
	if v.typ != StringType && v.typ != VersionType {
		return "", false
	}
	return v.str, true
}

// AsBool returns the boolean held by a bool value.
func (v Value) AsBool() (bool, bool) {
	if v.typ != BoolType {
		return false, false
	}
	return v.b, true
}

// AsList returns a copy of the items held by a list value.
func (v Value) AsList() ([]string, bool) {
	if v.typ != ListType {
		return nil, false
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out, true
}

// Equal reports whether two values have the same type and content.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case BoolType:
		return v.b == o.b
	case ListType:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	default:
		return v.str == o.str
	}
}

// Literal renders the value as a Julia literal.
func (v Value) Literal() string {
	switch v.typ {
	case BoolType:
		if v.b {
			return "true"
		}
		return "false"
	case ListType:
		items := make([]string, len(v.list))
		for i, item := range v.list {
			items[i] = quote(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case VersionType:
		return "v" + quote(v.str)
	default:
		return quote(v.str)
	}
}

// Interface returns the value as a plain Go value for display and
// serialization.
func (v Value) Interface() any {
	switch v.typ {
	case BoolType:
		return v.b
	case ListType:
		out, _ := v.AsList()
		return out
	default:
		return v.str
	}
}

// String implements fmt.Stringer using the Julia literal form.
func (v Value) String() string {
	return v.Literal()
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// ValueFromInterface converts a decoded configuration value into a Value of
// the wanted type.
func ValueFromInterface(want ValueType, raw any) (Value, error) {
	switch want {
	case BoolType:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, fmt.Errorf("expected bool, got %T", raw)
		}
		return BoolValue(b), nil
	case ListType:
		switch items := raw.(type) {
		case []string:
			return ListValue(items...), nil
		case []any:
			list := make([]string, 0, len(items))
			for _, item := range items {
				s, ok := item.(string)
				if !ok {
					return Value{}, fmt.Errorf("expected list of strings, found %T element", item)
				}
				list = append(list, s)
			}
			return ListValue(list...), nil
		case string:
			return ListValue(splitListItems(items)...), nil
		default:
			return Value{}, fmt.Errorf("expected list, got %T", raw)
		}
	case VersionType:
		switch s := raw.(type) {
		case string:
			return VersionValue(s), nil
		case int, int64, float64:
			return VersionValue(fmt.Sprint(s)), nil
		default:
			return Value{}, fmt.Errorf("expected version string, got %T", raw)
		}
	default:
		switch s := raw.(type) {
		case string:
			return StringValue(s), nil
		case fmt.Stringer:
			return StringValue(s.String()), nil
		case int, int64, float64:
			return StringValue(fmt.Sprint(s)), nil
		default:
			return Value{}, fmt.Errorf("expected string, got %T", raw)
		}
	}
}

// splitListItems splits a comma separated list written as a single string.
func splitListItems(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	var items []string
	for _, part := range strings.Split(s, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"'`)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// quote renders s as a double quoted Julia string literal. Backslashes,
// quotes and dollar signs are escaped so the literal never interpolates.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '"', '$':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// unquote reverses quote for a literal opened by either quote character.
func unquote(lit string) (string, bool) {
	if len(lit) < 2 {
		return "", false
	}
	q := lit[0]
	if (q != '"' && q != '\'') || lit[len(lit)-1] != q {
		return "", false
	}
	body := lit[1 : len(lit)-1]
	var b strings.Builder
	escaped := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == q {
			return "", false
		}
		b.WriteByte(c)
	}
	if escaped {
		return "", false
	}
	return b.String(), true
}
