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
	"regexp"
	"strings"
)

// leadingIdent matches a constructor name, optionally with type parameters
// such as Documenter{GitHubActions}.
var leadingIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?:\{[A-Za-z0-9_,\s]*\})?`)

// Identifier returns the whole leading identifier of expr. It returns ""
// when expr does not start with an identifier, when the identifier is
// followed by anything other than "(" or the end of the expression, or
// when text follows the closing parenthesis of the call.
func Identifier(expr string) string {
	expr = strings.TrimSpace(expr)
	ident := leadingIdent.FindString(expr)
	if ident == "" {
		return ""
	}
	rest := strings.TrimSpace(expr[len(ident):])
	if rest != "" && !strings.HasPrefix(rest, "(") {
		return ""
	}
	if Trailing(expr) != "" {
		return ""
	}
	return strings.Join(strings.Fields(ident), "")
}

// Trailing returns any text after the closing parenthesis of the
// constructor call in expr, such as "junk" in `Git() junk`.
func Trailing(expr string) string {
	expr = strings.TrimSpace(expr)
	open := strings.IndexByte(expr, '(')
	if open < 0 {
		return ""
	}
	end := closingParen(expr, open)
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(expr[end+1:])
}

// Classify returns the kind named by the leading identifier of expr, or
// false when the identifier is not a known kind.
func (r *Registry) Classify(expr string) (Kind, bool) {
	ident := Identifier(expr)
	if ident == "" {
		return "", false
	}
	kind := Kind(ident)
	if _, ok := r.parsers[kind]; !ok {
		return "", false
	}
	return kind, true
}

// Classify looks expr up in the default registry.
func Classify(expr string) (Kind, bool) {
	return DefaultRegistry().Classify(expr)
}
