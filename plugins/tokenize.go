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

import "strings"

// Expression is one top-level element of a plugin list expression.
type Expression struct {
	Text string
	// Malformed is set when the element has unbalanced parentheses,
	// brackets or quotes.
	Malformed bool
}

// Split breaks a plugin list expression into its top-level elements.
//
// One surrounding bracket pair is stripped first. Commas only separate
// elements outside of quoted literals and at parenthesis and bracket depth
// zero. Elements are trimmed and empty ones are dropped.
func Split(encoded string) []Expression {
	body := strings.TrimSpace(encoded)
	if strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]") {
		body = body[1 : len(body)-1]
	}
	return scan(body, ",")
}

// Tokenize returns the text of every top-level element of encoded,
// including malformed ones.
func Tokenize(encoded string) []string {
	exprs := Split(encoded)
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, e.Text)
	}
	return out
}

// scanner tracks nesting while walking an expression.
type scanner struct {
	parens   int
	brackets int
	quote    byte
	escaped  bool
	// broken is set when a closer appeared without a matching opener.
	broken bool
}

// step advances the scanner over r and reports whether r sits at the top
// level, outside of any literal or nesting.
func (s *scanner) step(r byte) bool {
	if s.quote != 0 {
		switch {
		case s.escaped:
			s.escaped = false
		case r == '\\':
			s.escaped = true
		case r == s.quote:
			s.quote = 0
		}
		return false
	}

	switch r {
	case '"', '\'':
		s.quote = r
		return false
	case '(':
		s.parens++
		return false
	case ')':
		if s.parens == 0 {
			s.broken = true
			return false
		}
		s.parens--
		return false
	case '[':
		s.brackets++
		return false
	case ']':
		if s.brackets == 0 {
			s.broken = true
			return false
		}
		s.brackets--
		return false
	}
	return s.parens == 0 && s.brackets == 0
}

// balanced reports whether the scanner ended outside any literal and nesting.
func (s *scanner) balanced() bool {
	return !s.broken && s.quote == 0 && s.parens == 0 && s.brackets == 0
}

// closingParen returns the index of the parenthesis that closes the one at
// open, or -1 when it is never closed.
func closingParen(expr string, open int) int {
	var sc scanner
	for i := open; i < len(expr); i++ {
		sc.step(expr[i])
		if expr[i] == ')' && sc.quote == 0 && sc.parens == 0 && !sc.broken {
			return i
		}
	}
	return -1
}

// scan splits body on any of seps found at the top level.
func scan(body, seps string) []Expression {
	var (
		out []Expression
		buf strings.Builder
		sc  scanner
	)

	flush := func(final bool) {
		text := strings.TrimSpace(buf.String())
		buf.Reset()
		malformed := sc.broken || (final && !sc.balanced())
		sc.broken = false
		if text == "" {
			return
		}
		out = append(out, Expression{Text: text, Malformed: malformed})
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		if sc.step(c) && strings.IndexByte(seps, c) >= 0 {
			flush(false)
			continue
		}
		buf.WriteByte(c)
	}
	flush(true)

	return out
}
