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
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cowdogmoo/jtc/logging"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Reason classifies why an expression was dropped during decoding.
type Reason string

// Reasons reported by Decode.
const (
	ReasonUnknown   Reason = "unknown plugin type"
	ReasonDuplicate Reason = "duplicate plugin type"
	ReasonMalformed Reason = "malformed plugin expression"
	ReasonInvalid   Reason = "invalid plugin parameters"
)

// Warning describes one expression dropped during decoding.
type Warning struct {
	Reason     Reason `json:"reason" yaml:"reason"`
	Expression string `json:"expression" yaml:"expression"`
	Kind       Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Suggestion Kind   `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Detail     string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Err        error  `json:"-" yaml:"-"`
}

// String renders the warning as a single log line.
func (w Warning) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, skipping: %s", w.Reason, w.Expression)
	if w.Detail != "" {
		fmt.Fprintf(&b, " (%s)", w.Detail)
	}
	if w.Suggestion != "" {
		fmt.Fprintf(&b, "; did you mean %s?", w.Suggestion)
	}
	return b.String()
}

// Decoder reads plugin list expressions using a Registry.
type Decoder struct {
	registry *Registry
}

// NewDecoder returns a decoder backed by registry, or by the default
// registry when registry is nil.
func NewDecoder(registry *Registry) *Decoder {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Decoder{registry: registry}
}

// Decode reads encoded into an ordered list of specs. Unknown, duplicate,
// malformed and unparsable expressions are skipped; each one produces a
// Warning that is also logged through the context logger. Decode never
// fails.
func (d *Decoder) Decode(ctx context.Context, encoded string) ([]Spec, []Warning) {
	var (
		specs    []Spec
		warnings []Warning
	)
	seen := make(map[Kind]bool)

	warn := func(w Warning) {
		if w.Err != nil {
			w.Detail = w.Err.Error()
		}
		logging.WarnContext(ctx, "%s", w.String())
		warnings = append(warnings, w)
	}

	for _, expr := range Split(encoded) {
		if expr.Malformed {
			warn(Warning{Reason: ReasonMalformed, Expression: expr.Text, Detail: "unbalanced quotes, parentheses or brackets"})
			continue
		}
		if rest := Trailing(expr.Text); rest != "" {
			warn(Warning{Reason: ReasonMalformed, Expression: expr.Text, Detail: fmt.Sprintf("unexpected %q after the closing parenthesis", rest)})
			continue
		}

		kind, ok := d.registry.Classify(expr.Text)
		if !ok {
			w := Warning{Reason: ReasonUnknown, Expression: expr.Text}
			if s, found := d.registry.Suggest(Identifier(expr.Text)); found {
				w.Suggestion = s
			}
			warn(w)
			continue
		}

		if seen[kind] {
			warn(Warning{Reason: ReasonDuplicate, Expression: expr.Text, Kind: kind})
			continue
		}

		parse, _ := d.registry.Parser(kind)
		spec, err := parse(expr.Text)
		if err != nil {
			warn(Warning{Reason: ReasonInvalid, Expression: expr.Text, Kind: kind, Err: err})
			continue
		}

		logging.DebugContext(ctx, "Decoded plugin %s", spec.Expression())
		specs = append(specs, spec)
		seen[kind] = true
	}

	return specs, warnings
}

// Decode reads encoded with the default registry.
func Decode(ctx context.Context, encoded string) ([]Spec, []Warning) {
	return NewDecoder(nil).Decode(ctx, encoded)
}

// maxSuggestDistance bounds the edit distance for typo suggestions.
const maxSuggestDistance = 2

// Suggest returns the registered kind closest to name. Abbreviations such as
// "Documenter" are matched with a fuzzy subsequence search, typos such as
// "Gitt" by edit distance.
func (r *Registry) Suggest(name string) (Kind, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}

	targets := make([]string, len(r.order))
	for i, k := range r.order {
		targets[i] = string(k)
	}

	if ranks := fuzzy.RankFindFold(name, targets); len(ranks) > 0 {
		sort.Sort(ranks)
		return Kind(ranks[0].Target), true
	}

	best, bestDist := "", maxSuggestDistance+1
	lower := strings.ToLower(name)
	for _, t := range targets {
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(t)); d < bestDist {
			best, bestDist = t, d
		}
	}
	if best == "" {
		return "", false
	}
	return Kind(best), true
}
