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
	"sort"
	"sync"
)

// Registry maps each known kind to its parser. A Registry is never
// modified after construction and is safe for concurrent use.
type Registry struct {
	parsers map[Kind]Parser
	order   []Kind
}

// NewRegistry returns a registry holding a copy of parsers. Kinds are
// ordered as in Kinds, with any extra kinds appended in sorted order.
func NewRegistry(parsers map[Kind]Parser) *Registry {
	r := &Registry{parsers: make(map[Kind]Parser, len(parsers))}
	for k, p := range parsers {
		r.parsers[k] = p
	}
	for _, k := range allKinds {
		if _, ok := r.parsers[k]; ok {
			r.order = append(r.order, k)
		}
	}
	var extra []Kind
	for k := range r.parsers {
		if !k.Known() {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	r.order = append(r.order, extra...)
	return r
}

// DefaultRegistry returns the registry of every built-in plugin parser.
var DefaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(map[Kind]Parser{
		ProjectFile:   parseProjectFile,
		License:       parseLicense,
		Git:           parseGit,
		Formatter:     parseFormatter,
		Tests:         parseTests,
		GitHubActions: noParams(GitHubActions),
		Codecov:       noParams(Codecov),
		Documenter:    noParams(Documenter),
		TagBot:        noParams(TagBot),
		CompatHelper:  noParams(CompatHelper),
		Develop:       noParams(Develop),
	})
})

// Parser returns the parser registered for kind.
func (r *Registry) Parser(kind Kind) (Parser, bool) {
	p, ok := r.parsers[kind]
	return p, ok
}

// Kinds returns the registered kinds.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}
