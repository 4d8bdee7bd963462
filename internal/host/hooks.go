package host

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	tea "github.com/charmbracelet/bubbletea"
)

// Hook runs when a node is created
type Hook func(n *Node) tea.Cmd

// Chain runs prev, then next. Either may be nil.
func Chain(prev, next Hook) Hook {
	switch {
	case prev == nil:
		return next
	case next == nil:
		return prev
	}
	return func(n *Node) tea.Cmd {
		return tea.Batch(prev(n), next(n))
	}
}

// Matcher selects node definitions by glob patterns on the name or the
// category, ignoring case
type Matcher struct {
	names      []glob.Glob
	categories []glob.Glob
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// NewMatcher compiles the name and category patterns
func NewMatcher(names, categories []string) (*Matcher, error) {
	n, err := compileAll(names)
	if err != nil {
		return nil, err
	}
	c, err := compileAll(categories)
	if err != nil {
		return nil, err
	}
	return &Matcher{names: n, categories: c}, nil
}

// MustMatcher is NewMatcher for patterns known at compile time
func MustMatcher(names, categories []string) *Matcher {
	m, err := NewMatcher(names, categories)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether any pattern accepts the definition
func (m *Matcher) Match(def NodeDef) bool {
	if m == nil {
		return false
	}
	name, category := strings.ToLower(def.Name), strings.ToLower(def.Category)
	for _, g := range m.names {
		if g.Match(name) {
			return true
		}
	}
	if category == "" {
		return false
	}
	for _, g := range m.categories {
		if g.Match(category) {
			return true
		}
	}
	return false
}
