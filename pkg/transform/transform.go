// Package transform provides named replacement callbacks for rewrite rules.
//
// A transform builds a replacement string from the capture groups of a
// pattern match, for rewrites too structural to express as a flat
// backreference template. Transforms are registered by name and looked up
// by the rule compiler.
package transform

import (
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Match holds the capture groups of a single pattern match.
// Group 0 is the full matched text.
type Match struct {
	groups [][]byte
}

// NewMatch creates a Match from raw capture groups
func NewMatch(groups [][]byte) Match {
	return Match{groups: groups}
}

// Group returns capture group i as a string, or "" if the group
// is absent or did not participate in the match
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.groups) || m.groups[i] == nil {
		return ""
	}
	return string(m.groups[i])
}

// Len returns the number of groups, including group 0
func (m Match) Len() int {
	return len(m.groups)
}

// Func builds the replacement text for a single match
type Func func(m Match) ([]byte, error)

var (
	// 🗺️ transforms is the registry of named transforms
	transforms = map[string]Func{}
)

// 📝 Register registers a transform under a name
func Register(name string, fn Func) {
	transforms[name] = fn
}

// 🎯 Get returns the transform registered under name, or nil
func Get(name string) Func {
	return transforms[name]
}

// 📋 Names returns the registered transform names, sorted
func Names() []string {
	names := make([]string, 0, len(transforms))
	for name := range transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Block joins lines into a multi-line block, prefixing every line with
// indent. The captured indentation of a match is reapplied this way so the
// replacement nests at the same depth as the text it replaces.
func Block(indent string, lines ...string) []byte {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteString(line)
	}
	return []byte(b.String())
}

// requireGroups checks that a match carries at least n groups beyond group 0
func requireGroups(m Match, n int, name string) error {
	if m.Len() <= n {
		return errors.Errorf("transform %s: pattern defines %d capture groups, need %d", name, m.Len()-1, n)
	}
	return nil
}
