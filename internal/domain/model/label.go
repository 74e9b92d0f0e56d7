package model

import (
	"slices"
	"strings"
)

// Labels managed by the label bot. Anything else on a PR belongs to humans or
// other tools and is left alone.
const (
	LabelAPI       = "api"
	LabelAPIPrefix = "api:"
	LabelCI        = "ci"
	LabelSQL       = "sql"
	LabelJava      = "java"
	LabelPython    = "python"
)

// IsBotOwned reports whether name is a label the bot computes itself.
func IsBotOwned(name string) bool {
	return strings.HasPrefix(name, LabelAPIPrefix) || name == LabelAPI || name == LabelCI
}

// LabelSet is an unordered set of label names.
type LabelSet map[string]struct{}

// NewLabelSet returns a set holding names.
func NewLabelSet(names ...string) LabelSet {
	s := make(LabelSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name.
func (s LabelSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is in the set.
func (s LabelSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union returns a new set with the members of both sets.
func (s LabelSet) Union(other LabelSet) LabelSet {
	out := make(LabelSet, len(s)+len(other))
	for n := range s {
		out.Add(n)
	}
	for n := range other {
		out.Add(n)
	}
	return out
}

// Missing returns the members of s that other lacks, sorted.
func (s LabelSet) Missing(other LabelSet) []string {
	var out []string
	for n := range s {
		if !other.Has(n) {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}

// Equal reports whether both sets have the same members.
func (s LabelSet) Equal(other LabelSet) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if !other.Has(n) {
			return false
		}
	}
	return true
}

// Sorted returns the members in lexical order.
func (s LabelSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
