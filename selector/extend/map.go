// Package extend implements @extend expansion: rewriting a CommaSequence
// so that every selector extended via an Entry also matches wherever the
// extending selector does.
package extend

import "github.com/MeKo-Christian/sassel/selector"

// Entry is one "X extends Y" rule: Target is the set of simple selectors
// the user named after @extend (the lookup key), Replacement is the
// sequence the extending rule was defined on, and TargetMembers is the
// exact member list multiset-subtracted from a match during expansion.
type Entry struct {
	Target        []selector.SimpleSelector
	Replacement   *selector.Sequence
	TargetMembers []selector.SimpleSelector
	Line          int
	Filename      string
}

// Map collects the Entries gathered from a stylesheet's @extend rules.
// Lookup is by multiset subset: Add registers one rule, matching returns
// every Entry whose Target is a subset of the queried member list.
type Map struct {
	entries []Entry
}

// NewMap returns an empty extend map.
func NewMap() *Map {
	return &Map{}
}

// Add registers target => replacement as one extension rule.
func (m *Map) Add(target []selector.SimpleSelector, replacement *selector.Sequence, line int, filename string) {
	m.entries = append(m.entries, Entry{
		Target:        target,
		Replacement:   replacement,
		TargetMembers: target,
		Line:          line,
		Filename:      filename,
	})
}

// Len reports the number of registered rules.
func (m *Map) Len() int {
	return len(m.entries)
}

func (m *Map) matching(members []selector.SimpleSelector) []Entry {
	var out []Entry
	for _, e := range m.entries {
		if isSubsetMultiset(e.Target, members) {
			out = append(out, e)
		}
	}
	return out
}

// isSubsetMultiset reports whether every element of sub has a distinct
// matching element in super (duplicates in sub each need their own
// match).
func isSubsetMultiset(sub, super []selector.SimpleSelector) bool {
	used := make([]bool, len(super))
	for _, s := range sub {
		found := false
		for i, x := range super {
			if used[i] {
				continue
			}
			if x.Equal(s) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// multisetDifference returns a \ b, preserving a's order and removing one
// occurrence of each b element per match.
func multisetDifference(a, b []selector.SimpleSelector) []selector.SimpleSelector {
	used := make([]bool, len(b))
	var out []selector.SimpleSelector
	for _, x := range a {
		removed := false
		for i, y := range b {
			if used[i] {
				continue
			}
			if x.Equal(y) {
				used[i] = true
				removed = true
				break
			}
		}
		if !removed {
			out = append(out, x)
		}
	}
	return out
}
