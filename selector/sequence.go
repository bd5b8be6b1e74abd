package selector

import (
	"hash/fnv"
	"strings"
)

// SimpleSequence is an ordered, non-empty list of SimpleSelectors
// targeting one element (e.g. "a.foo#bar[x]"). Equality and hash only
// consider (base, rest): the first member if it is Element or Universal,
// plus the unordered remainder.
type SimpleSequence struct {
	Members  []SimpleSelector
	Line     int
	Filename string
}

// NewSimpleSequence builds a SimpleSequence from its members.
func NewSimpleSequence(members ...SimpleSelector) *SimpleSequence {
	return &SimpleSequence{Members: members}
}

// Base returns the first member iff it is an Element or Universal
// selector, establishing the element this sequence targets.
func (ss *SimpleSequence) Base() (SimpleSelector, bool) {
	if len(ss.Members) == 0 {
		return SimpleSelector{}, false
	}
	first := ss.Members[0]
	if first.Kind == KindElement || first.Kind == KindUniversal {
		return first, true
	}
	return SimpleSelector{}, false
}

// Rest returns the unordered remainder of members (those after Base, or
// all members when there is no Base).
func (ss *SimpleSequence) Rest() []SimpleSelector {
	if _, ok := ss.Base(); ok {
		return ss.Members[1:]
	}
	return ss.Members
}

// SetLocation sets the (line, filename) of this sequence.
func (ss *SimpleSequence) SetLocation(line int, filename string) {
	ss.Line = line
	ss.Filename = filename
}

// Clone returns a deep-enough copy (new Members slice; selectors
// themselves are copied by value) so callers can mutate the result
// without aliasing ss.
func (ss *SimpleSequence) Clone() *SimpleSequence {
	members := make([]SimpleSelector, len(ss.Members))
	copy(members, ss.Members)
	return &SimpleSequence{Members: members, Line: ss.Line, Filename: ss.Filename}
}

// Equal reports whether two simple sequences target the same element via
// the same set of qualifiers, irrespective of member order among the
// non-base members.
func (ss *SimpleSequence) Equal(other *SimpleSequence) bool {
	if ss == nil || other == nil {
		return ss == other
	}
	base1, ok1 := ss.Base()
	base2, ok2 := other.Base()
	if ok1 != ok2 {
		return false
	}
	if ok1 && !base1.Equal(base2) {
		return false
	}
	return multisetEqual(ss.Rest(), other.Rest())
}

func multisetEqual(a, b []SimpleSelector) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if x.Equal(y) {
				used[j] = true
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

// Hash returns an order-independent hash consistent with Equal: permuting
// the non-base members never changes it.
func (ss *SimpleSequence) Hash() uint64 {
	h := fnv.New64a()
	if base, ok := ss.Base(); ok {
		_, _ = h.Write([]byte("base:" + base.String()))
	}
	var sum uint64
	for _, m := range ss.Rest() {
		mh := fnv.New64a()
		_, _ = mh.Write([]byte(m.String()))
		sum += mh.Sum64()
	}
	base := h.Sum64()
	return base ^ sum
}

// Unify folds each of ss's members, in order, into otherMembers via
// SimpleSelector.Unify. Any rejection aborts the fold. On success the
// result is wrapped in a new SimpleSequence carrying ss's location.
func (ss *SimpleSequence) Unify(otherMembers []SimpleSelector) (*SimpleSequence, bool, error) {
	acc := otherMembers
	for _, m := range ss.Members {
		next, ok, err := m.Unify(acc)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		acc = next
	}
	return &SimpleSequence{Members: acc, Line: ss.Line, Filename: ss.Filename}, true, nil
}

// ContainsParentRef reports whether the first member is the '&' marker.
func (ss *SimpleSequence) ContainsParentRef() bool {
	return len(ss.Members) > 0 && ss.Members[0].Kind == KindParent
}

// String renders the canonical concatenation of this sequence's members.
func (ss *SimpleSequence) String() string {
	var b strings.Builder
	for _, m := range ss.Members {
		b.WriteString(m.String())
	}
	return b.String()
}
