package selector

import "strings"

// MemberKind distinguishes the two kinds of elements in a Sequence.
type MemberKind int

const (
	MemberSimple MemberKind = iota
	MemberCombinator
)

// SequenceMember is one element of a Sequence: either a SimpleSequence or
// a combinator token (including the formatting-only newline marker).
type SequenceMember struct {
	Kind   MemberKind
	Simple *SimpleSequence
	Comb   Combinator
}

// SimpleMember wraps a SimpleSequence as a SequenceMember.
func SimpleMember(ss *SimpleSequence) SequenceMember {
	return SequenceMember{Kind: MemberSimple, Simple: ss}
}

// CombinatorMember wraps a combinator token (or the newline marker) as a
// SequenceMember.
func CombinatorMember(c Combinator) SequenceMember {
	return SequenceMember{Kind: MemberCombinator, Comb: c}
}

// IsNewline reports whether this member is the formatting-only newline
// marker rather than a real combinator.
func (m SequenceMember) IsNewline() bool {
	return m.Kind == MemberCombinator && m.Comb == Newline
}

// Equal compares two members, ignoring the newline marker's identity
// (two newline members are always equal, but a newline member never
// equals a real combinator or a simple sequence).
func (m SequenceMember) Equal(other SequenceMember) bool {
	if m.Kind != other.Kind {
		return false
	}
	if m.Kind == MemberCombinator {
		return m.Comb == other.Comb
	}
	return m.Simple.Equal(other.Simple)
}

func (m SequenceMember) String() string {
	if m.Kind == MemberSimple {
		return m.Simple.String()
	}
	return string(m.Comb)
}

// Sequence is a combinator sequence: simple sequences joined by
// combinators, e.g. "a.foo > b.bar". Equality ignores the newline
// formatting marker; Sequence has no hash method of its own.
type Sequence struct {
	Members []SequenceMember
}

// NewSequence builds a Sequence from its members.
func NewSequence(members ...SequenceMember) *Sequence {
	return &Sequence{Members: members}
}

// SetLocation propagates (line, filename) to every SimpleSequence this
// sequence contains.
func (s *Sequence) SetLocation(line int, filename string) {
	for _, m := range s.Members {
		if m.Kind == MemberSimple {
			m.Simple.SetLocation(line, filename)
		}
	}
}

// stripNewlines returns the member list with all newline markers removed.
func stripNewlines(members []SequenceMember) []SequenceMember {
	out := make([]SequenceMember, 0, len(members))
	for _, m := range members {
		if m.IsNewline() {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Equal compares two sequences, ignoring newline markers.
func (s *Sequence) Equal(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	a, b := stripNewlines(s.Members), stripNewlines(other.Members)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// LastSimpleSequence returns the final SimpleSequence member, or nil if
// the sequence is empty or (invariant violation) ends in a combinator.
func (s *Sequence) LastSimpleSequence() *SimpleSequence {
	for i := len(s.Members) - 1; i >= 0; i-- {
		m := s.Members[i]
		if m.IsNewline() {
			continue
		}
		if m.Kind == MemberSimple {
			return m.Simple
		}
		return nil
	}
	return nil
}

// ContainsParentRef reports whether any SimpleSequence in this sequence
// begins with the '&' marker.
func (s *Sequence) ContainsParentRef() bool {
	for _, m := range s.Members {
		if m.Kind == MemberSimple && m.Simple.ContainsParentRef() {
			return true
		}
	}
	return false
}

// Clone returns a sequence with an independent Members slice (the
// SimpleSequence pointers themselves are shared; mutate via Clone on
// those too if needed).
func (s *Sequence) Clone() *Sequence {
	members := make([]SequenceMember, len(s.Members))
	copy(members, s.Members)
	return &Sequence{Members: members}
}

// String renders the canonical form: combinators get a single
// surrounding space (descendant is exactly one space), and a "\n" marker
// replaces a surrounding " \n " triple with a bare "\n".
func (s *Sequence) String() string {
	var parts []string
	for _, m := range s.Members {
		switch {
		case m.Kind == MemberSimple:
			parts = append(parts, m.Simple.String())
		case m.Comb == Newline:
			parts = append(parts, "\n")
		case m.Comb == Descendant:
			parts = append(parts, " ")
		default:
			parts = append(parts, " "+string(m.Comb)+" ")
		}
	}
	out := strings.Join(parts, "")
	out = strings.ReplaceAll(out, " \n ", "\n")
	return out
}
