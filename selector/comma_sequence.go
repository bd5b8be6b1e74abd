package selector

import "strings"

// CommaSequence is an ordered list of Sequences, representing "A, B, C".
// Equality is order-sensitive.
type CommaSequence struct {
	Sequences []Sequence
}

// NewCommaSequence builds a CommaSequence from its member sequences.
func NewCommaSequence(sequences ...Sequence) *CommaSequence {
	return &CommaSequence{Sequences: sequences}
}

// SetLocation propagates (line, filename) to every contained
// SimpleSequence.
func (cs *CommaSequence) SetLocation(line int, filename string) {
	for i := range cs.Sequences {
		cs.Sequences[i].SetLocation(line, filename)
	}
}

// Equal compares two comma sequences order-sensitively.
func (cs *CommaSequence) Equal(other *CommaSequence) bool {
	if cs == nil || other == nil {
		return cs == other
	}
	if len(cs.Sequences) != len(other.Sequences) {
		return false
	}
	for i := range cs.Sequences {
		a, b := cs.Sequences[i], other.Sequences[i]
		if !a.Equal(&b) {
			return false
		}
	}
	return true
}

// ContainsParentRef reports whether any member sequence contains a '&'.
func (cs *CommaSequence) ContainsParentRef() bool {
	for i := range cs.Sequences {
		if cs.Sequences[i].ContainsParentRef() {
			return true
		}
	}
	return false
}

// String renders the canonical ", "-joined form.
func (cs *CommaSequence) String() string {
	parts := make([]string, len(cs.Sequences))
	for i := range cs.Sequences {
		parts[i] = cs.Sequences[i].String()
	}
	return strings.Join(parts, ", ")
}
