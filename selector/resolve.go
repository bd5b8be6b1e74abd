package selector

import "github.com/MeKo-Christian/sassel/selecterr"

// ResolveParentRefs rewrites every '&' reference in cs using parent,
// distributing over commas: each own sequence is resolved against each
// parent sequence in turn, in (parent, own) order.
//
// When parent is nil, cs must contain no Parent references at all; if it
// does, this is a syntax error ("base-level rules cannot contain '&'").
func (cs *CommaSequence) ResolveParentRefs(parent *CommaSequence) (*CommaSequence, error) {
	if parent == nil {
		if cs.ContainsParentRef() {
			return nil, selecterr.NewSyntaxError("base-level rules cannot contain '&'", 0, "")
		}
		return cs, nil
	}
	var out []Sequence
	for _, parentSeq := range parent.Sequences {
		for _, ownSeq := range cs.Sequences {
			resolved, err := ownSeq.ResolveParentRefs(&parentSeq)
			if err != nil {
				return nil, err
			}
			out = append(out, *resolved)
		}
	}
	return &CommaSequence{Sequences: out}, nil
}

// ResolveParentRefs rewrites '&' references in s against a single parent
// sequence, splicing in the parent's members wherever '&' appears.
func (s *Sequence) ResolveParentRefs(parentSeq *Sequence) (*Sequence, error) {
	members := s.Members

	var leadingNewline *SequenceMember
	if len(members) > 0 && members[0].IsNewline() {
		nl := members[0]
		leadingNewline = &nl
		members = members[1:]
	}

	hasParentRef := false
	for _, m := range members {
		if m.Kind == MemberSimple && m.Simple.ContainsParentRef() {
			hasParentRef = true
			break
		}
	}
	if !hasParentRef {
		prepended := make([]SequenceMember, 0, len(members)+2)
		prepended = append(prepended, SimpleMember(NewSimpleSequence(Parent())))
		if len(members) > 0 {
			prepended = append(prepended, CombinatorMember(Descendant))
		}
		prepended = append(prepended, members...)
		members = prepended
	}

	var out []SequenceMember
	if leadingNewline != nil {
		out = append(out, *leadingNewline)
	}
	for _, m := range members {
		if m.Kind != MemberSimple {
			out = append(out, m)
			continue
		}
		spliced, err := m.Simple.ResolveParentRefs(parentSeq)
		if err != nil {
			return nil, err
		}
		out = append(out, spliced...)
	}
	return &Sequence{Members: out}, nil
}

// ResolveParentRefs expands a single SimpleSequence against parentSeq,
// returning the list of SequenceMembers it should be spliced into.
func (ss *SimpleSequence) ResolveParentRefs(parentSeq *Sequence) ([]SequenceMember, error) {
	if len(ss.Members) == 0 || ss.Members[0].Kind != KindParent {
		return []SequenceMember{SimpleMember(ss)}, nil
	}
	if len(ss.Members) == 1 {
		out := make([]SequenceMember, len(parentSeq.Members))
		copy(out, parentSeq.Members)
		return out, nil
	}

	n := len(parentSeq.Members)
	if n == 0 || parentSeq.Members[n-1].Kind != MemberSimple {
		return nil, selecterr.NewSyntaxError("Invalid parent selector", ss.Line, ss.Filename)
	}
	last := parentSeq.Members[n-1].Simple

	fused := make([]SimpleSelector, 0, len(last.Members)+len(ss.Members)-1)
	fused = append(fused, last.Members...)
	fused = append(fused, ss.Members[1:]...)

	out := make([]SequenceMember, 0, n)
	out = append(out, parentSeq.Members[:n-1]...)
	out = append(out, SimpleMember(&SimpleSequence{
		Members:  fused,
		Line:     ss.Line,
		Filename: ss.Filename,
	}))
	return out, nil
}
