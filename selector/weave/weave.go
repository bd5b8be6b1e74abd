// Package weave implements the interleaving step of @extend expansion:
// given a list of "parenthesized" mini-sequences (alternative choices at
// each position of an extended Sequence), it produces every ordering
// consistent with each mini-sequence's own relative order.
package weave

import (
	"strings"

	"github.com/MeKo-Christian/sassel/selecterr"
	"github.com/MeKo-Christian/sassel/selector"
)

// Limits bounds the combinatorial blowup of Weave/subweave. Exceeding
// either limit aborts with selecterr.ErrExpansionTooLarge rather than
// building an unbounded result.
type Limits struct {
	MaxPaths   int
	MaxOutputs int
}

// DefaultLimits is a permissive ceiling suitable for hand-written
// stylesheets; callers extending untrusted input should tighten it.
var DefaultLimits = &Limits{MaxPaths: 4096, MaxOutputs: 4096}

// Weave expands path, a list of mini-sequences, into every ordering that
// preserves each mini-sequence's internal order.
func Weave(path [][]selector.SequenceMember, limits *Limits) ([][]selector.SequenceMember, error) {
	if limits == nil {
		limits = DefaultLimits
	}
	if len(path) > limits.MaxPaths {
		return nil, selecterr.ErrExpansionTooLarge
	}

	c := &scratch{limits: limits, memo: make(map[string][][]selector.SequenceMember)}

	befores := [][]selector.SequenceMember{{}}
	for _, current := range path {
		rest, tail := splitTail(current)

		var next [][]selector.SequenceMember
		for _, b := range befores {
			subs, err := c.subweave(b, rest)
			if err != nil {
				return nil, err
			}
			for _, s := range subs {
				combined := make([]selector.SequenceMember, 0, len(s)+len(tail))
				combined = append(combined, s...)
				combined = append(combined, tail...)
				next = append(next, combined)
			}
		}
		if len(next) > limits.MaxOutputs {
			return nil, selecterr.ErrExpansionTooLarge
		}
		befores = next
	}
	return befores, nil
}

type scratch struct {
	limits *Limits
	memo   map[string][][]selector.SequenceMember
}

func (c *scratch) subweave(seq1, seq2 []selector.SequenceMember) ([][]selector.SequenceMember, error) {
	if len(seq1) == 0 {
		return [][]selector.SequenceMember{cloneMembers(seq2)}, nil
	}
	if len(seq2) == 0 {
		return [][]selector.SequenceMember{cloneMembers(seq1)}, nil
	}

	key := encodeKey(seq1, seq2)
	if cached, ok := c.memo[key]; ok {
		return cached, nil
	}

	head1, rest1 := splitFirstUnit(seq1)
	head2, rest2 := splitFirstUnit(seq2)

	last1 := lastSimpleSequence(head1)
	last2 := lastSimpleSequence(head2)

	unifiedHead, haveUnified, err := unifyHeads(head1, head2, last1, last2)
	if err != nil {
		return nil, err
	}

	var out [][]selector.SequenceMember

	sub1, err := c.subweave(rest1, seq2)
	if err != nil {
		return nil, err
	}
	for _, s := range sub1 {
		out = append(out, prepend(head1, s))
	}

	if haveUnified {
		sub3, err := c.subweave(rest1, rest2)
		if err != nil {
			return nil, err
		}
		for _, s := range sub3 {
			out = append(out, prepend(unifiedHead, s))
		}
	}

	sub2, err := c.subweave(seq1, rest2)
	if err != nil {
		return nil, err
	}
	for _, s := range sub2 {
		out = append(out, prepend(head2, s))
	}

	if len(out) > c.limits.MaxOutputs {
		return nil, selecterr.ErrExpansionTooLarge
	}

	c.memo[key] = out
	return out, nil
}

// unifyHeads tries unifying last1 into last2's members, then the symmetric
// attempt, returning whichever succeeds first.
func unifyHeads(head1, head2 []selector.SequenceMember, last1, last2 *selector.SimpleSequence) ([]selector.SequenceMember, bool, error) {
	if last1 == nil || last2 == nil {
		return nil, false, nil
	}
	if merged, ok, err := last1.Unify(last2.Members); err != nil {
		return nil, false, err
	} else if ok {
		return combineHead(head1, merged.Members), true, nil
	}
	if merged, ok, err := last2.Unify(last1.Members); err != nil {
		return nil, false, err
	} else if ok {
		return combineHead(head2, merged.Members), true, nil
	}
	return nil, false, nil
}

func combineHead(head []selector.SequenceMember, mergedMembers []selector.SimpleSelector) []selector.SequenceMember {
	out := cloneMembers(head)
	idx := len(out) - 1
	orig := out[idx].Simple
	out[idx] = selector.SimpleMember(&selector.SimpleSequence{
		Members:  mergedMembers,
		Line:     orig.Line,
		Filename: orig.Filename,
	})
	return out
}

func lastSimpleSequence(head []selector.SequenceMember) *selector.SimpleSequence {
	if len(head) == 0 {
		return nil
	}
	last := head[len(head)-1]
	if last.Kind != selector.MemberSimple {
		return nil
	}
	return last.Simple
}

func prepend(head, tail []selector.SequenceMember) []selector.SequenceMember {
	out := make([]selector.SequenceMember, 0, len(head)+len(tail))
	out = append(out, head...)
	out = append(out, tail...)
	return out
}

func cloneMembers(ms []selector.SequenceMember) []selector.SequenceMember {
	out := make([]selector.SequenceMember, len(ms))
	copy(out, ms)
	return out
}

// splitFirstUnit shifts members from the front onto head until head ends
// in a SimpleSequence: a unit is leading combinator tokens plus the one
// compound selector they glue to, never split mid-combinator.
func splitFirstUnit(seq []selector.SequenceMember) (head, rest []selector.SequenceMember) {
	for i, m := range seq {
		if m.Kind == selector.MemberSimple {
			return cloneMembers(seq[:i+1]), seq[i+1:]
		}
	}
	return cloneMembers(seq), nil
}

// splitTail mirrors splitFirstUnit from the right: the trailing
// SimpleSequence plus any contiguous combinator tokens immediately
// preceding it.
func splitTail(seq []selector.SequenceMember) (rest, tail []selector.SequenceMember) {
	if len(seq) == 0 {
		return nil, nil
	}
	lastSimpleIdx := -1
	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i].Kind == selector.MemberSimple {
			lastSimpleIdx = i
			break
		}
	}
	if lastSimpleIdx == -1 {
		return nil, cloneMembers(seq)
	}
	start := lastSimpleIdx
	for start > 0 && seq[start-1].Kind == selector.MemberCombinator {
		start--
	}
	return cloneMembers(seq[:start]), cloneMembers(seq[start:])
}

func encodeKey(a, b []selector.SequenceMember) string {
	var sb strings.Builder
	renderMembers(&sb, a)
	sb.WriteByte(0)
	renderMembers(&sb, b)
	return sb.String()
}

func renderMembers(sb *strings.Builder, ms []selector.SequenceMember) {
	for _, m := range ms {
		sb.WriteString(m.String())
		sb.WriteByte(0x1f)
	}
}
