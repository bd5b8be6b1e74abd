package extend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MeKo-Christian/sassel/selecterr"
	"github.com/MeKo-Christian/sassel/selector"
	"github.com/MeKo-Christian/sassel/selector/weave"
)

// edge records one step of an extension chain, used only to render the
// "@extend loop" diagnostic.
type edge struct {
	childSel  string
	parentSel string
	line      int
	filename  string
}

// Extend rewrites cs so that every selector registered in m also matches
// wherever its extending selector does. This realizes
// CommaSequence.extend from the selector algebra, kept a package function
// rather than a method to avoid selector importing extend.
func Extend(cs *selector.CommaSequence, m *Map, opts ...Option) (*selector.CommaSequence, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var out []selector.Sequence
	for i := range cs.Sequences {
		expanded, err := extendSequence(&cs.Sequences[i], m, o)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return &selector.CommaSequence{Sequences: out}, nil
}

func extendSequence(s *selector.Sequence, m *Map, o Options) ([]selector.Sequence, error) {
	altsPerPos := make([][][]selector.SequenceMember, 0, len(s.Members))
	for _, mem := range s.Members {
		if mem.Kind != selector.MemberSimple {
			altsPerPos = append(altsPerPos, [][]selector.SequenceMember{{mem}})
			continue
		}
		alts := [][]selector.SequenceMember{{mem}}
		extended, err := extendSimpleSequence(mem.Simple, m, o, nil)
		if err != nil {
			return nil, err
		}
		for _, seqAlt := range extended {
			members := make([]selector.SequenceMember, len(seqAlt.Members))
			copy(members, seqAlt.Members)
			alts = append(alts, members)
		}
		altsPerPos = append(altsPerPos, alts)
	}

	paths, err := cartesianProduct(altsPerPos, o.Limits)
	if err != nil {
		return nil, err
	}

	var results []selector.Sequence
	for _, path := range paths {
		woven, err := weave.Weave(path, o.Limits)
		if err != nil {
			return nil, err
		}
		for _, w := range woven {
			results = append(results, selector.Sequence{Members: w})
		}
	}
	return results, nil
}

// cartesianProduct computes every combination taking one alternative per
// position, in position order.
func cartesianProduct(altsPerPos [][][]selector.SequenceMember, limits *weave.Limits) ([][][]selector.SequenceMember, error) {
	result := [][][]selector.SequenceMember{{}}
	for _, alts := range altsPerPos {
		next := make([][][]selector.SequenceMember, 0, len(result)*len(alts))
		for _, prefix := range result {
			for _, alt := range alts {
				p := make([][]selector.SequenceMember, len(prefix)+1)
				copy(p, prefix)
				p[len(prefix)] = alt
				next = append(next, p)
			}
		}
		if limits != nil && len(next) > limits.MaxPaths {
			return nil, selecterr.ErrExpansionTooLarge
		}
		result = next
	}
	return result, nil
}

// extendSimpleSequence realizes SimpleSequence.extend: it finds every
// registered rule whose target is a subset of ss's members, unifies the
// replacement's tail against the remainder, and recurses to support
// transitive "A extends B extends C" chains. chain records the recursion
// path so a runaway chain reports the full loop.
func extendSimpleSequence(ss *selector.SimpleSequence, m *Map, o Options, chain []edge) ([]selector.Sequence, error) {
	if len(chain) > o.MaxDepth {
		return nil, loopError(chain)
	}

	entries := m.matching(ss.Members)
	direct := make([]selector.Sequence, 0, len(entries))
	directTargets := make([][]selector.SimpleSelector, 0, len(entries))
	directChildSels := make([]string, 0, len(entries))
	directLines := make([]int, 0, len(entries))
	directFiles := make([]string, 0, len(entries))

	for _, e := range entries {
		remainder := multisetDifference(ss.Members, e.TargetMembers)
		last := e.Replacement.LastSimpleSequence()
		if last == nil {
			continue
		}
		unifiedMembers, ok, err := last.Unify(remainder)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		newMembers := make([]selector.SequenceMember, len(e.Replacement.Members))
		copy(newMembers, e.Replacement.Members)
		newMembers[len(newMembers)-1] = selector.SimpleMember(unifiedMembers)

		direct = append(direct, selector.Sequence{Members: newMembers})
		directTargets = append(directTargets, e.TargetMembers)
		directChildSels = append(directChildSels, e.Replacement.String())
		directLines = append(directLines, e.Line)
		directFiles = append(directFiles, e.Filename)
	}

	var recursive []selector.Sequence
	seen := make(map[string]bool)
	for i, d := range direct {
		last := d.LastSimpleSequence()
		if last == nil {
			continue
		}
		newChain := make([]edge, len(chain)+1)
		copy(newChain, chain)
		newChain[len(chain)] = edge{
			childSel:  directChildSels[i],
			parentSel: stringifySelectors(directTargets[i]),
			line:      directLines[i],
			filename:  directFiles[i],
		}

		more, err := extendSimpleSequence(last, m, o, newChain)
		if err != nil {
			return nil, err
		}
		for _, alt := range more {
			key := alt.String()
			if seen[key] {
				continue
			}
			seen[key] = true

			altLast := alt.LastSimpleSequence()
			if altLast == nil {
				continue
			}
			newMembers := make([]selector.SequenceMember, len(d.Members))
			copy(newMembers, d.Members)
			newMembers[len(newMembers)-1] = selector.SimpleMember(altLast)
			recursive = append(recursive, selector.Sequence{Members: newMembers})
		}
	}

	out := make([]selector.Sequence, 0, len(direct)+len(recursive))
	out = append(out, direct...)
	out = append(out, recursive...)
	return out, nil
}

func stringifySelectors(sels []selector.SimpleSelector) string {
	var b strings.Builder
	for _, s := range sels {
		b.WriteString(s.String())
	}
	return b.String()
}

// loopError formats the "@extend loop" diagnostic: entries sorted so the
// one on the highest source line comes first, joined by ",\n".
func loopError(chain []edge) error {
	sorted := make([]edge, len(chain))
	copy(sorted, chain)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].line > sorted[j].line })

	lines := make([]string, len(sorted))
	for i, e := range sorted {
		loc := fmt.Sprintf("on line %d", e.line)
		if e.filename != "" {
			loc += " of " + e.filename
		}
		lines[i] = fmt.Sprintf("%s extends %s %s", e.childSel, e.parentSel, loc)
	}
	msg := "An @extend loop was found:\n" + strings.Join(lines, ",\n")
	return selecterr.NewSyntaxError(msg, 0, "")
}
