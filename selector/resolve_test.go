package selector

import "testing"

func seq(members ...SequenceMember) Sequence {
	return Sequence{Members: members}
}

func simpleMember(sels ...SimpleSelector) SequenceMember {
	return SimpleMember(NewSimpleSequence(sels...))
}

func TestResolveParentRefsNoParentNoRef(t *testing.T) {
	cs := &CommaSequence{Sequences: []Sequence{seq(simpleMember(Class(lit("foo"))))}}
	out, err := cs.ResolveParentRefs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != cs {
		t.Error("resolving with no parent and no '&' should be identity")
	}
}

func TestResolveParentRefsNoParentWithRefFails(t *testing.T) {
	cs := &CommaSequence{Sequences: []Sequence{seq(simpleMember(Parent()))}}
	_, err := cs.ResolveParentRefs(nil)
	if err == nil {
		t.Fatal("expected a syntax error for '&' with no ambient parent")
	}
	if err.Error() != "base-level rules cannot contain '&'" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestResolveParentRefsImplicitDescendant(t *testing.T) {
	parent := &CommaSequence{Sequences: []Sequence{seq(simpleMember(Class(lit("bar"))))}}
	cs := &CommaSequence{Sequences: []Sequence{seq(simpleMember(Class(lit("foo"))))}}

	out, err := cs.ResolveParentRefs(parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), ".bar .foo"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveParentRefsBareAmpersand(t *testing.T) {
	parent := &CommaSequence{Sequences: []Sequence{
		seq(simpleMember(Element(lit("a"), nil)), CombinatorMember(Descendant), simpleMember(Element(lit("b"), nil))),
	}}
	cs := &CommaSequence{Sequences: []Sequence{seq(simpleMember(Parent()))}}

	out, err := cs.ResolveParentRefs(parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "a b"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveParentRefsCompoundAmpersand(t *testing.T) {
	parent := &CommaSequence{Sequences: []Sequence{seq(simpleMember(Class(lit("btn"))))}}
	cs := &CommaSequence{Sequences: []Sequence{
		seq(simpleMember(Parent(), Pseudo(PseudoClass, lit("hover"), nil))),
	}}

	out, err := cs.ResolveParentRefs(parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), ".btn:hover"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveParentRefsDistributesOverCommas(t *testing.T) {
	parent := &CommaSequence{Sequences: []Sequence{
		seq(simpleMember(Class(lit("a")))),
		seq(simpleMember(Class(lit("b")))),
	}}
	cs := &CommaSequence{Sequences: []Sequence{seq(simpleMember(Parent()))}}

	out, err := cs.ResolveParentRefs(parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Sequences) != 2 {
		t.Fatalf("expected one resolved sequence per parent alternative, got %d", len(out.Sequences))
	}
	if got, want := out.String(), ".a, .b"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveParentRefsCompoundAmpersandDistributesOverCommas(t *testing.T) {
	parent := &CommaSequence{Sequences: []Sequence{
		seq(simpleMember(Class(lit("bar")))),
		seq(simpleMember(Class(lit("baz")))),
	}}
	cs := &CommaSequence{Sequences: []Sequence{
		seq(simpleMember(Parent(), Class(lit("foo")))),
	}}

	out, err := cs.ResolveParentRefs(parent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), ".bar.foo, .baz.foo"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveParentRefsInvalidParentSelector(t *testing.T) {
	// Parent sequence ends in a bare combinator (invariant violation), so
	// the compound "&x" form has nothing to splice onto.
	parent := &CommaSequence{Sequences: []Sequence{
		seq(CombinatorMember(Child)),
	}}
	cs := &CommaSequence{Sequences: []Sequence{
		seq(simpleMember(Parent(), Class(lit("extra")))),
	}}

	_, err := cs.ResolveParentRefs(parent)
	if err == nil {
		t.Fatal("expected an 'Invalid parent selector' error")
	}
}
