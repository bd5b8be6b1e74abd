package selector

import "testing"

func TestSimpleSequenceEqualIgnoresMemberOrder(t *testing.T) {
	a := NewSimpleSequence(Element(lit("div"), nil), Class(lit("a")), Class(lit("b")))
	b := NewSimpleSequence(Element(lit("div"), nil), Class(lit("b")), Class(lit("a")))
	if !a.Equal(b) {
		t.Error("sequences with the same base and reordered qualifiers should be equal")
	}
}

func TestSimpleSequenceEqualRequiresSameBase(t *testing.T) {
	a := NewSimpleSequence(Element(lit("div"), nil), Class(lit("a")))
	b := NewSimpleSequence(Element(lit("span"), nil), Class(lit("a")))
	if a.Equal(b) {
		t.Error("sequences with different bases must not be equal")
	}
}

func TestSimpleSequenceHashStableUnderPermutation(t *testing.T) {
	a := NewSimpleSequence(Class(lit("a")), Class(lit("b")), ID(lit("x")))
	b := NewSimpleSequence(ID(lit("x")), Class(lit("b")), Class(lit("a")))
	if a.Hash() != b.Hash() {
		t.Error("hash must be order-independent")
	}
	if !a.Equal(b) {
		t.Error("permuted members should compare equal")
	}
}

func TestSimpleSequenceUnify(t *testing.T) {
	ss := NewSimpleSequence(Class(lit("a")))
	out, ok, err := ss.Unify([]SimpleSelector{Element(lit("div"), nil)})
	if err != nil || !ok {
		t.Fatalf("unify failed: ok=%v err=%v", ok, err)
	}
	if len(out.Members) != 2 {
		t.Fatalf("expected element plus class, got %v", out.Members)
	}
}

func TestSimpleSequenceUnifyConflict(t *testing.T) {
	ss := NewSimpleSequence(ID(lit("a")))
	_, ok, err := ss.Unify([]SimpleSelector{ID(lit("b"))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("conflicting ids must fail to unify")
	}
}

func TestSimpleSequenceContainsParentRef(t *testing.T) {
	withParent := NewSimpleSequence(Parent(), Class(lit("active")))
	withoutParent := NewSimpleSequence(Class(lit("active")))
	if !withParent.ContainsParentRef() {
		t.Error("expected parent ref to be detected")
	}
	if withoutParent.ContainsParentRef() {
		t.Error("did not expect a parent ref")
	}
}
