package selector

import "testing"

func TestSequenceStringCombinators(t *testing.T) {
	tests := []struct {
		name string
		seq  *Sequence
		want string
	}{
		{
			"descendant",
			NewSequence(
				SimpleMember(NewSimpleSequence(Element(lit("a"), nil))),
				CombinatorMember(Descendant),
				SimpleMember(NewSimpleSequence(Element(lit("b"), nil))),
			),
			"a b",
		},
		{
			"child combinator",
			NewSequence(
				SimpleMember(NewSimpleSequence(Element(lit("a"), nil))),
				CombinatorMember(Child),
				SimpleMember(NewSimpleSequence(Element(lit("b"), nil))),
			),
			"a > b",
		},
		{
			"adjacent sibling",
			NewSequence(
				SimpleMember(NewSimpleSequence(Element(lit("a"), nil))),
				CombinatorMember(Adjacent),
				SimpleMember(NewSimpleSequence(Element(lit("b"), nil))),
			),
			"a + b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.seq.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// A newline marker flanked by descendant combinators on both sides
// collapses " \n " down to a bare "\n" in the canonical string.
func TestSequenceStringNewlineCollapse(t *testing.T) {
	seq := NewSequence(
		SimpleMember(NewSimpleSequence(Element(lit("a"), nil))),
		CombinatorMember(Descendant),
		CombinatorMember(Newline),
		CombinatorMember(Descendant),
		SimpleMember(NewSimpleSequence(Element(lit("b"), nil))),
	)
	want := "a\nb"
	if got := seq.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSequenceEqualIgnoresNewlines(t *testing.T) {
	withNewline := NewSequence(
		SimpleMember(NewSimpleSequence(Element(lit("a"), nil))),
		CombinatorMember(Newline),
		CombinatorMember(Descendant),
		SimpleMember(NewSimpleSequence(Element(lit("b"), nil))),
	)
	without := NewSequence(
		SimpleMember(NewSimpleSequence(Element(lit("a"), nil))),
		CombinatorMember(Descendant),
		SimpleMember(NewSimpleSequence(Element(lit("b"), nil))),
	)
	if !withNewline.Equal(without) {
		t.Error("newline markers must not affect equality")
	}
}

func TestLastSimpleSequence(t *testing.T) {
	seq := NewSequence(
		SimpleMember(NewSimpleSequence(Element(lit("a"), nil))),
		CombinatorMember(Descendant),
		SimpleMember(NewSimpleSequence(Element(lit("b"), nil))),
	)
	last := seq.LastSimpleSequence()
	if last == nil || !last.Equal(NewSimpleSequence(Element(lit("b"), nil))) {
		t.Fatalf("expected last simple sequence to be 'b', got %v", last)
	}
}
