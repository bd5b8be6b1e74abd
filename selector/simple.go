package selector

import (
	"strings"

	"github.com/MeKo-Christian/sassel/selecterr"
	"github.com/MeKo-Christian/sassel/tok"
)

// SimpleSelector is a single atomic selector, tagged by Kind. Fields
// irrelevant to a given Kind are left zero; see the per-constructor
// doc comments for which fields a Kind actually uses.
type SimpleSelector struct {
	Kind Kind

	// Class, Id, Element, Attribute, Pseudo name.
	Name tok.Tok

	// Universal, Element, Attribute namespace. nil = unspecified.
	Namespace *tok.Tok

	// Attribute comparison operator ("=", "~=", "|=", "^=", "$=", "*=").
	// nil means the attribute selector has no operator ([x], not [x=y]).
	Op *string

	// Attribute value, or Pseudo functional argument. nil when absent.
	Value *tok.Tok

	// Pseudo only.
	PseudoKind PseudoKind

	// Negation only.
	Inner *SimpleSelector

	// Interpolation only.
	Script tok.ScriptNode
}

// Parent returns the unresolved '&' marker.
func Parent() SimpleSelector { return SimpleSelector{Kind: KindParent} }

// Class returns a .name selector.
func Class(name tok.Tok) SimpleSelector { return SimpleSelector{Kind: KindClass, Name: name} }

// ID returns a #name selector.
func ID(name tok.Tok) SimpleSelector { return SimpleSelector{Kind: KindID, Name: name} }

// Universal returns a * selector, optionally namespaced.
func Universal(namespace *tok.Tok) SimpleSelector {
	return SimpleSelector{Kind: KindUniversal, Namespace: namespace}
}

// Element returns a type selector, optionally namespaced.
func Element(name tok.Tok, namespace *tok.Tok) SimpleSelector {
	return SimpleSelector{Kind: KindElement, Name: name, Namespace: namespace}
}

// Attribute returns an attribute selector. op and value are both nil for
// a bare [name] presence check.
func Attribute(name tok.Tok, namespace *tok.Tok, op *string, value *tok.Tok) SimpleSelector {
	return SimpleSelector{Kind: KindAttribute, Name: name, Namespace: namespace, Op: op, Value: value}
}

// Pseudo returns a pseudo-class or pseudo-element selector.
func Pseudo(kind PseudoKind, name tok.Tok, arg *tok.Tok) SimpleSelector {
	return SimpleSelector{Kind: KindPseudo, PseudoKind: kind, Name: name, Value: arg}
}

// Negation returns a :not(inner) selector.
func Negation(inner SimpleSelector) SimpleSelector {
	return SimpleSelector{Kind: KindNegation, Inner: &inner}
}

// Interpolation returns an unresolved #{script} selector.
func Interpolation(script tok.ScriptNode) SimpleSelector {
	return SimpleSelector{Kind: KindInterpolation, Script: script}
}

// Equal reports structural equality between two simple selectors.
func (s SimpleSelector) Equal(other SimpleSelector) bool {
	if s.Kind != other.Kind {
		return false
	}
	switch s.Kind {
	case KindParent:
		return true
	case KindClass, KindID:
		return s.Name.Equal(other.Name)
	case KindUniversal:
		return tok.PtrEqual(s.Namespace, other.Namespace)
	case KindElement:
		return s.Name.Equal(other.Name) && tok.PtrEqual(s.Namespace, other.Namespace)
	case KindAttribute:
		if !s.Name.Equal(other.Name) || !tok.PtrEqual(s.Namespace, other.Namespace) {
			return false
		}
		if (s.Op == nil) != (other.Op == nil) {
			return false
		}
		if s.Op != nil && *s.Op != *other.Op {
			return false
		}
		return tok.PtrEqual(s.Value, other.Value)
	case KindPseudo:
		return s.PseudoKind == other.PseudoKind && s.Name.Equal(other.Name) && tok.PtrEqual(s.Value, other.Value)
	case KindNegation:
		if s.Inner == nil || other.Inner == nil {
			return s.Inner == other.Inner
		}
		return s.Inner.Equal(*other.Inner)
	case KindInterpolation:
		if s.Script == nil || other.Script == nil {
			return s.Script == other.Script
		}
		return s.Script.Equal(other.Script)
	default:
		return false
	}
}

// elementPseudoEqual compares two pseudo-elements by name+arg, ignoring
// everything else; used by the Pseudo(kind=Element) override.
func elementPseudoEqual(a, b SimpleSelector) bool {
	return a.Name.Equal(b.Name) && tok.PtrEqual(a.Value, b.Value)
}

func containsEqual(sels []SimpleSelector, s SimpleSelector) bool {
	for _, x := range sels {
		if x.Equal(s) {
			return true
		}
	}
	return false
}

// Unify fuses s into sels, the member list of a SimpleSequence that must
// remain homogeneous (targeting one element). It returns the new member
// list and true on success, or ok=false when fusion is impossible. Unify
// returns an InternalInvariantViolation error when s is Parent or
// Interpolation: both must be resolved before unification runs.
func (s SimpleSelector) Unify(sels []SimpleSelector) ([]SimpleSelector, bool, error) {
	switch s.Kind {
	case KindParent:
		return nil, false, selecterr.ErrCannotUnifyParent()
	case KindInterpolation:
		return nil, false, selecterr.ErrCannotUnifyInterpolation()
	case KindID:
		return s.unifyID(sels)
	case KindPseudo:
		if s.PseudoKind == PseudoElement {
			return s.unifyElementPseudo(sels)
		}
		return s.defaultUnify(sels), true, nil
	case KindUniversal:
		return s.unifyUniversal(sels)
	case KindElement:
		return s.unifyElement(sels)
	default: // Class, Attribute, Negation
		return s.defaultUnify(sels), true, nil
	}
}

// defaultUnify implements the shared rule used by Class, Attribute,
// Negation, and Pseudo(kind=Class): if s is already present, leave sels
// unchanged; otherwise insert s just before a trailing pseudo-element (so
// pseudo-elements always render last), or append.
func (s SimpleSelector) defaultUnify(sels []SimpleSelector) []SimpleSelector {
	if containsEqual(sels, s) {
		return sels
	}
	if n := len(sels); n > 0 {
		last := sels[n-1]
		if last.Kind == KindPseudo && last.PseudoKind == PseudoElement {
			out := make([]SimpleSelector, 0, n+1)
			out = append(out, sels[:n-1]...)
			out = append(out, s, last)
			return out
		}
	}
	out := make([]SimpleSelector, len(sels), len(sels)+1)
	copy(out, sels)
	return append(out, s)
}

func (s SimpleSelector) unifyID(sels []SimpleSelector) ([]SimpleSelector, bool, error) {
	for _, x := range sels {
		if x.Kind == KindID && !x.Name.Equal(s.Name) {
			return nil, false, nil
		}
	}
	return s.defaultUnify(sels), true, nil
}

func (s SimpleSelector) unifyElementPseudo(sels []SimpleSelector) ([]SimpleSelector, bool, error) {
	for _, x := range sels {
		if x.Kind == KindPseudo && x.PseudoKind == PseudoElement && !elementPseudoEqual(x, s) {
			return nil, false, nil
		}
	}
	return s.defaultUnify(sels), true, nil
}

func (s SimpleSelector) unifyUniversal(sels []SimpleSelector) ([]SimpleSelector, bool, error) {
	if len(sels) == 0 {
		return []SimpleSelector{s}, true, nil
	}
	first := sels[0]
	switch first.Kind {
	case KindUniversal:
		ns, ok := UnifyNamespaces(s.Namespace, first.Namespace)
		if !ok {
			return nil, false, nil
		}
		out := append([]SimpleSelector{}, sels...)
		out[0] = Universal(ns)
		return out, true, nil
	case KindElement:
		ns, ok := UnifyNamespaces(s.Namespace, first.Namespace)
		if !ok {
			return nil, false, nil
		}
		out := append([]SimpleSelector{}, sels...)
		out[0] = Element(first.Name, ns)
		return out, true, nil
	default:
		if s.Namespace == nil || isAnyNamespace(s.Namespace) {
			return sels, true, nil
		}
		out := make([]SimpleSelector, 0, len(sels)+1)
		out = append(out, s)
		out = append(out, sels...)
		return out, true, nil
	}
}

func (s SimpleSelector) unifyElement(sels []SimpleSelector) ([]SimpleSelector, bool, error) {
	if len(sels) == 0 {
		return []SimpleSelector{s}, true, nil
	}
	first := sels[0]
	switch first.Kind {
	case KindUniversal:
		ns, ok := UnifyNamespaces(s.Namespace, first.Namespace)
		if !ok {
			return nil, false, nil
		}
		out := append([]SimpleSelector{}, sels...)
		out[0] = Element(s.Name, ns)
		return out, true, nil
	case KindElement:
		if !s.Name.Equal(first.Name) {
			return nil, false, nil
		}
		ns, ok := UnifyNamespaces(s.Namespace, first.Namespace)
		if !ok {
			return nil, false, nil
		}
		out := append([]SimpleSelector{}, sels...)
		out[0] = Element(s.Name, ns)
		return out, true, nil
	default:
		out := make([]SimpleSelector, 0, len(sels)+1)
		out = append(out, s)
		out = append(out, sels...)
		return out, true, nil
	}
}

// String renders the canonical form of a single simple selector.
func (s SimpleSelector) String() string {
	var b strings.Builder
	writeNamespace := func(ns *tok.Tok) {
		if ns == nil {
			return
		}
		b.WriteString(ns.String())
		b.WriteByte('|')
	}
	switch s.Kind {
	case KindParent:
		b.WriteByte('&')
	case KindClass:
		b.WriteByte('.')
		b.WriteString(s.Name.String())
	case KindID:
		b.WriteByte('#')
		b.WriteString(s.Name.String())
	case KindUniversal:
		writeNamespace(s.Namespace)
		b.WriteByte('*')
	case KindElement:
		writeNamespace(s.Namespace)
		b.WriteString(s.Name.String())
	case KindAttribute:
		b.WriteByte('[')
		writeNamespace(s.Namespace)
		b.WriteString(s.Name.String())
		if s.Op != nil {
			b.WriteString(*s.Op)
			if s.Value != nil {
				b.WriteString(s.Value.String())
			}
		}
		b.WriteByte(']')
	case KindPseudo:
		if s.PseudoKind == PseudoElement {
			b.WriteString("::")
		} else {
			b.WriteByte(':')
		}
		b.WriteString(s.Name.String())
		if s.Value != nil {
			b.WriteByte('(')
			b.WriteString(strings.TrimSpace(s.Value.String()))
			b.WriteByte(')')
		}
	case KindNegation:
		b.WriteString(":not(")
		if s.Inner != nil {
			b.WriteString(s.Inner.String())
		}
		b.WriteByte(')')
	case KindInterpolation:
		b.WriteString("#{")
		if s.Script != nil {
			b.WriteString(s.Script.SourceString())
		}
		b.WriteByte('}')
	}
	return b.String()
}
