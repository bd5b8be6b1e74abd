// Package tok implements the token-stream primitive shared by every
// selector field that allows script interpolation.
package tok

import "strings"

// ScriptNode is an opaque handle to a script expression embedded in a
// selector via interpolation. The algebra never evaluates it; it only
// needs a source-text rendering and a value-equality check.
type ScriptNode interface {
	// SourceString renders the script expression back to source text,
	// without the surrounding "#{" "}" delimiters.
	SourceString() string

	// Equal reports whether two script nodes have the same value.
	Equal(other ScriptNode) bool
}

// Part is one segment of a token stream: either a literal run of text or
// an embedded script node.
type Part struct {
	Literal string
	Script  ScriptNode
}

// IsScript reports whether this part is an interpolated script rather
// than a literal run.
func (p Part) IsScript() bool {
	return p.Script != nil
}

// Tok is a sequence of literal and script parts. Many selector fields are
// Toks because the preprocessor permits interpolation inside names.
type Tok []Part

// Lit builds a single-part literal token stream.
func Lit(s string) Tok {
	return Tok{{Literal: s}}
}

// Script builds a single-part interpolated token stream.
func Script(s ScriptNode) Tok {
	return Tok{{Script: s}}
}

// Empty reports whether the token stream has no parts.
func (t Tok) Empty() bool {
	return len(t) == 0
}

// IsLiteral reports whether the token stream is a single literal part
// equal to s. Used to test the namespace sentinels ("" and "*").
func (t Tok) IsLiteral(s string) bool {
	return len(t) == 1 && !t[0].IsScript() && t[0].Literal == s
}

// HasInterpolation reports whether any part of the stream is a script.
func (t Tok) HasInterpolation() bool {
	for _, p := range t {
		if p.IsScript() {
			return true
		}
	}
	return false
}

// Equal compares two token streams part-by-part.
func (t Tok) Equal(other Tok) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		a, b := t[i], other[i]
		if a.IsScript() != b.IsScript() {
			return false
		}
		if a.IsScript() {
			if a.Script == nil || b.Script == nil {
				return a.Script == b.Script
			}
			if !a.Script.Equal(b.Script) {
				return false
			}
			continue
		}
		if a.Literal != b.Literal {
			return false
		}
	}
	return true
}

// String renders the token stream to its canonical source form, with
// interpolated parts rendered as "#{<script.SourceString()>}".
func (t Tok) String() string {
	var b strings.Builder
	for _, p := range t {
		if p.IsScript() {
			b.WriteString("#{")
			if p.Script != nil {
				b.WriteString(p.Script.SourceString())
			}
			b.WriteString("}")
			continue
		}
		b.WriteString(p.Literal)
	}
	return b.String()
}

// PtrEqual compares two optional (possibly nil) token streams.
func PtrEqual(a, b *Tok) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// PtrString renders an optional token stream, returning "" for nil.
func PtrString(t *Tok) string {
	if t == nil {
		return ""
	}
	return t.String()
}
