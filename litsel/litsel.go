// Package litsel reads literal CSS/Sass selector text — no #{...}
// interpolation, no script evaluation — into selector.CommaSequence
// values. It exists so tests and the demo CLI can write selectors as
// plain strings instead of hand-assembling the algebraic types; it is not
// a claim to be "the" preprocessor's selector parser.
package litsel

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/MeKo-Christian/sassel/selecterr"
	"github.com/MeKo-Christian/sassel/selector"
	"github.com/MeKo-Christian/sassel/tok"
)

// Options configures a parse. The zero value parses as if the text starts
// on line 1 of an unnamed source.
type Options struct {
	startLine int
}

// Option configures Parse/ParseFile.
type Option func(*Options)

// WithStartLine sets the line number attributed to the first character of
// the input, for text read starting mid-file (e.g. a selector list nested
// several lines into a stylesheet partial).
func WithStartLine(line int) Option {
	return func(o *Options) { o.startLine = line }
}

func defaultOptions() Options {
	return Options{startLine: 1}
}

// Parse reads text as a comma-separated selector list.
func Parse(text string, opts ...Option) (*selector.CommaSequence, error) {
	return ParseFile(text, "", opts...)
}

// ParseFile is Parse with a filename attached to syntax errors and
// produced SimpleSequences.
func ParseFile(text, filename string, opts ...Option) (*selector.CommaSequence, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &reader{input: text, length: len(text), filename: filename, line: o.startLine}
	cs, err := p.parseCommaSequence()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.pos < p.length {
		return nil, p.errorf("unexpected trailing input")
	}
	cs.SetLocation(o.startLine, filename)
	return cs, nil
}

type reader struct {
	input    string
	pos      int
	length   int
	filename string
	line     int

	afterSimple     bool
	afterCombinator bool
}

func (r *reader) errorf(format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return selecterr.NewSyntaxError(msg, r.line, r.filename)
}

func (r *reader) peek() rune {
	if r.pos >= r.length {
		return 0
	}
	for _, ch := range r.input[r.pos:] {
		return ch
	}
	return 0
}

func (r *reader) advance() rune {
	if r.pos >= r.length {
		return 0
	}
	var ch rune
	for _, c := range r.input[r.pos:] {
		ch = c
		break
	}
	r.pos += len(string(ch))
	return ch
}

func (r *reader) skipWhitespace() bool {
	had := false
	for r.pos < r.length {
		ch := r.peek()
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' {
			r.advance()
			had = true
			continue
		}
		break
	}
	return had
}

func isNameStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '-' || ch > unicode.MaxASCII
}

func isNameChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '-' || ch > unicode.MaxASCII
}

func (r *reader) readName() string {
	start := r.pos
	for r.pos < r.length {
		ch := r.peek()
		if ch == '\\' {
			r.advance()
			if r.pos < r.length {
				r.advance()
			}
			continue
		}
		if !isNameChar(ch) {
			break
		}
		r.advance()
	}
	return r.input[start:r.pos]
}

// checkInterpolation rejects "#{" wherever it's encountered: script
// evaluation is out of scope for this reader.
func (r *reader) checkInterpolation() error {
	if r.peek() == '#' && r.pos+1 < r.length && r.input[r.pos+1] == '{' {
		return r.errorf("interpolation is not supported by the literal selector reader")
	}
	return nil
}

func (r *reader) parseCommaSequence() (*selector.CommaSequence, error) {
	var seqs []selector.Sequence
	for {
		seq, err := r.parseSequence()
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, *seq)
		r.skipWhitespace()
		if r.peek() != ',' {
			break
		}
		r.advance()
		r.afterSimple = false
		r.afterCombinator = false
	}
	return &selector.CommaSequence{Sequences: seqs}, nil
}

func (r *reader) parseSequence() (*selector.Sequence, error) {
	var members []selector.SequenceMember
	r.afterSimple = false
	r.afterCombinator = false

	for {
		had := r.skipWhitespace()
		if r.pos >= r.length {
			break
		}
		ch := r.peek()
		if ch == ',' || ch == ')' || ch == ']' {
			break
		}

		if had && r.afterSimple && !r.afterCombinator {
			members = append(members, selector.CombinatorMember(selector.Descendant))
			r.afterCombinator = true
			r.afterSimple = false
		}

		ch = r.peek()
		switch ch {
		case '>':
			r.advance()
			members = append(members, selector.CombinatorMember(selector.Child))
			r.afterCombinator = true
			r.afterSimple = false
			continue
		case '+':
			r.advance()
			members = append(members, selector.CombinatorMember(selector.Adjacent))
			r.afterCombinator = true
			r.afterSimple = false
			continue
		case '~':
			r.advance()
			members = append(members, selector.CombinatorMember(selector.General))
			r.afterCombinator = true
			r.afterSimple = false
			continue
		}

		ss, err := r.parseSimpleSequence()
		if err != nil {
			return nil, err
		}
		members = append(members, selector.SimpleMember(ss))
		r.afterSimple = true
		r.afterCombinator = false
	}

	if len(members) == 0 {
		return nil, r.errorf("expected a selector")
	}
	return &selector.Sequence{Members: members}, nil
}

func (r *reader) parseSimpleSequence() (*selector.SimpleSequence, error) {
	var sels []selector.SimpleSelector
	for r.pos < r.length {
		ch := r.peek()
		if ch == 0 || ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' ||
			ch == ',' || ch == '>' || ch == '+' || ch == '~' || ch == ')' || ch == ']' {
			break
		}
		if err := r.checkInterpolation(); err != nil {
			return nil, err
		}
		sel, err := r.parseSimpleSelector()
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	if len(sels) == 0 {
		return nil, r.errorf("expected a simple selector")
	}
	return &selector.SimpleSequence{Members: sels}, nil
}

func (r *reader) parseSimpleSelector() (selector.SimpleSelector, error) {
	ch := r.peek()
	switch ch {
	case '&':
		r.advance()
		return selector.Parent(), nil
	case '.':
		r.advance()
		name := r.readName()
		if name == "" {
			return selector.SimpleSelector{}, r.errorf("expected identifier after '.'")
		}
		return selector.Class(tok.Lit(name)), nil
	case '#':
		r.advance()
		name := r.readName()
		if name == "" {
			return selector.SimpleSelector{}, r.errorf("expected identifier after '#'")
		}
		return selector.ID(tok.Lit(name)), nil
	case '*':
		return r.parseUniversalOrNamespace()
	case '[':
		return r.parseAttribute()
	case ':':
		return r.parsePseudo()
	default:
		if isNameStart(ch) || ch == '|' {
			return r.parseElementOrNamespace()
		}
		return selector.SimpleSelector{}, r.errorf("unexpected character %q", ch)
	}
}

// parseUniversalOrNamespace handles '*' which is either the universal
// selector or the '*' wildcard namespace prefix of "*|name".
func (r *reader) parseUniversalOrNamespace() (selector.SimpleSelector, error) {
	r.advance() // consume '*'
	if r.peek() == '|' {
		r.advance()
		ns := tok.Lit("*")
		if r.peek() == '*' {
			r.advance()
			return selector.Universal(&ns), nil
		}
		name := r.readName()
		if name == "" {
			return selector.SimpleSelector{}, r.errorf("expected name after '*|'")
		}
		return selector.Element(tok.Lit(name), &ns), nil
	}
	return selector.Universal(nil), nil
}

// parseElementOrNamespace reads a bare name, then decides whether it was
// a namespace prefix (followed by '|') or the element name itself.
func (r *reader) parseElementOrNamespace() (selector.SimpleSelector, error) {
	var ns *tok.Tok
	if r.peek() == '|' {
		r.advance()
		empty := tok.Lit("")
		ns = &empty
	} else {
		first := r.readName()
		if first == "" {
			return selector.SimpleSelector{}, r.errorf("expected a type selector")
		}
		if r.peek() == '|' && !strings.HasPrefix(r.input[r.pos:], "|=") {
			r.advance()
			t := tok.Lit(first)
			ns = &t
		} else {
			return selector.Element(tok.Lit(first), nil), nil
		}
	}
	name := r.readName()
	if name == "" {
		return selector.SimpleSelector{}, r.errorf("expected name after namespace prefix")
	}
	return selector.Element(tok.Lit(name), ns), nil
}

var attrOps = []string{"~=", "|=", "^=", "$=", "*=", "="}

func (r *reader) parseAttribute() (selector.SimpleSelector, error) {
	r.advance() // consume '['
	r.skipWhitespace()
	sel, err := r.parseElementOrNamespace()
	if err != nil {
		return selector.SimpleSelector{}, err
	}
	name, ns := sel.Name, sel.Namespace

	r.skipWhitespace()
	var op *string
	var value *tok.Tok
	for _, candidate := range attrOps {
		if strings.HasPrefix(r.input[r.pos:], candidate) {
			for range candidate {
				r.advance()
			}
			o := candidate
			op = &o
			break
		}
	}
	if op != nil {
		r.skipWhitespace()
		v, err := r.readAttrValue()
		if err != nil {
			return selector.SimpleSelector{}, err
		}
		value = &v
	}
	r.skipWhitespace()
	if r.peek() != ']' {
		return selector.SimpleSelector{}, r.errorf("expected ']' to close attribute selector")
	}
	r.advance()
	return selector.Attribute(name, ns, op, value), nil
}

func (r *reader) readAttrValue() (tok.Tok, error) {
	ch := r.peek()
	if ch == '"' || ch == '\'' {
		quote := ch
		r.advance()
		var b strings.Builder
		for r.pos < r.length {
			c := r.advance()
			if c == quote {
				return tok.Lit(b.String()), nil
			}
			if c == '\\' && r.pos < r.length {
				b.WriteRune(r.advance())
				continue
			}
			b.WriteRune(c)
		}
		return tok.Tok{}, r.errorf("unclosed attribute value string")
	}
	var b strings.Builder
	for r.pos < r.length {
		c := r.peek()
		if c == ']' || c == ' ' || c == '\t' {
			break
		}
		b.WriteRune(r.advance())
	}
	return tok.Lit(b.String()), nil
}

func (r *reader) parsePseudo() (selector.SimpleSelector, error) {
	r.advance() // first ':'
	kind := selector.PseudoClass
	if r.peek() == ':' {
		r.advance()
		kind = selector.PseudoElement
	}
	if r.peek() == 'n' && strings.HasPrefix(r.input[r.pos:], "not") {
		save := r.pos
		name := r.readName()
		if name == "not" && r.peek() == '(' {
			r.advance()
			inner, err := r.parseSimpleSelector()
			if err != nil {
				return selector.SimpleSelector{}, err
			}
			r.skipWhitespace()
			if r.peek() != ')' {
				return selector.SimpleSelector{}, r.errorf("expected ')' to close ':not('")
			}
			r.advance()
			return selector.Negation(inner), nil
		}
		r.pos = save
	}

	name := r.readName()
	if name == "" {
		return selector.SimpleSelector{}, r.errorf("expected a pseudo-class or pseudo-element name")
	}
	var arg *tok.Tok
	if r.peek() == '(' {
		r.advance()
		var b strings.Builder
		depth := 1
		for r.pos < r.length && depth > 0 {
			c := r.peek()
			if c == '(' {
				depth++
			} else if c == ')' {
				depth--
				if depth == 0 {
					break
				}
			}
			b.WriteRune(r.advance())
		}
		if r.peek() != ')' {
			return selector.SimpleSelector{}, r.errorf("expected ')' to close pseudo-class argument")
		}
		r.advance()
		t := tok.Lit(b.String())
		arg = &t
	}
	return selector.Pseudo(kind, tok.Lit(name), arg), nil
}
