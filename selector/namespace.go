package selector

import "github.com/MeKo-Christian/sassel/tok"

// UnifyNamespaces reconciles two optional namespaces under the wildcard
// rules of §4.1. It returns (result, accepted); when accepted is false,
// result is meaningless and the caller's fusion must fail.
//
// Namespace encoding: nil = unspecified ("None"), a Tok literal "" = no
// namespace ("|foo"), a Tok literal "*" = any namespace ("*|foo"), any
// other Tok = that namespace.
//
// The wildcard check runs before the unspecified check: "*" yields to
// whatever the other side is, even when that side is unspecified (nil).
// Checking nil first would let an explicit "any namespace" override an
// unspecified one, which is backwards from how the wildcard is meant to
// behave.
func UnifyNamespaces(n1, n2 *tok.Tok) (*tok.Tok, bool) {
	if tok.PtrEqual(n1, n2) {
		return n1, true
	}
	if isAnyNamespace(n1) {
		return n2, true
	}
	if isAnyNamespace(n2) {
		return n1, true
	}
	if n1 == nil {
		return n2, true
	}
	if n2 == nil {
		return n1, true
	}
	return nil, false
}

func isAnyNamespace(ns *tok.Tok) bool {
	return ns != nil && ns.IsLiteral("*")
}
