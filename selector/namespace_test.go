package selector

import (
	"testing"

	"github.com/MeKo-Christian/sassel/tok"
)

func lit(s string) tok.Tok { return tok.Lit(s) }

func TestUnifyNamespaces(t *testing.T) {
	svg := lit("svg")
	html := lit("html")
	none := lit("")
	star := lit("*")

	tests := []struct {
		name    string
		n1, n2  *tok.Tok
		want    *tok.Tok
		wantOk  bool
		checkEq bool
	}{
		{"both nil", nil, nil, nil, true, true},
		{"nil and namespace", nil, &svg, &svg, true, true},
		{"namespace and nil", &svg, nil, &svg, true, true},
		{"same namespace", &svg, &svg, &svg, true, true},
		{"wildcard yields other", &star, &svg, &svg, true, true},
		{"other yields to wildcard", &svg, &star, &svg, true, true},
		{"both wildcard", &star, &star, &star, true, true},
		{"no-namespace matches itself", &none, &none, &none, true, true},
		{"conflicting namespaces reject", &svg, &html, nil, false, false},
		{"wildcard yields to unspecified", &star, nil, nil, true, true},
		{"unspecified yields to wildcard", nil, &star, nil, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := UnifyNamespaces(tt.n1, tt.n2)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if tt.checkEq && !tok.PtrEqual(got, tt.want) {
				t.Errorf("got %v, want %v", tok.PtrString(got), tok.PtrString(tt.want))
			}
		})
	}
}
