package selector_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/MeKo-Christian/sassel/litsel"
)

// These tests cross-check the canonical strings this package renders
// against two independent CSS selector implementations: cascadia (syntax)
// and goquery/x-net-html (matching semantics). They exist to catch
// canonical-rendering bugs a purely internal test can't see, not to
// re-verify the algebra itself.

func TestCanonicalFormsParseAsCSS(t *testing.T) {
	inputs := []string{
		"div.foo",
		"ul > li",
		"a:hover",
		"h1 + p",
		"h1 ~ p",
		"[disabled]",
		"[type=text]",
		"a.foo.bar#main",
		".a, .b",
		":not(.hidden)",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			cs, err := litsel.Parse(in)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			canonical := cs.String()
			if _, err := cascadia.Parse(canonical); err != nil {
				t.Errorf("cascadia rejected canonical form %q: %v", canonical, err)
			}
		})
	}
}

func TestCanonicalFormsMatchExpectedElements(t *testing.T) {
	html := `
<html><body>
  <div class="foo"><p>one</p></div>
  <ul><li>a</li><li class="bar">b</li></ul>
  <h1>title</h1><p>after</p>
</body></html>`

	tests := []struct {
		name  string
		sel   string
		texts []string
	}{
		{"class selector", ".foo p", []string{"one"}},
		{"child combinator", "ul > li", []string{"a", "b"}},
		{"adjacent sibling", "h1 + p", []string{"after"}},
		{"compound class", "li.bar", []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := litsel.Parse(tt.sel)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			canonical := cs.String()

			doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
			if err != nil {
				t.Fatalf("failed to parse fixture html: %v", err)
			}

			var got []string
			doc.Find(canonical).Each(func(_ int, sel *goquery.Selection) {
				got = append(got, strings.TrimSpace(sel.Text()))
			})

			if len(got) != len(tt.texts) {
				t.Fatalf("selector %q: got %v, want %v", canonical, got, tt.texts)
			}
			for i := range got {
				if got[i] != tt.texts[i] {
					t.Errorf("selector %q: got %v, want %v", canonical, got, tt.texts)
				}
			}
		})
	}
}
