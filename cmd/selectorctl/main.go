// Command selectorctl is a small demonstration harness for the selector
// algebra: it resolves parent references and @extend rules against a
// selector read from the command line (or stdin) and prints the
// canonical string form. It is not a preprocessor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MeKo-Christian/sassel/litsel"
	"github.com/MeKo-Christian/sassel/selector/extend"
)

var version = "dev"

type extendRule struct {
	target      string
	replacement string
}

// extendFlag collects repeated -extend target=replacement flags.
type extendFlag struct {
	rules *[]extendRule
}

func (f *extendFlag) String() string { return "" }

func (f *extendFlag) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid -extend value %q: want target=replacement", value)
	}
	*f.rules = append(*f.rules, extendRule{target: parts[0], replacement: parts[1]})
	return nil
}

// config holds the CLI configuration.
type config struct {
	parent string
	rules  []extendRule
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, selText, err := parseFlags(args, stdin, stderr)
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}

	cs, err := litsel.Parse(selText)
	if err != nil {
		return fmt.Errorf("parsing selector: %w", err)
	}

	if cfg.parent != "" {
		parent, err := litsel.Parse(cfg.parent)
		if err != nil {
			return fmt.Errorf("parsing parent selector: %w", err)
		}
		cs, err = cs.ResolveParentRefs(parent)
		if err != nil {
			return fmt.Errorf("resolving parent references: %w", err)
		}
	} else {
		cs, err = cs.ResolveParentRefs(nil)
		if err != nil {
			return fmt.Errorf("resolving parent references: %w", err)
		}
	}

	if len(cfg.rules) > 0 {
		m, err := buildExtendMap(cfg.rules)
		if err != nil {
			return err
		}
		cs, err = extend.Extend(cs, m)
		if err != nil {
			return fmt.Errorf("extending selector: %w", err)
		}
	}

	_, err = fmt.Fprintln(stdout, cs.String())
	return err
}

func buildExtendMap(rules []extendRule) (*extend.Map, error) {
	m := extend.NewMap()
	for i, r := range rules {
		targetCS, err := litsel.Parse(r.target)
		if err != nil {
			return nil, fmt.Errorf("parsing -extend target %q: %w", r.target, err)
		}
		replacementCS, err := litsel.Parse(r.replacement)
		if err != nil {
			return nil, fmt.Errorf("parsing -extend replacement %q: %w", r.replacement, err)
		}
		if len(targetCS.Sequences) != 1 || len(replacementCS.Sequences) != 1 {
			return nil, fmt.Errorf("-extend target and replacement must each be a single sequence")
		}
		targetSeq := targetCS.Sequences[0]
		if len(targetSeq.Members) != 1 {
			return nil, fmt.Errorf("-extend target must be a single compound selector")
		}
		last := targetSeq.LastSimpleSequence()
		if last == nil {
			return nil, fmt.Errorf("-extend target must be a single compound selector")
		}
		m.Add(last.Members, &replacementCS.Sequences[0], i+1, "")
	}
	return m, nil
}

func parseFlags(args []string, stdin io.Reader, stderr io.Writer) (*config, string, error) {
	fs := flag.NewFlagSet("selectorctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := &config{}
	var showVersion bool

	fs.StringVar(&cfg.parent, "parent", "", "ambient parent selector used to resolve '&'")
	fs.Var(&extendFlag{rules: &cfg.rules}, "extend", "extend rule as target=replacement (repeatable)")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: selectorctl [options] <selector>\n\n")
		fmt.Fprintf(stderr, "Resolve parent references and @extend rules against a selector,\n")
		fmt.Fprintf(stderr, "printing the canonical form.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  selectorctl -parent '.btn' '&:hover'\n")
		fmt.Fprintf(stderr, "  selectorctl -extend '.error=.message' '.error'\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, "", nil
		}
		return nil, "", err
	}

	if showVersion {
		fmt.Fprintf(stderr, "selectorctl version %s\n", version)
		return nil, "", nil
	}

	remaining := fs.Args()
	var selText string
	switch len(remaining) {
	case 1:
		selText = remaining[0]
	case 0:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading selector from stdin: %w", err)
		}
		selText = strings.TrimSpace(string(data))
	default:
		fs.Usage()
		return nil, "", fmt.Errorf("expected a single selector argument")
	}
	if selText == "" {
		fs.Usage()
		return nil, "", fmt.Errorf("missing selector")
	}
	return cfg, selText, nil
}
