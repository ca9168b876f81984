package treebank

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/treeproc/tree"
)

// ProductionName maps a node label to an EBNF production name. Letters and
// digits are kept, every other rune becomes _<hex>_, and names that would
// not start with an upper-case letter get an X_ prefix so that ebnf treats
// them as non-lexical. The mapping is injective.
func ProductionName(label string) string {
	var sb strings.Builder
	for _, r := range label {
		if r != '_' && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
			continue
		}
		fmt.Fprintf(&sb, "_%x_", r)
	}
	name := sb.String()
	first := []rune(name)
	if len(first) == 0 || !unicode.IsUpper(first[0]) {
		name = "X_" + name
	}
	return name
}

type production struct {
	name         string
	alternatives [][]string
	empty        bool
}

// EBNF renders every rule of every tree as an EBNF grammar, one production
// per label. Each rule becomes one alternative, repeats included; leaves are
// quoted tokens. The text is parsed back with golang.org/x/exp/ebnf and, if
// start is not empty, verified from the production named by the label
// start. The text is returned even when verification fails.
func (b *Bank) EBNF(start string) (string, error) {
	var order []*production
	byName := make(map[string]*production)

	for _, e := range b.Entries() {
		for _, r := range e.Tree.Rules(false) {
			name := ProductionName(r.LHS.Text)
			p, ok := byName[name]
			if !ok {
				p = &production{name: name}
				byName[name] = p
				order = append(order, p)
			}
			if len(r.RHS) == 0 {
				p.empty = true
				continue
			}
			p.alternatives = append(p.alternatives, ebnfTerms(r))
		}
	}

	var sb strings.Builder
	for _, p := range order {
		sb.WriteString(p.String())
		sb.WriteString("\n")
	}
	text := sb.String()

	grammar, err := ebnf.Parse("treebank.ebnf", strings.NewReader(text))
	if err != nil {
		return text, fmt.Errorf("parse generated grammar: %w", err)
	}
	if start != "" {
		if err := ebnf.Verify(grammar, ProductionName(start)); err != nil {
			return text, fmt.Errorf("verify grammar: %w", err)
		}
	}
	return text, nil
}

func ebnfTerms(r tree.Rule) []string {
	terms := make([]string, 0, len(r.RHS))
	for _, s := range r.RHS {
		if s.Terminal {
			terms = append(terms, strconv.Quote(s.Text))
		} else {
			terms = append(terms, ProductionName(s.Text))
		}
	}
	return terms
}

func (p *production) String() string {
	alts := make([]string, 0, len(p.alternatives))
	for _, alt := range p.alternatives {
		alts = append(alts, strings.Join(alt, " "))
	}
	body := strings.Join(alts, " | ")
	if p.empty && body != "" {
		body = "[ " + body + " ]"
	}
	if body == "" {
		return p.name + " = ."
	}
	return p.name + " = " + body + " ."
}
