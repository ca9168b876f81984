package tree

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dhamidi/treeproc/symbol"
)

// String returns the input line exactly as it was given to Parse.
func (t *Tree) String() string {
	return t.line
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) Symbols() *symbol.Table {
	return t.symbols
}

// Node returns the node with the given ID.
func (t *Tree) Node(id int) (Node, bool) {
	if id < 1 || id > len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[id-1], true
}

// Nodes returns a copy of all nodes in ID order.
func (t *Tree) Nodes() []Node {
	nodes := make([]Node, len(t.nodes))
	copy(nodes, t.nodes)
	return nodes
}

// NodeAt returns the node whose span contains the byte offset.
func (t *Tree) NodeAt(offset int) (Node, bool) {
	i := sort.Search(len(t.nodes), func(i int) bool {
		return t.nodes[i].Span.End > offset
	})
	if i < len(t.nodes) && t.nodes[i].Span.Start <= offset {
		return t.nodes[i], true
	}
	return Node{}, false
}

// SymbolForNode returns the text of node id. With withID the node ID is
// appended, which tells apart nodes sharing a label.
func (t *Tree) SymbolForNode(id int, withID bool) (string, bool) {
	n, ok := t.Node(id)
	if !ok {
		return "", false
	}
	text, ok := t.symbols.Resolve(n.Symbol)
	if !ok {
		return "", false
	}
	if withID {
		text += t.idSeparator + strconv.Itoa(id)
	}
	return text, true
}

// Label is SymbolForNode without the ok flag.
func (t *Tree) Label(id int, withID bool) string {
	text, _ := t.SymbolForNode(id, withID)
	return text
}

func (t *Tree) TerminalIDs() []int {
	return t.filter(true)
}

func (t *Tree) NonTerminalIDs() []int {
	return t.filter(false)
}

// Terminals returns the text of every leaf in ID order.
func (t *Tree) Terminals(withID bool) []string {
	return t.labels(t.TerminalIDs(), withID)
}

// NonTerminals returns the text of every label in ID order.
func (t *Tree) NonTerminals(withID bool) []string {
	return t.labels(t.NonTerminalIDs(), withID)
}

func (t *Tree) filter(terminal bool) []int {
	var ids []int
	for _, n := range t.nodes {
		if n.Terminal == terminal {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func (t *Tree) labels(ids []int, withID bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.Label(id, withID))
	}
	return out
}

// Groups returns the sibling-groups ordered by level, then by the order in
// which they were opened.
func (t *Tree) Groups() []Group {
	levels := make([]int, 0, len(t.byLevel))
	for level := range t.byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	groups := make([]Group, 0, len(t.groups))
	for _, level := range levels {
		for _, g := range t.byLevel[level] {
			groups = append(groups, Group{
				Level:    g.Level,
				LHS:      g.LHS,
				Children: append([]int(nil), g.Children...),
			})
		}
	}
	return groups
}

// Symbol is one side of a rule.
type Symbol struct {
	Node     int
	Text     string
	Terminal bool
}

// Rule is a sibling-group rendered as a grammar production.
type Rule struct {
	Level int
	LHS   Symbol
	RHS   []Symbol
}

// Lexical reports whether the rule rewrites to exactly one terminal.
func (r Rule) Lexical() bool {
	return len(r.RHS) == 1 && r.RHS[0].Terminal
}

func (t *Tree) symbolFor(id int) Symbol {
	n, _ := t.Node(id)
	return Symbol{Node: id, Text: t.Label(id, false), Terminal: n.Terminal}
}

// Rules returns one rule per sibling-group in the order of Groups. With
// skipTerminals, rules with a single terminal child are left out. Identical
// rules from different groups are all kept.
func (t *Tree) Rules(skipTerminals bool) []Rule {
	var rules []Rule
	for _, g := range t.Groups() {
		r := Rule{Level: g.Level, LHS: t.symbolFor(g.LHS)}
		for _, c := range g.Children {
			r.RHS = append(r.RHS, t.symbolFor(c))
		}
		if skipTerminals && r.Lexical() {
			continue
		}
		rules = append(rules, r)
	}
	return rules
}

// FormatRule renders r as "LHS <arrow> RHS ...".
func (t *Tree) FormatRule(r Rule) string {
	var sb strings.Builder
	sb.WriteString(r.LHS.Text)
	sb.WriteString(" ")
	sb.WriteString(t.arrow)
	for _, s := range r.RHS {
		sb.WriteString(" ")
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// CFG returns the rules of Rules(skipTerminals), one per line.
func (t *Tree) CFG(skipTerminals bool) string {
	var sb strings.Builder
	for _, r := range t.Rules(skipTerminals) {
		sb.WriteString(t.FormatRule(r))
		sb.WriteString("\n")
	}
	return sb.String()
}

// PCFG is not implemented and always returns "".
func (t *Tree) PCFG() string {
	return ""
}

// SVG is not implemented and always returns "".
func (t *Tree) SVG() string {
	return ""
}
