package format

import (
	"github.com/dhamidi/treeproc/tree"
	"github.com/dhamidi/treeproc/treebank"
)

// Document is the structured form of one tree shared by the JSON and YAML
// encoders and the HTTP API.
type Document struct {
	ID           string      `json:"id" yaml:"id"`
	Line         int         `json:"line,omitempty" yaml:"line,omitempty"`
	Tree         string      `json:"tree" yaml:"tree"`
	Terminals    []string    `json:"terminals" yaml:"terminals"`
	NonTerminals []string    `json:"nonTerminals" yaml:"nonTerminals"`
	Nodes        []DocNode   `json:"nodes" yaml:"nodes"`
	Relations    DocRelation `json:"relations" yaml:"relations"`
	Rules        []string    `json:"rules" yaml:"rules"`
}

type DocNode struct {
	ID       int    `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	Terminal bool   `json:"terminal" yaml:"terminal"`
	Level    int    `json:"level" yaml:"level"`
	Start    int    `json:"start" yaml:"start"`
	End      int    `json:"end" yaml:"end"`
}

// DocRelation lists edges as [from, to] node ID pairs.
type DocRelation struct {
	Dominates [][2]int `json:"dominates" yaml:"dominates,flow"`
	CCommands [][2]int `json:"cCommands" yaml:"cCommands,flow"`
	Precedes  [][2]int `json:"precedes" yaml:"precedes,flow"`
}

// NewDocument collects everything the query surface exposes about entry.
func NewDocument(entry *treebank.Entry, skipTerminals bool) Document {
	t := entry.Tree
	doc := Document{
		ID:           entry.ID.String(),
		Line:         entry.Line,
		Tree:         t.String(),
		Terminals:    t.Terminals(true),
		NonTerminals: t.NonTerminals(true),
		Nodes:        make([]DocNode, 0, t.Len()),
		Relations: DocRelation{
			Dominates: pairs(t, tree.Dominance),
			CCommands: pairs(t, tree.CCommand),
			Precedes:  pairs(t, tree.Precedence),
		},
		Rules: []string{},
	}
	for _, n := range t.Nodes() {
		doc.Nodes = append(doc.Nodes, DocNode{
			ID:       n.ID,
			Label:    t.Label(n.ID, false),
			Terminal: n.Terminal,
			Level:    n.Level,
			Start:    n.Span.Start,
			End:      n.Span.End,
		})
	}
	for _, r := range t.Rules(skipTerminals) {
		doc.Rules = append(doc.Rules, t.FormatRule(r))
	}
	return doc
}

func pairs(t *tree.Tree, kind tree.Relation) [][2]int {
	out := [][2]int{}
	for _, p := range t.Pairs(kind) {
		out = append(out, [2]int{p.From, p.To})
	}
	return out
}
