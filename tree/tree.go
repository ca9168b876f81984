package tree

import (
	"sort"

	"github.com/dhamidi/treeproc/symbol"
)

// Span is a half-open byte range of a token in the input line.
type Span struct {
	Start int
	End   int
}

// Node is one token of the tree. IDs are 1-based and follow token order.
type Node struct {
	ID       int
	Symbol   int
	Terminal bool
	Level    int
	Span     Span
}

// Group is a sibling-group: the label that opened a bracket and the nodes
// attached to it, in input order.
type Group struct {
	Level    int
	LHS      int
	Children []int
}

type relationSet map[int]map[int]struct{}

func (s relationSet) add(x, y int) {
	targets, ok := s[x]
	if !ok {
		targets = make(map[int]struct{})
		s[x] = targets
	}
	targets[y] = struct{}{}
}

func (s relationSet) has(x, y int) bool {
	_, ok := s[x][y]
	return ok
}

func (s relationSet) sources() []int {
	ids := make([]int, 0, len(s))
	for x, targets := range s {
		if len(targets) > 0 {
			ids = append(ids, x)
		}
	}
	sort.Ints(ids)
	return ids
}

func (s relationSet) targets(x int) []int {
	ids := make([]int, 0, len(s[x]))
	for y := range s[x] {
		ids = append(ids, y)
	}
	sort.Ints(ids)
	return ids
}

// Tree is the result of parsing one line. It is read-only once Parse
// returns and may be queried from several goroutines.
type Tree struct {
	line        string
	symbols     *symbol.Table
	idSeparator string
	arrow       string

	nodes     []Node
	groups    []*Group
	byLevel   map[int][]*Group
	relations [numRelations]relationSet
}

func newTree(line string, symbols *symbol.Table, idSeparator, arrow string) *Tree {
	t := &Tree{
		line:        line,
		symbols:     symbols,
		idSeparator: idSeparator,
		arrow:       arrow,
		byLevel:     make(map[int][]*Group),
	}
	for i := range t.relations {
		t.relations[i] = make(relationSet)
	}
	return t
}

func (t *Tree) addNode(n Node) int {
	n.ID = len(t.nodes) + 1
	t.nodes = append(t.nodes, n)
	return n.ID
}

func (t *Tree) openGroup(level, lhs int) {
	g := &Group{Level: level, LHS: lhs}
	t.groups = append(t.groups, g)
	t.byLevel[level] = append(t.byLevel[level], g)
}

// lastGroup returns the most recently opened group at level, or nil.
func (t *Tree) lastGroup(level int) *Group {
	gs := t.byLevel[level]
	if len(gs) == 0 {
		return nil
	}
	return gs[len(gs)-1]
}

// attach records n as the next child of g. Only direct edges are stored:
// g.LHS dominates n, and n is mutually c-commanding with and preceded by
// every earlier child of g.
func (t *Tree) attach(g *Group, n int) {
	if g == nil {
		return
	}
	t.relations[Dominance].add(g.LHS, n)
	for _, c := range g.Children {
		t.relations[CCommand].add(c, n)
		t.relations[CCommand].add(n, c)
		t.relations[Precedence].add(c, n)
	}
	g.Children = append(g.Children, n)
}
