package tree

// Relation names one of the node relations collected during parsing.
type Relation int

const (
	Dominance Relation = iota
	CCommand
	Precedence

	numRelations
)

func (r Relation) String() string {
	switch r {
	case Dominance:
		return "dominates"
	case CCommand:
		return "c-commands"
	case Precedence:
		return "precedes"
	default:
		return "unknown"
	}
}

// ParseRelation accepts the names produced by Relation.String.
func ParseRelation(name string) (Relation, bool) {
	for r := Relation(0); r < numRelations; r++ {
		if r.String() == name {
			return r, true
		}
	}
	return 0, false
}

// Relations lists every relation kind.
func Relations() []Relation {
	return []Relation{Dominance, CCommand, Precedence}
}

// Pair is one recorded edge: From stands in the relation to To.
type Pair struct {
	From int
	To   int
}

// HasRelation reports whether y is in the recorded set of x for kind.
// Unknown nodes and kinds yield false.
func (t *Tree) HasRelation(x, y int, kind Relation) bool {
	if kind < 0 || kind >= numRelations {
		return false
	}
	return t.relations[kind].has(x, y)
}

// Dominates reports whether y was attached directly under x. The relation is
// not transitive: a grandchild is not dominated by its grandparent here.
func (t *Tree) Dominates(x, y int) bool {
	return t.HasRelation(x, y, Dominance)
}

// CCommands reports whether x and y are siblings under the same immediate
// parent. It is symmetric and never reaches into a sibling's subtree.
func (t *Tree) CCommands(x, y int) bool {
	return t.HasRelation(x, y, CCommand)
}

// Precedes reports whether x is an earlier sibling of y.
func (t *Tree) Precedes(x, y int) bool {
	return t.HasRelation(x, y, Precedence)
}

// IsInScope reports whether x c-commands or dominates y.
func (t *Tree) IsInScope(x, y int) bool {
	return t.CCommands(x, y) || t.Dominates(x, y)
}

// CCommanders returns the nodes with at least one c-command edge, ascending.
func (t *Tree) CCommanders() []int {
	return t.relations[CCommand].sources()
}

// CCommended returns the nodes c-commanded by x, ascending.
func (t *Tree) CCommended(x int) []int {
	return t.relations[CCommand].targets(x)
}

// Dominators returns the nodes that dominate at least one node, ascending.
func (t *Tree) Dominators() []int {
	return t.relations[Dominance].sources()
}

// Dominated returns the nodes directly dominated by x, ascending.
func (t *Tree) Dominated(x int) []int {
	return t.relations[Dominance].targets(x)
}

// Pairs returns every edge of kind ordered by From, then To.
func (t *Tree) Pairs(kind Relation) []Pair {
	if kind < 0 || kind >= numRelations {
		return nil
	}
	set := t.relations[kind]
	var pairs []Pair
	for _, x := range set.sources() {
		for _, y := range set.targets(x) {
			pairs = append(pairs, Pair{From: x, To: y})
		}
	}
	return pairs
}

// Count returns the number of edges recorded for kind.
func (t *Tree) Count(kind Relation) int {
	if kind < 0 || kind >= numRelations {
		return 0
	}
	n := 0
	for _, targets := range t.relations[kind] {
		n += len(targets)
	}
	return n
}
