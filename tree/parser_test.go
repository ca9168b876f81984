package tree

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dhamidi/treeproc/symbol"
)

const dogBarks = "(S (NP (N dog)) (VP (V barks)))"

func mustParse(t *testing.T, line string, opts ...Option) *Tree {
	t.Helper()
	tr, err := Parse(symbol.NewTable(), line, opts...)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", line, err)
	}
	return tr
}

func TestParseNodeIDsFollowTokenOrder(t *testing.T) {
	tr := mustParse(t, dogBarks)

	want := []struct {
		label    string
		terminal bool
		level    int
	}{
		{"S", false, 1},
		{"NP", false, 2},
		{"N", false, 3},
		{"dog", true, 3},
		{"VP", false, 2},
		{"V", false, 3},
		{"barks", true, 3},
	}

	if tr.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", tr.Len(), len(want))
	}
	for i, w := range want {
		id := i + 1
		n, ok := tr.Node(id)
		if !ok {
			t.Fatalf("Node(%d) missing", id)
		}
		if n.ID != id {
			t.Errorf("Node(%d).ID = %d", id, n.ID)
		}
		if got := tr.Label(id, false); got != w.label {
			t.Errorf("Label(%d) = %q, want %q", id, got, w.label)
		}
		if n.Terminal != w.terminal {
			t.Errorf("Node(%d).Terminal = %v, want %v", id, n.Terminal, w.terminal)
		}
		if n.Level != w.level {
			t.Errorf("Node(%d).Level = %d, want %d", id, n.Level, w.level)
		}
	}
}

func TestParseSpans(t *testing.T) {
	tr := mustParse(t, dogBarks)

	for _, n := range tr.Nodes() {
		text := dogBarks[n.Span.Start:n.Span.End]
		if want := tr.Label(n.ID, false); text != want {
			t.Errorf("span of node %d = %q, want %q", n.ID, text, want)
		}
	}
}

func TestParseSharesSymbolTable(t *testing.T) {
	table := symbol.NewTable()
	first, _ := Parse(table, "(S (NP dog))")
	second, _ := Parse(table, "(S (VP barks) (NP dog))")

	s1, _ := first.Node(1)
	s2, _ := second.Node(1)
	if s1.Symbol != s2.Symbol {
		t.Errorf("S interned as %d and %d", s1.Symbol, s2.Symbol)
	}

	np, _ := first.Node(2)
	np2, _ := second.Node(4)
	if np.Symbol != np2.Symbol {
		t.Errorf("NP interned as %d and %d", np.Symbol, np2.Symbol)
	}

	if table.Len() != 5 {
		t.Errorf("table.Len() = %d, want 5", table.Len())
	}
}

func TestParseLenient(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		terminals    []string
		nonTerminals []string
	}{
		{"empty", "", []string{}, []string{}},
		{"blank", "   ", []string{}, []string{}},
		{"square brackets", "[S [NP dog] [VP barks]]", []string{"dog", "barks"}, []string{"S", "NP", "VP"}},
		{"mismatched flavours", "[S (NP dog] (VP barks)]", []string{"dog", "barks"}, []string{"S", "NP", "VP"}},
		{"unclosed", "(S (NP dog", []string{}, []string{"S", "NP"}},
		{"extra closers", "(S (NP dog)))))", []string{"dog"}, []string{"S", "NP"}},
		{"leaf after constituent is dropped", "(S (NP dog) barks)", []string{"dog"}, []string{"S", "NP"}},
		{"glued label leaks into next label", "(S(A a))", []string{"a"}, []string{"SA"}},
		{"tabs and newlines", "(S\t(NP\ndog))", []string{"dog"}, []string{"S", "NP"}},
		{"unicode", "(S (N Hund) (V bellt) (ADV schön))", []string{"Hund", "bellt", "schön"}, []string{"S", "N", "V", "ADV"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Parse(symbol.NewTable(), tt.input)
			if err != nil {
				t.Fatalf("error = %v, want nil", err)
			}
			if got := tr.Terminals(false); !reflect.DeepEqual(got, tt.terminals) {
				t.Errorf("Terminals() = %q, want %q", got, tt.terminals)
			}
			if got := tr.NonTerminals(false); !reflect.DeepEqual(got, tt.nonTerminals) {
				t.Errorf("NonTerminals() = %q, want %q", got, tt.nonTerminals)
			}
			if tr.String() != tt.input {
				t.Errorf("String() = %q, want %q", tr.String(), tt.input)
			}
		})
	}
}

func TestParseStrict(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		err    error
		offset int
	}{
		{"well formed", dogBarks, nil, 0},
		{"trailing space", "(S (A a)) ", nil, 0},
		{"square brackets", "[S [A a]]", nil, 0},
		{"empty", "", ErrEmptyTree, 0},
		{"mismatched", "(S (NP dog]", ErrMismatchedBracket, 10},
		{"extra closer", "(S (A a)))", ErrUnbalanced, 9},
		{"unclosed root", "(S (A a)", ErrUnbalanced, 0},
		{"glued label", "(S(A a))", ErrDanglingLabel, 2},
		{"glued leaf", "(S (A a(B b)))", ErrDanglingLabel, 7},
		{"stray leaf", "(S (A a) x)", ErrStrayText, 9},
		{"trailing text", "(S (A a)) x", ErrStrayText, 10},
		{"two roots", "(A a) (B b)", ErrMultipleRoots, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Parse(symbol.NewTable(), tt.input, WithStrict())
			if tr == nil {
				t.Fatal("tree is nil")
			}
			if tt.err == nil {
				if err != nil {
					t.Fatalf("error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("error = %v, want %v", err, tt.err)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("error %T is not a *SyntaxError", err)
			}
			if syntaxErr.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", syntaxErr.Offset, tt.offset)
			}
		})
	}
}

func TestStrictKeepsPartialTree(t *testing.T) {
	lenient := mustParse(t, "(S (A a) x (B b))")
	strict, err := Parse(symbol.NewTable(), "(S (A a) x (B b))", WithStrict())
	if err == nil {
		t.Fatal("expected an error in strict mode")
	}
	if !reflect.DeepEqual(strict.NonTerminals(false), lenient.NonTerminals(false)) {
		t.Errorf("strict NonTerminals() = %q, lenient = %q", strict.NonTerminals(false), lenient.NonTerminals(false))
	}
	if strict.CFG(false) != lenient.CFG(false) {
		t.Errorf("strict CFG = %q, lenient = %q", strict.CFG(false), lenient.CFG(false))
	}
}

func TestParserReuse(t *testing.T) {
	p := NewParser(symbol.NewTable(), WithStrict())

	if _, err := p.Parse("(S (A a)"); err == nil {
		t.Fatal("expected error for unclosed input")
	}
	tr, err := p.Parse(dogBarks)
	if err != nil {
		t.Fatalf("second Parse error = %v", err)
	}
	if tr.Len() != 7 {
		t.Errorf("Len() = %d, want 7", tr.Len())
	}
}

func TestTransitionTableComplete(t *testing.T) {
	for s := State(0); s < numStates; s++ {
		for c := inputClass(0); c < numClasses; c++ {
			if transitions[s][c] == nil {
				t.Errorf("no transition for (%v, %v)", s, c)
			}
		}
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name  string
		state State
		buf   string
		input rune
		want  State
		level int
		nodes int
	}{
		{"open from none", StateNone, "", '(', StateWaitLHS, 2, 0},
		{"open from wait rhs", StateWaitRHS, "", '[', StateWaitLHS, 2, 0},
		{"label starts", StateWaitLHS, "", 'S', StateLHS, 1, 0},
		{"label grows", StateLHS, "N", 'P', StateLHS, 1, 0},
		{"label ends", StateLHS, "NP", ' ', StateWaitRHS, 1, 1},
		{"leaf starts", StateWaitRHS, "", 'd', StateRHS, 1, 0},
		{"leaf ends on space", StateRHS, "dog", ' ', StateWaitRHS, 1, 1},
		{"leaf ends on close", StateRHS, "dog", ')', StateNone, 0, 1},
		{"close from wait rhs", StateWaitRHS, "", ']', StateNone, 0, 0},
		{"space waiting for label", StateWaitLHS, "", ' ', StateWaitLHS, 1, 0},
		{"text in none", StateNone, "", 'x', StateNone, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(nil)
			p.reset("")
			p.level = 1
			p.tree.openGroup(1, p.tree.addNode(Node{Level: 1}))
			baseline := p.tree.Len()
			p.state = tt.state
			p.buf.WriteString(tt.buf)

			p.step(tt.input)

			if p.state != tt.want {
				t.Errorf("state = %v, want %v", p.state, tt.want)
			}
			if p.level != tt.level {
				t.Errorf("level = %d, want %d", p.level, tt.level)
			}
			if got := p.tree.Len() - baseline; got != tt.nodes {
				t.Errorf("new nodes = %d, want %d", got, tt.nodes)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		r    rune
		want inputClass
	}{
		{'(', classOpen},
		{'[', classOpen},
		{')', classClose},
		{']', classClose},
		{' ', classSpace},
		{'\t', classSpace},
		{'\n', classSpace},
		{'\u00a0', classSpace},
		{'a', classText},
		{'-', classText},
		{'{', classText},
	}

	for _, tt := range tests {
		if got := classify(tt.r); got != tt.want {
			t.Errorf("classify(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
