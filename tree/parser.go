package tree

import (
	"fmt"
	"strings"

	"github.com/dhamidi/treeproc/symbol"
)

type Option func(*Parser)

// WithStrict makes Parse report malformed input as a *SyntaxError. The
// returned tree is built the same way as in lenient mode.
func WithStrict() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// WithIDSeparator sets the text placed between a symbol and its node ID
// when labels are rendered with IDs.
func WithIDSeparator(sep string) Option {
	return func(p *Parser) {
		p.idSeparator = sep
	}
}

// WithArrow sets the text between the left- and right-hand side of a
// rendered grammar rule.
func WithArrow(arrow string) Option {
	return func(p *Parser) {
		p.arrow = arrow
	}
}

const (
	DefaultIDSeparator = "_"
	DefaultArrow       = "->"
)

type openBracket struct {
	char   rune
	offset int
}

// Parser turns one bracketed tree per call into a Tree. A Parser is not safe
// for concurrent use, but several Parsers may share one symbol table.
type Parser struct {
	symbols     *symbol.Table
	strict      bool
	idSeparator string
	arrow       string

	tree       *Tree
	state      State
	level      int
	buf        strings.Builder
	bufStart   int
	offset     int
	openers    []openBracket
	rootClosed bool
	err        error
}

// NewParser returns a parser interning into symbols. A nil table gets a
// private one.
func NewParser(symbols *symbol.Table, opts ...Option) *Parser {
	if symbols == nil {
		symbols = symbol.NewTable()
	}
	p := &Parser{
		symbols:     symbols,
		idSeparator: DefaultIDSeparator,
		arrow:       DefaultArrow,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is shorthand for NewParser(symbols, opts...).Parse(line).
func Parse(symbols *symbol.Table, line string, opts ...Option) (*Tree, error) {
	return NewParser(symbols, opts...).Parse(line)
}

// Parse consumes line in a single pass. In lenient mode the error is always
// nil and malformed input yields a partial tree. In strict mode the first
// violation is returned alongside the same partial tree.
func (p *Parser) Parse(line string) (*Tree, error) {
	p.reset(line)

	for i, r := range line {
		p.offset = i
		p.step(r)
	}
	p.offset = len(line)
	p.finish()

	t := p.tree
	err := p.err
	p.tree = nil
	return t, err
}

func (p *Parser) reset(line string) {
	p.tree = newTree(line, p.symbols, p.idSeparator, p.arrow)
	p.state = StateNone
	p.level = 0
	p.buf.Reset()
	p.bufStart = 0
	p.offset = 0
	p.openers = p.openers[:0]
	p.rootClosed = false
	p.err = nil
}

func (p *Parser) step(r rune) {
	transitions[p.state][classify(r)](p, r)
}

func (p *Parser) finish() {
	if !p.strict {
		return
	}
	if len(p.openers) > 0 {
		o := p.openers[len(p.openers)-1]
		p.fail(o.offset, ErrUnbalanced, fmt.Sprintf("%q never closed", o.char))
	}
	if len(p.tree.nodes) == 0 {
		p.fail(0, ErrEmptyTree, "")
	}
}

func (p *Parser) fail(offset int, err error, detail string) {
	if !p.strict || p.err != nil {
		return
	}
	p.err = &SyntaxError{Offset: offset, Err: err, Detail: detail}
}

func (p *Parser) ignore(r rune) {}

func (p *Parser) appendText(r rune) {
	if p.buf.Len() == 0 {
		p.bufStart = p.offset
	}
	p.buf.WriteRune(r)
}

func (p *Parser) strayText(r rune) {
	if p.buf.Len() == 0 {
		p.fail(p.offset, ErrStrayText, "")
	}
	p.appendText(r)
}

func (p *Parser) beginLHS(r rune) {
	p.appendText(r)
	p.state = StateLHS
}

func (p *Parser) beginRHS(r rune) {
	p.appendText(r)
	p.state = StateRHS
}

func (p *Parser) open(r rune) {
	if p.level == 0 && p.rootClosed {
		p.fail(p.offset, ErrMultipleRoots, "")
	}
	p.level++
	p.openers = append(p.openers, openBracket{char: r, offset: p.offset})
	p.state = StateWaitLHS
}

// openDangling handles a bracket glued to a pending token. The token is
// left in the buffer and leaks into the next one.
func (p *Parser) openDangling(r rune) {
	p.fail(p.offset, ErrDanglingLabel, fmt.Sprintf("%q before %q", p.buf.String(), r))
	p.open(r)
}

func (p *Parser) close(r rune) {
	if n := len(p.openers); n == 0 {
		p.fail(p.offset, ErrUnbalanced, fmt.Sprintf("%q without opener", r))
	} else {
		o := p.openers[n-1]
		p.openers = p.openers[:n-1]
		if want := closerFor(o.char); want != r {
			p.fail(p.offset, ErrMismatchedBracket, fmt.Sprintf("%q closes %q at offset %d", r, o.char, o.offset))
		}
	}
	p.level--
	if p.level == 0 {
		p.rootClosed = true
	}
	p.state = StateNone
}

func (p *Parser) closeDangling(r rune) {
	p.fail(p.offset, ErrDanglingLabel, fmt.Sprintf("%q before %q", p.buf.String(), r))
	p.close(r)
}

func (p *Parser) closeTerminal(r rune) {
	p.finishTerminal()
	p.close(r)
}

// finishLHS turns the buffer into a nonterminal that opens a sibling-group
// at the current level and, below the root, joins the enclosing group.
func (p *Parser) finishLHS(r rune) {
	n := p.newNode(false)
	p.tree.openGroup(p.level, n)
	if p.level > 1 {
		p.tree.attach(p.tree.lastGroup(p.level-1), n)
	}
	p.state = StateWaitRHS
}

func (p *Parser) finishRHS(r rune) {
	p.finishTerminal()
	p.state = StateWaitRHS
}

func (p *Parser) finishTerminal() {
	n := p.newNode(true)
	p.tree.attach(p.tree.lastGroup(p.level), n)
}

func (p *Parser) newNode(terminal bool) int {
	text := p.buf.String()
	p.buf.Reset()
	return p.tree.addNode(Node{
		Symbol:   p.symbols.Intern(text),
		Terminal: terminal,
		Level:    p.level,
		Span:     Span{Start: p.bufStart, End: p.offset},
	})
}
