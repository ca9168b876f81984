package lsp

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/treeproc/symbol"
	"github.com/dhamidi/treeproc/tree"
)

// Line is one non-blank line of a treebank document.
type Line struct {
	Number int // 0-based
	Indent int // bytes of leading whitespace trimmed before parsing
	Text   string
	Tree   *tree.Tree
	Err    error
}

// Document is an open treebank file. Every line is parsed in strict mode
// against a symbol table private to the document.
type Document struct {
	URI     string
	Symbols *symbol.Table
	Lines   []Line
}

// Analyze parses text one line at a time. Trees with syntax errors are kept
// so hovering still works on the part that parsed.
func Analyze(uri, text string, opts ...tree.Option) *Document {
	doc := &Document{URI: uri, Symbols: symbol.NewTable()}
	opts = append(opts[:len(opts):len(opts)], tree.WithStrict())
	p := tree.NewParser(doc.Symbols, opts...)

	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
		indent := len(raw) - len(trimmed)
		trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
		if trimmed == "" {
			continue
		}
		t, err := p.Parse(trimmed)
		doc.Lines = append(doc.Lines, Line{
			Number: i,
			Indent: indent,
			Text:   raw,
			Tree:   t,
			Err:    err,
		})
	}
	return doc
}

// Line returns the parsed line with the given 0-based number.
func (d *Document) Line(number int) (*Line, bool) {
	for i := range d.Lines {
		if d.Lines[i].Number == number {
			return &d.Lines[i], true
		}
	}
	return nil, false
}

// Diagnostics reports one error per line that failed to parse.
func (d *Document) Diagnostics() []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	severity := protocol.DiagnosticSeverityError
	source := lsName

	for _, l := range d.Lines {
		if l.Err == nil {
			continue
		}

		offset := 0
		message := l.Err.Error()
		var syntaxErr *tree.SyntaxError
		if errors.As(l.Err, &syntaxErr) {
			offset = syntaxErr.Offset
			message = syntaxErr.Err.Error()
			if syntaxErr.Detail != "" {
				message = fmt.Sprintf("%s: %s", message, syntaxErr.Detail)
			}
		}

		start := l.Indent + offset
		end := start + 1
		if _, size := utf8.DecodeRuneInString(l.Text[min(start, len(l.Text)):]); size > 0 {
			end = start + size
		}
		end = min(end, len(l.Text))
		start = min(start, end)

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(l.Number), Character: protocol.UInteger(utf16Column(l.Text, start))},
				End:   protocol.Position{Line: protocol.UInteger(l.Number), Character: protocol.UInteger(utf16Column(l.Text, end))},
			},
			Severity: &severity,
			Source:   &source,
			Message:  message,
		})
	}
	return diagnostics
}

// NodeAt finds the node under a position given in LSP coordinates.
func (d *Document) NodeAt(line, character int) (*Line, tree.Node, bool) {
	l, ok := d.Line(line)
	if !ok {
		return nil, tree.Node{}, false
	}
	offset := byteOffset(l.Text, character) - l.Indent
	if offset < 0 {
		return nil, tree.Node{}, false
	}
	n, ok := l.Tree.NodeAt(offset)
	if !ok {
		return nil, tree.Node{}, false
	}
	return l, n, true
}

// Hover renders markdown describing the node under a position.
func (d *Document) Hover(line, character int) (string, protocol.Range, bool) {
	l, n, ok := d.NodeAt(line, character)
	if !ok {
		return "", protocol.Range{}, false
	}
	t := l.Tree

	kind := "non-terminal"
	if n.Terminal {
		kind = "terminal"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** node %d, %s, level %d\n\n", t.Label(n.ID, false), n.ID, kind, n.Level)
	for _, rel := range tree.Relations() {
		out, in := partners(t, rel, n.ID)
		if len(out) > 0 {
			fmt.Fprintf(&sb, "- %s: %s\n", rel, labels(t, out))
		}
		if len(in) > 0 {
			fmt.Fprintf(&sb, "- %s by: %s\n", passive(rel), labels(t, in))
		}
	}

	start := l.Indent + n.Span.Start
	end := l.Indent + n.Span.End
	r := protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(l.Number), Character: protocol.UInteger(utf16Column(l.Text, start))},
		End:   protocol.Position{Line: protocol.UInteger(l.Number), Character: protocol.UInteger(utf16Column(l.Text, end))},
	}
	return sb.String(), r, true
}

func partners(t *tree.Tree, kind tree.Relation, id int) (out, in []int) {
	for _, p := range t.Pairs(kind) {
		if p.From == id {
			out = append(out, p.To)
		}
		if p.To == id {
			in = append(in, p.From)
		}
	}
	return out, in
}

func passive(rel tree.Relation) string {
	switch rel {
	case tree.Dominance:
		return "dominated"
	case tree.CCommand:
		return "c-commanded"
	case tree.Precedence:
		return "preceded"
	}
	return rel.String()
}

func labels(t *tree.Tree, ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "`" + t.Label(id, true) + "`"
	}
	return strings.Join(parts, ", ")
}

// utf16Column converts a byte offset in s into UTF-16 code units, the unit
// LSP positions are counted in.
func utf16Column(s string, offset int) int {
	col := 0
	for i, r := range s {
		if i >= offset {
			break
		}
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	return col
}

// byteOffset is the inverse of utf16Column.
func byteOffset(s string, column int) int {
	col := 0
	for i, r := range s {
		if col >= column {
			return i
		}
		if r >= 0x10000 {
			col += 2
		} else {
			col++
		}
	}
	return len(s)
}
