package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/treeproc/tree"
	"github.com/dhamidi/treeproc/treebank"
)

// ReportEncoder writes the console report for a tree: the input line, its
// leaves, the dominance count, each c-commander with the nodes it
// c-commands, and the rule listing.
type ReportEncoder struct {
	w     io.Writer
	entry *treebank.Entry
	options
}

func NewReportEncoder(w io.Writer, opts ...Option) *ReportEncoder {
	enc, _ := New("report", w, opts...)
	return enc.(*ReportEncoder)
}

func (e *ReportEncoder) Encode(entry *treebank.Entry) error {
	e.entry = entry
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	return write(e.w, text)
}

func (e *ReportEncoder) MarshalText() ([]byte, error) {
	t := e.entry.Tree
	var buf bytes.Buffer

	e.heading(&buf, "Tree")
	fmt.Fprintln(&buf, t.String())

	e.heading(&buf, "Terminals")
	fmt.Fprintln(&buf, strings.Join(t.Terminals(false), ", "))

	e.heading(&buf, "Dominates Relations")
	fmt.Fprintf(&buf, "Number of Dominance relations: %d\n", t.Count(tree.Dominance))

	e.heading(&buf, "C-Command Relations")
	for _, x := range t.CCommanders() {
		var targets []string
		for _, y := range t.CCommended(x) {
			targets = append(targets, t.Label(y, true))
		}
		fmt.Fprintf(&buf, "%s c-commands: %s\n", t.Label(x, true), strings.Join(targets, ", "))
	}

	e.heading(&buf, "CFG")
	fmt.Fprintln(&buf, t.CFG(e.skipTerminals))

	return buf.Bytes(), nil
}

func (e *ReportEncoder) heading(w io.Writer, title string) {
	text := "---------- " + title + " ----------"
	if e.color {
		style := lipgloss.NewRenderer(e.w).NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
		text = style.Render(text)
	}
	fmt.Fprintln(w, text)
}
