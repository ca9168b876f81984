// Package treebank collects parsed trees that share one symbol table.
package treebank

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/treeproc/symbol"
	"github.com/dhamidi/treeproc/tree"
)

var log = commonlog.GetLogger("treeproc.treebank")

// maxLineSize bounds a single tree line read by Load.
const maxLineSize = 16 * 1024 * 1024

// Entry is one parsed tree. Line is the 1-based input line it came from,
// or 0 for trees added with Add.
type Entry struct {
	ID   uuid.UUID
	Line int
	Tree *tree.Tree
}

// LineError ties a parse error to its input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

type Option func(*Bank)

// WithParserOptions passes opts to every tree parser the bank creates.
func WithParserOptions(opts ...tree.Option) Option {
	return func(b *Bank) {
		b.parserOpts = append(b.parserOpts, opts...)
	}
}

// WithWorkers parses lines in Load with n goroutines. Entries keep input
// order; symbol IDs are then assigned in whatever order lines finish.
func WithWorkers(n int) Option {
	return func(b *Bank) {
		if n > 0 {
			b.workers = n
		}
	}
}

// Bank holds trees in insertion order. It is safe for concurrent use.
type Bank struct {
	symbols    *symbol.Table
	parserOpts []tree.Option
	workers    int

	mu      sync.RWMutex
	entries []*Entry
	byID    map[uuid.UUID]*Entry
}

// New creates a bank interning into symbols; nil gets a fresh table.
func New(symbols *symbol.Table, opts ...Option) *Bank {
	if symbols == nil {
		symbols = symbol.NewTable()
	}
	b := &Bank{
		symbols: symbols,
		workers: 1,
		byID:    make(map[uuid.UUID]*Entry),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bank) Symbols() *symbol.Table {
	return b.symbols
}

// Add parses one line and stores the tree. A strict-mode error is returned
// and nothing is stored.
func (b *Bank) Add(line string) (*Entry, error) {
	e, err := b.parse(0, line)
	if err != nil {
		return nil, err
	}
	b.store(e)
	return e, nil
}

func (b *Bank) parse(lineNo int, line string) (*Entry, error) {
	t, err := tree.Parse(b.symbols, line, b.parserOpts...)
	if err != nil {
		return nil, err
	}
	return &Entry{ID: uuid.New(), Line: lineNo, Tree: t}, nil
}

func (b *Bank) store(entries ...*Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range entries {
		b.entries = append(b.entries, e)
		b.byID[e.ID] = e
	}
}

type job struct {
	index  int
	lineNo int
	text   string
}

type result struct {
	entry *Entry
	err   error
}

// Load reads one tree per line from r. Lines are trimmed and blank lines
// skipped. Lines that fail to parse are reported together as LineErrors in
// the returned error; the other lines are stored. A cancelled ctx stops
// loading and nothing from this call is stored.
func (b *Bank) Load(ctx context.Context, r io.Reader) ([]*Entry, error) {
	var jobs []job
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		jobs = append(jobs, job{index: len(jobs), lineNo: lineNo, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read trees: %w", err)
	}

	results := make([]result, len(jobs))
	if b.workers <= 1 || len(jobs) < 2 {
		for _, j := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[j.index] = b.run(j)
		}
	} else {
		if err := b.runParallel(ctx, jobs, results); err != nil {
			return nil, err
		}
	}

	var entries []*Entry
	var errs []error
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		entries = append(entries, res.entry)
	}
	b.store(entries...)

	log.Infof("loaded %d trees (%d rejected, %d symbols)", len(entries), len(errs), b.symbols.Len())
	return entries, errors.Join(errs...)
}

func (b *Bank) run(j job) result {
	e, err := b.parse(j.lineNo, j.text)
	if err != nil {
		log.Warningf("line %d: %s", j.lineNo, err)
		return result{err: &LineError{Line: j.lineNo, Err: err}}
	}
	log.Debugf("line %d: %d nodes", j.lineNo, e.Tree.Len())
	return result{entry: e}
}

func (b *Bank) runParallel(ctx context.Context, jobs []job, results []result) error {
	queue := make(chan job)
	var wg sync.WaitGroup
	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				results[j.index] = b.run(j)
			}
		}()
	}

feed:
	for _, j := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case queue <- j:
		}
	}
	close(queue)
	wg.Wait()
	return ctx.Err()
}

// Entries returns the stored entries in insertion order.
func (b *Bank) Entries() []*Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]*Entry(nil), b.entries...)
}

// Get looks up an entry by its UUID string.
func (b *Bank) Get(id string) (*Entry, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.byID[u]
	return e, ok
}

func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// CFG concatenates the rule listing of every tree. Rules repeated across or
// within trees are all kept.
func (b *Bank) CFG(skipTerminals bool) string {
	var sb strings.Builder
	for _, e := range b.Entries() {
		sb.WriteString(e.Tree.CFG(skipTerminals))
	}
	return sb.String()
}

// PCFG is not implemented and always returns "".
func (b *Bank) PCFG() string {
	return ""
}
