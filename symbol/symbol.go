// Package symbol interns node labels and leaf words as small integer IDs.
//
// A Table is shared by every tree parsed against it, so identical text in
// different trees resolves to the same ID. IDs start at 1 and are handed out
// in first-occurrence order. Entries are never removed or renumbered.
package symbol

import "sync"

// Table is an append-only text <-> ID bijection. It is safe for concurrent
// use; the order in which IDs are assigned then depends on scheduling.
type Table struct {
	mu     sync.RWMutex
	byText map[string]int
	byID   []string
}

func NewTable() *Table {
	return &Table{
		byText: make(map[string]int),
	}
}

// Intern returns the ID for text, allocating the next one if text is new.
func (t *Table) Intern(text string) int {
	t.mu.RLock()
	id, ok := t.byText[text]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byText[text]; ok {
		return id
	}
	t.byID = append(t.byID, text)
	id = len(t.byID)
	t.byText[text] = id
	return id
}

// Resolve returns the text for id. ok is false for IDs never handed out.
func (t *Table) Resolve(id int) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 1 || id > len(t.byID) {
		return "", false
	}
	return t.byID[id-1], true
}

// Lookup returns the ID of text without interning it.
func (t *Table) Lookup(text string) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.byText[text]
	return id, ok
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byID)
}
