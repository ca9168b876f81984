package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dhamidi/treeproc/config"
	"github.com/dhamidi/treeproc/tree"
)

func TestSampleTreesParseStrictly(t *testing.T) {
	cfg := config.Default()
	cfg.Parser.Strict = true

	bank := newBank(cfg)
	entries, err := bank.Load(context.Background(), strings.NewReader(sampleTrees))
	if err != nil {
		t.Fatalf("sample trees rejected: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("len(entries) = %d, want 5", len(entries))
	}
}

func TestRelationQuery(t *testing.T) {
	tr, err := tree.Parse(nil, "(S (NP dog) (VP barks))")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		kind string
		x, y int
		want bool
	}{
		{"dominates", 1, 2, true},
		{"c-commands", 2, 4, true},
		{"in-scope", 2, 4, true},
		{"precedes", 4, 2, false},
	}
	for _, tt := range tests {
		holds, err := relationQuery(tt.kind)
		if err != nil {
			t.Fatalf("relationQuery(%q) error = %v", tt.kind, err)
		}
		if got := holds(tr, tt.x, tt.y); got != tt.want {
			t.Errorf("%s(%d, %d) = %v, want %v", tt.kind, tt.x, tt.y, got, tt.want)
		}
	}

	if _, err := relationQuery("governs"); err == nil {
		t.Error("relationQuery(governs) error = nil")
	}
}

func TestEntryAtLine(t *testing.T) {
	bank := newBank(config.Default())
	bank.Load(context.Background(), strings.NewReader("\n(S (A a))\n\n(S (B b))\n"))

	e, err := entryAtLine(bank, 0)
	if err != nil || e.Line != 2 {
		t.Errorf("entryAtLine(0) = %v, %v, want line 2", e, err)
	}
	e, err = entryAtLine(bank, 4)
	if err != nil || e.Tree.String() != "(S (B b))" {
		t.Errorf("entryAtLine(4) = %v, %v", e, err)
	}
	if _, err := entryAtLine(bank, 3); err == nil {
		t.Error("entryAtLine(3) error = nil, want error")
	}
}

func TestSplitAddr(t *testing.T) {
	tests := []struct {
		addr    string
		host    string
		port    int
		wantErr bool
	}{
		{":8080", "", 8080, false},
		{"0.0.0.0:9099", "0.0.0.0", 9099, false},
		{"localhost", "", 0, true},
		{":http", "", 0, true},
		{":70000", "", 0, true},
	}
	for _, tt := range tests {
		host, port, err := splitAddr(tt.addr)
		if (err != nil) != tt.wantErr {
			t.Errorf("splitAddr(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			continue
		}
		if host != tt.host || port != tt.port {
			t.Errorf("splitAddr(%q) = %q, %d, want %q, %d", tt.addr, host, port, tt.host, tt.port)
		}
	}
}

type listError []error

func (l listError) Error() string { return fmt.Sprintf("%d errors", len(l)) }

func TestFlatten(t *testing.T) {
	a, b, c := errors.New("a"), errors.New("b"), errors.New("c")

	if got := flatten(errors.Join(a, errors.Join(b, c))); len(got) != 3 {
		t.Errorf("flatten(joined) = %v, want 3 errors", got)
	}
	if got := flatten(fmt.Errorf("verify: %w", listError{a, b})); len(got) != 2 {
		t.Errorf("flatten(wrapped list) = %v, want 2 errors", got)
	}
	if got := flatten(fmt.Errorf("open: %w", a)); len(got) != 1 || got[0].Error() != "open: a" {
		t.Errorf("flatten(wrapped single) = %v", got)
	}
	if flatten(nil) != nil {
		t.Error("flatten(nil) != nil")
	}
}
