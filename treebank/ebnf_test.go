package treebank

import (
	"strings"
	"testing"
)

func TestProductionName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"S", "S"},
		{"NP", "NP"},
		{"NP-SBJ", "NP_2d_SBJ"},
		{"PRP$", "PRP_24_"},
		{".", "X__2e_"},
		{"-NONE-", "X__2d_NONE_2d_"},
		{"np", "X_np"},
		{"A_B", "A_5f_B"},
		{"Ärger", "Ärger"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := ProductionName(tt.label); got != tt.want {
				t.Errorf("ProductionName(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestEBNF(t *testing.T) {
	b := New(nil)
	b.Add("(S (NP (N dog)) (VP (V barks)))")
	b.Add("(S (NP (DT the) (N cat)) (VP (V barks)))")

	text, err := b.EBNF("S")
	if err != nil {
		t.Fatalf("EBNF() error = %v\n%s", err, text)
	}

	want := strings.Join([]string{
		`S = NP VP | NP VP .`,
		`NP = N | DT N .`,
		`VP = V | V .`,
		`N = "dog" | "cat" .`,
		`V = "barks" | "barks" .`,
		`DT = "the" .`,
	}, "\n") + "\n"
	if text != want {
		t.Errorf("EBNF() =\n%s\nwant\n%s", text, want)
	}
}

func TestEBNFMangledLabels(t *testing.T) {
	b := New(nil)
	b.Add("(ROOT (S (NP-SBJ (PRP it)) (VP (VBZ rains)) (. .)))")

	text, err := b.EBNF("ROOT")
	if err != nil {
		t.Fatalf("EBNF() error = %v\n%s", err, text)
	}
	if !strings.Contains(text, `S = NP_2d_SBJ VP X__2e_ .`) {
		t.Errorf("missing mangled rule in\n%s", text)
	}
	if !strings.Contains(text, `X__2e_ = "." .`) {
		t.Errorf("missing punctuation rule in\n%s", text)
	}
}

func TestEBNFOptionalAlternative(t *testing.T) {
	b := New(nil)
	b.Add("(S (A ) (A a))")

	text, err := b.EBNF("S")
	if err != nil {
		t.Fatalf("EBNF() error = %v\n%s", err, text)
	}
	if !strings.Contains(text, `A = [ "a" ] .`) {
		t.Errorf("empty alternative not optional in\n%s", text)
	}
}

func TestEBNFVerifyFailure(t *testing.T) {
	b := New(nil)
	b.Add("(S (NP dog))")
	b.Add("(Q (WH who))")

	text, err := b.EBNF("S")
	if err == nil {
		t.Fatal("expected unreachable production error")
	}
	if !strings.Contains(text, "Q = WH .") {
		t.Errorf("text missing on verify failure:\n%s", text)
	}

	if _, err := b.EBNF("MISSING"); err == nil {
		t.Error("expected error for missing start production")
	}
	if _, err := b.EBNF(""); err != nil {
		t.Errorf("EBNF(\"\") error = %v, want nil", err)
	}
}
