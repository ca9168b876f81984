package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/treeproc/tree"
	"github.com/dhamidi/treeproc/treebank"
)

func newQueryCmd() *cobra.Command {
	var (
		line int
		kind string
	)

	cmd := &cobra.Command{
		Use:   "query <file> <x> <y>",
		Short: "Check whether node x stands in a relation to node y",
		Long: `Check whether node x stands in a relation to node y in one tree.

Nodes are numbered from 1 in the order their labels appear. The relation is
one of dominates, c-commands, precedes or in-scope.

Examples:
  treeproc query trees.txt 2 5 --kind c-commands
  treeproc query trees.txt --line 3 1 2`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid node x %q", args[1])
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid node y %q", args[2])
			}

			holds, err := relationQuery(kind)
			if err != nil {
				return err
			}

			bank, err := loadBank(cmd.Context(), settings, args[:1])
			if err != nil {
				return err
			}
			entry, err := entryAtLine(bank, line)
			if err != nil {
				return err
			}

			t := entry.Tree
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: %t\n",
				t.Label(x, true), kind, t.Label(y, true), holds(t, x, y))
			return nil
		},
	}

	cmd.Flags().IntVarP(&line, "line", "l", 0, "input line of the tree (default first tree)")
	cmd.Flags().StringVarP(&kind, "kind", "k", tree.Dominance.String(), "relation: dominates, c-commands, precedes, in-scope")

	return cmd
}

func relationQuery(kind string) (func(t *tree.Tree, x, y int) bool, error) {
	if kind == "in-scope" {
		return (*tree.Tree).IsInScope, nil
	}
	rel, ok := tree.ParseRelation(kind)
	if !ok {
		return nil, fmt.Errorf("unknown relation %q", kind)
	}
	return func(t *tree.Tree, x, y int) bool {
		return t.HasRelation(x, y, rel)
	}, nil
}

func entryAtLine(bank *treebank.Bank, line int) (*treebank.Entry, error) {
	entries := bank.Entries()
	if len(entries) == 0 {
		return nil, fmt.Errorf("no trees")
	}
	if line == 0 {
		return entries[0], nil
	}
	for _, e := range entries {
		if e.Line == line {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no tree on line %d", line)
}
