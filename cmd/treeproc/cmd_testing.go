package main

import (
	_ "embed"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/treeproc/format"
	"github.com/dhamidi/treeproc/treebank"
)

//go:embed trees.txt
var sampleTrees string

func newTestCmd() *cobra.Command {
	var treesFile string

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Print a report for every tree",
		Long: `Print the terminals, dominance count, c-command pairs and rules of
every tree. Without -r the built-in sample treebank is used.

Examples:
  treeproc test
  treeproc test -r trees.txt
  treeproc test -r - < trees.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var bank *treebank.Bank
			var err error
			if treesFile != "" {
				bank, err = loadBank(cmd.Context(), settings, []string{treesFile})
			} else {
				bank, err = loadFrom(cmd.Context(), settings, strings.NewReader(sampleTrees), "sample")
			}
			if err != nil {
				return err
			}

			enc := format.NewReportEncoder(cmd.OutOrStdout(),
				format.SkipTerminals(settings.SkipTerminals()),
				format.Color(settings.Color()),
			)
			for _, e := range bank.Entries() {
				if err := enc.Encode(e); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&treesFile, "read", "r", "", "read trees from file (- for stdin)")

	return cmd
}
