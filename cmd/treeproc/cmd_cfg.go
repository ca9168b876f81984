package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCFGCmd() *cobra.Command {
	var skipTerminals bool

	cmd := &cobra.Command{
		Use:   "cfg [file]",
		Short: "List the context-free rules of every tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := loadBank(cmd.Context(), settings, args)
			if err != nil {
				return err
			}

			skip := settings.SkipTerminals()
			if cmd.Flags().Changed("skip-terminals") {
				skip = skipTerminals
			}
			fmt.Fprint(cmd.OutOrStdout(), bank.CFG(skip))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipTerminals, "skip-terminals", true, "leave out rules whose right-hand side is a single word")

	return cmd
}
