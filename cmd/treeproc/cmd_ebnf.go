package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEBNFCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "ebnf [file]",
		Short: "Export the rules of all trees as a verified EBNF grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := loadBank(cmd.Context(), settings, args)
			if err != nil {
				return err
			}

			text, err := bank.EBNF(startProduction)
			fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "label of the start production for verification (if empty, only checks syntax)")

	return cmd
}
