package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/treeproc/format"
)

func newDumpCmd() *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Dump nodes, relations and rules of every tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.New(dumpFormat, cmd.OutOrStdout(),
				format.SkipTerminals(settings.SkipTerminals()),
				format.Color(settings.Color()),
			)
			if err != nil {
				return err
			}

			bank, err := loadBank(cmd.Context(), settings, args)
			if err != nil {
				return err
			}

			for _, e := range bank.Entries() {
				if err := enc.Encode(e); err != nil {
					return fmt.Errorf("encode %s: %w", dumpFormat, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "json", "output format (json, yaml, report)")

	return cmd
}
