package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mixtli/dungeon-lab-sub000/internal/orchestrators/conversion"
)

func newCategoriesCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the content categories in conversion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reader, err := newReader(opts.cfg)
			if err != nil {
				return err
			}
			orchestrator, err := conversion.NewOrchestrator(&conversion.Config{Reader: reader})
			if err != nil {
				return err
			}
			for _, name := range orchestrator.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
